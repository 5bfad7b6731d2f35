package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/assignment"
	"github.com/AxelGHMM/CACE/core/grade"
	"github.com/AxelGHMM/CACE/core/group"
	"github.com/AxelGHMM/CACE/core/student"
	"github.com/AxelGHMM/CACE/core/subject"
	"github.com/AxelGHMM/CACE/core/user"
)

type uploadResponse struct {
	Message       string `json:"message"`
	BatchID       string `json:"batch_id"`
	Students      int    `json:"students"`
	GradesCreated int    `json:"grades_created"`
}

func (app *testApp) setupGroupWithAssignment(t *testing.T, prof user.User, groupName, subjectName string) (groupID, subjectID int) {
	t.Helper()
	ctx := context.Background()

	grp, err := app.groupSvc.Create(ctx, group.NewGroup{Name: groupName})
	if err != nil {
		t.Fatalf("creating group failed: %v", err)
	}
	sub, err := app.subjectSvc.Create(ctx, subject.NewSubject{Name: subjectName})
	if err != nil {
		t.Fatalf("creating subject failed: %v", err)
	}
	_, err = app.assignmentSvc.Create(ctx, assignment.NewAssignment{UserID: prof.ID, GroupID: grp.ID, SubjectID: sub.ID})
	if err != nil {
		t.Fatalf("creating assignment failed: %v", err)
	}
	return grp.ID, sub.ID
}

func Test_rosterApi_upload(t *testing.T) {
	app := newTestApp(t)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)
	token := app.getToken(t, prof)
	groupID, subjectID := app.setupGroupWithAssignment(t, prof, "3A", "Matemáticas")

	body := []byte(`{
		"groupId": ` + itoa(groupID) + `,
		"data": [
			{"name": "Ana", "email": "ana@mail.mx", "matricula": "A001"},
			{"name": "Beto", "matricula": "A002"}
		]
	}`)

	req, rec := newAuthRequest(http.MethodPost, "/api/upload", token, body)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var res uploadResponse
	mustUnmarshal(t, rec.Body.Bytes(), &res)
	if res.Message != "Archivo subido y estudiantes registrados correctamente." {
		t.Errorf("message = %q", res.Message)
	}
	if res.BatchID == "" {
		t.Error("upload returned an empty batch id")
	}
	if res.Students != 2 {
		t.Errorf("students = %d; want 2", res.Students)
	}
	// one assignment: 3 partials per student
	if res.GradesCreated != 2*grade.NumPartials {
		t.Errorf("grades_created = %d; want %d", res.GradesCreated, 2*grade.NumPartials)
	}

	rows, err := app.gradeSvc.QueryByGroupAndSubject(context.Background(), groupID, subjectID, nil)
	if err != nil {
		t.Fatalf("querying grades failed: %v", err)
	}
	if len(rows) != 2*grade.NumPartials {
		t.Errorf("grade rows = %d; want %d", len(rows), 2*grade.NumPartials)
	}
	for _, row := range rows {
		if row.Activity1 != 0 || row.Activity2 != 0 || row.Attendance != 0 || row.Project != 0 || row.Exam != 0 {
			t.Errorf("provisioned row %d not zeroed: %+v", row.ID, row)
		}
	}
}

func Test_rosterApi_upload_idempotent(t *testing.T) {
	app := newTestApp(t)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)
	token := app.getToken(t, prof)
	groupID, _ := app.setupGroupWithAssignment(t, prof, "3A", "Matemáticas")

	body := []byte(`{"groupId": ` + itoa(groupID) + `, "data": [{"name": "Ana", "matricula": "A001"}]}`)

	req, rec := newAuthRequest(http.MethodPost, "/api/upload", token, body)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first upload failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	// re-ingesting an unchanged batch creates zero new grade rows
	req, rec = newAuthRequest(http.MethodPost, "/api/upload", token, body)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("second upload failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var res uploadResponse
	mustUnmarshal(t, rec.Body.Bytes(), &res)
	if res.GradesCreated != 0 {
		t.Errorf("grades_created = %d; want 0", res.GradesCreated)
	}

	// last write wins on matricula conflict
	body = []byte(`{"groupId": ` + itoa(groupID) + `, "data": [{"name": "Ana María", "matricula": "A001"}]}`)
	req, rec = newAuthRequest(http.MethodPost, "/api/upload", token, body)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("third upload failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	s, err := app.studentSvc.GetByMatricula(context.Background(), "A001")
	if err != nil {
		t.Fatalf("finding student failed: %v", err)
	}
	if s.Name != "Ana María" {
		t.Errorf("student name = %q; want %q", s.Name, "Ana María")
	}
}

func Test_rosterApi_upload_multiAssignment(t *testing.T) {
	app := newTestApp(t)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)
	prof2 := app.createUser(t, "Prof2", "prof2@cace.mx", "LeProf123", user.RoleProfessor, true)
	token := app.getToken(t, prof)
	groupID, _ := app.setupGroupWithAssignment(t, prof, "3A", "Matemáticas")

	// second subject taught by another professor in the same group
	ctx := context.Background()
	sub2, err := app.subjectSvc.Create(ctx, subject.NewSubject{Name: "Historia"})
	if err != nil {
		t.Fatalf("creating subject failed: %v", err)
	}
	if _, err = app.assignmentSvc.Create(ctx, assignment.NewAssignment{UserID: prof2.ID, GroupID: groupID, SubjectID: sub2.ID}); err != nil {
		t.Fatalf("creating assignment failed: %v", err)
	}

	body := []byte(`{"groupId": ` + itoa(groupID) + `, "data": [{"name": "Ana", "matricula": "A001"}]}`)
	req, rec := newAuthRequest(http.MethodPost, "/api/upload", token, body)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var res uploadResponse
	mustUnmarshal(t, rec.Body.Bytes(), &res)
	if want := 2 * grade.NumPartials; res.GradesCreated != want {
		t.Errorf("grades_created = %d; want %d", res.GradesCreated, want)
	}
}

func Test_rosterApi_upload_partialFailure(t *testing.T) {
	app := newTestApp(t)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)
	token := app.getToken(t, prof)
	groupID, _ := app.setupGroupWithAssignment(t, prof, "3A", "Matemáticas")

	app.studentRepo.FailUpsertOn("A002", errors.New("connection reset"))

	body := []byte(`{
		"groupId": ` + itoa(groupID) + `,
		"data": [
			{"name": "Ana", "matricula": "A001"},
			{"name": "Beto", "matricula": "A002"},
			{"name": "Caro", "matricula": "A003"}
		]
	}`)

	req, rec := newAuthRequest(http.MethodPost, "/api/upload", token, body)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %v; want 500; body = %s", rec.Code, rec.Body.String())
	}

	ctx := context.Background()
	// record 1 persisted
	if _, err := app.studentSvc.GetByMatricula(ctx, "A001"); err != nil {
		t.Errorf("record before the failure was not persisted: %v", err)
	}
	// record 3 never attempted
	if _, err := app.studentSvc.GetByMatricula(ctx, "A003"); errors.Cause(err) != student.ErrNotFound {
		t.Errorf("record after the failure was attempted; err = %v", err)
	}

	// re-uploading after the failure completes the batch
	app.studentRepo.FailUpsertOn("A002", nil)
	req, rec = newAuthRequest(http.MethodPost, "/api/upload", token, body)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("re-upload failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var res uploadResponse
	mustUnmarshal(t, rec.Body.Bytes(), &res)
	if res.Students != 3 {
		t.Errorf("students = %d; want 3", res.Students)
	}
}

func Test_rosterApi_upload_invalidPayload(t *testing.T) {
	app := newTestApp(t)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)
	token := app.getToken(t, prof)

	tests := []httpTest{
		{
			name:     "missing group",
			body:     []byte(`{"data": [{"name": "Ana", "matricula": "A001"}]}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Datos inválidos. Verifica el grupo y el archivo."}),
		},
		{
			name:     "empty data",
			body:     []byte(`{"groupId": 1, "data": []}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Datos inválidos. Verifica el grupo y el archivo."}),
		},
		{
			name:     "no token",
			body:     []byte(`{}`),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := token
			if tt.name == "no token" {
				token = ""
			}
			req, rec := newAuthRequest(http.MethodPost, "/api/upload", token, tt.body)
			app.srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
