package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/AxelGHMM/CACE/core/grade"
	"github.com/AxelGHMM/CACE/core/student"
	"github.com/AxelGHMM/CACE/core/user"
)

// seedGrades provisions the standard zeroed rows for one student and
// returns the student id.
func (app *testApp) seedGrades(t *testing.T, groupID int, matricula, name string) int {
	t.Helper()
	ctx := context.Background()

	id, err := app.studentSvc.Upsert(ctx, student.UpsertStudent{Name: name, Matricula: matricula}, groupID)
	if err != nil {
		t.Fatalf("upserting student failed: %v", err)
	}
	if _, err := app.gradeSvc.ProvisionForStudent(ctx, id, groupID); err != nil {
		t.Fatalf("provisioning grades failed: %v", err)
	}
	return id
}

func Test_gradeApi_queryByGroupAndSubject(t *testing.T) {
	app := newTestApp(t)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)
	token := app.getToken(t, prof)
	groupID, subjectID := app.setupGroupWithAssignment(t, prof, "3A", "Matemáticas")
	app.seedGrades(t, groupID, "A002", "Beto")
	app.seedGrades(t, groupID, "A001", "Ana")

	base := "/api/grade/group/" + itoa(groupID) + "/subject/" + itoa(subjectID)

	req, rec := newAuthRequest(http.MethodGet, base, token)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("query failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var rows []grade.Row
	mustUnmarshal(t, rec.Body.Bytes(), &rows)
	if len(rows) != 2*grade.NumPartials {
		t.Fatalf("rows = %d; want %d", len(rows), 2*grade.NumPartials)
	}
	// ordered by student name, then partial
	if rows[0].Name != "Ana" || rows[0].Partial != 1 {
		t.Errorf("rows[0] = %q partial %d; want Ana partial 1", rows[0].Name, rows[0].Partial)
	}
	if rows[grade.NumPartials].Name != "Beto" {
		t.Errorf("rows[%d] = %q; want Beto", grade.NumPartials, rows[grade.NumPartials].Name)
	}

	// single partial
	req, rec = newAuthRequest(http.MethodGet, base+"/2", token)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("query failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	rows = nil
	mustUnmarshal(t, rec.Body.Bytes(), &rows)
	if len(rows) != 2 {
		t.Fatalf("rows = %d; want 2", len(rows))
	}
	for _, row := range rows {
		if row.Partial != 2 {
			t.Errorf("row %d partial = %d; want 2", row.ID, row.Partial)
		}
	}

	// out of range partial
	req, rec = newAuthRequest(http.MethodGet, base+"/4", token)
	app.srv.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, httpErr{Error: "El parcial debe estar entre 1 y 3"}),
	}, rec)
}

func Test_gradeApi_queryByProfessor(t *testing.T) {
	app := newTestApp(t)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)
	token := app.getToken(t, prof)
	groupID, subjectID := app.setupGroupWithAssignment(t, prof, "3A", "Matemáticas")
	app.seedGrades(t, groupID, "A001", "Ana")

	req, rec := newAuthRequest(http.MethodGet, "/api/grade/professor/"+itoa(prof.ID), token)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("query failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var rows []grade.Row
	mustUnmarshal(t, rec.Body.Bytes(), &rows)
	if len(rows) != grade.NumPartials {
		t.Fatalf("rows = %d; want %d", len(rows), grade.NumPartials)
	}
	for _, row := range rows {
		if !row.GroupID.Valid || int(row.GroupID.Int64) != groupID {
			t.Errorf("row %d group_id = %v; want %d", row.ID, row.GroupID, groupID)
		}
		if !row.SubjectID.Valid || int(row.SubjectID.Int64) != subjectID {
			t.Errorf("row %d subject_id = %v; want %d", row.ID, row.SubjectID, subjectID)
		}
	}

	// no grades for an unknown professor
	req, rec = newAuthRequest(http.MethodGet, "/api/grade/professor/999", token)
	app.srv.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte(`[]`)}, rec)
}

func Test_gradeApi_update(t *testing.T) {
	app := newTestApp(t)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)
	token := app.getToken(t, prof)
	groupID, subjectID := app.setupGroupWithAssignment(t, prof, "3A", "Matemáticas")
	app.seedGrades(t, groupID, "A001", "Ana")

	var rows []grade.Row
	req, rec := newAuthRequest(http.MethodGet, "/api/grade/group/"+itoa(groupID)+"/subject/"+itoa(subjectID)+"/1", token)
	app.srv.ServeHTTP(rec, req)
	mustUnmarshal(t, rec.Body.Bytes(), &rows)
	if len(rows) != 1 {
		t.Fatalf("rows = %d; want 1", len(rows))
	}
	gradeID := rows[0].ID

	req, rec = newAuthRequest(http.MethodPut, "/api/grade/"+itoa(gradeID), token, []byte(`{"exam": 9.5, "project": 8}`))
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var res struct {
		Message string      `json:"message"`
		Grade   grade.Grade `json:"grade"`
	}
	mustUnmarshal(t, rec.Body.Bytes(), &res)
	if res.Message != "Calificación actualizada" {
		t.Errorf("message = %q", res.Message)
	}
	if res.Grade.Exam != 9.5 || res.Grade.Project != 8 {
		t.Errorf("grade = %+v; want exam 9.5, project 8", res.Grade)
	}

	// omitted components keep their stored value
	req, rec = newAuthRequest(http.MethodPut, "/api/grade/"+itoa(gradeID), token, []byte(`{"activity_1": 7}`))
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	mustUnmarshal(t, rec.Body.Bytes(), &res)
	if res.Grade.Activity1 != 7 || res.Grade.Exam != 9.5 || res.Grade.Project != 8 {
		t.Errorf("grade = %+v; want activity_1 7 with exam and project kept", res.Grade)
	}

	// unknown grade
	req, rec = newAuthRequest(http.MethodPut, "/api/grade/999", token, []byte(`{"exam": 10}`))
	app.srv.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusNotFound,
		wantData: marchallObj(t, httpErr{Error: "Registro de calificación no encontrado"}),
	}, rec)
}
