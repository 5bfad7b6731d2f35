package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/AxelGHMM/CACE/core/attendance"
	"github.com/AxelGHMM/CACE/core/student"
	"github.com/AxelGHMM/CACE/core/user"
)

func Test_attendanceApi_roster(t *testing.T) {
	app := newTestApp(t)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)
	token := app.getToken(t, prof)
	groupID, subjectID := app.setupGroupWithAssignment(t, prof, "3A", "Matemáticas")

	ctx := context.Background()
	for _, us := range []student.UpsertStudent{
		{Name: "Ana", Matricula: "A001"},
		{Name: "Beto", Matricula: "A002"},
	} {
		if _, err := app.studentSvc.Upsert(ctx, us, groupID); err != nil {
			t.Fatalf("upserting student failed: %v", err)
		}
	}

	path := "/api/attendances/group/" + itoa(groupID) + "/subject/" + itoa(subjectID)
	req, rec := newAuthRequest(http.MethodGet, path, token)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("roster failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var entries []attendance.RosterEntry
	mustUnmarshal(t, rec.Body.Bytes(), &entries)
	if len(entries) != 2 {
		t.Fatalf("entries = %d; want 2", len(entries))
	}
	for _, e := range entries {
		if e.Status != attendance.StatusPresent {
			t.Errorf("entry %q status = %q; want %q", e.Matricula, e.Status, attendance.StatusPresent)
		}
	}

	// empty group
	groupID2, subjectID2 := app.setupGroupWithAssignment(t, prof, "3B", "Historia")
	path = "/api/attendances/group/" + itoa(groupID2) + "/subject/" + itoa(subjectID2)
	req, rec = newAuthRequest(http.MethodGet, path, token)
	app.srv.ServeHTTP(rec, req)
	tt := httpTest{
		wantCode: http.StatusNotFound,
		wantData: marchallObj(t, httpErr{Error: "No hay alumnos en este grupo"}),
	}
	checkCodeAndData(t, tt, rec)
}

func Test_attendanceApi_submit(t *testing.T) {
	app := newTestApp(t)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)
	token := app.getToken(t, prof)
	groupID, subjectID := app.setupGroupWithAssignment(t, prof, "3A", "Matemáticas")

	ctx := context.Background()
	id1, err := app.studentSvc.Upsert(ctx, student.UpsertStudent{Name: "Ana", Matricula: "A001"}, groupID)
	if err != nil {
		t.Fatalf("upserting student failed: %v", err)
	}
	id2, err := app.studentSvc.Upsert(ctx, student.UpsertStudent{Name: "Beto", Matricula: "A002"}, groupID)
	if err != nil {
		t.Fatalf("upserting student failed: %v", err)
	}

	body := []byte(`{
		"group_id": ` + itoa(groupID) + `,
		"subject_id": ` + itoa(subjectID) + `,
		"date": "2026-02-10",
		"attendances": [
			{"student_id": ` + itoa(id1) + `, "status": "Present"},
			{"student_id": ` + itoa(id2) + `, "status": "late"}
		]
	}`)

	req, rec := newAuthRequest(http.MethodPost, "/api/attendances/submit", token, body)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var res struct {
		Message string                  `json:"message"`
		Data    []attendance.Attendance `json:"data"`
	}
	mustUnmarshal(t, rec.Body.Bytes(), &res)
	if res.Message != "Asistencia registrada" {
		t.Errorf("message = %q", res.Message)
	}
	if len(res.Data) != 2 {
		t.Fatalf("rows = %d; want 2", len(res.Data))
	}
	for _, att := range res.Data {
		// professor is stamped from the token, statuses normalized
		if att.UserID != prof.ID {
			t.Errorf("row %d user_id = %d; want %d", att.ID, att.UserID, prof.ID)
		}
		if att.Date != "2026-02-10" {
			t.Errorf("row %d date = %q", att.ID, att.Date)
		}
	}
	if res.Data[0].Status != attendance.StatusPresent {
		t.Errorf("status = %q; want %q", res.Data[0].Status, attendance.StatusPresent)
	}
	if res.Data[1].Status != attendance.StatusLate {
		t.Errorf("status = %q; want %q", res.Data[1].Status, attendance.StatusLate)
	}
}

func Test_attendanceApi_submit_invalid(t *testing.T) {
	app := newTestApp(t)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)
	token := app.getToken(t, prof)

	tests := []httpTest{
		{
			name:     "missing fields",
			body:     []byte(`{"group_id": 1}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad status",
			body:     []byte(`{"group_id": 1, "subject_id": 1, "date": "2026-02-10", "attendances": [{"student_id": 1, "status": "sleeping"}]}`),
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/attendances/submit", token, tt.body)
			app.srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
