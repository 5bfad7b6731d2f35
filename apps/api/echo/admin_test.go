package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/AxelGHMM/CACE/core/assignment"
	"github.com/AxelGHMM/CACE/core/attendance"
	"github.com/AxelGHMM/CACE/core/stats"
	"github.com/AxelGHMM/CACE/core/student"
	"github.com/AxelGHMM/CACE/core/user"
)

func Test_adminApi_homepage(t *testing.T) {
	app := newTestApp(t)
	admin := app.createUser(t, "Admin", "admin@cace.mx", "LeAdmin123", user.RoleAdmin, true)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)
	prof2 := app.createUser(t, "Prof 2", "prof2@cace.mx", "LeProf123", user.RoleProfessor, true)
	adminToken := app.getToken(t, admin)

	app.setupGroupWithAssignment(t, prof, "3A", "Matemáticas")
	groupID2, subjectID2 := app.setupGroupWithAssignment(t, prof2, "3B", "Historia")
	na := assignment.NewAssignment{UserID: prof.ID, GroupID: groupID2, SubjectID: subjectID2}
	if _, err := app.assignmentSvc.Create(context.Background(), na); err != nil {
		t.Fatalf("creating assignment failed: %v", err)
	}

	req, rec := newAuthRequest(http.MethodGet, "/api/admin/homepage", adminToken)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("homepage failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var s stats.AdminStats
	mustUnmarshal(t, rec.Body.Bytes(), &s)
	if s.TotalUsers != 3 {
		t.Errorf("totalUsers = %d; want 3", s.TotalUsers)
	}
	if s.TotalSubjects != 2 {
		t.Errorf("totalSubjects = %d; want 2", s.TotalSubjects)
	}
	if s.TotalGroups != 2 {
		t.Errorf("totalGroups = %d; want 2", s.TotalGroups)
	}
	// fixed order: admins, professors, students
	if want := []int{1, 2, 0}; !equalInts(s.UsersByRole, want) {
		t.Errorf("usersByRole = %v; want %v", s.UsersByRole, want)
	}
	// per group, ordered by group id: 3A has one assignment, 3B has two
	if want := []int{1, 2}; !equalInts(s.SubjectsByGroup, want) {
		t.Errorf("subjectsByGroup = %v; want %v", s.SubjectsByGroup, want)
	}
}

func Test_adminApi_homepage_forbidden(t *testing.T) {
	app := newTestApp(t)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)

	tests := []httpTest{
		{
			name:     "no token",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "professor token",
			token:    app.getToken(t, prof),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "Permiso denegado"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/api/admin/homepage", tt.token)
			app.srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_homepageStats(t *testing.T) {
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

	submit := func(date string, studentIDs ...int) {
		t.Helper()
		nb := attendance.NewBatch{GroupID: groupID, SubjectID: subjectID, Date: date}
		for _, id := range studentIDs {
			nb.Attendances = append(nb.Attendances, attendance.BatchEntry{StudentID: id, Status: attendance.StatusAbsent})
		}
		if _, err := app.attendanceSvc.SubmitBatch(ctx, nb, prof.ID); err != nil {
			t.Fatalf("submitting attendance failed: %v", err)
		}
	}
	submit("2026-01-12", id1, id2)
	submit("2026-03-09", id1)
	submit("2026-08-10", id1) // beyond the charted window

	req, rec := newAuthRequest(http.MethodGet, "/api/users/homepage/stats", token)
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var s stats.ChartStats
	mustUnmarshal(t, rec.Body.Bytes(), &s)
	// months are counted into 5 fixed slots; absences count too
	if want := []int{2, 0, 1, 0, 0}; !equalInts(s.AttendanceData, want) {
		t.Errorf("attendanceData = %v; want %v", s.AttendanceData, want)
	}
	if want := []int{2}; !equalInts(s.GradesData, want) {
		t.Errorf("gradesData = %v; want %v", s.GradesData, want)
	}
}

func equalInts(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
