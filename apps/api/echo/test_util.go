package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AxelGHMM/CACE/core"
	"github.com/AxelGHMM/CACE/core/assignment"
	"github.com/AxelGHMM/CACE/core/attendance"
	"github.com/AxelGHMM/CACE/core/grade"
	"github.com/AxelGHMM/CACE/core/group"
	"github.com/AxelGHMM/CACE/core/roster"
	"github.com/AxelGHMM/CACE/core/stats"
	"github.com/AxelGHMM/CACE/core/student"
	"github.com/AxelGHMM/CACE/core/subject"
	"github.com/AxelGHMM/CACE/core/user"
	emailsvc "github.com/AxelGHMM/CACE/services/email"
	logsvc "github.com/AxelGHMM/CACE/services/logger"
	dummydb "github.com/AxelGHMM/CACE/storage/database/dummy"
)

var errMissingToken = httpErr{Error: "Token no proporcionado"}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type testApp struct {
	conf *core.Config
	srv  Server

	userRepo    user.Repository
	studentRepo *dummydb.StudentRepository

	userSvc       user.ServiceInterface
	groupSvc      *group.Service
	subjectSvc    *subject.Service
	assignmentSvc *assignment.Service
	studentSvc    *student.Service
	attendanceSvc *attendance.Service
	gradeSvc      *grade.Service
	rosterSvc     *roster.Service
	statsSvc      *stats.Service
}

func newTestConfig() *core.Config {
	return &core.Config{
		TestMode:                  true,
		Env:                       "TEST",
		AppName:                   "CACE",
		SecretKey:                 []byte("secret"),
		WorkDir:                   core.Getwd(),
		FrontendBaseURL:           "http://localhost:3000",
		DefaultFromEmail:          mail.Address{Name: "CACE", Address: "noreply@localhost"},
		JWTExpirationDelta:        10 * time.Minute,
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	conf := newTestConfig()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("newTestApp() failed: %v", err)
	}

	logger := logsvc.NewConsoleLogger(log.New(ioutil.Discard, "", 0))
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	userRepo := dummydb.NewUserRepository(db)
	studentRepo := dummydb.NewStudentRepository(db)

	app := &testApp{
		conf:        conf,
		userRepo:    userRepo,
		studentRepo: studentRepo,

		userSvc:       user.NewService(conf, userRepo, mailSvc),
		groupSvc:      group.NewService(dummydb.NewGroupRepository(db)),
		subjectSvc:    subject.NewService(dummydb.NewSubjectRepository(db)),
		assignmentSvc: assignment.NewService(dummydb.NewAssignmentRepository(db)),
		studentSvc:    student.NewService(studentRepo),
		attendanceSvc: attendance.NewService(dummydb.NewAttendanceRepository(db)),
		gradeSvc:      grade.NewService(dummydb.NewGradeRepository(db)),
		statsSvc:      stats.NewService(dummydb.NewStatsRepository(db)),
	}
	app.rosterSvc = roster.NewService(app.studentSvc, app.gradeSvc, logger)

	app.srv = NewServer(&Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         logger,
		UserSvc:        app.userSvc,
		GroupSvc:       app.groupSvc,
		SubjectSvc:     app.subjectSvc,
		AssignmentSvc:  app.assignmentSvc,
		StudentSvc:     app.studentSvc,
		AttendanceSvc:  app.attendanceSvc,
		GradeSvc:       app.gradeSvc,
		RosterSvc:      app.rosterSvc,
		StatsSvc:       app.statsSvc,
	})
	return app
}

func (app *testApp) createUser(t *testing.T, name, email, pwd, role string, isActive bool) user.User {
	t.Helper()

	now := time.Now().UTC()
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := app.userRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func (app *testApp) getToken(t *testing.T, usr user.User) string {
	t.Helper()

	token, err := GenerateToken(app.conf, GetUserClaims(app.conf, usr))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

// getExpiredToken signs claims whose expiry is already in the past.
func (app *testApp) getExpiredToken(t *testing.T, usr user.User) string {
	t.Helper()

	claims := GetUserClaims(app.conf, usr)
	claims.IssuedAt = time.Now().Add(-2 * time.Hour).Unix()
	claims.ExpiresAt = time.Now().Add(-time.Hour).Unix()
	token, err := GenerateToken(app.conf, claims)
	if err != nil {
		t.Fatalf("getExpiredToken() failed: %v", err)
	}
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func itoa(id int) string { return strconv.Itoa(id) }

func mustUnmarshal(t *testing.T, data []byte, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("mustUnmarshal() failed: %v; data = %s", err, data)
	}
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	t.Helper()

	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
