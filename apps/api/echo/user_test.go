package echoapi

import (
	"net/http"
	"testing"

	"github.com/AxelGHMM/CACE/core/user"
)

func Test_userApi_login(t *testing.T) {
	app := newTestApp(t)
	usr := app.createUser(t, "Axel", "axel@cace.mx", "LePass123", user.RoleAdmin, true)
	app.createUser(t, "Inactive", "gone@cace.mx", "LePass123", user.RoleProfessor, false)

	tests := []httpTest{
		{
			name:     "missing fields",
			body:     []byte(`{"email": "axel@cace.mx"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Email y contraseña son obligatorios."}),
		},
		{
			name:     "unknown email",
			body:     []byte(`{"email": "nope@cace.mx", "password": "LePass123"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Usuario no encontrado."}),
		},
		{
			name:     "wrong password",
			body:     []byte(`{"email": "axel@cace.mx", "password": "nope"}`),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "Contraseña incorrecta."}),
		},
		{
			name:     "deactivated account",
			body:     []byte(`{"email": "gone@cace.mx", "password": "LePass123"}`),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "login ok",
			body:     []byte(`{"email": "axel@cace.mx", "password": "LePass123"}`),
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/users/login", tt.body)
			app.srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// successful login returns the token and the user payload
	req, rec := newRequest(http.MethodPost, "/api/users/login", []byte(`{"email": "axel@cace.mx", "password": "LePass123"}`))
	app.srv.ServeHTTP(rec, req)
	var res LoginResponse
	mustUnmarshal(t, rec.Body.Bytes(), &res)
	if res.Message != "Inicio de sesión exitoso." {
		t.Errorf("login message = %q", res.Message)
	}
	if res.Token == "" {
		t.Error("login returned an empty token")
	}
	if res.User != (UserInfo{ID: usr.ID, Name: usr.Name, Email: usr.Email, Role: usr.Role}) {
		t.Errorf("login user = %+v", res.User)
	}
}

func Test_userApi_me(t *testing.T) {
	app := newTestApp(t)
	usr := app.createUser(t, "Axel", "axel@cace.mx", "LePass123", user.RoleProfessor, true)

	tests := []httpTest{
		{
			name:     "no token",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		},
		{
			name:     "expired token",
			token:    app.getExpiredToken(t, usr),
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "Token expirado"}),
		},
		{
			name:     "ok",
			token:    app.getToken(t, usr),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, UserInfo{ID: usr.ID, Name: usr.Name, Email: usr.Email, Role: usr.Role}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/api/users/me", tt.token)
			app.srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_crud(t *testing.T) {
	app := newTestApp(t)
	admin := app.createUser(t, "Admin", "admin@cace.mx", "LeAdmin123", user.RoleAdmin, true)
	prof := app.createUser(t, "Prof", "prof@cace.mx", "LeProf123", user.RoleProfessor, true)
	adminToken := app.getToken(t, admin)
	profToken := app.getToken(t, prof)

	tests := []httpTest{
		{
			name:     "create requires admin",
			method:   http.MethodPost,
			path:     "/api/users",
			body:     []byte(`{"name": "N", "email": "n@cace.mx", "password": "Str0ngPass!", "role": "professor"}`),
			token:    profToken,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "create ok",
			method:   http.MethodPost,
			path:     "/api/users",
			body:     []byte(`{"name": "Nadia", "email": "nadia@cace.mx", "password": "Str0ngPass!", "role": "professor"}`),
			token:    adminToken,
			wantCode: http.StatusCreated,
		},
		{
			name:     "create duplicate email",
			method:   http.MethodPost,
			path:     "/api/users",
			body:     []byte(`{"name": "Nadia", "email": "nadia@cace.mx", "password": "Str0ngPass!", "role": "professor"}`),
			token:    adminToken,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "retrieve unknown",
			method:   http.MethodGet,
			path:     "/api/users/999",
			token:    adminToken,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "query by role",
			method:   http.MethodGet,
			path:     "/api/users/role/admin",
			token:    adminToken,
			wantCode: http.StatusOK,
		},
		{
			name:     "delete self forbidden",
			method:   http.MethodDelete,
			path:     "/api/users/" + itoa(admin.ID),
			token:    adminToken,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "delete requires admin",
			method:   http.MethodDelete,
			path:     "/api/users/" + itoa(admin.ID),
			token:    profToken,
			wantCode: http.StatusForbidden,
		},
		{
			name:     "delete ok",
			method:   http.MethodDelete,
			path:     "/api/users/" + itoa(prof.ID),
			token:    adminToken,
			wantCode: http.StatusOK,
			wantData: []byte(`{"message": "Usuario eliminado lógicamente"}`),
		},
		{
			name:     "deleted user no longer retrievable",
			method:   http.MethodGet,
			path:     "/api/users/" + itoa(prof.ID),
			token:    adminToken,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_update(t *testing.T) {
	app := newTestApp(t)
	admin := app.createUser(t, "Admin", "admin@cace.mx", "LeAdmin123", user.RoleAdmin, true)
	usr := app.createUser(t, "Old Name", "old@cace.mx", "LePass123", user.RoleProfessor, true)
	token := app.getToken(t, admin)

	req, rec := newAuthRequest(http.MethodPut, "/api/users/"+itoa(usr.ID), token, []byte(`{"name": "New Name"}`))
	app.srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	var updated user.User
	mustUnmarshal(t, rec.Body.Bytes(), &updated)
	if updated.Name != "New Name" {
		t.Errorf("name = %q; want %q", updated.Name, "New Name")
	}
	// omitted fields keep their stored value
	if updated.Email != usr.Email {
		t.Errorf("email = %q; want %q", updated.Email, usr.Email)
	}
	if updated.Role != usr.Role {
		t.Errorf("role = %q; want %q", updated.Role, usr.Role)
	}
}
