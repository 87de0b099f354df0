package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/school"
)

func createTeacher(t *testing.T, deps testDeps, first, last, email, pwd string) school.Teacher {
	tr, err := deps.schoolSvc.CreateTeacher(context.Background(), school.NewTeacher{
		Firstname:     first,
		Lastname:      last,
		PersonalEmail: first + "." + last + "@example.com",
		Email:         email,
		Password:      pwd,
		Expertise:     "Mathematics",
		Department:    "Sciences",
	})
	if err != nil {
		t.Fatalf("createTeacher() failed: %v", err)
	}
	return tr
}

func createParent(t *testing.T, deps testDeps, first, last, email, pwd string) school.Parent {
	p, err := deps.schoolSvc.CreateParent(context.Background(), school.NewParent{
		Firstname: first,
		Lastname:  last,
		Email:     email,
		Password:  pwd,
	})
	if err != nil {
		t.Fatalf("createParent() failed: %v", err)
	}
	return p
}

func openSession(t *testing.T, deps testDeps, email string) string {
	token, err := deps.sessions.Create(context.Background(), email)
	if err != nil {
		t.Fatalf("openSession() failed: %v", err)
	}
	return token
}

func Test_authApi_login(t *testing.T) {
	deps := initApp(t)
	tr := createTeacher(t, deps, "Grace", "Otieno", "grace.otieno@lecturer.goldworth.com", "LePassword")

	tests := []httpTest{
		{
			name:     "empty body",
			body:     []byte("{}"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown email",
			body:     marchallObj(t, loginRequest{Email: "who@goldworth.com", Password: "LePassword"}),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "User does not exist"}),
		},
		{
			name:     "wrong password",
			body:     marchallObj(t, loginRequest{Email: tr.Email, Password: "nope"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Invalid email or password"}),
		},
		{
			name:     "login ok",
			body:     marchallObj(t, loginRequest{Email: tr.Email, Password: "LePassword"}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, school.ProjectTeacherAccount(tr)),
		},
		{
			name:     "email is cleaned before lookup",
			body:     marchallObj(t, loginRequest{Email: "  Grace.Otieno@Lecturer.Goldworth.com ", Password: "LePassword"}),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, school.ProjectTeacherAccount(tr)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/login", tt.body)
			deps.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				var cookie *http.Cookie
				for _, c := range rec.Result().Cookies() {
					if c.Name == testCookieName {
						cookie = c
					}
				}
				require.NotNil(t, cookie, "session cookie not set")
				assert.NotEmpty(t, cookie.Value)
				assert.True(t, cookie.HttpOnly)

				email, err := deps.sessions.Get(context.Background(), cookie.Value)
				require.NoError(t, err)
				assert.Equal(t, tr.Email, email)
			}
		})
	}
}

func Test_authApi_checkSession(t *testing.T) {
	deps := initApp(t)
	p := createParent(t, deps, "Miriam", "Kariuki", "miriam.kariuki@family.goldworth.com", "LePassword")
	token := openSession(t, deps, p.Email)

	tests := []httpTest{
		{
			name:     "no cookie",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingSession),
		},
		{
			name:     "unknown token",
			cookie:   "not-a-session",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingSession),
		},
		{
			name:     "valid session",
			cookie:   token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, school.ProjectParentAccount(p)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newSessionRequest(http.MethodGet, "/checksession", tt.cookie)
			deps.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_logout(t *testing.T) {
	deps := initApp(t)
	p := createParent(t, deps, "Miriam", "Kariuki", "miriam.kariuki@family.goldworth.com", "LePassword")
	token := openSession(t, deps, p.Email)

	tests := []httpTest{
		{
			name:     "no cookie",
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "You are not allowed to access this method"}),
		},
		{
			name:     "valid session",
			cookie:   token,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, successResponse{Success: "You have been logged out successfully"}),
		},
		{
			name:     "session already closed",
			cookie:   token,
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "You are not allowed to access this method"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newSessionRequest(http.MethodDelete, "/logout", tt.cookie)
			deps.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				_, err := deps.sessions.Get(context.Background(), token)
				assert.Equal(t, errSessionNotFound, err)
			}
		})
	}
}
