package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/school"
)

func Test_userApi_query(t *testing.T) {
	deps := initApp(t)

	req, rec := newRequest(http.MethodGet, "/users")
	deps.server.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte("[]")}, rec)

	createTeacher(t, deps, "Grace", "Otieno", "grace.otieno@lecturer.goldworth.com", "LePassword")
	createParent(t, deps, "Miriam", "Kariuki", "miriam.kariuki@family.goldworth.com", "LePassword")

	usrs, err := deps.usrSvc.QueryAll(context.Background())
	require.NoError(t, err)
	require.Len(t, usrs, 2)

	req, rec = newRequest(http.MethodGet, "/users")
	deps.server.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marchallObj(t, school.ProjectUsers(usrs)),
	}, rec)
}
