package echoapi

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/school"
)

func Test_fileApi_fetchProfileImage(t *testing.T) {
	deps := initApp(t)

	name, err := deps.images.Save("grace.png", bytes.NewReader([]byte("png-bytes")))
	require.NoError(t, err)

	tr, err := deps.schoolSvc.CreateTeacher(context.Background(), school.NewTeacher{
		Firstname:     "Grace",
		Lastname:      "Otieno",
		PersonalEmail: "grace@example.com",
		Email:         "grace.otieno@lecturer.goldworth.com",
		Password:      "LePassword",
		ImageURL:      name,
	})
	require.NoError(t, err)
	bare := createParent(t, deps, "Miriam", "Kariuki", "miriam.kariuki@family.goldworth.com", "LePassword")

	t.Run("no session", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/profile_image")
		deps.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingSession)}, rec)
	})

	t.Run("no image on profile", func(t *testing.T) {
		req, rec := newSessionRequest(http.MethodGet, "/profile_image", openSession(t, deps, bare.Email))
		deps.server.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "Record not found"})}, rec)
	})

	t.Run("image streamed inline", func(t *testing.T) {
		req, rec := newSessionRequest(http.MethodGet, "/profile_image", openSession(t, deps, tr.Email))
		deps.server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "png-bytes", rec.Body.String())
		assert.NotContains(t, rec.Header().Get("Content-Disposition"), "attachment")
	})
}

func Test_fileApi_fetchAssignmentFile(t *testing.T) {
	deps := initApp(t)

	name, err := deps.files.Save("networks cat.pdf", bytes.NewReader([]byte("pdf-bytes")))
	require.NoError(t, err)

	_, err = deps.schoolSvc.CreateAssignment(context.Background(), school.NewAssignment{
		Name:    "Networks CAT",
		Topic:   "Routing",
		Body:    "Answer all questions",
		DueDate: "2026-03-01",
	})
	require.NoError(t, err)
	_, err = deps.schoolSvc.CreateAssignment(context.Background(), school.NewAssignment{
		Name:    "Networks CAT 2",
		Topic:   "Switching",
		Body:    "Answer all questions",
		File:    name,
		DueDate: "2026-04-01",
	})
	require.NoError(t, err)

	tests := []httpTest{
		{
			name:     "unknown assignment",
			path:     "/assignment-file/666",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Record not found"}),
		},
		{
			name:     "assignment without file",
			path:     "/assignment-file/1",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Record not found"}),
		},
		{
			name:     "file streamed as attachment",
			path:     "/assignment-file/2",
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			deps.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "pdf-bytes", rec.Body.String())
				disposition := rec.Header().Get("Content-Disposition")
				assert.True(t, strings.HasPrefix(disposition, "attachment"), disposition)
			}
		})
	}
}
