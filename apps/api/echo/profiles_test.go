package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/school"
)

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decodeJSON() failed: %v; body %s", err, rec.Body.String())
	}
}

func Test_profileApi_teachers(t *testing.T) {
	deps := initApp(t)

	// empty list, not null
	req, rec := newRequest(http.MethodGet, "/teachers")
	deps.server.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: []byte("[]")}, rec)

	// create
	data := marchallObj(t, school.NewTeacher{
		Firstname:     "Grace",
		Lastname:      "Otieno",
		PersonalEmail: "grace@example.com",
		Email:         "Grace.Otieno@Lecturer.Goldworth.com",
		Password:      "LePassword",
		Expertise:     "Mathematics",
		Department:    "Sciences",
	})
	req, rec = newRequest(http.MethodPost, "/teachers", data)
	deps.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tr school.Teacher
	decodeJSON(t, rec, &tr)
	assert.NotZero(t, tr.ID)
	assert.Equal(t, "grace.otieno@lecturer.goldworth.com", tr.Email)

	// duplicate email is a field error
	req, rec = newRequest(http.MethodPost, "/teachers", data)
	deps.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	tests := []httpTest{
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     "/teachers/1",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, tr),
		},
		{
			name:     "retrieve unknown",
			method:   http.MethodGet,
			path:     "/teachers/666",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Record not found"}),
		},
		{
			name:     "retrieve non-numeric ID",
			method:   http.MethodGet,
			path:     "/teachers/nope",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Record not found"}),
		},
		{
			name:     "update",
			method:   http.MethodPatch,
			path:     "/teachers/1",
			body:     []byte(`{"expertise": "Applied Mathematics"}`),
			wantCode: http.StatusAccepted,
		},
		{
			name:     "update unknown",
			method:   http.MethodPatch,
			path:     "/teachers/666",
			body:     []byte(`{"expertise": "Applied Mathematics"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Record not found"}),
		},
		{
			name:     "destroy",
			method:   http.MethodDelete,
			path:     "/teachers/1",
			wantCode: http.StatusAccepted,
			wantData: marchallObj(t, recordDeletedResponse),
		},
		{
			name:     "destroy unknown",
			method:   http.MethodDelete,
			path:     "/teachers/1",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Record not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			deps.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.name == "update" {
				var got school.Teacher
				decodeJSON(t, rec, &got)
				assert.Equal(t, "Applied Mathematics", got.Expertise)
				assert.Equal(t, tr.Email, got.Email) // untouched fields survive a patch
			}
		})
	}
}

func Test_profileApi_createStudent_multipart(t *testing.T) {
	deps := initApp(t)
	p := createParent(t, deps, "Miriam", "Kariuki", "miriam.kariuki@family.goldworth.com", "LePassword")

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fields := map[string]string{
		"firstname":      "Brian",
		"lastname":       "Kariuki",
		"personal_email": "brian@example.com",
		"email":          "brian.kariuki@student.goldworth.com",
		"password":       "LePassword",
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("image_url", "brian avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/students", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	deps.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var s school.Student
	decodeJSON(t, rec, &s)
	assert.Equal(t, "brian_avatar.png", s.ImageURL.String)

	f, err := deps.images.Open(s.ImageURL.String)
	require.NoError(t, err)
	defer f.Close()
	saved, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), saved)

	// parent linkage is optional on create and patchable afterwards
	req2, rec2 := newRequest(http.MethodPatch, "/students/1", marchallObj(t, map[string]interface{}{"parent_id": p.ID}))
	deps.server.ServeHTTP(rec2, req2)
	require.Equal(t, http.StatusAccepted, rec2.Code, rec2.Body.String())
	var patched school.Student
	decodeJSON(t, rec2, &patched)
	require.True(t, patched.ParentID.Valid)
	assert.Equal(t, p.ID, patched.ParentID.Int)
}
