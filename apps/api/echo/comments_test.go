package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/school"
)

func Test_commentApi(t *testing.T) {
	deps := initApp(t)
	tr := createTeacher(t, deps, "Grace", "Otieno", "grace.otieno@lecturer.goldworth.com", "LePassword")
	p := createParent(t, deps, "Miriam", "Kariuki", "miriam.kariuki@family.goldworth.com", "LePassword")

	// exactly one author
	req, rec := newRequest(http.MethodPost, "/comments", marchallObj(t, school.NewComment{
		Subject:   "Brian's progress",
		Body:      "Can we meet this week?",
		TeacherID: &tr.ID,
		ParentID:  &p.ID,
	}))
	deps.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	req, rec = newRequest(http.MethodPost, "/comments", marchallObj(t, school.NewComment{
		Subject:  "Brian's progress",
		Body:     "Can we meet this week?",
		ParentID: &p.ID,
	}))
	deps.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c school.CommentProjection
	decodeJSON(t, rec, &c)
	require.True(t, c.ParentID.Valid)
	assert.Equal(t, p.ID, c.ParentID.Int)
	assert.False(t, c.TeacherID.Valid)

	tests := []httpTest{
		{
			name:     "update",
			method:   http.MethodPatch,
			path:     "/comments/1",
			body:     []byte(`{"title": "Parent meeting"}`),
			wantCode: http.StatusAccepted,
		},
		{
			name:     "destroy",
			method:   http.MethodDelete,
			path:     "/comments/1",
			wantCode: http.StatusAccepted,
			wantData: marchallObj(t, recordDeletedResponse),
		},
		{
			name:     "destroy unknown",
			method:   http.MethodDelete,
			path:     "/comments/1",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Record not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			deps.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
