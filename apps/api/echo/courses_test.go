package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/school"
)

func Test_courseApi(t *testing.T) {
	deps := initApp(t)

	data := marchallObj(t, school.NewCourse{
		Name:        "Introduction to Python",
		Description: "Programming from scratch",
		DaysOfWeek:  "1,3",
		StartRecur:  "2026-01-05",
		EndRecur:    "2026-06-26",
		StartTime:   "09:00",
		EndTime:     "10:30",
	})
	req, rec := newRequest(http.MethodPost, "/courses", data)
	deps.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c school.CourseProjection
	decodeJSON(t, rec, &c)
	assert.Equal(t, "Introduction to Python", c.Name)
	assert.Equal(t, "09:00", c.StartTime.String())
	assert.Equal(t, "10:30", c.EndTime.String())

	// the course name is unique
	req, rec = newRequest(http.MethodPost, "/courses", data)
	deps.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// a recurrence boundary that is not a date is a field error
	req, rec = newRequest(http.MethodPost, "/courses", marchallObj(t, school.NewCourse{
		Name:        "Computer Networks",
		Description: "Packets all the way down",
		StartRecur:  "tomorrow",
		EndRecur:    "2026-06-26",
		StartTime:   "14:00",
		EndTime:     "15:30",
	}))
	deps.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func Test_courseApi_roster(t *testing.T) {
	deps := initApp(t)
	c := createCourse(t, deps, "Computer Networks")
	tr := createTeacher(t, deps, "Daniel", "Mwangi", "daniel.mwangi@lecturer.goldworth.com", "LePassword")
	s, err := deps.schoolSvc.CreateStudent(context.Background(), school.NewStudent{
		Firstname:     "Alice",
		Lastname:      "Wambui",
		PersonalEmail: "alice@example.com",
		Email:         "alice.wambui@student.goldworth.com",
		Password:      "LePassword",
	})
	require.NoError(t, err)

	tests := []httpTest{
		{
			name:     "assign teacher",
			method:   http.MethodPost,
			path:     "/courses/1/teachers/1",
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, successResponse{Success: "Teacher assigned to course"}),
		},
		{
			name:     "enroll student",
			method:   http.MethodPost,
			path:     "/courses/1/students/1",
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, successResponse{Success: "Student enrolled in course"}),
		},
		{
			name:     "unenroll student",
			method:   http.MethodDelete,
			path:     "/courses/1/students/1",
			wantCode: http.StatusAccepted,
			wantData: marchallObj(t, recordDeletedResponse),
		},
		{
			name:     "unenroll again",
			method:   http.MethodDelete,
			path:     "/courses/1/students/1",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Record not found"}),
		},
		{
			name:     "unassign teacher",
			method:   http.MethodDelete,
			path:     "/courses/1/teachers/1",
			wantCode: http.StatusAccepted,
			wantData: marchallObj(t, recordDeletedResponse),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path)
			deps.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.name == "assign teacher" {
				got, err := deps.schoolSvc.GetCourse(context.Background(), c.ID)
				require.NoError(t, err)
				require.Len(t, got.Teachers, 1)
				assert.Equal(t, tr.ID, got.Teachers[0].ID)
			}
			if tt.name == "enroll student" {
				got, err := deps.schoolSvc.GetCourse(context.Background(), c.ID)
				require.NoError(t, err)
				require.Len(t, got.Students, 1)
				assert.Equal(t, s.ID, got.Students[0].ID)
			}
		})
	}
}
