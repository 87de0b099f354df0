package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/school"
)

func createCourse(t *testing.T, deps testDeps, name string) school.Course {
	c, err := deps.schoolSvc.CreateCourse(context.Background(), school.NewCourse{
		Name:        name,
		Description: "All about " + name,
		DaysOfWeek:  "1,3",
		StartRecur:  "2026-01-05",
		EndRecur:    "2026-06-26",
		StartTime:   "09:00",
		EndTime:     "10:30",
	})
	if err != nil {
		t.Fatalf("createCourse() failed: %v", err)
	}
	return c
}

func Test_eventApi(t *testing.T) {
	deps := initApp(t)
	c := createCourse(t, deps, "Computer Networks")

	// create derives the title from the linked course
	req, rec := newRequest(http.MethodPost, "/events", marchallObj(t, school.NewEvent{
		Start:    "2026-02-10",
		End:      "2026-02-10",
		CourseID: &c.ID,
	}))
	deps.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var ev school.Event
	decodeJSON(t, rec, &ev)
	assert.Equal(t, "Computer Networks", ev.Title)

	// updates and deletes answer 200, unlike other records
	req, rec = newRequest(http.MethodPatch, "/events/1", []byte(`{"title": "Networks CAT 1"}`))
	deps.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeJSON(t, rec, &ev)
	assert.Equal(t, "Networks CAT 1", ev.Title)

	req, rec = newRequest(http.MethodDelete, "/events/1")
	deps.server.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, recordDeletedResponse)}, rec)

	req, rec = newRequest(http.MethodGet, "/events/1")
	deps.server.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "Record not found"})}, rec)
}
