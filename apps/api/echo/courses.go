package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/school"
)

type courseApi struct {
	svc *school.Service
}

func registerCourseAPI(g *echo.Group, api courseApi) {
	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.GET("/:id", api.retrieve)
	cg.PATCH("/:id", api.update)
	cg.DELETE("/:id", api.destroy)

	// roster management
	cg.POST("/:id/teachers/:teacherID", api.assignTeacher)
	cg.DELETE("/:id/teachers/:teacherID", api.unassignTeacher)
	cg.POST("/:id/students/:studentID", api.enrollStudent)
	cg.DELETE("/:id/students/:studentID", api.unenrollStudent)

	og := g.Group("/contents")
	og.GET("", api.queryContents)
	og.POST("", api.createContent)
	og.GET("/:id", api.retrieveContent)
	og.PATCH("/:id", api.updateContent)
	og.DELETE("/:id", api.destroyContent)

	sg := g.Group("/saved_contents")
	sg.GET("", api.querySavedContents)
	sg.POST("", api.createSavedContent)
	sg.DELETE("/:id", api.destroySavedContent)
}

// Courses

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.QueryAllCourses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, school.ProjectCourses(courses))
}

func (api *courseApi) create(ctx echo.Context) error {
	var data school.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	c, err := api.svc.CreateCourse(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, school.ProjectCourse(c))
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	c, err := api.svc.GetCourse(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding course by ID")
	}
	return ctx.JSON(http.StatusOK, school.ProjectCourse(c))
}

func (api *courseApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data school.UpdateCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	c, err := api.svc.UpdateCourse(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusAccepted, school.ProjectCourse(c))
}

func (api *courseApi) destroy(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteCourse(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.JSON(http.StatusAccepted, recordDeletedResponse)
}

func (api *courseApi) assignTeacher(ctx echo.Context) error {
	courseID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	teacherID, err := intParam(ctx, "teacherID")
	if err != nil {
		return err
	}
	if err = api.svc.AssignTeacher(ctx.Request().Context(), courseID, teacherID); err != nil {
		return errors.Wrap(err, "assigning teacher to course")
	}
	return ctx.JSON(http.StatusCreated, successResponse{Success: "Teacher assigned to course"})
}

func (api *courseApi) unassignTeacher(ctx echo.Context) error {
	courseID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	teacherID, err := intParam(ctx, "teacherID")
	if err != nil {
		return err
	}
	if err = api.svc.UnassignTeacher(ctx.Request().Context(), courseID, teacherID); err != nil {
		return errors.Wrap(err, "unassigning teacher from course")
	}
	return ctx.JSON(http.StatusAccepted, recordDeletedResponse)
}

func (api *courseApi) enrollStudent(ctx echo.Context) error {
	courseID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	studentID, err := intParam(ctx, "studentID")
	if err != nil {
		return err
	}
	if err = api.svc.EnrollStudent(ctx.Request().Context(), courseID, studentID); err != nil {
		return errors.Wrap(err, "enrolling student in course")
	}
	return ctx.JSON(http.StatusCreated, successResponse{Success: "Student enrolled in course"})
}

func (api *courseApi) unenrollStudent(ctx echo.Context) error {
	courseID, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	studentID, err := intParam(ctx, "studentID")
	if err != nil {
		return err
	}
	if err = api.svc.UnenrollStudent(ctx.Request().Context(), courseID, studentID); err != nil {
		return errors.Wrap(err, "unenrolling student from course")
	}
	return ctx.JSON(http.StatusAccepted, recordDeletedResponse)
}

// Contents

func (api *courseApi) queryContents(ctx echo.Context) error {
	contents, err := api.svc.QueryAllContents(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying contents")
	}
	return ctx.JSON(http.StatusOK, school.ProjectContents(contents))
}

func (api *courseApi) createContent(ctx echo.Context) error {
	var data school.NewContent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewContent")
	}
	c, err := api.svc.CreateContent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating content")
	}
	return ctx.JSON(http.StatusCreated, school.ProjectContent(c))
}

func (api *courseApi) retrieveContent(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	c, err := api.svc.GetContent(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding content by ID")
	}
	return ctx.JSON(http.StatusOK, school.ProjectContent(c))
}

func (api *courseApi) updateContent(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data school.UpdateContent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateContent")
	}
	c, err := api.svc.UpdateContent(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating content")
	}
	return ctx.JSON(http.StatusAccepted, school.ProjectContent(c))
}

func (api *courseApi) destroyContent(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteContent(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting content")
	}
	return ctx.JSON(http.StatusAccepted, recordDeletedResponse)
}

// Saved contents

func (api *courseApi) querySavedContents(ctx echo.Context) error {
	saved, err := api.svc.QueryAllSavedContents(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying saved contents")
	}
	return ctx.JSON(http.StatusOK, school.ProjectSavedContents(saved))
}

func (api *courseApi) createSavedContent(ctx echo.Context) error {
	var data school.NewSavedContent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSavedContent")
	}
	sc, err := api.svc.CreateSavedContent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating saved content")
	}
	return ctx.JSON(http.StatusCreated, school.ProjectSavedContent(sc))
}

func (api *courseApi) destroySavedContent(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteSavedContent(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting saved content")
	}
	return ctx.JSON(http.StatusAccepted, recordDeletedResponse)
}
