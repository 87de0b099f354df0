package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/school"
	"github.com/trezcool/darasa/storage/filestore"
)

type recordApi struct {
	svc   *school.Service
	files *filestore.Store
}

func registerRecordAPI(g *echo.Group, api recordApi) {
	ag := g.Group("/assignments")
	ag.GET("", api.queryAssignments)
	ag.POST("", api.createAssignment)
	ag.GET("/:id", api.retrieveAssignment)
	ag.PATCH("/:id", api.updateAssignment)
	ag.DELETE("/:id", api.destroyAssignment)

	sg := g.Group("/submitted-assignments")
	sg.GET("", api.querySubmissions)
	sg.POST("", api.createSubmission)
	sg.GET("/:id", api.retrieveSubmission)
	sg.PATCH("/:id", api.updateSubmission)
	sg.DELETE("/:id", api.destroySubmission)

	rg := g.Group("/report-cards")
	rg.GET("", api.queryReportCards)
	rg.POST("", api.createReportCard)
	rg.GET("/:id", api.retrieveReportCard)
	rg.PATCH("/:id", api.updateReportCard)
	rg.DELETE("/:id", api.destroyReportCard)
}

// Assignments

func (api *recordApi) queryAssignments(ctx echo.Context) error {
	assignments, err := api.svc.QueryAllAssignments(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if assignments == nil {
		assignments = []school.Assignment{}
	}
	return ctx.JSON(http.StatusOK, assignments)
}

// createAssignment accepts multipart form data; the assignment_file part is
// stored and its sanitized name kept on the record.
func (api *recordApi) createAssignment(ctx echo.Context) error {
	var data school.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if name, ok, err := saveFormFile(ctx, "assignment_file", api.files); err != nil {
		return err
	} else if ok {
		data.File = name
	}

	a, err := api.svc.CreateAssignment(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *recordApi) retrieveAssignment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	a, err := api.svc.GetAssignment(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding assignment by ID")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *recordApi) updateAssignment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data school.UpdateAssignment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	a, err := api.svc.UpdateAssignment(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusAccepted, a)
}

func (api *recordApi) destroyAssignment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteAssignment(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.JSON(http.StatusAccepted, recordDeletedResponse)
}

// Submitted assignments

func (api *recordApi) querySubmissions(ctx echo.Context) error {
	submissions, err := api.svc.QueryAllSubmissions(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying submitted assignments")
	}
	return ctx.JSON(http.StatusOK, school.ProjectSubmissions(submissions))
}

func (api *recordApi) createSubmission(ctx echo.Context) error {
	var data school.NewSubmission
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubmission")
	}
	sa, err := api.svc.CreateSubmission(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating submitted assignment")
	}
	return ctx.JSON(http.StatusCreated, school.ProjectSubmission(sa))
}

func (api *recordApi) retrieveSubmission(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	sa, err := api.svc.GetSubmission(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding submitted assignment by ID")
	}
	return ctx.JSON(http.StatusOK, school.ProjectSubmission(sa))
}

func (api *recordApi) updateSubmission(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data school.UpdateSubmission
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSubmission")
	}
	sa, err := api.svc.UpdateSubmission(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating submitted assignment")
	}
	return ctx.JSON(http.StatusAccepted, school.ProjectSubmission(sa))
}

func (api *recordApi) destroySubmission(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteSubmission(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting submitted assignment")
	}
	return ctx.JSON(http.StatusAccepted, recordDeletedResponse)
}

// Report cards

func (api *recordApi) queryReportCards(ctx echo.Context) error {
	reportCards, err := api.svc.QueryAllReportCards(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying report cards")
	}
	return ctx.JSON(http.StatusOK, school.ProjectReportCards(reportCards))
}

func (api *recordApi) createReportCard(ctx echo.Context) error {
	var data school.NewReportCard
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReportCard")
	}
	rc, err := api.svc.CreateReportCard(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating report card")
	}
	return ctx.JSON(http.StatusCreated, school.ProjectReportCard(rc))
}

func (api *recordApi) retrieveReportCard(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	rc, err := api.svc.GetReportCard(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding report card by ID")
	}
	return ctx.JSON(http.StatusOK, school.ProjectReportCard(rc))
}

func (api *recordApi) updateReportCard(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data school.UpdateReportCard
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateReportCard")
	}
	rc, err := api.svc.UpdateReportCard(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating report card")
	}
	return ctx.JSON(http.StatusAccepted, school.ProjectReportCard(rc))
}

func (api *recordApi) destroyReportCard(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteReportCard(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting report card")
	}
	return ctx.JSON(http.StatusAccepted, recordDeletedResponse)
}
