package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/school"
	"github.com/trezcool/darasa/core/user"
)

type userApi struct {
	users *user.Service
}

func registerUserAPI(g *echo.Group, api userApi) {
	g.GET("/users", api.query)
}

func (api *userApi) query(ctx echo.Context) error {
	users, err := api.users.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	return ctx.JSON(http.StatusOK, school.ProjectUsers(users))
}
