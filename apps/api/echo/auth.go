package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/school"
	"github.com/trezcool/darasa/core/user"
)

const ctxUserKey = "user"

type authApi struct {
	users      *user.Service
	school     *school.Service
	sessions   SessionStore
	cookieName string
}

func registerAuthAPI(g *echo.Group, sessionMW echo.MiddlewareFunc, api authApi) {
	g.POST("/login", api.login)
	g.GET("/checksession", api.checkSession, sessionMW)
	g.DELETE("/logout", api.logout)
}

// newSessionMiddleware resolves the session cookie into the authenticated
// identity on every request; requests without a live session fail with 401.
func newSessionMiddleware(users *user.Service, sessions SessionStore, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			cookie, err := ctx.Cookie(cookieName)
			if err != nil {
				return errPleaseLogin
			}
			email, err := sessions.Get(ctx.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Cause(err) == errSessionNotFound {
					return errPleaseLogin
				}
				return errors.Wrap(err, "resolving session")
			}
			usr, err := users.GetByEmail(ctx.Request().Context(), email)
			if err != nil {
				if errors.Cause(err) == user.ErrNotFound {
					return errPleaseLogin
				}
				return errors.Wrap(err, "resolving session user")
			}
			ctx.Set(ctxUserKey, usr)
			return next(ctx)
		}
	}
}

func getContextUser(ctx echo.Context) (user.User, error) {
	usr, ok := ctx.Get(ctxUserKey).(user.User)
	if !ok {
		return user.User{}, errors.Wrap(errUsrNotFoundInCtx, "retrieving session user from context")
	}
	return usr, nil
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (lr *loginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}

func (api *authApi) login(ctx echo.Context) error {
	var data loginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to loginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.users.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		switch errors.Cause(err) {
		case user.ErrNotFound:
			return errUserDoesNotExist
		case user.ErrInvalidCredentials:
			return errInvalidCredentials
		}
		return errors.Wrap(err, "authenticating")
	}

	token, err := api.sessions.Create(ctx.Request().Context(), usr.Email)
	if err != nil {
		return errors.Wrap(err, "creating session")
	}
	ctx.SetCookie(&http.Cookie{
		Name:     api.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})

	account, err := api.school.Account(ctx.Request().Context(), usr)
	if err != nil {
		return errors.Wrap(err, "resolving account")
	}
	return ctx.JSON(http.StatusOK, account)
}

func (api *authApi) checkSession(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	account, err := api.school.Account(ctx.Request().Context(), usr)
	if err != nil {
		return errors.Wrap(err, "resolving account")
	}
	return ctx.JSON(http.StatusOK, account)
}

func (api *authApi) logout(ctx echo.Context) error {
	cookie, err := ctx.Cookie(api.cookieName)
	if err != nil {
		return errLogoutNotAllowed
	}
	if err = api.sessions.Delete(ctx.Request().Context(), cookie.Value); err != nil {
		if errors.Cause(err) == errSessionNotFound {
			return errLogoutNotAllowed
		}
		return errors.Wrap(err, "deleting session")
	}
	ctx.SetCookie(&http.Cookie{
		Name:     api.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return ctx.JSON(http.StatusOK, successResponse{Success: "You have been logged out successfully"})
}
