package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/school"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/storage/filestore"
)

type (
	Options struct {
		Address        string
		AppName        string
		Debug          bool
		TestMode       bool
		DisableReqLogs bool
		CookieName     string

		UserSvc   *user.Service
		SchoolSvc *school.Service
		Sessions  SessionStore
		Images    *filestore.Store
		Files     *filestore.Store

		Logger         core.Logger
		SignalShutdown func()
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.opts.Debug || s.opts.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.SignalShutdown)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", s.home)

	g := s.app.Group("")
	sessionMW := newSessionMiddleware(s.opts.UserSvc, s.opts.Sessions, s.opts.CookieName)

	registerAuthAPI(g, sessionMW, authApi{
		users:      s.opts.UserSvc,
		school:     s.opts.SchoolSvc,
		sessions:   s.opts.Sessions,
		cookieName: s.opts.CookieName,
	})
	registerUserAPI(g, userApi{users: s.opts.UserSvc})
	registerProfileAPI(g, profileApi{svc: s.opts.SchoolSvc, images: s.opts.Images})
	registerCourseAPI(g, courseApi{svc: s.opts.SchoolSvc})
	registerRecordAPI(g, recordApi{svc: s.opts.SchoolSvc, files: s.opts.Files})
	registerEventAPI(g, eventApi{svc: s.opts.SchoolSvc})
	registerCommentAPI(g, commentApi{svc: s.opts.SchoolSvc})
	registerFileAPI(g, sessionMW, fileApi{svc: s.opts.SchoolSvc, images: s.opts.Images, files: s.opts.Files})
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.opts.AppName+" API!")
}

type successResponse struct {
	Success string `json:"success"`
}

var recordDeletedResponse = successResponse{Success: "Record successfully deleted"}
