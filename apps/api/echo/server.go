package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/AxelGHMM/CACE/core"
	"github.com/AxelGHMM/CACE/core/assignment"
	"github.com/AxelGHMM/CACE/core/attendance"
	"github.com/AxelGHMM/CACE/core/grade"
	"github.com/AxelGHMM/CACE/core/group"
	"github.com/AxelGHMM/CACE/core/roster"
	"github.com/AxelGHMM/CACE/core/stats"
	"github.com/AxelGHMM/CACE/core/student"
	"github.com/AxelGHMM/CACE/core/subject"
	"github.com/AxelGHMM/CACE/core/user"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Conf     *core.Config
		Logger   core.Logger
		Shutdown chan<- os.Signal // receives SIGTERM on fatal server errors

		UserSvc       user.ServiceInterface
		GroupSvc      *group.Service
		SubjectSvc    *subject.Service
		AssignmentSvc *assignment.Service
		StudentSvc    *student.Service
		AttendanceSvc *attendance.Service
		GradeSvc      *grade.Service
		RosterSvc     *roster.Service
		StatsSvc      *stats.Service
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts       *Options
		app        *echo.Echo
		jwtConfig  middleware.JWTConfig
		validate   *validator.Validate
		translator ut.Translator
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	attendance.InitValidators(validate, translator)

	s := &server{
		opts:       opts,
		app:        echo.New(),
		jwtConfig:  newJWTConfig(opts.Conf),
		validate:   validate,
		translator: translator,
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.opts.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(conf, s.opts.Logger, s.translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(s.jwtConfig)

	registerUserAPI(api, jwt, s)
	registerGroupAPI(api, jwt, s)
	registerSubjectAPI(api, jwt, s)
	registerAssignmentAPI(api, jwt, s)
	registerStudentAPI(api, jwt, s)
	registerAttendanceAPI(api, jwt, s)
	registerGradeAPI(api, jwt, s)
	registerRosterAPI(api, jwt, s)
	registerAdminAPI(api, jwt, s)
}

// signalShutdown lets the error handler request a graceful stop.
func (s *server) signalShutdown() {
	if s.opts.Shutdown != nil {
		s.opts.Shutdown <- syscall.SIGTERM
	}
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Addr)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Bienvenido a la API de CACE")
}
