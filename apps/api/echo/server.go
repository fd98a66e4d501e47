package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/darasahub/darasa/core"
	"github.com/darasahub/darasa/core/certificate"
	"github.com/darasahub/darasa/core/course"
	"github.com/darasahub/darasa/core/tenant"
	"github.com/darasahub/darasa/core/user"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		Registry       *tenant.Registry
		Resolver       *tenant.Resolver
		OrgSvc         tenant.ServiceInterface
		UserSvc        user.ServiceInterface
		CourseSvc      course.ServiceInterface
		CertSvc        certificate.ServiceInterface
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps       ServerDeps
		app        *echo.Echo
		errCh      chan error
		shutdownCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:       deps,
		app:        echo.New(),
		errCh:      make(chan error, 1),
		shutdownCh: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf
	initAuth(conf)

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	session := sessionMiddleware(s.deps.UserSvc, conf.Server.SessionRestoreTimeout)
	rateLimit := rateLimitMiddleware(conf.Server.LoginRateLimit, conf.Server.LoginRateBurst)

	// retired URL scheme: answered with permanent redirects, never served
	legacy := legacyRedirect(s.deps.Resolver)
	s.app.GET("/portal", legacy)
	s.app.GET("/portal/:id", legacy)
	s.app.GET("/portal/:id/*", legacy)

	registerPages(s.app, s.deps, session, rateLimit)

	v1 := s.app.Group("/v1", session)
	jwt := loginRequiredMiddleware

	registerUserAPI(v1, jwt, rateLimit, s.deps.UserSvc, s.deps.Registry, s.deps.Validate, s.deps.Translator)
	registerCourseAPI(v1, jwt, s.deps.CourseSvc, s.deps.UserSvc, s.deps.Validate)
	registerCertificateAPI(v1, jwt, s.deps.CertSvc, s.deps.UserSvc)
	registerOrgAPI(v1, jwt, s.deps.OrgSvc, s.deps.Validate)
}

func (s *server) Start() {
	signal.Notify(s.shutdownCh, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.deps.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errCh <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errCh
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownCh
}

// signalShutdown lets the error handler trigger a graceful stop on fatal errors.
func (s *server) signalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
