package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/darasahub/darasa/apps/api/echo"
	"github.com/darasahub/darasa/core"
	"github.com/darasahub/darasa/core/certificate"
	"github.com/darasahub/darasa/core/course"
	"github.com/darasahub/darasa/core/tenant"
	"github.com/darasahub/darasa/core/user"
	emailsvc "github.com/darasahub/darasa/services/email"
	logsvc "github.com/darasahub/darasa/services/logger"
	metricsvc "github.com/darasahub/darasa/services/metrics"
	inmemdb "github.com/darasahub/darasa/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("failed to close database", err)
		}
	}()
	if err = inmemdb.Seed(db); err != nil {
		logger.Fatal(fmt.Sprintf("seeding database: %v", err), err)
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(logger, conf)
	}

	tenantRepo := inmemdb.NewTenantRepository(db)
	registry, err := tenant.NewRegistry(tenantRepo)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading organization registry: %v", err), err)
	}
	resolver := tenant.NewResolver(registry)

	orgSvc := tenant.NewService(tenantRepo, registry)
	usrSvc := user.NewService(inmemdb.NewUserRepository(db), mailSvc, conf)
	courseSvc := course.NewService(inmemdb.NewCourseRepository(db))
	certSvc := certificate.NewService(inmemdb.NewCertificateRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	tenant.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	user.LoadCommonPasswords(logger, conf.WorkDir)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.
	// /metrics    - Prometheus scrape endpoint.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	http.Handle("/metrics", metricsvc.Handler())

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddr, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			Registry:   registry,
			Resolver:   resolver,
			OrgSvc:     orgSvc,
			UserSvc:    usrSvc,
			CourseSvc:  courseSvc,
			CertSvc:    certSvc,
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
