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
	"github.com/jmoiron/sqlx"

	echoapi "github.com/karames/unilog/apps/api/echo"
	"github.com/karames/unilog/core"
	"github.com/karames/unilog/core/student"
	"github.com/karames/unilog/core/teacher"
	emailsvc "github.com/karames/unilog/services/email"
	logsvc "github.com/karames/unilog/services/logger"
	"github.com/karames/unilog/storage/database"
	inmemdb "github.com/karames/unilog/storage/database/inmem"
	"github.com/karames/unilog/storage/database/seed"
	sqlxrepos "github.com/karames/unilog/storage/database/sqlx"
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

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	studentRepo, teacherRepo, closeDB, err := setUpStorage(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	defer closeDB()

	studentSvc := student.NewService(studentRepo, mailSvc)
	teacherSvc := teacher.NewService(teacherRepo)

	if conf.Storage == "inmem" {
		if err := seed.Load(context.Background(), studentSvc, teacherSvc); err != nil {
			logger.Fatal(fmt.Sprintf("seeding demo data: %v", err), err)
		}
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		StudentSvc: studentSvc,
		TeacherSvc: teacherSvc,
		Validate:   validate,
		Translator: translator,
	})

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpStorage(conf *core.Config) (student.Repository, teacher.Repository, func(), error) {
	if conf.Storage == "postgres" {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, nil, nil, err
		}
		db, err := database.Open(conf)
		if err != nil {
			return nil, nil, nil, err
		}
		if err = database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		dbx := sqlx.NewDb(db, conf.Database.Engine)
		return sqlxrepos.NewStudentRepository(dbx), sqlxrepos.NewTeacherRepository(dbx), func() { _ = dbx.Close() }, nil
	}

	db, err := inmemdb.Open()
	if err != nil {
		return nil, nil, nil, err
	}
	return inmemdb.NewStudentRepository(db), inmemdb.NewTeacherRepository(db), func() {}, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
