package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/AxelGHMM/CACE/apps/api/echo"
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
	emailsvc "github.com/AxelGHMM/CACE/services/email"
	logsvc "github.com/AxelGHMM/CACE/services/logger"
	"github.com/AxelGHMM/CACE/storage/database"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.RollbarToken != "" {
		rollbar := logsvc.NewRollbarLogger(std, conf)
		rollbar.Enable(!conf.Debug)
		logger = rollbar
	} else {
		logger = logsvc.NewConsoleLogger(std)
	}

	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("closing database", err)
		}
	}()

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	usrSvc := user.NewService(conf, database.NewUserRepository(db), mailSvc)
	groupSvc := group.NewService(database.NewGroupRepository(db))
	subjectSvc := subject.NewService(database.NewSubjectRepository(db))
	assignmentSvc := assignment.NewService(database.NewAssignmentRepository(db))
	studentSvc := student.NewService(database.NewStudentRepository(db))
	attendanceSvc := attendance.NewService(database.NewAttendanceRepository(db))
	gradeSvc := grade.NewService(database.NewGradeRepository(db))
	rosterSvc := roster.NewService(studentSvc, gradeSvc, logger)
	statsSvc := stats.NewService(database.NewStatsRepository(db))

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(&echoapi.Options{
		Addr:     conf.Server.Address(),
		Conf:     conf,
		Logger:   logger,
		Shutdown: shutdown,

		UserSvc:       usrSvc,
		GroupSvc:      groupSvc,
		SubjectSvc:    subjectSvc,
		AssignmentSvc: assignmentSvc,
		StudentSvc:    studentSvc,
		AttendanceSvc: attendanceSvc,
		GradeSvc:      gradeSvc,
		RosterSvc:     rosterSvc,
		StatsSvc:      statsSvc,
	})

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal(fmt.Sprintf("server error: %v", err), err)
		}

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Stop(ctx); err != nil {
			logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
