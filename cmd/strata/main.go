package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/strataapp/strata/internal/cli"
	"github.com/strataapp/strata/internal/clock"
	"github.com/strataapp/strata/internal/config"
	"github.com/strataapp/strata/internal/consumer"
	"github.com/strataapp/strata/internal/db"
	"github.com/strataapp/strata/internal/event"
	"github.com/strataapp/strata/internal/repository"
	"github.com/strataapp/strata/internal/scheduler"
	"github.com/strataapp/strata/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config file: env var or default ~/.strata/strata.yml.
	cfgPath := os.Getenv("STRATA_CONFIG")
	if cfgPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		cfgPath = filepath.Join(home, ".strata", "strata.yml")
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if dbPath := os.Getenv("STRATA_DB"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	ownerRepo := repository.NewSQLiteOwnerRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	dailyPlanRepo := repository.NewSQLiteDailyPlanRepo(database)
	weeklyPlanRepo := repository.NewSQLiteWeeklyPlanRepo(database)
	goalRepo := repository.NewSQLiteGoalRepo(database)
	keyResultRepo := repository.NewSQLiteKeyResultRepo(database)
	streakRepo := repository.NewSQLiteStreakRepo(database)
	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)
	auditRepo := repository.NewSQLiteAuditRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)
	clk := clock.SystemClock{}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Wire the dispatcher and derived-state consumers
	dispatcher := event.NewDispatcher(logger)
	dispatcher.Register(
		consumer.NewStreakConsumer(uow, clk),
		consumer.NewSnapshotConsumer(uow, clk),
		consumer.NewAuditConsumer(uow, clk),
	)

	// Use-case logging: on when requested, or when stderr is not a terminal
	// (running under a service manager that captures logs).
	var observers []service.UseCaseObserver
	interactive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if os.Getenv("STRATA_VERBOSE") != "" || !interactive {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Wire services
	dayCloseSvc := service.NewDayCloseService(dailyPlanRepo, uow, dispatcher, clk, observers...)
	planSvc := service.NewPlanService(dailyPlanRepo, weeklyPlanRepo, ownerRepo, uow, dispatcher, clk, observers...)

	app := &cli.App{
		Owners:   service.NewOwnerService(ownerRepo, dispatcher, clk),
		Tasks:    service.NewTaskService(taskRepo, dailyPlanRepo, uow, dispatcher, clk, observers...),
		Plans:    planSvc,
		DayClose: dayCloseSvc,
		Goals:    service.NewGoalService(goalRepo, keyResultRepo, clk),
		Review:   service.NewReviewService(streakRepo, snapshotRepo, auditRepo),
		Sweeper:  scheduler.NewSweeper(ownerRepo, dayCloseSvc, planSvc, clk, logger, cfg.SweepInterval),
		Clock:    clk,
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
