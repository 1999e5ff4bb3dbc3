package main

import (
	"context"
	"time"
	_ "time/tzdata"

	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/database/postgres"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro/allegroclient"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/messaging"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/repository"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/api"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/api/handler"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/config"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/scheduler"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/account"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/authenticating"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/credentials"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/scheduling"
	"github.com/sirupsen/logrus"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Invalid log level %q, using 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Log level set to %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	scheduleRepo := repository.NewScheduleRepository(pgConn)
	credentialRepo := repository.NewCredentialRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	allegroClient := allegroclient.NewClient(cfg)
	allegroIntegrator := allegro.New(cfg, allegroClient)

	tokenManager := credentials.NewManager(credentialRepo, allegroclient.NewTokenRefresher(cfg))
	accountService := account.NewService(tokenManager, allegroIntegrator)

	matcher := scheduling.NewMatcher(cfg.ScheduleExecutor.Location())
	executor := scheduling.NewExecutor(tokenManager, allegroIntegrator, scheduling.ExecutorOptions{
		BatchSize:  cfg.ScheduleExecutor.BatchSize,
		BatchDelay: cfg.ScheduleExecutor.BatchDelay,
	})
	scheduleService := scheduling.NewService(scheduleRepo, matcher)

	publisher := messaging.NewPublisher(cfg)
	defer publisher.Close()

	scheduleExecutorService := scheduler.NewScheduleExecutorService(scheduleRepo, matcher, executor, publisher, cfg)
	tokenRefreshService := scheduler.NewTokenRefreshService(tokenManager, cfg)

	if err := scheduleExecutorService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Failed to start the schedule executor")
	} else {
		logrus.Info("Schedule executor started")
	}

	if err := tokenRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Failed to start the token refresh scheduler")
	} else {
		logrus.Info("Token refresh scheduler started")
	}

	server, err := api.New(cfg, api.Services{
		Database:        pgConn,
		Authenticator:   authenticator,
		Accounts:        accountService,
		Schedules:       scheduleService,
		ScheduleTrigger: scheduleExecutorService,
		CronJobs: handler.CronJobServices{
			ScheduleExecutor: scheduleExecutorService,
			TokenRefresh:     tokenRefreshService,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to PostgreSQL")
	}

	logrus.Info("PostgreSQL connection established")
	return conn
}
