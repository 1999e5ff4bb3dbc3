package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/api/handler"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/api/handler/router"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/config"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/account"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/authenticating"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/scheduling"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/middleware"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Services groups everything the HTTP handlers depend on.
type Services struct {
	Database        handler.Pinger
	Authenticator   authenticating.Authenticator
	Accounts        account.AccountService
	Schedules       scheduling.ScheduleService
	ScheduleTrigger handler.ScheduleTrigger
	CronJobs        handler.CronJobServices
}

func New(config *config.Config, services Services) (*Server, error) {
	if services.Authenticator == nil {
		return nil, fmt.Errorf("authenticator is required")
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.Database)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Schedules(services.ScheduleTrigger, services.Schedules)...),
		router.WithRoutes(handler.Ads(services.Accounts)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LoggingMiddleware(config.App.Development()),
		middleware.LogPanicMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Run serves until SIGINT, SIGTERM or ctx cancellation, then shuts down gracefully.
func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Server stopped unexpectedly")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Interrupt signal received")
	case <-ctx.Done():
		logrus.Info("Application context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Starting graceful shutdown")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Error during server shutdown")
		return err
	}

	logrus.Info("Server shut down")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
