package cli

import (
	"context"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/database/postgres"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro/allegroclient"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/messaging"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/repository"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/config"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/scheduler"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/credentials"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/scheduling"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ScheduleRunner runs passes and single schedules.
type ScheduleRunner interface {
	RunOnce(ctx context.Context, now time.Time) (*scheduler.RunSummary, error)
	ExecuteByID(ctx context.Context, scheduleID string) (domain.ExecutionResult, error)
}

// Deps is what the commands operate on.
type Deps struct {
	Config    *config.Config
	Conn      postgres.Conn
	Runner    ScheduleRunner
	Schedules scheduling.ScheduleService
	Tokens    credentials.TokenManager
	closers   []io.Closer
}

func (d *Deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		_ = d.closers[i].Close()
	}
}

// NewDeps wires the same components the API process uses.
func NewDeps() (*Deps, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	conn, err := postgres.NewConnection(context.Background(), cfg.Database)
	if err != nil {
		return nil, err
	}

	scheduleRepo := repository.NewScheduleRepository(conn)
	credentialRepo := repository.NewCredentialRepository(conn)

	allegroIntegrator := allegro.New(cfg, allegroclient.NewClient(cfg))
	tokenManager := credentials.NewManager(credentialRepo, allegroclient.NewTokenRefresher(cfg))

	matcher := scheduling.NewMatcher(cfg.ScheduleExecutor.Location())
	executor := scheduling.NewExecutor(tokenManager, allegroIntegrator, scheduling.ExecutorOptions{
		BatchSize:  cfg.ScheduleExecutor.BatchSize,
		BatchDelay: cfg.ScheduleExecutor.BatchDelay,
	})

	publisher := messaging.NewPublisher(cfg)

	return &Deps{
		Config:    cfg,
		Conn:      conn,
		Runner:    scheduler.NewScheduleExecutorService(scheduleRepo, matcher, executor, publisher, cfg),
		Schedules: scheduling.NewService(scheduleRepo, matcher),
		Tokens:    tokenManager,
		closers:   []io.Closer{conn, publisher},
	}, nil
}

func writeOutput(w io.Writer, format string, value any, text func(io.Writer)) error {
	if format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	}
	text(w)
	return nil
}
