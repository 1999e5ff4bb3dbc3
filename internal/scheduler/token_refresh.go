package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/config"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/credentials"
	"github.com/sirupsen/logrus"
)

type TokenRefreshConfig struct {
	CronSchedule string
	Threshold    time.Duration
	SyncEnabled  bool
}

// TokenRefreshService periodically refreshes the access tokens that are
// about to expire, so schedule runs rarely pay for a refresh.
type TokenRefreshService struct {
	scheduler    *gocron.Scheduler
	config       TokenRefreshConfig
	tokenManager credentials.TokenManager

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *domain.TokenRefreshSummary
}

func NewTokenRefreshService(tokenManager credentials.TokenManager, appConfig *config.Config) *TokenRefreshService {
	refreshConfig := TokenRefreshConfig{
		CronSchedule: appConfig.TokenRefresh.CronSchedule,
		Threshold:    appConfig.TokenRefresh.Threshold,
		SyncEnabled:  appConfig.TokenRefresh.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"threshold":     refreshConfig.Threshold.String(),
		"sync_enabled":  refreshConfig.SyncEnabled,
	}).Info("Token refresh configuration loaded")

	return &TokenRefreshService{
		scheduler:    gocron.NewScheduler(time.UTC),
		config:       refreshConfig,
		tokenManager: tokenManager,
	}
}

func (s *TokenRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Token refresh disabled by configuration")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshExpiringTokens(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule token refresh job: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping token refresh scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *TokenRefreshService) refreshExpiringTokens(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Token refresh already running, skipping tick")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	summary, err := s.tokenManager.RefreshExpiring(ctx, s.config.Threshold)
	if err != nil {
		logrus.WithError(err).Error("Token refresh sweep failed")
		return
	}

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.lastSummary = summary
	s.syncMutex.Unlock()
}

func (s *TokenRefreshService) TriggerManualSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Token refresh already running, ignoring manual trigger")
		return
	}
	s.syncMutex.Unlock()

	go s.refreshExpiringTokens(context.WithoutCancel(ctx))
}

func (s *TokenRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"threshold":              s.config.Threshold.String(),
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_summary":           s.lastSummary,
	}
}
