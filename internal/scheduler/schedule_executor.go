package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/messaging"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/repository"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/config"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/scheduling"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/log"
	"github.com/sirupsen/logrus"
)

const (
	TriggerCron   = "cron"
	TriggerManual = "manual"

	defaultMaxConcurrentSchedules = 3
)

// ScheduleRunner applies one schedule's action.
type ScheduleRunner interface {
	Execute(ctx context.Context, schedule *domain.Schedule) domain.ExecutionResult
}

type ScheduleExecutorConfig struct {
	CronSchedule           string
	MaxConcurrentSchedules int
	LeaseEnabled           bool
	LeaseTTL               time.Duration
	LogRetention           int
	SyncEnabled            bool
}

// RunSummary counts what one pass over the active schedules did.
type RunSummary struct {
	StartedAt   time.Time `json:"startedAt"`
	CompletedAt time.Time `json:"completedAt"`
	Evaluated   int       `json:"evaluated"`
	Matched     int       `json:"matched"`
	Executed    int       `json:"executed"`
	Succeeded   int       `json:"succeeded"`
	Skipped     int       `json:"skipped"`
	Failed      int       `json:"failed"`
}

// ScheduleExecutorService wakes on a cron expression and runs every active
// schedule whose window contains the current time.
type ScheduleExecutorService struct {
	scheduler    *gocron.Scheduler
	config       ScheduleExecutorConfig
	scheduleRepo repository.ScheduleRepository
	matcher      *scheduling.Matcher
	executor     ScheduleRunner
	publisher    messaging.EventPublisher
	now          func() time.Time
	newHolder    func() string

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *RunSummary
}

func NewScheduleExecutorService(
	scheduleRepo repository.ScheduleRepository,
	matcher *scheduling.Matcher,
	executor ScheduleRunner,
	publisher messaging.EventPublisher,
	appConfig *config.Config,
) *ScheduleExecutorService {
	executorConfig := ScheduleExecutorConfig{
		CronSchedule:           appConfig.ScheduleExecutor.CronSchedule,
		MaxConcurrentSchedules: appConfig.ScheduleExecutor.MaxConcurrentSchedules,
		LeaseEnabled:           appConfig.ScheduleExecutor.LeaseEnabled,
		LeaseTTL:               appConfig.ScheduleExecutor.LeaseTTL,
		LogRetention:           appConfig.ScheduleExecutor.LogRetention,
		SyncEnabled:            appConfig.ScheduleExecutor.Enabled,
	}
	if executorConfig.MaxConcurrentSchedules <= 0 {
		executorConfig.MaxConcurrentSchedules = defaultMaxConcurrentSchedules
	}
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  executorConfig.CronSchedule,
		"timezone":       matcher.Location().String(),
		"max_concurrent": executorConfig.MaxConcurrentSchedules,
		"lease_enabled":  executorConfig.LeaseEnabled,
		"lease_ttl":      executorConfig.LeaseTTL.String(),
		"log_retention":  executorConfig.LogRetention,
		"sync_enabled":   executorConfig.SyncEnabled,
	}).Info("Schedule executor configuration loaded")

	return &ScheduleExecutorService{
		scheduler:    gocron.NewScheduler(matcher.Location()),
		config:       executorConfig,
		scheduleRepo: scheduleRepo,
		matcher:      matcher,
		executor:     executor,
		publisher:    publisher,
		now:          time.Now,
		newHolder:    func() string { return uuid.New().String() },
	}
}

func (s *ScheduleExecutorService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Schedule executor disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Starting schedule executor")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllSchedules(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule executor job: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Stopping schedule executor")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllSchedules runs one pass unless a previous pass is still running.
func (s *ScheduleExecutorService) syncAllSchedules(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Schedule execution already running, skipping tick")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	summary, err := s.RunOnce(ctx, s.now())
	if err != nil {
		logrus.WithError(err).Error("Schedule execution pass failed")
		return
	}

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = summary.CompletedAt
	s.lastSummary = summary
	s.syncMutex.Unlock()
}

// RunOnce evaluates every active schedule at now and executes the matching
// ones concurrently. Only a failure to load the schedules fails the pass.
func (s *ScheduleExecutorService) RunOnce(ctx context.Context, now time.Time) (*RunSummary, error) {
	summary := &RunSummary{StartedAt: now}

	// a pass started outside an HTTP request gets its own correlation id
	ctx, _ = log.WithCorrelationID(ctx, log.CorrelationID(ctx))
	logger := log.FromContext(ctx)

	schedules, err := s.scheduleRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", scheduling.ErrFetchSchedules, err)
	}
	summary.Evaluated = len(schedules)

	due := make([]*domain.Schedule, 0, len(schedules))
	for _, schedule := range schedules {
		if !s.matcher.ShouldExecuteNow(schedule, now) {
			continue
		}
		summary.Matched++
		due = append(due, schedule)
	}

	logger.WithFields(logrus.Fields{
		"evaluated": summary.Evaluated,
		"due":       len(due),
		"local_now": now.In(s.matcher.Location()).Format(time.RFC3339),
	}).Info("Schedules evaluated")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		semaphore = make(chan struct{}, s.config.MaxConcurrentSchedules)
	)

	for _, schedule := range due {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(schedule *domain.Schedule) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			result, err := s.runSchedule(ctx, schedule, TriggerCron)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case errors.Is(err, scheduling.ErrScheduleBusy):
				summary.Skipped++
			case err != nil:
				summary.Failed++
				logger.WithFields(logrus.Fields{
					"schedule_id": schedule.ID,
					"error":       err,
				}).Error("Schedule execution could not be recorded")
			default:
				summary.Executed++
				if result.Success {
					summary.Succeeded++
				}
			}
		}(schedule)
	}

	wg.Wait()

	summary.CompletedAt = s.now()

	logger.WithFields(logrus.Fields{
		"matched":   summary.Matched,
		"executed":  summary.Executed,
		"succeeded": summary.Succeeded,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
		"duration":  summary.CompletedAt.Sub(summary.StartedAt).String(),
	}).Info("Schedule execution pass completed")

	return summary, nil
}

// runSchedule executes schedule and records exactly one log entry for it. An
// invalid schedule is recorded as a failed execution. It returns
// ErrScheduleBusy when another worker holds the schedule's lease.
func (s *ScheduleExecutorService) runSchedule(ctx context.Context, schedule *domain.Schedule, trigger string) (domain.ExecutionResult, error) {
	logger := log.FromContext(ctx).WithFields(logrus.Fields{
		"schedule_id": schedule.ID,
		"trigger":     trigger,
	})

	var holder string
	if s.config.LeaseEnabled {
		holder = s.newHolder()
		now := s.now()

		acquired, err := s.scheduleRepo.AcquireLease(ctx, schedule.ID, holder, now, now.Add(s.config.LeaseTTL))
		if err != nil {
			return domain.ExecutionResult{}, fmt.Errorf("failed to acquire lease: %w", err)
		}
		if !acquired {
			logger.Info("Schedule leased by another worker, skipping")
			return domain.ExecutionResult{}, scheduling.ErrScheduleBusy
		}
	}

	var result domain.ExecutionResult
	if err := schedule.Validate(); err != nil {
		logger.WithError(err).Warn("Schedule is invalid, recording failed execution")
		result = scheduling.FailedResult(fmt.Errorf("%w: %w", scheduling.ErrInvalidSchedule, err))
	} else {
		result = s.executor.Execute(ctx, schedule)
	}

	entry := result.LogEntry(schedule.ID, s.now())
	// recorded even when the pass was canceled mid-run
	if err := s.scheduleRepo.RecordExecution(context.WithoutCancel(ctx), &entry, s.config.LogRetention); err != nil {
		if holder != "" {
			if releaseErr := s.scheduleRepo.ReleaseLease(context.WithoutCancel(ctx), schedule.ID, holder); releaseErr != nil {
				logger.WithError(releaseErr).Warn("Failed to release lease")
			}
		}
		return result, fmt.Errorf("%w: %w", scheduling.ErrRecordExecution, err)
	}

	if err := s.publisher.Publish(ctx, messaging.NewScheduleExecutedEvent(schedule, entry, trigger)); err != nil {
		logger.WithError(err).Warn("Failed to publish execution event")
	}

	logger.WithFields(logrus.Fields{
		"success":  result.Success,
		"affected": len(result.AffectedAdGroupIDs),
	}).Info(result.Message)

	return result, nil
}

// ExecuteByID runs one schedule immediately, bypassing the time window and
// the re-execution guard.
func (s *ScheduleExecutorService) ExecuteByID(ctx context.Context, scheduleID string) (domain.ExecutionResult, error) {
	if scheduleID == "" {
		return domain.ExecutionResult{}, scheduling.NewScheduleError(scheduling.ErrScheduleIDRequired, apiErrors.ErrMissingRequiredData, "", "")
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return domain.ExecutionResult{}, scheduling.NewScheduleError(
			fmt.Errorf("%w: %w", scheduling.ErrFetchSchedules, err), apiErrors.ErrDatabaseOperation, scheduleID, "")
	}
	if schedule == nil {
		return domain.ExecutionResult{}, scheduling.NewScheduleError(scheduling.ErrScheduleNotFound, apiErrors.ErrScheduleNotFound, scheduleID, "")
	}

	result, err := s.runSchedule(ctx, schedule, TriggerManual)
	switch {
	case errors.Is(err, scheduling.ErrScheduleBusy):
		return domain.ExecutionResult{}, scheduling.NewScheduleError(err, apiErrors.ErrScheduleBusy, scheduleID, "")
	case err != nil:
		return result, scheduling.NewScheduleError(err, apiErrors.ErrDatabaseOperation, scheduleID, "")
	}

	return result, nil
}

func (s *ScheduleExecutorService) TriggerManualSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Schedule execution already running, ignoring manual trigger")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Starting manual schedule execution pass")
	go s.syncAllSchedules(context.WithoutCancel(ctx))
}

func (s *ScheduleExecutorService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	retention := "all entries kept"
	if s.config.LogRetention > 0 {
		retention = fmt.Sprintf("newest %d entries per schedule", s.config.LogRetention)
	}

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"timezone":               s.matcher.Location().String(),
		"max_concurrent":         s.config.MaxConcurrentSchedules,
		"lease_enabled":          s.config.LeaseEnabled,
		"retention_policy":       retention,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_summary":           s.lastSummary,
	}
}
