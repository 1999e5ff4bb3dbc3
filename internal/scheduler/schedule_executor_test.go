package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	messagingmocks "github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/messaging/mocks"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/repository/mocks"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/config"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/scheduling"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/log"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Monday 2025-03-03 10:00 in UTC.
var mondayMorning = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

type fakeRunner struct {
	mu      sync.Mutex
	results map[string]domain.ExecutionResult
	calls   []string
}

func (f *fakeRunner) Execute(_ context.Context, schedule *domain.Schedule) domain.ExecutionResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, schedule.ID)
	return f.results[schedule.ID]
}

func (f *fakeRunner) executed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...)
}

func activeSchedule(id string, days ...int) *domain.Schedule {
	return &domain.Schedule{
		ID:          id,
		AccountID:   "acc-1",
		AdsClientID: "client-1",
		Active:      true,
		TimeMode:    domain.TimeModeAllDay,
		DaysOfWeek:  days,
		Action:      domain.NewSetStatusAction(domain.AdGroupStatusPaused),
		AdGroupIDs:  []string{},
	}
}

func updated(n int) domain.ExecutionResult {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = "ag"
	}
	return domain.ExecutionResult{Success: true, Message: "Updated", AffectedAdGroupIDs: ids}
}

type serviceFixture struct {
	repo      *mocks.MockScheduleRepository
	publisher *messagingmocks.MockEventPublisher
	runner    *fakeRunner
	service   *ScheduleExecutorService
}

func newServiceFixture(t *testing.T, executorConfig config.ScheduleExecutor) *serviceFixture {
	ctrl := gomock.NewController(t)

	f := &serviceFixture{
		repo:      mocks.NewMockScheduleRepository(ctrl),
		publisher: messagingmocks.NewMockEventPublisher(ctrl),
		runner:    &fakeRunner{results: map[string]domain.ExecutionResult{}},
	}

	f.service = NewScheduleExecutorService(
		f.repo,
		scheduling.NewMatcher(time.UTC),
		f.runner,
		f.publisher,
		&config.Config{ScheduleExecutor: executorConfig},
	)
	f.service.now = func() time.Time { return mondayMorning }
	f.service.newHolder = func() string { return "holder-1" }

	return f
}

func TestRunOnce_IsolatesFailingSchedules(t *testing.T) {
	f := newServiceFixture(t, config.ScheduleExecutor{MaxConcurrentSchedules: 2, LogRetention: 50})

	errMsg := "token refresh failed"
	f.runner.results["ok"] = updated(2)
	f.runner.results["fatal"] = domain.ExecutionResult{Message: scheduling.MessageExecutionFailed, AffectedAdGroupIDs: []string{}, Error: &errMsg}
	f.runner.results["unrecorded"] = updated(1)

	f.repo.EXPECT().ListActive(gomock.Any()).Return([]*domain.Schedule{
		activeSchedule("ok", 1),
		activeSchedule("fatal", 1),
		activeSchedule("unrecorded", 1),
		activeSchedule("tuesday", 2),
	}, nil)

	f.repo.EXPECT().RecordExecution(gomock.Any(), gomock.Any(), 50).DoAndReturn(
		func(_ context.Context, entry *domain.ExecutionLogEntry, _ int) error {
			assert.Equal(t, mondayMorning, entry.Timestamp)
			if entry.ScheduleID == "unrecorded" {
				return errors.New("connection reset")
			}
			return nil
		}).Times(3)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	summary, err := f.service.RunOnce(context.Background(), mondayMorning)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"ok", "fatal", "unrecorded"}, f.runner.executed())
	assert.Equal(t, 4, summary.Evaluated)
	assert.Equal(t, 3, summary.Matched)
	assert.Equal(t, 2, summary.Executed)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Skipped)
}

func TestRunOnce_RespectsReexecutionGuard(t *testing.T) {
	f := newServiceFixture(t, config.ScheduleExecutor{})

	recent := activeSchedule("recent", 1)
	lastRun := mondayMorning.Add(-2 * time.Minute)
	recent.LastExecuted = &lastRun

	f.repo.EXPECT().ListActive(gomock.Any()).Return([]*domain.Schedule{recent}, nil)
	f.repo.EXPECT().RecordExecution(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	summary, err := f.service.RunOnce(context.Background(), mondayMorning)
	require.NoError(t, err)

	assert.Empty(t, f.runner.executed())
	assert.Equal(t, 0, summary.Matched)
}

func TestRunOnce_RecordsInvalidSchedulesAsFailed(t *testing.T) {
	f := newServiceFixture(t, config.ScheduleExecutor{})

	invalid := activeSchedule("invalid", 1)
	invalid.Action = domain.NewAdjustBidAction(domain.ChangeModePercentage, 0)

	f.repo.EXPECT().ListActive(gomock.Any()).Return([]*domain.Schedule{invalid}, nil)
	f.repo.EXPECT().RecordExecution(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry *domain.ExecutionLogEntry, _ int) error {
			assert.Equal(t, "invalid", entry.ScheduleID)
			assert.False(t, entry.Success)
			assert.Equal(t, scheduling.MessageExecutionFailed, entry.Message)
			require.NotNil(t, entry.Error)
			assert.Contains(t, *entry.Error, scheduling.ErrInvalidSchedule.Error())
			assert.Empty(t, entry.AffectedAdGroupIDs)
			return nil
		})
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	summary, err := f.service.RunOnce(context.Background(), mondayMorning)
	require.NoError(t, err)

	assert.Empty(t, f.runner.executed())
	assert.Equal(t, 1, summary.Matched)
	assert.Equal(t, 1, summary.Executed)
	assert.Equal(t, 0, summary.Succeeded)
	assert.Equal(t, 0, summary.Skipped)
}

func TestRunOnce_TagsLogsWithCorrelationID(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	t.Run("fresh id per pass", func(t *testing.T) {
		hook.Reset()
		f := newServiceFixture(t, config.ScheduleExecutor{})
		f.repo.EXPECT().ListActive(gomock.Any()).Return(nil, nil)

		_, err := f.service.RunOnce(context.Background(), mondayMorning)
		require.NoError(t, err)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, "Schedule execution pass completed", entry.Message)
		assert.NotEmpty(t, entry.Data[log.CorrelationIDField])
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		hook.Reset()
		f := newServiceFixture(t, config.ScheduleExecutor{})
		f.repo.EXPECT().ListActive(gomock.Any()).Return(nil, nil)

		ctx, _ := log.WithCorrelationID(context.Background(), "req-1")
		_, err := f.service.RunOnce(ctx, mondayMorning)
		require.NoError(t, err)

		for _, entry := range hook.AllEntries() {
			assert.Equal(t, "req-1", entry.Data[log.CorrelationIDField])
		}
	})
}

func TestRunOnce_LeaseHeldElsewhere(t *testing.T) {
	f := newServiceFixture(t, config.ScheduleExecutor{LeaseEnabled: true, LeaseTTL: 4 * time.Minute})

	f.repo.EXPECT().ListActive(gomock.Any()).Return([]*domain.Schedule{activeSchedule("busy", 1), activeSchedule("free", 1)}, nil)
	f.repo.EXPECT().AcquireLease(gomock.Any(), "busy", "holder-1", mondayMorning, mondayMorning.Add(4*time.Minute)).Return(false, nil)
	f.repo.EXPECT().AcquireLease(gomock.Any(), "free", "holder-1", mondayMorning, mondayMorning.Add(4*time.Minute)).Return(true, nil)
	f.repo.EXPECT().RecordExecution(gomock.Any(), gomock.Any(), 0).Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)
	f.runner.results["free"] = updated(1)

	summary, err := f.service.RunOnce(context.Background(), mondayMorning)
	require.NoError(t, err)

	assert.Equal(t, []string{"free"}, f.runner.executed())
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Executed)
}

func TestRunOnce_ReleasesLeaseWhenRecordingFails(t *testing.T) {
	f := newServiceFixture(t, config.ScheduleExecutor{LeaseEnabled: true, LeaseTTL: time.Minute})

	f.repo.EXPECT().ListActive(gomock.Any()).Return([]*domain.Schedule{activeSchedule("s-1", 1)}, nil)
	f.repo.EXPECT().AcquireLease(gomock.Any(), "s-1", "holder-1", gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().RecordExecution(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
	f.repo.EXPECT().ReleaseLease(gomock.Any(), "s-1", "holder-1").Return(nil)

	summary, err := f.service.RunOnce(context.Background(), mondayMorning)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
}

func TestRunOnce_ListFailure(t *testing.T) {
	f := newServiceFixture(t, config.ScheduleExecutor{})

	f.repo.EXPECT().ListActive(gomock.Any()).Return(nil, errors.New("db down"))

	summary, err := f.service.RunOnce(context.Background(), mondayMorning)
	assert.Nil(t, summary)
	assert.ErrorIs(t, err, scheduling.ErrFetchSchedules)
}

func TestSyncAllSchedules_SkipsOverlappingTick(t *testing.T) {
	f := newServiceFixture(t, config.ScheduleExecutor{})
	f.repo.EXPECT().ListActive(gomock.Any()).Times(0)

	f.service.syncRunning = true
	f.service.syncAllSchedules(context.Background())

	assert.True(t, f.service.syncRunning)
}

func TestSyncAllSchedules_StoresSummary(t *testing.T) {
	f := newServiceFixture(t, config.ScheduleExecutor{CronSchedule: "*/5 * * * *"})
	f.repo.EXPECT().ListActive(gomock.Any()).Return([]*domain.Schedule{}, nil)

	f.service.syncAllSchedules(context.Background())

	status := f.service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, "*/5 * * * *", status["sync_cron"])
	assert.Equal(t, "all entries kept", status["retention_policy"])
	require.NotNil(t, status["last_summary"])
	assert.Equal(t, 0, status["last_summary"].(*RunSummary).Evaluated)
}

func TestExecuteByID(t *testing.T) {
	t.Run("records and publishes", func(t *testing.T) {
		f := newServiceFixture(t, config.ScheduleExecutor{LogRetention: 10})

		// outside its window and just executed, still runs when triggered by hand
		schedule := activeSchedule("s-1", 2)
		lastRun := mondayMorning.Add(-time.Minute)
		schedule.LastExecuted = &lastRun
		f.runner.results["s-1"] = updated(3)

		f.repo.EXPECT().GetByID(gomock.Any(), "s-1").Return(schedule, nil)
		f.repo.EXPECT().RecordExecution(gomock.Any(), gomock.Any(), 10).DoAndReturn(
			func(_ context.Context, entry *domain.ExecutionLogEntry, _ int) error {
				assert.Equal(t, "s-1", entry.ScheduleID)
				assert.True(t, entry.Success)
				assert.Len(t, entry.AffectedAdGroupIDs, 3)
				return nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, event any) error {
				return errors.New("broker gone")
			})

		result, err := f.service.ExecuteByID(context.Background(), "s-1")
		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	tests := []struct {
		name         string
		scheduleID   string
		setup        func(f *serviceFixture)
		expectedErr  error
		expectedCode string
	}{
		{
			name:         "missing id",
			setup:        func(*serviceFixture) {},
			expectedErr:  scheduling.ErrScheduleIDRequired,
			expectedCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name:       "unknown schedule",
			scheduleID: "nope",
			setup: func(f *serviceFixture) {
				f.repo.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, nil)
			},
			expectedErr:  scheduling.ErrScheduleNotFound,
			expectedCode: apiErrors.ErrScheduleNotFound,
		},
		{
			name:       "lookup failure",
			scheduleID: "s-1",
			setup: func(f *serviceFixture) {
				f.repo.EXPECT().GetByID(gomock.Any(), "s-1").Return(nil, errors.New("db down"))
			},
			expectedErr:  scheduling.ErrFetchSchedules,
			expectedCode: apiErrors.ErrDatabaseOperation,
		},
		{
			name:       "recording failure",
			scheduleID: "s-1",
			setup: func(f *serviceFixture) {
				f.repo.EXPECT().GetByID(gomock.Any(), "s-1").Return(activeSchedule("s-1", 1), nil)
				f.repo.EXPECT().RecordExecution(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			expectedErr:  scheduling.ErrRecordExecution,
			expectedCode: apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t, config.ScheduleExecutor{})
			tt.setup(f)

			_, err := f.service.ExecuteByID(context.Background(), tt.scheduleID)
			assert.ErrorIs(t, err, tt.expectedErr)

			var scheduleErr *scheduling.ScheduleError
			require.ErrorAs(t, err, &scheduleErr)
			assert.Equal(t, tt.expectedCode, scheduleErr.Code)
		})
	}
}

func TestExecuteByID_InvalidScheduleIsRecorded(t *testing.T) {
	f := newServiceFixture(t, config.ScheduleExecutor{})

	schedule := activeSchedule("s-1", 1)
	schedule.DaysOfWeek = nil

	f.repo.EXPECT().GetByID(gomock.Any(), "s-1").Return(schedule, nil)
	f.repo.EXPECT().RecordExecution(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry *domain.ExecutionLogEntry, _ int) error {
			assert.False(t, entry.Success)
			return nil
		})
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.service.ExecuteByID(context.Background(), "s-1")
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, scheduling.MessageExecutionFailed, result.Message)
	require.NotNil(t, result.Error)
	assert.Equal(t, "invalid schedule: "+domain.ErrNoDaysOfWeek.Error(), *result.Error)
	assert.Empty(t, f.runner.executed())
}

func TestExecuteByID_Busy(t *testing.T) {
	f := newServiceFixture(t, config.ScheduleExecutor{LeaseEnabled: true, LeaseTTL: time.Minute})

	f.repo.EXPECT().GetByID(gomock.Any(), "s-1").Return(activeSchedule("s-1", 1), nil)
	f.repo.EXPECT().AcquireLease(gomock.Any(), "s-1", "holder-1", gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := f.service.ExecuteByID(context.Background(), "s-1")

	var scheduleErr *scheduling.ScheduleError
	require.ErrorAs(t, err, &scheduleErr)
	assert.Equal(t, apiErrors.ErrScheduleBusy, scheduleErr.Code)
	assert.Empty(t, f.runner.executed())
}
