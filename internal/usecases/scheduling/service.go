package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/repository"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

const defaultExecutionsLimit = 50

// ScheduleService reads schedules and their execution logs.
type ScheduleService interface {
	ListSchedules(ctx context.Context, accountID string) ([]*domain.ScheduleResponse, error)
	GetSchedule(ctx context.Context, scheduleID string) (*domain.ScheduleResponse, error)
	ListExecutions(ctx context.Context, scheduleID string, limit int) ([]domain.ExecutionLogEntry, error)
}

type Service struct {
	scheduleRepo repository.ScheduleRepository
	matcher      *Matcher
	now          func() time.Time
}

func NewService(scheduleRepo repository.ScheduleRepository, matcher *Matcher) ScheduleService {
	return &Service{
		scheduleRepo: scheduleRepo,
		matcher:      matcher,
		now:          time.Now,
	}
}

func (s *Service) ListSchedules(ctx context.Context, accountID string) ([]*domain.ScheduleResponse, error) {
	schedules, err := s.scheduleRepo.ListSchedules(ctx, accountID)
	if err != nil {
		return nil, NewScheduleError(fmt.Errorf("%w: %w", ErrFetchSchedules, err), apiErrors.ErrDatabaseOperation, "", "")
	}

	now := s.now()
	response := make([]*domain.ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		response = append(response, s.withNextExecution(schedule, now))
	}

	return response, nil
}

func (s *Service) GetSchedule(ctx context.Context, scheduleID string) (*domain.ScheduleResponse, error) {
	schedule, err := s.get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	return s.withNextExecution(schedule, s.now()), nil
}

// ListExecutions returns the newest entries first, at most limit of them.
func (s *Service) ListExecutions(ctx context.Context, scheduleID string, limit int) ([]domain.ExecutionLogEntry, error) {
	if _, err := s.get(ctx, scheduleID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultExecutionsLimit
	}

	entries, err := s.scheduleRepo.ListExecutions(ctx, scheduleID, limit)
	if err != nil {
		return nil, NewScheduleError(fmt.Errorf("%w: %w", ErrFetchSchedules, err), apiErrors.ErrDatabaseOperation, scheduleID, "")
	}

	return entries, nil
}

func (s *Service) get(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	if scheduleID == "" {
		return nil, NewScheduleError(ErrScheduleIDRequired, apiErrors.ErrMissingRequiredData, "", "")
	}

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, NewScheduleError(fmt.Errorf("%w: %w", ErrFetchSchedules, err), apiErrors.ErrDatabaseOperation, scheduleID, "")
	}
	if schedule == nil {
		return nil, NewScheduleError(ErrScheduleNotFound, apiErrors.ErrScheduleNotFound, scheduleID, "")
	}

	return schedule, nil
}

func (s *Service) withNextExecution(schedule *domain.Schedule, now time.Time) *domain.ScheduleResponse {
	return &domain.ScheduleResponse{
		Schedule:      schedule,
		NextExecution: s.matcher.NextExecutionTime(schedule, now),
	}
}
