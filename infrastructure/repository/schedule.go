package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/database/postgres"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/utils"
)

//go:generate mockgen -source=schedule.go -destination=mocks/mock_schedule.go -package=mocks

const (
	schedulesTable  = "schedules"
	executionsTable = "schedule_executions"
)

var scheduleColumns = []string{
	"id", "account_id", "ads_client_id", "name", "is_active", "time_mode", "start_time", "end_time",
	"days_of_week", "action_type", "change_mode", "change_value", "status_value", "ad_group_ids",
	"last_executed", "created_at", "updated_at",
}

type ScheduleRepository interface {
	ListActive(ctx context.Context) ([]*domain.Schedule, error)
	ListSchedules(ctx context.Context, accountID string) ([]*domain.Schedule, error)
	GetByID(ctx context.Context, scheduleID string) (*domain.Schedule, error)
	RecordExecution(ctx context.Context, entry *domain.ExecutionLogEntry, retention int) error
	ListExecutions(ctx context.Context, scheduleID string, limit int) ([]domain.ExecutionLogEntry, error)
	AcquireLease(ctx context.Context, scheduleID, holder string, now, until time.Time) (bool, error)
	ReleaseLease(ctx context.Context, scheduleID, holder string) error
}

type scheduleRepository struct {
	conn postgres.Conn
}

func NewScheduleRepository(conn postgres.Conn) ScheduleRepository {
	return &scheduleRepository{
		conn: conn,
	}
}

func (r *scheduleRepository) ListActive(ctx context.Context) ([]*domain.Schedule, error) {
	return r.list(ctx, squirrel.Eq{"is_active": true})
}

func (r *scheduleRepository) ListSchedules(ctx context.Context, accountID string) ([]*domain.Schedule, error) {
	if accountID == "" {
		return r.list(ctx, nil)
	}
	return r.list(ctx, squirrel.Eq{"account_id": accountID})
}

func (r *scheduleRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.Schedule, error) {
	queryBuilder := squirrel.
		Select(scheduleColumns...).
		From(schedulesTable).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		queryBuilder = queryBuilder.Where(where)
	}

	schedulesSQL, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, schedulesSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		schedule, err := deserializeSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedules: %w", err)
	}

	return schedules, nil
}

// GetByID returns nil without error when the schedule does not exist.
func (r *scheduleRepository) GetByID(ctx context.Context, scheduleID string) (*domain.Schedule, error) {
	scheduleSQL, args, err := squirrel.
		Select(scheduleColumns...).
		From(schedulesTable).
		Where(squirrel.Eq{"id": scheduleID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	schedule, err := deserializeSchedule(r.conn.QueryRowContext(ctx, scheduleSQL, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return schedule, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func deserializeSchedule(row scanner) (*domain.Schedule, error) {
	var (
		schedule    domain.Schedule
		daysOfWeek  pq.Int64Array
		adGroupIDs  pq.StringArray
		actionType  string
		changeMode  sql.NullString
		changeValue sql.NullFloat64
		statusValue sql.NullString
		lastRun     sql.NullTime
	)

	if err := row.Scan(
		&schedule.ID,
		&schedule.AccountID,
		&schedule.AdsClientID,
		&schedule.Name,
		&schedule.Active,
		&schedule.TimeMode,
		&schedule.StartTime,
		&schedule.EndTime,
		&daysOfWeek,
		&actionType,
		&changeMode,
		&changeValue,
		&statusValue,
		&adGroupIDs,
		&lastRun,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	); err != nil {
		return nil, err
	}

	schedule.DaysOfWeek = make([]int, 0, len(daysOfWeek))
	for _, day := range daysOfWeek {
		schedule.DaysOfWeek = append(schedule.DaysOfWeek, int(day))
	}

	schedule.AdGroupIDs = []string(adGroupIDs)
	if schedule.AdGroupIDs == nil {
		schedule.AdGroupIDs = []string{}
	}

	if lastRun.Valid {
		lastExecuted := lastRun.Time
		schedule.LastExecuted = &lastExecuted
	}

	var status *string
	if statusValue.Valid {
		status = &statusValue.String
	}
	schedule.Action = domain.ActionFromRecord(
		domain.ActionType(actionType),
		domain.ChangeMode(changeMode.String),
		changeValue.Float64,
		status,
	)

	return &schedule, nil
}

// RecordExecution appends entry to the schedule's log, sets its last execution
// time and releases any lease, in one transaction. When retention is positive
// only the newest retention entries are kept.
func (r *scheduleRepository) RecordExecution(ctx context.Context, entry *domain.ExecutionLogEntry, retention int) error {
	if entry.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("failed to generate execution id: %w", err)
		}
		entry.ID = id
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		insertSQL, args, err := insertExecutionQuery(entry)
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertSQL, args...); err != nil {
			return wrapPqError(err)
		}

		updateSQL, args, err := squirrel.
			Update(schedulesTable).
			Set("last_executed", entry.Timestamp).
			Set("lease_holder", nil).
			Set("lease_expires_at", nil).
			Where(squirrel.Eq{"id": entry.ScheduleID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, updateSQL, args...); err != nil {
			return wrapPqError(err)
		}

		if retention > 0 {
			pruneSQL, args := pruneExecutionsQuery(entry.ScheduleID, retention)
			if _, err := tx.ExecContext(ctx, pruneSQL, args...); err != nil {
				return wrapPqError(err)
			}
		}

		return nil
	})
}

func insertExecutionQuery(entry *domain.ExecutionLogEntry) (string, []any, error) {
	affected := entry.AffectedAdGroupIDs
	if affected == nil {
		affected = []string{}
	}

	return squirrel.
		Insert(executionsTable).
		Columns("id", "schedule_id", "executed_at", "success", "message", "affected_ad_group_ids", "error").
		Values(entry.ID, entry.ScheduleID, entry.Timestamp, entry.Success, entry.Message, pq.Array(affected), entry.Error).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func pruneExecutionsQuery(scheduleID string, retention int) (string, []any) {
	return `DELETE FROM schedule_executions
		WHERE schedule_id = $1
		AND id NOT IN (
			SELECT id FROM schedule_executions
			WHERE schedule_id = $1
			ORDER BY executed_at DESC
			LIMIT $2
		)`, []any{scheduleID, retention}
}

// ListExecutions returns the newest entries first. A non-positive limit returns every entry.
func (r *scheduleRepository) ListExecutions(ctx context.Context, scheduleID string, limit int) ([]domain.ExecutionLogEntry, error) {
	queryBuilder := squirrel.
		Select("id", "schedule_id", "executed_at", "success", "message", "affected_ad_group_ids", "error").
		From(executionsTable).
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("executed_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		queryBuilder = queryBuilder.Limit(uint64(limit))
	}

	executionsSQL, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, executionsSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.ExecutionLogEntry, 0)
	for rows.Next() {
		var (
			entry    domain.ExecutionLogEntry
			affected pq.StringArray
		)

		if err := rows.Scan(
			&entry.ID,
			&entry.ScheduleID,
			&entry.Timestamp,
			&entry.Success,
			&entry.Message,
			&affected,
			&entry.Error,
		); err != nil {
			return nil, fmt.Errorf("failed to deserialize execution: %w", err)
		}

		entry.AffectedAdGroupIDs = []string(affected)
		if entry.AffectedAdGroupIDs == nil {
			entry.AffectedAdGroupIDs = []string{}
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate executions: %w", err)
	}

	return entries, nil
}

// AcquireLease claims the schedule for holder until the given instant. It
// fails when another holder owns an unexpired lease.
func (r *scheduleRepository) AcquireLease(ctx context.Context, scheduleID, holder string, now, until time.Time) (bool, error) {
	leaseSQL, args, err := acquireLeaseQuery(scheduleID, holder, now, until)
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, leaseSQL, args...)
	if err != nil {
		return false, wrapPqError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error getting rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

func acquireLeaseQuery(scheduleID, holder string, now, until time.Time) (string, []any, error) {
	return squirrel.
		Update(schedulesTable).
		Set("lease_holder", holder).
		Set("lease_expires_at", until).
		Where(squirrel.Eq{"id": scheduleID}).
		Where(squirrel.Or{
			squirrel.Eq{"lease_expires_at": nil},
			squirrel.Lt{"lease_expires_at": now},
			squirrel.Eq{"lease_holder": holder},
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *scheduleRepository) ReleaseLease(ctx context.Context, scheduleID, holder string) error {
	releaseSQL, args, err := squirrel.
		Update(schedulesTable).
		Set("lease_holder", nil).
		Set("lease_expires_at", nil).
		Where(squirrel.Eq{"id": scheduleID, "lease_holder": holder}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, releaseSQL, args...); err != nil {
		return wrapPqError(err)
	}

	return nil
}

func wrapPqError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("failed to execute query: %w", err)
}
