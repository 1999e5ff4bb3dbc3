package scheduling

import (
	"errors"
	"fmt"
)

var (
	ErrScheduleIDRequired = errors.New("schedule ID is required")
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrInvalidSchedule    = errors.New("invalid schedule")
	ErrScheduleBusy       = errors.New("schedule is being executed by another worker")
	ErrFetchSchedules     = errors.New("error fetching schedules from database")
	ErrRecordExecution    = errors.New("error recording schedule execution")

	ErrInvalidAmount     = errors.New("current amount is not a number")
	ErrNonPositiveAmount = errors.New("computed amount must be greater than zero")
)

// ScheduleError carries the API error code and the schedule involved.
type ScheduleError struct {
	Err        error
	Code       string
	ScheduleID string
	Details    string
}

func (e *ScheduleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ScheduleError) Unwrap() error {
	return e.Err
}

func NewScheduleError(err error, code string, scheduleID string, details string) *ScheduleError {
	return &ScheduleError{
		Err:        err,
		Code:       code,
		ScheduleID: scheduleID,
		Details:    details,
	}
}
