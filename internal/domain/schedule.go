package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

type TimeMode string

const (
	TimeModeAllDay   TimeMode = "allDay"
	TimeModeSpecific TimeMode = "specific"
)

type ActionType string

const (
	ActionTypeStatus ActionType = "status"
	ActionTypeCPC    ActionType = "cpc"
	ActionTypeBudget ActionType = "budget"
)

type ChangeMode string

const (
	ChangeModePercentage ChangeMode = "percentage"
	ChangeModeAmount     ChangeMode = "amount"
)

type AdGroupStatus string

const (
	AdGroupStatusActive AdGroupStatus = "ACTIVE"
	AdGroupStatusPaused AdGroupStatus = "PAUSED"
)

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var (
	ErrNoDaysOfWeek       = errors.New("days of week must not be empty")
	ErrInvalidDayOfWeek   = errors.New("day of week must be between 0 and 6")
	ErrMissingTimeWindow  = errors.New("start and end time are required for specific time mode")
	ErrInvalidClock       = errors.New("time must use HH:MM format")
	ErrZeroChangeValue    = errors.New("change value must be non-zero")
	ErrInvalidChangeMode  = errors.New("change mode must be percentage or amount")
	ErrMissingStatusValue = errors.New("status value must be ACTIVE or PAUSED")
	ErrUnknownActionType  = errors.New("unknown action type")
)

// Action is the adjustment a schedule applies. Exactly one of the variant
// pointers is set, matching Type.
type Action struct {
	Type         ActionType  `json:"actionType"`
	SetStatus    *SetStatus  `json:"setStatus,omitempty"`
	AdjustBid    *Adjustment `json:"adjustBid,omitempty"`
	AdjustBudget *Adjustment `json:"adjustBudget,omitempty"`
}

type SetStatus struct {
	Status AdGroupStatus `json:"status"`
}

// Adjustment is a signed change applied to a monetary amount.
type Adjustment struct {
	Mode  ChangeMode `json:"changeMode"`
	Value float64    `json:"changeValue"`
}

func NewSetStatusAction(status AdGroupStatus) Action {
	return Action{Type: ActionTypeStatus, SetStatus: &SetStatus{Status: status}}
}

func NewAdjustBidAction(mode ChangeMode, value float64) Action {
	return Action{Type: ActionTypeCPC, AdjustBid: &Adjustment{Mode: mode, Value: value}}
}

func NewAdjustBudgetAction(mode ChangeMode, value float64) Action {
	return Action{Type: ActionTypeBudget, AdjustBudget: &Adjustment{Mode: mode, Value: value}}
}

// ActionFromRecord builds the variant from the flat columns a stored schedule carries.
func ActionFromRecord(actionType ActionType, mode ChangeMode, value float64, status *string) Action {
	switch actionType {
	case ActionTypeStatus:
		var s AdGroupStatus
		if status != nil {
			s = AdGroupStatus(*status)
		}
		return NewSetStatusAction(s)
	case ActionTypeCPC:
		return NewAdjustBidAction(mode, value)
	case ActionTypeBudget:
		return NewAdjustBudgetAction(mode, value)
	default:
		return Action{Type: actionType}
	}
}

func (a Action) Validate() error {
	switch a.Type {
	case ActionTypeStatus:
		if a.SetStatus == nil {
			return ErrMissingStatusValue
		}
		if a.SetStatus.Status != AdGroupStatusActive && a.SetStatus.Status != AdGroupStatusPaused {
			return ErrMissingStatusValue
		}
		return nil
	case ActionTypeCPC:
		return a.AdjustBid.validate()
	case ActionTypeBudget:
		return a.AdjustBudget.validate()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownActionType, a.Type)
	}
}

func (a *Adjustment) validate() error {
	if a == nil || a.Value == 0 {
		return ErrZeroChangeValue
	}
	if a.Mode != ChangeModePercentage && a.Mode != ChangeModeAmount {
		return ErrInvalidChangeMode
	}
	return nil
}

type Schedule struct {
	ID           string              `json:"id"`
	AccountID    string              `json:"accountId"`
	AdsClientID  string              `json:"adsClientId"`
	Name         string              `json:"name"`
	Active       bool                `json:"isActive"`
	TimeMode     TimeMode            `json:"timeMode"`
	StartTime    *string             `json:"startTime,omitempty"`
	EndTime      *string             `json:"endTime,omitempty"`
	DaysOfWeek   []int               `json:"daysOfWeek"`
	Action       Action              `json:"action"`
	AdGroupIDs   []string            `json:"adGroupIds"`
	LastExecuted *time.Time          `json:"lastExecuted,omitempty"`
	ExecutionLog []ExecutionLogEntry `json:"executionLog,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// Validate checks the invariants a schedule must hold to ever fire.
func (s *Schedule) Validate() error {
	if len(s.DaysOfWeek) == 0 {
		return ErrNoDaysOfWeek
	}
	for _, d := range s.DaysOfWeek {
		if d < 0 || d > 6 {
			return ErrInvalidDayOfWeek
		}
	}

	if s.TimeMode == TimeModeSpecific {
		if s.StartTime == nil || s.EndTime == nil {
			return ErrMissingTimeWindow
		}
		if !clockRegex.MatchString(*s.StartTime) || !clockRegex.MatchString(*s.EndTime) {
			return ErrInvalidClock
		}
	}

	return s.Action.Validate()
}

func (s *Schedule) HasDay(day int) bool {
	for _, d := range s.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// TargetsAllAdGroups reports whether the schedule applies to every ad group of the client.
func (s *Schedule) TargetsAllAdGroups() bool {
	return len(s.AdGroupIDs) == 0
}

type ExecutionLogEntry struct {
	ID                 string    `json:"id"`
	ScheduleID         string    `json:"scheduleId"`
	Timestamp          time.Time `json:"timestamp"`
	Success            bool      `json:"success"`
	Message            string    `json:"message"`
	AffectedAdGroupIDs []string  `json:"affectedAdGroupIds"`
	Error              *string   `json:"error,omitempty"`
}

// ExecutionResult is the outcome of running one schedule's action once.
type ExecutionResult struct {
	Success            bool     `json:"success"`
	Message            string   `json:"message"`
	AffectedAdGroupIDs []string `json:"affectedAdGroupIds"`
	Error              *string  `json:"error,omitempty"`
}

// LogEntry turns the result into the log entry persisted for a run at ts.
func (r ExecutionResult) LogEntry(scheduleID string, ts time.Time) ExecutionLogEntry {
	affected := r.AffectedAdGroupIDs
	if affected == nil {
		affected = []string{}
	}

	return ExecutionLogEntry{
		ScheduleID:         scheduleID,
		Timestamp:          ts,
		Success:            r.Success,
		Message:            r.Message,
		AffectedAdGroupIDs: affected,
		Error:              r.Error,
	}
}

type ScheduleResponse struct {
	*Schedule
	NextExecution *time.Time `json:"nextExecution,omitempty"`
}
