package scheduling

import (
	"time"

	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/utils"
)

// ReexecutionGuard is the minimum time between two executions of one schedule.
const ReexecutionGuard = 5 * time.Minute

const lookaheadDays = 7

// Matcher decides whether schedules fire, reading wall-clock time in a
// single configured location.
type Matcher struct {
	loc *time.Location
}

func NewMatcher(loc *time.Location) *Matcher {
	if loc == nil {
		loc = time.UTC
	}
	return &Matcher{loc: loc}
}

func (m *Matcher) Location() *time.Location {
	return m.loc
}

// ShouldExecuteNow reports whether schedule should fire at now.
func (m *Matcher) ShouldExecuteNow(schedule *domain.Schedule, now time.Time) bool {
	if schedule == nil || !schedule.Active {
		return false
	}

	local := now.In(m.loc)
	if !schedule.HasDay(int(local.Weekday())) {
		return false
	}

	if schedule.TimeMode == domain.TimeModeSpecific {
		if schedule.StartTime == nil || schedule.EndTime == nil {
			return false
		}
		current := utils.FormatClock(local)
		if current < *schedule.StartTime || current > *schedule.EndTime {
			return false
		}
	}

	if schedule.LastExecuted != nil && now.Sub(*schedule.LastExecuted) < ReexecutionGuard {
		return false
	}

	return true
}

// NextExecutionTime returns the earliest instant at or after now at which
// ShouldExecuteNow would hold, or nil if the schedule cannot fire within the
// next week.
func (m *Matcher) NextExecutionTime(schedule *domain.Schedule, now time.Time) *time.Time {
	if schedule == nil || !schedule.Active || len(schedule.DaysOfWeek) == 0 {
		return nil
	}

	startHour, startMinute, endHour, endMinute := 0, 0, 23, 59
	if schedule.TimeMode == domain.TimeModeSpecific {
		if schedule.StartTime == nil || schedule.EndTime == nil {
			return nil
		}
		var err error
		if startHour, startMinute, err = utils.ParseClock(*schedule.StartTime); err != nil {
			return nil
		}
		if endHour, endMinute, err = utils.ParseClock(*schedule.EndTime); err != nil {
			return nil
		}
	}

	earliest := now
	if schedule.LastExecuted != nil {
		if guard := schedule.LastExecuted.Add(ReexecutionGuard); guard.After(earliest) {
			earliest = guard
		}
	}

	local := now.In(m.loc)
	for offset := 0; offset <= lookaheadDays; offset++ {
		day := time.Date(local.Year(), local.Month(), local.Day()+offset, 0, 0, 0, 0, m.loc)
		if !schedule.HasDay(int(day.Weekday())) {
			continue
		}

		windowStart := time.Date(day.Year(), day.Month(), day.Day(), startHour, startMinute, 0, 0, m.loc)
		windowEnd := time.Date(day.Year(), day.Month(), day.Day(), endHour, endMinute+1, 0, 0, m.loc)

		candidate := windowStart
		if earliest.After(candidate) {
			candidate = earliest
		}
		if !candidate.Before(windowEnd) {
			continue
		}

		next := candidate.In(m.loc)
		return &next
	}

	return nil
}
