package utils

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// FormatClock returns the zero-padded HH:MM wall clock of t in its own location.
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

// ParseClock splits a HH:MM string into hour and minute.
func ParseClock(clock string) (int, int, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock %q: %w", clock, err)
	}

	return t.Hour(), t.Minute(), nil
}
