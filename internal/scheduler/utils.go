package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

type clock struct {
	hour   int
	minute int
}

// parseClock accepts "HH:MM" or "HH:MM:SS" wall-clock strings; seconds
// are discarded.
func parseClock(s string) (clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return clock{}, fmt.Errorf("invalid time of day %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return clock{}, fmt.Errorf("invalid hour in time of day %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return clock{}, fmt.Errorf("invalid minute in time of day %q", s)
	}

	return clock{hour: hour, minute: minute}, nil
}

// combine sets the clock on a calendar date. All shift timestamps are
// naive local times, so the result is built in a fixed location instead
// of converting anything.
func combine(date time.Time, c clock) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.hour, c.minute, 0, 0, time.UTC)
}

// truncateToDay drops the time-of-day component.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the signed number of whole days from a to b. Both
// arguments must already be truncated to midnight.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// wrapIndex is a true modulo: the result is always in [0, n), also for
// negative v. The built-in % operator keeps the sign of the dividend,
// which would break rotation for dates before the cycle anchor.
func wrapIndex(v, n int) int {
	return ((v % n) + n) % n
}

// DeriveLabel classifies a manually created shift by its start hour.
// Starts between 07:00 and 18:59 count as day shifts.
func DeriveLabel(startsAt time.Time) string {
	hour := startsAt.Hour()
	if hour >= 7 && hour < 19 {
		return domain.ShiftLabelDay
	}
	return domain.ShiftLabelNight
}
