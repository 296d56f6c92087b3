package scheduler

import (
	"testing"
	"time"

	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func TestWrapIndex(t *testing.T) {
	tests := []struct {
		v, n, want int
	}{
		{0, 3, 0},
		{1, 3, 1},
		{3, 3, 0},
		{7, 3, 1},
		{-1, 3, 2},
		{-2, 3, 1},
		{-3, 3, 0},
		{-7, 3, 2},
		{5, 1, 0},
		{-5, 1, 0},
	}

	for _, tt := range tests {
		if got := wrapIndex(tt.v, tt.n); got != tt.want {
			t.Errorf("wrapIndex(%d, %d) = %d, want %d", tt.v, tt.n, got, tt.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    clock
		wantErr bool
	}{
		{"07:00", clock{7, 0}, false},
		{"19:30", clock{19, 30}, false},
		{"07:00:00", clock{7, 0}, false}, // seconds are tolerated and dropped
		{"00:00", clock{0, 0}, false},
		{"23:59", clock{23, 59}, false},
		{"24:00", clock{}, true},
		{"07:60", clock{}, true},
		{"7", clock{}, true},
		{"", clock{}, true},
		{"seven:00", clock{}, true},
	}

	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseClock(%q): expected error, got %+v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseClock(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseClock(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		b    time.Time
		want int
	}{
		{time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), 3},
		{time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), -2},
		{time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), -5},
	}

	for _, tt := range tests {
		if got := daysBetween(a, tt.b); got != tt.want {
			t.Errorf("daysBetween(%s, %s) = %d, want %d", a.Format("2006-01-02"), tt.b.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestDeriveLabel(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{7, 0, domain.ShiftLabelDay},
		{12, 30, domain.ShiftLabelDay},
		{18, 59, domain.ShiftLabelDay},
		{19, 0, domain.ShiftLabelNight},
		{6, 59, domain.ShiftLabelNight},
		{0, 0, domain.ShiftLabelNight},
	}

	for _, tt := range tests {
		startsAt := time.Date(2024, 3, 1, tt.hour, tt.minute, 0, 0, time.UTC)
		if got := DeriveLabel(startsAt); got != tt.want {
			t.Errorf("DeriveLabel(%02d:%02d) = %s, want %s", tt.hour, tt.minute, got, tt.want)
		}
	}
}
