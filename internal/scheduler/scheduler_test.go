package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

var (
	divisionA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	divisionB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	divisionC = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func testCycle(startDate time.Time, switchHours int32, order ...uuid.UUID) *domain.ScheduleCycle {
	return &domain.ScheduleCycle{
		ID:               uuid.New(),
		StationID:        uuid.New(),
		StartDate:        startDate,
		OrderDivisionIDs: order,
		SwitchHours:      switchHours,
	}
}

func testTemplates() []*domain.ShiftTemplate {
	return []*domain.ShiftTemplate{
		{Label: domain.ShiftLabelDay, StartTime: "07:00", EndTime: "19:00"},
		{Label: domain.ShiftLabelNight, StartTime: "19:00", EndTime: "07:00"},
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew_Preconditions(t *testing.T) {
	start := date(2024, 1, 1)

	tests := []struct {
		name      string
		cycle     *domain.ScheduleCycle
		templates []*domain.ShiftTemplate
		wantErr   error
	}{
		{
			name:      "no cycle",
			cycle:     nil,
			templates: testTemplates(),
			wantErr:   ErrNoCycle,
		},
		{
			name:      "empty division order",
			cycle:     testCycle(start, 12),
			templates: testTemplates(),
			wantErr:   ErrEmptyRotation,
		},
		{
			name:  "missing day template",
			cycle: testCycle(start, 12, divisionA),
			templates: []*domain.ShiftTemplate{
				{Label: domain.ShiftLabelNight, StartTime: "19:00", EndTime: "07:00"},
			},
			wantErr: ErrMissingDayTemplate,
		},
		{
			name:  "missing night template",
			cycle: testCycle(start, 12, divisionA),
			templates: []*domain.ShiftTemplate{
				{Label: domain.ShiftLabelDay, StartTime: "07:00", EndTime: "19:00"},
			},
			wantErr: ErrMissingNightTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cycle, tt.templates, Parameters{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_RejectsMalformedTemplateTimes(t *testing.T) {
	cycle := testCycle(date(2024, 1, 1), 12, divisionA)
	templates := []*domain.ShiftTemplate{
		{Label: domain.ShiftLabelDay, StartTime: "seven", EndTime: "19:00"},
		{Label: domain.ShiftLabelNight, StartTime: "19:00", EndTime: "07:00"},
	}

	_, err := New(cycle, templates, Parameters{})
	assert.Error(t, err)
}

func TestOnDutyDivisions_RotationOrder(t *testing.T) {
	// A,B,C starting 2024-01-01 with a 12h switch means
	// day and night stay with the same division, advancing daily
	cycle := testCycle(date(2024, 1, 1), 12, divisionA, divisionB, divisionC)
	s, err := New(cycle, testTemplates(), Parameters{})
	require.NoError(t, err)

	tests := []struct {
		date      time.Time
		wantDay   uuid.UUID
		wantNight uuid.UUID
	}{
		{date(2024, 1, 1), divisionA, divisionA},
		{date(2024, 1, 2), divisionB, divisionB},
		{date(2024, 1, 3), divisionC, divisionC},
		{date(2024, 1, 4), divisionA, divisionA},
	}

	for _, tt := range tests {
		day, night := s.OnDutyDivisions(tt.date)
		assert.Equal(t, tt.wantDay, day, "day division on %s", tt.date.Format("2006-01-02"))
		assert.Equal(t, tt.wantNight, night, "night division on %s", tt.date.Format("2006-01-02"))
	}
}

func TestOnDutyDivisions_NightOffset(t *testing.T) {
	// a 36h switch shifts the night division one rotation step ahead
	cycle := testCycle(date(2024, 1, 1), 36, divisionA, divisionB, divisionC)
	s, err := New(cycle, testTemplates(), Parameters{})
	require.NoError(t, err)

	day, night := s.OnDutyDivisions(date(2024, 1, 1))
	assert.Equal(t, divisionA, day)
	assert.Equal(t, divisionB, night)
}

func TestOnDutyDivisions_BeforeAnchor(t *testing.T) {
	// dates before the cycle anchor yield negative day offsets; the wrap
	// must still land in [0, N)
	cycle := testCycle(date(2024, 1, 5), 12, divisionA, divisionB, divisionC)
	s, err := New(cycle, testTemplates(), Parameters{})
	require.NoError(t, err)

	// diffDays = -2, wrap(-2) = 1 with N = 3
	day, _ := s.OnDutyDivisions(date(2024, 1, 3))
	assert.Equal(t, divisionB, day)
}

func TestGenerate_WindowSize(t *testing.T) {
	cycle := testCycle(date(2024, 1, 1), 12, divisionA, divisionB, divisionC)
	s, err := New(cycle, testTemplates(), Parameters{
		WindowDays: 30,
		Now:        fixedNow(date(2024, 2, 15)),
	})
	require.NoError(t, err)

	shifts := s.Generate()
	assert.Len(t, shifts, 60)

	for _, shift := range shifts {
		assert.Equal(t, domain.ShiftStatusDraft, shift.Status)
		assert.Equal(t, cycle.StationID, shift.StationID)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cycle := testCycle(date(2024, 1, 1), 12, divisionA, divisionB, divisionC)
	params := Parameters{WindowDays: 7, Now: fixedNow(date(2024, 3, 1))}

	s1, err := New(cycle, testTemplates(), params)
	require.NoError(t, err)
	s2, err := New(cycle, testTemplates(), params)
	require.NoError(t, err)

	assert.Equal(t, s1.Generate(), s2.Generate())
}

func TestGenerate_IndependentOfToday(t *testing.T) {
	// the division on duty for a date depends on the date alone, not on
	// when the generator runs
	cycle := testCycle(date(2024, 1, 1), 12, divisionA, divisionB, divisionC)

	early, err := New(cycle, testTemplates(), Parameters{WindowDays: 10, Now: fixedNow(date(2024, 2, 1))})
	require.NoError(t, err)
	late, err := New(cycle, testTemplates(), Parameters{WindowDays: 10, Now: fixedNow(date(2024, 2, 5))})
	require.NoError(t, err)

	byStart := make(map[time.Time]uuid.UUID)
	for _, shift := range early.Generate() {
		byStart[shift.StartsAt] = shift.DivisionID
	}
	for _, shift := range late.Generate() {
		if want, ok := byStart[shift.StartsAt]; ok {
			assert.Equal(t, want, shift.DivisionID, "division for %s changed with the run date", shift.StartsAt)
		}
	}
}

func TestGenerate_ShiftTimes(t *testing.T) {
	cycle := testCycle(date(2024, 3, 1), 12, divisionA)
	s, err := New(cycle, testTemplates(), Parameters{
		WindowDays: 1,
		Now:        fixedNow(date(2024, 3, 1)),
	})
	require.NoError(t, err)

	shifts := s.Generate()
	require.Len(t, shifts, 2)

	day, night := shifts[0], shifts[1]

	assert.Equal(t, domain.ShiftLabelDay, day.Label)
	assert.Equal(t, time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC), day.StartsAt)
	assert.Equal(t, time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC), day.EndsAt)

	assert.Equal(t, domain.ShiftLabelNight, night.Label)
	assert.Equal(t, time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC), night.StartsAt)
	assert.Equal(t, time.Date(2024, 3, 2, 7, 0, 0, 0, time.UTC), night.EndsAt)
}

func TestGenerate_DayTemplateCrossingMidnight(t *testing.T) {
	// a DAY template whose end precedes its start rolls the end to the
	// next calendar day
	cycle := testCycle(date(2024, 3, 1), 12, divisionA)
	templates := []*domain.ShiftTemplate{
		{Label: domain.ShiftLabelDay, StartTime: "19:00", EndTime: "07:00"},
		{Label: domain.ShiftLabelNight, StartTime: "19:00", EndTime: "07:00"},
	}
	s, err := New(cycle, templates, Parameters{WindowDays: 1, Now: fixedNow(date(2024, 3, 1))})
	require.NoError(t, err)

	shifts := s.Generate()
	require.Len(t, shifts, 2)
	assert.Equal(t, time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC), shifts[0].StartsAt)
	assert.Equal(t, time.Date(2024, 3, 2, 7, 0, 0, 0, time.UTC), shifts[0].EndsAt)
}

func TestGenerate_NightAlwaysEndsNextDay(t *testing.T) {
	// night shifts roll over unconditionally, even when end > start would
	// fit within the same day
	cycle := testCycle(date(2024, 3, 1), 12, divisionA)
	templates := []*domain.ShiftTemplate{
		{Label: domain.ShiftLabelDay, StartTime: "07:00", EndTime: "19:00"},
		{Label: domain.ShiftLabelNight, StartTime: "20:00", EndTime: "23:00"},
	}
	s, err := New(cycle, templates, Parameters{WindowDays: 1, Now: fixedNow(date(2024, 3, 1))})
	require.NoError(t, err)

	shifts := s.Generate()
	require.Len(t, shifts, 2)
	night := shifts[1]
	assert.Equal(t, time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC), night.StartsAt)
	assert.Equal(t, time.Date(2024, 3, 2, 23, 0, 0, 0, time.UTC), night.EndsAt)
}

func TestGenerate_SkipsZeroDivision(t *testing.T) {
	// a zero uuid in the rotation order must not panic or emit a shift
	// for that slot; the rest of the window is still produced
	cycle := testCycle(date(2024, 1, 1), 12, divisionA, uuid.Nil)
	s, err := New(cycle, testTemplates(), Parameters{WindowDays: 2, Now: fixedNow(date(2024, 1, 1))})
	require.NoError(t, err)

	shifts := s.Generate()
	// day 0 resolves to A/A, day 1 to Nil/Nil: two shifts survive
	assert.Len(t, shifts, 2)
	for _, shift := range shifts {
		assert.Equal(t, divisionA, shift.DivisionID)
	}
}

func TestGenerate_DefaultWindow(t *testing.T) {
	cycle := testCycle(date(2024, 1, 1), 12, divisionA)
	s, err := New(cycle, testTemplates(), Parameters{Now: fixedNow(date(2024, 1, 1))})
	require.NoError(t, err)

	assert.Len(t, s.Generate(), 2*DefaultWindowDays)
}
