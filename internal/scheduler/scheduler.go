package scheduler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

var (
	ErrNoCycle              = errors.New("schedule cycle is not configured")
	ErrEmptyRotation        = errors.New("schedule cycle contains no divisions")
	ErrMissingDayTemplate   = errors.New("no shift template labelled DAY")
	ErrMissingNightTemplate = errors.New("no shift template labelled NIGHT")
)

// Scheduler derives the on-duty division for every date in a rolling
// window and materializes the corresponding DAY/NIGHT shift candidates.
// It performs no I/O; persistence and duplicate suppression are the
// repository's concern.
type Scheduler struct {
	cycle  *domain.ScheduleCycle
	params Parameters

	startDate  time.Time
	dayStart   clock
	dayEnd     clock
	nightStart clock
	nightEnd   clock
}

// New validates the station configuration and returns a ready scheduler.
// All preconditions are checked up front so a misconfigured station fails
// before anything is emitted.
func New(cycle *domain.ScheduleCycle, templates []*domain.ShiftTemplate, params Parameters) (*Scheduler, error) {
	if cycle == nil {
		return nil, ErrNoCycle
	}
	if len(cycle.OrderDivisionIDs) == 0 {
		return nil, ErrEmptyRotation
	}

	var day, night *domain.ShiftTemplate
	for _, t := range templates {
		switch t.Label {
		case domain.ShiftLabelDay:
			day = t
		case domain.ShiftLabelNight:
			night = t
		}
	}
	if day == nil {
		return nil, ErrMissingDayTemplate
	}
	if night == nil {
		return nil, ErrMissingNightTemplate
	}

	s := &Scheduler{
		cycle:     cycle,
		params:    params,
		startDate: truncateToDay(cycle.StartDate),
	}

	var err error
	if s.dayStart, err = parseClock(day.StartTime); err != nil {
		return nil, err
	}
	if s.dayEnd, err = parseClock(day.EndTime); err != nil {
		return nil, err
	}
	if s.nightStart, err = parseClock(night.StartTime); err != nil {
		return nil, err
	}
	if s.nightEnd, err = parseClock(night.EndTime); err != nil {
		return nil, err
	}

	if s.params.WindowDays <= 0 {
		s.params.WindowDays = DefaultWindowDays
	}
	if s.params.Now == nil {
		s.params.Now = time.Now
	}

	return s, nil
}

// OnDutyDivisions returns the division ids covering the day and night
// shift of the given calendar date. The night index is offset from the
// unwrapped day offset, so a switch interval of 36 hours shifts the night
// division one step ahead of the day division.
func (s *Scheduler) OnDutyDivisions(date time.Time) (dayDivision, nightDivision uuid.UUID) {
	n := len(s.cycle.OrderDivisionIDs)
	diffDays := daysBetween(s.startDate, truncateToDay(date))

	dayDivision = s.cycle.OrderDivisionIDs[wrapIndex(diffDays, n)]
	nightDivision = s.cycle.OrderDivisionIDs[wrapIndex(diffDays+int(s.cycle.SwitchHours)/24, n)]
	return dayDivision, nightDivision
}

// Generate computes the candidate shifts for the whole window: two per
// day, status DRAFT. A division id that resolves to the zero uuid is a
// data anomaly; the affected shift is logged and skipped while the rest
// of the window is still produced.
func (s *Scheduler) Generate() []*domain.Shift {
	today := truncateToDay(s.params.Now())
	shifts := make([]*domain.Shift, 0, 2*s.params.WindowDays)

	for i := 0; i < s.params.WindowDays; i++ {
		date := today.AddDate(0, 0, i)
		dayDivision, nightDivision := s.OnDutyDivisions(date)

		if dayDivision == uuid.Nil {
			slog.Warn("skipping day shift: rotation resolved to no division", "date", date.Format("2006-01-02"))
		} else {
			startsAt := combine(date, s.dayStart)
			endsAt := combine(date, s.dayEnd)
			// a day template that crosses midnight ends on the next day
			if !endsAt.After(startsAt) {
				endsAt = endsAt.AddDate(0, 0, 1)
			}

			shifts = append(shifts, &domain.Shift{
				StationID:  s.cycle.StationID,
				DivisionID: dayDivision,
				StartsAt:   startsAt,
				EndsAt:     endsAt,
				Label:      domain.ShiftLabelDay,
				Status:     domain.ShiftStatusDraft,
			})
		}

		if nightDivision == uuid.Nil {
			slog.Warn("skipping night shift: rotation resolved to no division", "date", date.Format("2006-01-02"))
		} else {
			startsAt := combine(date, s.nightStart)
			// night shifts end on the following day by definition,
			// independent of the template times
			endsAt := combine(date, s.nightEnd).AddDate(0, 0, 1)

			shifts = append(shifts, &domain.Shift{
				StationID:  s.cycle.StationID,
				DivisionID: nightDivision,
				StartsAt:   startsAt,
				EndsAt:     endsAt,
				Label:      domain.ShiftLabelNight,
				Status:     domain.ShiftStatusDraft,
			})
		}
	}

	return shifts
}
