package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultSwitchHours = 12

// ScheduleCycle anchors the division rotation of a station. At most one
// cycle exists per station (upsert keyed on station_id).
//
// The on-duty division for any date is a pure function of the date,
// StartDate, OrderDivisionIDs and SwitchHours; no per-day state is stored.
type ScheduleCycle struct {
	ID               uuid.UUID   `json:"id"`
	StationID        uuid.UUID   `json:"stationId"`
	StartDate        time.Time   `json:"startDate"`
	OrderDivisionIDs []uuid.UUID `json:"orderDivisionIds"`
	SwitchHours      int32       `json:"switchHours"`
}
