package domain

import "github.com/google/uuid"

// The rotation generator requires templates with these two labels to
// exist for a station. Other labels are allowed since the free-form label
// migration, but the generator ignores them.
const (
	ShiftLabelDay   = "DAY"
	ShiftLabelNight = "NIGHT"
)

// ShiftTemplate is a named time-of-day pattern. StartTime and EndTime are
// "HH:MM" wall-clock strings in station-local time; no timezone applies.
type ShiftTemplate struct {
	ID        uuid.UUID `json:"id"`
	StationID uuid.UUID `json:"stationId"`
	Label     string    `json:"label"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Version   int32     `json:"-"`
}
