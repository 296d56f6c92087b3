package domain

import (
	"time"

	"github.com/google/uuid"
)

type ShiftStatus string

const (
	ShiftStatusDraft     ShiftStatus = "DRAFT"     // created by the generator
	ShiftStatusPublished ShiftStatus = "PUBLISHED" // created by hand
)

// Shift is a materialized duty slot. Its natural key is
// (DivisionID, StartsAt); the generator relies on that uniqueness to stay
// idempotent. StartsAt/EndsAt are naive local timestamps.
type Shift struct {
	ID           uuid.UUID   `json:"id"`
	StationID    uuid.UUID   `json:"stationId"`
	DivisionID   uuid.UUID   `json:"divisionId"`
	DivisionName string      `json:"divisionName,omitempty"`
	StartsAt     time.Time   `json:"startsAt"`
	EndsAt       time.Time   `json:"endsAt"`
	Label        string      `json:"label"`
	Status       ShiftStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
}
