package domain

import (
	"time"

	"github.com/google/uuid"
)

// Assignment binds a person (or a free-text placeholder) to one vehicle
// slot within a shift. Key: (ShiftID, VehicleKey, SlotKey).
type Assignment struct {
	ID              uuid.UUID  `json:"id"`
	ShiftID         uuid.UUID  `json:"shiftId"`
	VehicleKey      string     `json:"vehicleKey"`
	SlotKey         string     `json:"slotKey"`
	PersonID        *uuid.UUID `json:"personId"`
	PlaceholderText *string    `json:"placeholderText"`
	FromTruppKey    *string    `json:"fromTruppKey"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	UpdatedBy       *uuid.UUID `json:"updatedBy"`
}
