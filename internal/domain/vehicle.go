package domain

import "github.com/google/uuid"

// VehicleSlot is one seat on a vehicle (e.g. "MA", "GF", "AGT1").
type VehicleSlot struct {
	Key         string `json:"key"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// VehicleTrupp groups slots that are staffed together and can be copied
// between shifts as a unit.
type VehicleTrupp struct {
	Key         string        `json:"key"`
	Label       string        `json:"label"`
	Description string        `json:"description,omitempty"`
	Slots       []VehicleSlot `json:"slots"`
}

// VehicleLayout is the jsonb config column of a vehicle.
type VehicleLayout struct {
	Slots  []VehicleSlot  `json:"slots,omitempty"`
	Trupps []VehicleTrupp `json:"trupps,omitempty"`
}

type VehicleConfig struct {
	ID        uuid.UUID     `json:"id"`
	StationID uuid.UUID     `json:"stationId"`
	Key       string        `json:"key"`
	Title     string        `json:"title"`
	Position  int32         `json:"position"`
	Layout    VehicleLayout `json:"config"`
	ImageURL  *string       `json:"imageUrl"`
}
