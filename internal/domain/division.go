package domain

import (
	"time"

	"github.com/google/uuid"
)

// Division is a Wachabteilung, the unit the rotation cycles through.
type Division struct {
	ID        uuid.UUID `json:"id"`
	StationID uuid.UUID `json:"stationId"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
