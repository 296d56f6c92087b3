package domain

import (
	"time"

	"github.com/google/uuid"
)

// Person is a roster member of a station. People are assigned to vehicle
// slots within shifts; they are not login users.
type Person struct {
	ID        uuid.UUID `json:"id"`
	StationID uuid.UUID `json:"stationId"`
	Name      string    `json:"name"`
	PhotoURL  *string   `json:"photoUrl"`
	Rank      *string   `json:"rank"`
	Tags      []string  `json:"tags"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
