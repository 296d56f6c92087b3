package utils

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func ValidateShiftTemplateTimes(st *domain.ShiftTemplate) error {
	if _, err := time.Parse("15:04", st.StartTime); err != nil {
		return fmt.Errorf("start time must be in HH:MM format")
	}
	if _, err := time.Parse("15:04", st.EndTime); err != nil {
		return fmt.Errorf("end time must be in HH:MM format")
	}
	return nil
}

// ValidateCycleDivisions checks that every division named in a rotation
// order actually belongs to the station and appears only once.
func ValidateCycleDivisions(orderDivisionIDs []uuid.UUID, stationDivisions []*domain.Division) error {
	if len(orderDivisionIDs) == 0 {
		return fmt.Errorf("rotation order must contain at least one division")
	}

	known := make([]uuid.UUID, 0, len(stationDivisions))
	for _, d := range stationDivisions {
		known = append(known, d.ID)
	}

	seen := make(map[uuid.UUID]bool)
	for _, id := range orderDivisionIDs {
		if !slices.Contains(known, id) {
			return fmt.Errorf("division %s does not belong to this station", id)
		}
		if seen[id] {
			return fmt.Errorf("division %s appears more than once in the rotation order", id)
		}
		seen[id] = true
	}

	return nil
}

// ValidateVehicleLayout rejects layouts whose slot keys collide, across
// both direct slots and Trupp sub-slots.
func ValidateVehicleLayout(layout *domain.VehicleLayout) error {
	seen := make(map[string]bool)

	for _, slot := range layout.Slots {
		if slot.Key == "" {
			return fmt.Errorf("slot key must not be empty")
		}
		if seen[slot.Key] {
			return fmt.Errorf("duplicate slot key %q", slot.Key)
		}
		seen[slot.Key] = true
	}

	for _, trupp := range layout.Trupps {
		if trupp.Key == "" {
			return fmt.Errorf("trupp key must not be empty")
		}
		for _, slot := range trupp.Slots {
			if slot.Key == "" {
				return fmt.Errorf("slot key must not be empty in trupp %q", trupp.Key)
			}
			if seen[slot.Key] {
				return fmt.Errorf("duplicate slot key %q", slot.Key)
			}
			seen[slot.Key] = true
		}
	}

	return nil
}
