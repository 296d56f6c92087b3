package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func TestValidateShiftTemplateTimes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"valid day times", "07:00", "19:00", false},
		{"valid crossing midnight", "19:00", "07:00", false},
		{"missing minutes", "7", "19:00", true},
		{"hour out of range", "25:00", "07:00", true},
		{"empty end", "07:00", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &domain.ShiftTemplate{StartTime: tt.start, EndTime: tt.end}
			err := ValidateShiftTemplateTimes(st)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCycleDivisions(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	stationDivisions := []*domain.Division{{ID: a}, {ID: b}}

	tests := []struct {
		name    string
		order   []uuid.UUID
		wantErr bool
	}{
		{"all known", []uuid.UUID{a, b}, false},
		{"single division", []uuid.UUID{b}, false},
		{"empty order", nil, true},
		{"foreign division", []uuid.UUID{a, uuid.New()}, true},
		{"duplicate entry", []uuid.UUID{a, a}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCycleDivisions(tt.order, stationDivisions)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateVehicleLayout(t *testing.T) {
	tests := []struct {
		name    string
		layout  domain.VehicleLayout
		wantErr bool
	}{
		{
			"slots and trupps disjoint",
			domain.VehicleLayout{
				Slots: []domain.VehicleSlot{{Key: "maschinist"}, {Key: "gf"}},
				Trupps: []domain.VehicleTrupp{
					{Key: "angriffstrupp", Slots: []domain.VehicleSlot{{Key: "atf"}, {Key: "atm"}}},
				},
			},
			false,
		},
		{
			"duplicate across slot and trupp",
			domain.VehicleLayout{
				Slots: []domain.VehicleSlot{{Key: "gf"}},
				Trupps: []domain.VehicleTrupp{
					{Key: "wassertrupp", Slots: []domain.VehicleSlot{{Key: "gf"}}},
				},
			},
			true,
		},
		{
			"empty slot key",
			domain.VehicleLayout{Slots: []domain.VehicleSlot{{Key: ""}}},
			true,
		},
		{
			"empty trupp key",
			domain.VehicleLayout{Trupps: []domain.VehicleTrupp{{Key: ""}}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVehicleLayout(&tt.layout)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
