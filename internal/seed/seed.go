package seed

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
	"github.com/wachplan-dev/wachplan/backend/internal/repository"
	"github.com/wachplan-dev/wachplan/backend/internal/utils"
)

var demoDivisions = []struct {
	name  string
	color string
}{
	{"Wachabteilung A", "#e11d48"},
	{"Wachabteilung B", "#2563eb"},
	{"Wachabteilung C", "#16a34a"},
	{"Wachabteilung D", "#d97706"},
}

var demoVehicles = []domain.VehicleConfig{
	{
		Key:      "hlf20",
		Title:    "HLF 20",
		Position: 0,
		Layout: domain.VehicleLayout{
			Slots: []domain.VehicleSlot{
				{Key: "ma", Label: "Maschinist"},
				{Key: "gf", Label: "Gruppenführer"},
			},
			Trupps: []domain.VehicleTrupp{
				{
					Key:   "angriffstrupp",
					Label: "Angriffstrupp",
					Slots: []domain.VehicleSlot{
						{Key: "atf", Label: "Truppführer"},
						{Key: "atm", Label: "Truppmann"},
					},
				},
				{
					Key:   "wassertrupp",
					Label: "Wassertrupp",
					Slots: []domain.VehicleSlot{
						{Key: "wtf", Label: "Truppführer"},
						{Key: "wtm", Label: "Truppmann"},
					},
				},
			},
		},
	},
	{
		Key:      "dlk23",
		Title:    "DLK 23/12",
		Position: 1,
		Layout: domain.VehicleLayout{
			Slots: []domain.VehicleSlot{
				{Key: "ma", Label: "Maschinist"},
				{Key: "df", Label: "Drehleiterführer"},
			},
		},
	},
	{
		Key:      "rtb",
		Title:    "RTB 2",
		Position: 2,
		Layout: domain.VehicleLayout{
			Slots: []domain.VehicleSlot{
				{Key: "bf", Label: "Bootsführer"},
				{Key: "bm", Label: "Bootsmann"},
			},
		},
	},
}

// SeedDemoStation builds a complete demo station owned by the given user:
// four divisions in rotation, DAY/NIGHT templates, a rotation anchored on
// today, a small roster and the vehicle fleet.
func SeedDemoStation(r *repository.Repository, adminUserID uuid.UUID, peoplePerDivision int) {
	station := &domain.Station{Name: "Feuerwache Mitte"}
	if err := r.CreateStationWithAdmin(station, "Freiwillige Feuerwehr Demo", adminUserID); err != nil {
		slog.Error("failed to create demo station", "error", err)
		return
	}
	slog.Info("created demo station", "id", station.ID)

	orderDivisionIDs := make([]uuid.UUID, 0, len(demoDivisions))
	for _, dd := range demoDivisions {
		color := dd.color
		division := &domain.Division{
			StationID: station.ID,
			Name:      dd.name,
			Color:     &color,
		}
		if err := r.CreateDivision(division); err != nil {
			slog.Error("failed to create division", "name", dd.name, "error", err)
			return
		}
		orderDivisionIDs = append(orderDivisionIDs, division.ID)
	}

	templates := []*domain.ShiftTemplate{
		{StationID: station.ID, Label: domain.ShiftLabelDay, StartTime: "07:00", EndTime: "19:00"},
		{StationID: station.ID, Label: domain.ShiftLabelNight, StartTime: "19:00", EndTime: "07:00"},
	}
	for _, st := range templates {
		if err := r.CreateShiftTemplate(st); err != nil {
			slog.Error("failed to create shift template", "label", st.Label, "error", err)
			return
		}
	}

	cycle := &domain.ScheduleCycle{
		StationID:        station.ID,
		StartDate:        time.Now().UTC().Truncate(24 * time.Hour),
		OrderDivisionIDs: orderDivisionIDs,
		SwitchHours:      domain.DefaultSwitchHours,
	}
	if err := r.UpsertScheduleCycle(cycle); err != nil {
		slog.Error("failed to create rotation", "error", err)
		return
	}

	cnt := 0
	for i := 0; i < len(demoDivisions)*peoplePerDivision; i++ {
		person := utils.GenerateRandomPerson()
		person.StationID = station.ID
		if err := r.CreatePerson(person); err != nil {
			slog.Error("failed to create person", "error", err)
			continue
		}
		cnt++
	}
	slog.Info("seeded roster", "count", cnt)

	for _, dv := range demoVehicles {
		vehicle := dv
		vehicle.StationID = station.ID
		if err := r.CreateVehicleConfig(&vehicle); err != nil {
			slog.Error("failed to create vehicle", "key", vehicle.Key, "error", err)
			return
		}
	}

	slog.Info("demo station ready", "stationID", station.ID)
}
