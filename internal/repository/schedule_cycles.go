package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func (r *Repository) GetScheduleCycleByStation(stationID uuid.UUID) (*domain.ScheduleCycle, error) {
	query := `
		SELECT id, start_date, order_division_ids, switch_hours
		FROM schedule_cycles WHERE station_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	sc := &domain.ScheduleCycle{
		StationID: stationID,
	}

	var order []byte
	dst := []any{&sc.ID, &sc.StartDate, &order, &sc.SwitchHours}
	if err := r.dbpool.QueryRowContext(ctx, query, stationID).Scan(dst...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(order, &sc.OrderDivisionIDs); err != nil {
		return nil, err
	}

	return sc, nil
}

// UpsertScheduleCycle stores the rotation anchor for a station. A station
// has at most one cycle, so a second save replaces the first.
func (r *Repository) UpsertScheduleCycle(sc *domain.ScheduleCycle) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	order, err := json.Marshal(sc.OrderDivisionIDs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO schedule_cycles (station_id, start_date, order_division_ids, switch_hours)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (station_id) DO UPDATE
		SET
			start_date = EXCLUDED.start_date,
			order_division_ids = EXCLUDED.order_division_ids,
			switch_hours = EXCLUDED.switch_hours
		RETURNING id
	`

	args := []any{sc.StationID, sc.StartDate, order, sc.SwitchHours}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&sc.ID); err != nil {
		return err
	}

	return nil
}
