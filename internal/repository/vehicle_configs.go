package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func (r *Repository) CreateVehicleConfig(v *domain.VehicleConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	layout, err := json.Marshal(v.Layout)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO vehicle_configs (station_id, key, title, position, config, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	args := []any{v.StationID, v.Key, v.Title, v.Position, layout, v.ImageURL}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&v.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetVehicleConfigByID(id uuid.UUID) (*domain.VehicleConfig, error) {
	query := `
		SELECT station_id, key, title, position, config, image_url
		FROM vehicle_configs WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	v := &domain.VehicleConfig{
		ID: id,
	}

	var layout []byte
	dst := []any{&v.StationID, &v.Key, &v.Title, &v.Position, &layout, &v.ImageURL}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(layout, &v.Layout); err != nil {
		return nil, err
	}

	return v, nil
}

func (r *Repository) GetVehicleConfigsByStation(stationID uuid.UUID) ([]*domain.VehicleConfig, error) {
	query := `
		SELECT id, key, title, position, config, image_url
		FROM vehicle_configs
		WHERE station_id = $1
		ORDER BY position, key
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]*domain.VehicleConfig, 0)
	for rows.Next() {
		v := &domain.VehicleConfig{StationID: stationID}
		var layout []byte
		dst := []any{&v.ID, &v.Key, &v.Title, &v.Position, &layout, &v.ImageURL}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(layout, &v.Layout); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vehicles, nil
}

func (r *Repository) UpdateVehicleConfig(v *domain.VehicleConfig) error {
	query := `
		UPDATE vehicle_configs
		SET
			key = $1,
			title = $2,
			config = $3,
			image_url = $4
		WHERE id = $5
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	layout, err := json.Marshal(v.Layout)
	if err != nil {
		return err
	}

	args := []any{v.Key, v.Title, layout, v.ImageURL, v.ID}
	if _, err := r.dbpool.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

// UpdateVehicleOrder rewrites the display positions of a station's
// vehicles in one transaction; ids come in their new order.
func (r *Repository) UpdateVehicleOrder(stationID uuid.UUID, orderedIDs []uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE vehicle_configs SET position = $1 WHERE id = $2 AND station_id = $3
	`
	for i, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx, query, int32(i), id, stationID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteVehicleConfig(id uuid.UUID) error {
	query := `
		DELETE FROM vehicle_configs WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
