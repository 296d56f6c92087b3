package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func (r *Repository) CreateDivision(d *domain.Division) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO divisions (station_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	args := []any{d.StationID, d.Name, d.Color}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.CreatedAt, &d.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDivisionByID(id uuid.UUID) (*domain.Division, error) {
	query := `
		SELECT station_id, name, color, created_at, version
		FROM divisions WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	d := &domain.Division{
		ID: id,
	}

	dst := []any{&d.StationID, &d.Name, &d.Color, &d.CreatedAt, &d.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return d, nil
}

func (r *Repository) GetDivisionsByStation(stationID uuid.UUID) ([]*domain.Division, error) {
	query := `
		SELECT id, name, color, created_at, version
		FROM divisions
		WHERE station_id = $1
		ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	divisions := make([]*domain.Division, 0)
	for rows.Next() {
		d := &domain.Division{StationID: stationID}
		dst := []any{&d.ID, &d.Name, &d.Color, &d.CreatedAt, &d.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		divisions = append(divisions, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return divisions, nil
}

func (r *Repository) UpdateDivision(d *domain.Division) error {
	query := `
		UPDATE divisions
		SET
			name = $1,
			color = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{d.Name, d.Color, d.ID, d.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&d.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteDivision(id uuid.UUID) error {
	query := `
		DELETE FROM divisions WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
