package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func (r *Repository) CreateShiftTemplate(st *domain.ShiftTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO shift_templates (station_id, label, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, version
	`

	args := []any{st.StationID, st.Label, st.StartTime, st.EndTime}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&st.ID, &st.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftTemplateByID(id uuid.UUID) (*domain.ShiftTemplate, error) {
	query := `
		SELECT station_id, label, start_time, end_time, version
		FROM shift_templates WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	st := &domain.ShiftTemplate{
		ID: id,
	}

	dst := []any{&st.StationID, &st.Label, &st.StartTime, &st.EndTime, &st.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return st, nil
}

func (r *Repository) GetShiftTemplatesByStation(stationID uuid.UUID) ([]*domain.ShiftTemplate, error) {
	query := `
		SELECT id, label, start_time, end_time, version
		FROM shift_templates
		WHERE station_id = $1
		ORDER BY label
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*domain.ShiftTemplate, 0)
	for rows.Next() {
		st := &domain.ShiftTemplate{StationID: stationID}
		dst := []any{&st.ID, &st.Label, &st.StartTime, &st.EndTime, &st.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		templates = append(templates, st)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *Repository) UpdateShiftTemplate(st *domain.ShiftTemplate) error {
	query := `
		UPDATE shift_templates
		SET
			label = $1,
			start_time = $2,
			end_time = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{st.Label, st.StartTime, st.EndTime, st.ID, st.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&st.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShiftTemplate(id uuid.UUID) error {
	query := `
		DELETE FROM shift_templates WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
