package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func (r *Repository) CreateShift(s *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO shifts (station_id, division_id, starts_at, ends_at, label, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	args := []any{s.StationID, s.DivisionID, s.StartsAt, s.EndsAt, s.Label, s.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		return err
	}

	return nil
}

// InsertShiftsSkipConflicts writes a generated batch in one statement and
// lets the unique index on (division_id, starts_at) swallow rows that
// already exist. Returns the number of rows actually inserted.
func (r *Repository) InsertShiftsSkipConflicts(shifts []*domain.Shift) (int64, error) {
	if len(shifts) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	var sb strings.Builder
	sb.WriteString(`INSERT INTO shifts (station_id, division_id, starts_at, ends_at, label, status) VALUES `)

	args := make([]any, 0, len(shifts)*6)
	for i, s := range shifts {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args, s.StationID, s.DivisionID, s.StartsAt, s.EndsAt, s.Label, s.Status)
	}

	sb.WriteString(` ON CONFLICT (division_id, starts_at) DO NOTHING`)

	result, err := r.dbpool.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func (r *Repository) GetShiftByID(id uuid.UUID) (*domain.Shift, error) {
	query := `
		SELECT s.station_id, s.division_id, d.name, s.starts_at, s.ends_at, s.label, s.status, s.created_at
		FROM shifts s
		JOIN divisions d ON d.id = s.division_id
		WHERE s.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	s := &domain.Shift{
		ID: id,
	}

	dst := []any{&s.StationID, &s.DivisionID, &s.DivisionName, &s.StartsAt, &s.EndsAt, &s.Label, &s.Status, &s.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return s, nil
}

func (r *Repository) GetShiftsByStation(stationID uuid.UUID, from, to time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT s.id, s.division_id, d.name, s.starts_at, s.ends_at, s.label, s.status, s.created_at
		FROM shifts s
		JOIN divisions d ON d.id = s.division_id
		WHERE s.station_id = $1 AND s.starts_at >= $2 AND s.starts_at < $3
		ORDER BY s.starts_at, s.label
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, stationID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		s := &domain.Shift{StationID: stationID}
		dst := []any{&s.ID, &s.DivisionID, &s.DivisionName, &s.StartsAt, &s.EndsAt, &s.Label, &s.Status, &s.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) UpdateShift(s *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			division_id = $1,
			starts_at = $2,
			ends_at = $3,
			label = $4,
			status = $5
		WHERE id = $6
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{s.DivisionID, s.StartsAt, s.EndsAt, s.Label, s.Status, s.ID}
	if _, err := r.dbpool.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id uuid.UUID) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// DuplicateShift copies a shift 24 hours forward together with its crew
// assignments, in one transaction.
func (r *Repository) DuplicateShift(id uuid.UUID, updatedBy uuid.UUID) (*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	copyQuery := `
		INSERT INTO shifts (station_id, division_id, starts_at, ends_at, label, status)
		SELECT station_id, division_id, starts_at + interval '1 day', ends_at + interval '1 day', label, status
		FROM shifts WHERE id = $1
		RETURNING id, station_id, division_id, starts_at, ends_at, label, status, created_at
	`

	s := &domain.Shift{}
	dst := []any{&s.ID, &s.StationID, &s.DivisionID, &s.StartsAt, &s.EndsAt, &s.Label, &s.Status, &s.CreatedAt}
	if err := tx.QueryRowContext(ctx, copyQuery, id).Scan(dst...); err != nil {
		return nil, err
	}

	assignmentsQuery := `
		INSERT INTO assignments (shift_id, vehicle_key, slot_key, person_id, placeholder_text, from_trupp_key, updated_by)
		SELECT $1, vehicle_key, slot_key, person_id, placeholder_text, from_trupp_key, $2
		FROM assignments WHERE shift_id = $3
	`

	if _, err := tx.ExecContext(ctx, assignmentsQuery, s.ID, updatedBy, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s, nil
}

// GetCurrentAndNextShifts serves the wall display: the shift covering the
// given instant plus the one starting next, per label. DRAFT shifts are
// served too, so the display works right after a generation run.
func (r *Repository) GetCurrentAndNextShifts(stationID uuid.UUID, at time.Time) ([]*domain.Shift, error) {
	query := `
		SELECT s.id, s.division_id, d.name, s.starts_at, s.ends_at, s.label, s.status, s.created_at
		FROM shifts s
		JOIN divisions d ON d.id = s.division_id
		WHERE s.station_id = $1
			AND s.ends_at > $2
			AND s.starts_at < $3
		ORDER BY s.starts_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	horizon := at.Add(36 * time.Hour)
	rows, err := r.dbpool.QueryContext(ctx, query, stationID, at, horizon)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		s := &domain.Shift{StationID: stationID}
		dst := []any{&s.ID, &s.DivisionID, &s.DivisionName, &s.StartsAt, &s.EndsAt, &s.Label, &s.Status, &s.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
