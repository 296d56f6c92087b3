package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func (r *Repository) GetAssignmentsByShift(shiftID uuid.UUID) ([]*domain.Assignment, error) {
	query := `
		SELECT id, vehicle_key, slot_key, person_id, placeholder_text, from_trupp_key, updated_at, updated_by
		FROM assignments
		WHERE shift_id = $1
		ORDER BY vehicle_key, slot_key
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		a := &domain.Assignment{ShiftID: shiftID}
		dst := []any{&a.ID, &a.VehicleKey, &a.SlotKey, &a.PersonID, &a.PlaceholderText, &a.FromTruppKey, &a.UpdatedAt, &a.UpdatedBy}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// UpsertAssignment fills one seat on one vehicle for one shift; saving the
// same seat again overwrites the previous occupant.
func (r *Repository) UpsertAssignment(a *domain.Assignment) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO assignments (shift_id, vehicle_key, slot_key, person_id, placeholder_text, from_trupp_key, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (shift_id, vehicle_key, slot_key) DO UPDATE
		SET
			person_id = EXCLUDED.person_id,
			placeholder_text = EXCLUDED.placeholder_text,
			from_trupp_key = EXCLUDED.from_trupp_key,
			updated_at = now(),
			updated_by = EXCLUDED.updated_by
		RETURNING id, updated_at
	`

	args := []any{a.ShiftID, a.VehicleKey, a.SlotKey, a.PersonID, a.PlaceholderText, a.FromTruppKey, a.UpdatedBy}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.UpdatedAt); err != nil {
		return err
	}

	return nil
}

// IsPersonAssignedElsewhere reports whether the person already occupies a
// different seat on the same shift.
func (r *Repository) IsPersonAssignedElsewhere(shiftID, personID uuid.UUID, vehicleKey, slotKey string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM assignments
			WHERE shift_id = $1
				AND person_id = $2
				AND NOT (vehicle_key = $3 AND slot_key = $4)
		)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var exists bool
	if err := r.dbpool.QueryRowContext(ctx, query, shiftID, personID, vehicleKey, slotKey).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) DeleteAssignment(id uuid.UUID) error {
	query := `
		DELETE FROM assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
