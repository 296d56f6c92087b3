package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func (r *Repository) CreateMembership(m *domain.Membership) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO memberships (user_id, station_id, division_id, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	args := []any{m.UserID, m.StationID, m.DivisionID, m.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetMembershipByUserID(userID uuid.UUID) (*domain.Membership, error) {
	query := `
		SELECT id, station_id, division_id, role, created_at
		FROM memberships WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	m := &domain.Membership{
		UserID: userID,
	}

	dst := []any{&m.ID, &m.StationID, &m.DivisionID, &m.Role, &m.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(dst...); err != nil {
		return nil, err
	}

	return m, nil
}

func (r *Repository) GetStationMembers(stationID uuid.UUID) ([]*domain.StationMember, error) {
	query := `
		SELECT m.id, m.user_id, m.division_id, m.role, m.created_at, u.name, u.email
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		WHERE m.station_id = $1
		ORDER BY u.name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.StationMember, 0)
	for rows.Next() {
		member := &domain.StationMember{}
		member.StationID = stationID
		dst := []any{&member.ID, &member.UserID, &member.DivisionID, &member.Role, &member.CreatedAt, &member.Name, &member.Email}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *Repository) GetMembershipByID(id uuid.UUID) (*domain.Membership, error) {
	query := `
		SELECT user_id, station_id, division_id, role, created_at
		FROM memberships WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	m := &domain.Membership{
		ID: id,
	}

	dst := []any{&m.UserID, &m.StationID, &m.DivisionID, &m.Role, &m.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return m, nil
}

func (r *Repository) UpdateMembership(m *domain.Membership) error {
	query := `
		UPDATE memberships
		SET role = $1, division_id = $2
		WHERE id = $3
		RETURNING created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, m.Role, m.DivisionID, m.ID).Scan(&m.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteMembership(id uuid.UUID) error {
	query := `
		DELETE FROM memberships WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
