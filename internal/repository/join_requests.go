package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

func (r *Repository) CreateJoinRequest(jr *domain.JoinRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO join_requests (user_id, station_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	args := []any{jr.UserID, jr.StationID, jr.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&jr.ID, &jr.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetJoinRequestByID(id uuid.UUID) (*domain.JoinRequest, error) {
	query := `
		SELECT jr.user_id, jr.station_id, jr.status, jr.created_at, u.name, u.email
		FROM join_requests jr
		JOIN users u ON u.id = jr.user_id
		WHERE jr.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	jr := &domain.JoinRequest{
		ID: id,
	}

	dst := []any{&jr.UserID, &jr.StationID, &jr.Status, &jr.CreatedAt, &jr.UserName, &jr.UserEmail}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return jr, nil
}

func (r *Repository) GetPendingJoinRequests(stationID uuid.UUID) ([]*domain.JoinRequest, error) {
	query := `
		SELECT jr.id, jr.user_id, jr.status, jr.created_at, u.name, u.email
		FROM join_requests jr
		JOIN users u ON u.id = jr.user_id
		WHERE jr.station_id = $1 AND jr.status = $2
		ORDER BY jr.created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, stationID, domain.JoinRequestPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.JoinRequest, 0)
	for rows.Next() {
		jr := &domain.JoinRequest{StationID: stationID}
		dst := []any{&jr.ID, &jr.UserID, &jr.Status, &jr.CreatedAt, &jr.UserName, &jr.UserEmail}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requests = append(requests, jr)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *Repository) UpdateJoinRequestStatus(id uuid.UUID, status domain.JoinRequestStatus) error {
	query := `
		UPDATE join_requests SET status = $1 WHERE id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, status, id); err != nil {
		return err
	}

	return nil
}
