package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

// CreateStationWithAdmin creates a station inside one transaction: the
// organization is created on demand (or the first existing one reused
// when no name is given), and the founding user becomes its ADMIN.
func (r *Repository) CreateStationWithAdmin(station *domain.Station, orgName string, userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var orgID uuid.UUID
	if orgName != "" {
		query := `
			INSERT INTO organizations (name) VALUES ($1) RETURNING id
		`
		if err := tx.QueryRowContext(ctx, query, orgName).Scan(&orgID); err != nil {
			return err
		}
	} else {
		query := `
			SELECT id FROM organizations ORDER BY created_at LIMIT 1
		`
		err := tx.QueryRowContext(ctx, query).Scan(&orgID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			query = `
				INSERT INTO organizations (name) VALUES ('Standard Organisation') RETURNING id
			`
			if err := tx.QueryRowContext(ctx, query).Scan(&orgID); err != nil {
				return err
			}
		case err != nil:
			return err
		}
	}

	station.OrgID = orgID

	query := `
		INSERT INTO stations (org_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, station.OrgID, station.Name).Scan(&station.ID, &station.CreatedAt, &station.Version); err != nil {
		return err
	}

	query = `
		INSERT INTO memberships (user_id, station_id, role)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, query, userID, station.ID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetStationByID(id uuid.UUID) (*domain.Station, error) {
	query := `
		SELECT org_id, name, crest_url, created_at, version
		FROM stations WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	station := &domain.Station{
		ID: id,
	}

	dst := []any{&station.OrgID, &station.Name, &station.CrestURL, &station.CreatedAt, &station.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return station, nil
}

func (r *Repository) GetAllStations() ([]*domain.Station, error) {
	query := `
		SELECT id, org_id, name, crest_url, created_at, version
		FROM stations
		ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := make([]*domain.Station, 0)
	for rows.Next() {
		station := &domain.Station{}
		dst := []any{&station.ID, &station.OrgID, &station.Name, &station.CrestURL, &station.CreatedAt, &station.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stations, nil
}

func (r *Repository) UpdateStation(station *domain.Station) error {
	query := `
		UPDATE stations
		SET
			name = $1,
			crest_url = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{station.Name, station.CrestURL, station.ID, station.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&station.Version); err != nil {
		return err
	}

	return nil
}
