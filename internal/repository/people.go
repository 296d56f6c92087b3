package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/wachplan-dev/wachplan/backend/internal/domain"
)

// tags are stored as a jsonb array so the roster can carry free-form
// qualification markers (AGT, Maschinist, ...) without a junction table

func (r *Repository) CreatePerson(p *domain.Person) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO people (station_id, name, photo_url, rank, tags, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	args := []any{p.StationID, p.Name, p.PhotoURL, p.Rank, tags, p.Active}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPersonByID(id uuid.UUID) (*domain.Person, error) {
	query := `
		SELECT station_id, name, photo_url, rank, tags, active, created_at, version
		FROM people WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	p := &domain.Person{
		ID: id,
	}

	var tags []byte
	dst := []any{&p.StationID, &p.Name, &p.PhotoURL, &p.Rank, &tags, &p.Active, &p.CreatedAt, &p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repository) GetPeopleByStation(stationID uuid.UUID) ([]*domain.Person, error) {
	query := `
		SELECT id, name, photo_url, rank, tags, active, created_at, version
		FROM people
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

	people := make([]*domain.Person, 0)
	for rows.Next() {
		p := &domain.Person{StationID: stationID}
		var tags []byte
		dst := []any{&p.ID, &p.Name, &p.PhotoURL, &p.Rank, &tags, &p.Active, &p.CreatedAt, &p.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return nil, err
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return people, nil
}

func (r *Repository) UpdatePerson(p *domain.Person) error {
	query := `
		UPDATE people
		SET
			name = $1,
			photo_url = $2,
			rank = $3,
			tags = $4,
			active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return err
	}

	args := []any{p.Name, p.PhotoURL, p.Rank, tags, p.Active, p.ID, p.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&p.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeletePerson(id uuid.UUID) error {
	query := `
		DELETE FROM people WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
