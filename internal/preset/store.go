// Package preset persists named filter selections so a saved search can be
// re-applied to the job listing in one step.
package preset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobboard/listing-service/internal/filter"
)

// ErrNotFound is returned when no preset exists with the requested id.
var ErrNotFound = errors.New("preset not found")

// Preset is one saved filter selection.
type Preset struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Filters   filter.State `json:"filters"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Store reads and writes presets in the filter_presets table:
//
//	CREATE TABLE filter_presets (
//	    id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//	    name       TEXT NOT NULL,
//	    filters    JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type Store struct {
	pool *pgxpool.Pool
}

// NewStore returns a Store backed by pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Create inserts a preset and returns it with its generated id.
func (s *Store) Create(ctx context.Context, name string, filters filter.State) (*Preset, error) {
	raw, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("marshal filters: %w", err)
	}

	p := Preset{Name: name, Filters: filters}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO filter_presets (name, filters)
		 VALUES ($1, $2::jsonb)
		 RETURNING id, created_at`,
		name, string(raw),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert preset: %w", err)
	}
	return &p, nil
}

// List returns all presets, newest first.
func (s *Store) List(ctx context.Context) ([]Preset, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, filters, created_at
		 FROM filter_presets
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query presets: %w", err)
	}
	defer rows.Close()

	presets := make([]Preset, 0)
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		presets = append(presets, *p)
	}
	return presets, rows.Err()
}

// Get returns the preset with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Preset, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, filters, created_at
		 FROM filter_presets
		 WHERE id = $1`,
		id,
	)
	p, err := scanPreset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// Delete removes the preset with the given id, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM filter_presets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPreset(row pgx.Row) (*Preset, error) {
	var (
		p   Preset
		raw []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &raw, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan preset: %w", err)
	}
	if err := json.Unmarshal(raw, &p.Filters); err != nil {
		return nil, fmt.Errorf("unmarshal preset filters: %w", err)
	}
	return &p, nil
}
