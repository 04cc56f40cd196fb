package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
	"github.com/ericfisherdev/quickdynalist/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.LocationStore = (*LocationRepo)(nil)

// LocationRepo is the SQLite implementation of the LocationStore port interface.
type LocationRepo struct {
	db *DB
}

// NewLocationRepo creates a new LocationRepo.
func NewLocationRepo(db *DB) *LocationRepo {
	return &LocationRepo{db: db}
}

// ReplaceAll deletes every stored location and inserts the given list in a
// single transaction. Position records the list order.
func (r *LocationRepo) ReplaceAll(ctx context.Context, locations []model.Location) (err error) {
	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace locations: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM locations`); err != nil {
		return fmt.Errorf("clear locations: %w", err)
	}

	const insert = `INSERT INTO locations (name, file_id, node_id, is_inbox, children_count, position, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert location: %w", err)
	}
	defer stmt.Close()

	for i, loc := range locations {
		if _, err = stmt.ExecContext(ctx, loc.Name, loc.FileID, loc.NodeID, loc.IsInbox, loc.ChildrenCount, i); err != nil {
			return fmt.Errorf("insert location %q: %w", loc.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace locations: %w", err)
	}
	return nil
}

// ListAll returns all stored locations ordered by position.
func (r *LocationRepo) ListAll(ctx context.Context) ([]model.Location, error) {
	const query = `SELECT id, name, file_id, node_id, is_inbox, children_count, position, updated_at
		FROM locations ORDER BY position`
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := []model.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locations: %w", err)
	}

	return locations, nil
}

// GetByName returns the first location (by position) whose name matches
// case-insensitively. Returns (nil, nil) if none matches.
func (r *LocationRepo) GetByName(ctx context.Context, name string) (*model.Location, error) {
	const query = `SELECT id, name, file_id, node_id, is_inbox, children_count, position, updated_at
		FROM locations WHERE name = ? COLLATE NOCASE ORDER BY position LIMIT 1`
	loc, err := scanLocation(r.db.Reader.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get location %q: %w", name, err)
	}
	return &loc, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (model.Location, error) {
	var loc model.Location
	var updatedAt string
	if err := row.Scan(&loc.ID, &loc.Name, &loc.FileID, &loc.NodeID, &loc.IsInbox, &loc.ChildrenCount, &loc.Position, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return loc, err
		}
		return loc, fmt.Errorf("scan location: %w", err)
	}

	parsed, err := parseTime(updatedAt)
	if err != nil {
		return loc, fmt.Errorf("parse updated_at for location %q: %w", loc.Name, err)
	}
	loc.UpdatedAt = parsed
	return loc, nil
}
