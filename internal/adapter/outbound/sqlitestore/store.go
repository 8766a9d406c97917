// Package sqlitestore persists venues and reservations in SQLite using
// the pure-Go modernc.org/sqlite driver. Conflicting writes serialize
// at the database's own transaction boundary; callers get at least
// request-scoped atomicity for a single insert.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// Store wraps the shared database handle. The schema is owned by the
// application and applied on open.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens the SQLite database at path, creating the file and schema
// if missing.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database %q: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db, logger: logger.With("component", "sqlite_store")}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Venues returns the venue store backed by this database.
func (s *Store) Venues() *VenueStore {
	return &VenueStore{db: s.db, logger: s.logger}
}

// Reservations returns the reservation store backed by this database.
func (s *Store) Reservations() *ReservationStore {
	return &ReservationStore{db: s.db, logger: s.logger}
}
