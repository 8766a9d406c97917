package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/goodfoods/goodfoods/internal/domain"
	"github.com/goodfoods/goodfoods/internal/usecase"
)

// ReservationStore implements usecase.ReservationStore against SQLite.
type ReservationStore struct {
	db     *sql.DB
	logger *slog.Logger
}

const reservationColumns = "id, booking_id, venue_id, venue_name, session_id, datetime, party_size, status, contact_name, contact_phone, contact_email, notes, created_at, updated_at"

// Insert persists a reservation. The unique index on booking_id is the
// collision check: a duplicate surfaces as usecase.ErrDuplicateBooking
// so the caller can regenerate the id and retry.
func (s *ReservationStore) Insert(ctx context.Context, r *domain.Reservation) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.BookingID, r.VenueID, r.VenueName, r.SessionID,
		r.Time.Format(time.RFC3339), r.PartySize, r.Status,
		r.ContactName, r.ContactPhone, r.ContactEmail, r.Notes,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: reservations.booking_id") {
			return usecase.ErrDuplicateBooking
		}
		return fmt.Errorf("inserting reservation %q: %w", r.ID, err)
	}
	r.CreatedAt = now
	r.UpdatedAt = now
	s.logger.Debug("Reservation inserted", slog.String("booking_id", r.BookingID))
	return nil
}

// ListBySession returns the session's non-cancelled reservations,
// newest first.
func (s *ReservationStore) ListBySession(ctx context.Context, sessionID string) ([]domain.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reservationColumns+` FROM reservations
		WHERE session_id = ? AND status != ?
		ORDER BY datetime DESC`,
		sessionID, domain.ReservationCancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("listing reservations for session: %w", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

// ListAll returns recent reservations across all sessions.
func (s *ReservationStore) ListAll(ctx context.Context, limit int) ([]domain.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reservationColumns+` FROM reservations
		ORDER BY datetime DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

// Cancel marks a reservation cancelled. Returns false when no row with
// that id exists.
func (s *ReservationStore) Cancel(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reservations SET status = ?, updated_at = ? WHERE id = ?`,
		domain.ReservationCancelled, time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return false, fmt.Errorf("cancelling reservation %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("cancelling reservation %q: %w", id, err)
	}
	return n > 0, nil
}

func collectReservations(rows *sql.Rows) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for rows.Next() {
		var r domain.Reservation
		var notes sql.NullString
		var when, createdAt, updatedAt string
		err := rows.Scan(&r.ID, &r.BookingID, &r.VenueID, &r.VenueName, &r.SessionID,
			&when, &r.PartySize, &r.Status,
			&r.ContactName, &r.ContactPhone, &r.ContactEmail, &notes,
			&createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning reservation: %w", err)
		}
		r.Notes = notes.String
		r.Time, _ = time.Parse(time.RFC3339, when)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservations: %w", err)
	}
	return out, nil
}
