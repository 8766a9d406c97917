package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goodfoods/goodfoods/internal/domain"
)

const (
	bookingPrefix      = "GF-"
	bookingSuffixLen   = 6
	bookingAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	bookingMaxAttempts = 5
)

// CreateReservationInput is a validated-on-entry booking request.
type CreateReservationInput struct {
	SessionID    string
	VenueID      string
	Datetime     string
	PartySize    int
	ContactName  string
	ContactPhone string
	ContactEmail string
	Notes        string
}

// ReservationsUseCase owns the booking lifecycle: validation, booking id
// issuance, persistence, and the best-effort confirmation notification.
// Both the create_reservation tool and the direct HTTP endpoint go
// through this use case.
type ReservationsUseCase struct {
	venues       VenueStore
	reservations ReservationStore
	notifier     NotificationSender
	logger       *slog.Logger
}

// NewReservationsUseCase creates a new ReservationsUseCase.
func NewReservationsUseCase(venues VenueStore, reservations ReservationStore, notifier NotificationSender, logger *slog.Logger) *ReservationsUseCase {
	return &ReservationsUseCase{
		venues:       venues,
		reservations: reservations,
		notifier:     notifier,
		logger:       logger.With("usecase", "Reservations"),
	}
}

// Create validates the request, persists the reservation under a fresh
// booking id, and kicks off the confirmation notification. Nothing is
// written when validation fails. Returns *ValidationError for rejected
// input and ErrVenueNotFound for an unknown venue.
func (uc *ReservationsUseCase) Create(ctx context.Context, in CreateReservationInput) (*domain.Reservation, error) {
	log := uc.logger.With(slog.String("venue_id", in.VenueID), slog.String("session_id", in.SessionID))

	if strings.TrimSpace(in.ContactName) == "" {
		return nil, &ValidationError{Reason: "contact name is required"}
	}
	if strings.TrimSpace(in.ContactPhone) == "" {
		return nil, &ValidationError{Reason: "contact phone is required"}
	}
	if !strings.Contains(in.ContactEmail, "@") {
		return nil, &ValidationError{Reason: "contact email is invalid"}
	}
	if in.PartySize <= 0 {
		return nil, &ValidationError{Reason: "party size must be positive"}
	}

	when, err := parseWhen(in.Datetime)
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("could not parse datetime %q", in.Datetime)}
	}

	venue, err := uc.venues.GetByID(ctx, in.VenueID)
	if err != nil {
		return nil, err
	}
	if in.PartySize > venue.Capacity {
		return nil, &ValidationError{Reason: fmt.Sprintf("party size %d exceeds venue capacity %d", in.PartySize, venue.Capacity)}
	}

	reservation := &domain.Reservation{
		ID:           newRowID(),
		VenueID:      venue.ID,
		VenueName:    venue.Name,
		SessionID:    in.SessionID,
		Time:         when,
		PartySize:    in.PartySize,
		Status:       domain.ReservationConfirmed,
		ContactName:  in.ContactName,
		ContactPhone: in.ContactPhone,
		ContactEmail: in.ContactEmail,
		Notes:        in.Notes,
	}

	// Booking ids are short and random; a collision is unlikely but the
	// store enforces uniqueness, so regenerate and retry instead of
	// assuming it.
	for attempt := 0; ; attempt++ {
		reservation.BookingID = newBookingID()
		err = uc.reservations.Insert(ctx, reservation)
		if err == nil {
			break
		}
		if errors.Is(err, ErrDuplicateBooking) && attempt < bookingMaxAttempts-1 {
			log.Warn("Booking id collision, regenerating", slog.String("booking_id", reservation.BookingID))
			continue
		}
		log.Error("Failed to persist reservation", slog.Any("error", err))
		return nil, fmt.Errorf("failed to persist reservation: %w", err)
	}
	log.Info("Reservation created", slog.String("booking_id", reservation.BookingID), slog.Int("party_size", reservation.PartySize))

	// Fire-and-forget: the reservation is committed, and a failed
	// notification must not delay or invalidate it. The sender already
	// swallows its own errors; we only log the outcome.
	notifyCtx := context.WithoutCancel(ctx)
	confirmation := Confirmation{
		Email:     reservation.ContactEmail,
		Name:      reservation.ContactName,
		BookingID: reservation.BookingID,
		VenueName: reservation.VenueName,
		Time:      reservation.Time,
		PartySize: reservation.PartySize,
		Notes:     reservation.Notes,
	}
	go func() {
		if !uc.notifier.SendConfirmation(notifyCtx, confirmation) {
			uc.logger.Warn("Confirmation notification not delivered", slog.String("booking_id", confirmation.BookingID))
		}
	}()

	return reservation, nil
}

// List returns the session's reservations, excluding cancelled ones,
// newest first.
func (uc *ReservationsUseCase) List(ctx context.Context, sessionID string) ([]domain.Reservation, error) {
	return uc.reservations.ListBySession(ctx, sessionID)
}

// ListAll returns recent reservations across all sessions, for the
// admin view.
func (uc *ReservationsUseCase) ListAll(ctx context.Context, limit int) ([]domain.Reservation, error) {
	if limit <= 0 {
		limit = 100
	}
	return uc.reservations.ListAll(ctx, limit)
}

// Cancel marks a reservation cancelled by its row id. Returns false
// when no such reservation exists.
func (uc *ReservationsUseCase) Cancel(ctx context.Context, id string) (bool, error) {
	ok, err := uc.reservations.Cancel(ctx, id)
	if err != nil {
		uc.logger.Error("Failed to cancel reservation", slog.String("id", id), slog.Any("error", err))
		return false, err
	}
	if ok {
		uc.logger.Info("Reservation cancelled", slog.String("id", id))
	}
	return ok, nil
}

// parseWhen accepts RFC 3339 timestamps with or without a zone offset.
func parseWhen(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

// newRowID issues a store row id, distinct from the booking id.
func newRowID() string {
	return "res_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// newBookingID issues a short human-readable booking reference.
func newBookingID() string {
	buf := make([]byte, bookingSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(fmt.Sprintf("reading random bytes: %v", err))
	}
	suffix := make([]byte, bookingSuffixLen)
	for i, b := range buf {
		suffix[i] = bookingAlphabet[int(b)%len(bookingAlphabet)]
	}
	return bookingPrefix + string(suffix)
}
