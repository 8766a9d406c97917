package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodfoods/goodfoods/internal/domain"
)

// Standard errors returned by use cases and adapters.
var (
	ErrVenueNotFound       = errors.New("venue not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrDuplicateBooking    = errors.New("duplicate booking id")
	// ErrUpstream marks failures of the remote model provider. The
	// orchestrator does not retry: replaying a tool-invoking turn risks
	// duplicate side effects such as a double booking.
	ErrUpstream = errors.New("model provider error")
)

// ValidationError rejects a reservation before it reaches the store
// (party size over capacity, unparseable datetime, missing contact info).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// VenueFilter narrows a venue search. Zero values mean "no filter";
// callers must never pass an empty string as a filter value.
type VenueFilter struct {
	Cuisine     string
	City        string
	MinCapacity int
	PriceTier   int
	Limit       int
}

// VenueStore is the venue persistence collaborator. Search results are
// ordered by descending rating with ties broken by the store's natural
// order, so repeated identical calls return identical sequences.
type VenueStore interface {
	Search(ctx context.Context, filter VenueFilter) ([]domain.Venue, error)
	GetByID(ctx context.Context, id string) (*domain.Venue, error)
}

// ReservationStore is the reservation persistence collaborator.
// Insert must fail with ErrDuplicateBooking when the booking id is
// already taken, so the caller can regenerate and retry.
type ReservationStore interface {
	Insert(ctx context.Context, r *domain.Reservation) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.Reservation, error)
	ListAll(ctx context.Context, limit int) ([]domain.Reservation, error)
	Cancel(ctx context.Context, id string) (bool, error)
}

// Confirmation carries everything the notification sender needs for a
// booking confirmation message.
type Confirmation struct {
	Email     string
	Name      string
	BookingID string
	VenueName string
	Time      time.Time
	PartySize int
	Notes     string
}

// NotificationSender delivers best-effort confirmation messages. It
// reports success or failure but never lets an error escape its own
// boundary; a failed send must not downgrade a committed reservation.
type NotificationSender interface {
	SendConfirmation(ctx context.Context, c Confirmation) bool
}

// ChatModel is the model gateway: one system turn plus the running
// conversation in, free text or tool calls out. Implementations wrap
// the remote chat-completion endpoint and translate provider failures
// to ErrUpstream.
type ChatModel interface {
	Converse(ctx context.Context, messages []domain.ChatMessage, tools []domain.Tool) (domain.ModelTurn, error)
}
