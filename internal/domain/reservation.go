package domain

import "time"

// Reservation statuses.
const (
	ReservationConfirmed = "confirmed"
	ReservationPending   = "pending"
	ReservationCancelled = "cancelled"
)

// Reservation is a booked table. ID is the store row id; BookingID is
// the short human-facing reference handed to the guest.
type Reservation struct {
	ID           string    `json:"id"`
	BookingID    string    `json:"booking_id"`
	VenueID      string    `json:"venue_id"`
	VenueName    string    `json:"venue_name"`
	SessionID    string    `json:"-"`
	Time         time.Time `json:"datetime"`
	PartySize    int       `json:"party_size"`
	Status       string    `json:"status"`
	ContactName  string    `json:"-"`
	ContactPhone string    `json:"-"`
	ContactEmail string    `json:"-"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
