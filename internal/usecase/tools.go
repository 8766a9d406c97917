package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goodfoods/goodfoods/internal/domain"
)

// searchPageSize bounds every venue search issued on the model's behalf.
const searchPageSize = 10

// DefaultRegistry assembles the four reservation-assistant tools.
func DefaultRegistry(venues VenueStore, reservations *ReservationsUseCase, logger *slog.Logger) (*Registry, error) {
	return NewRegistry(
		&searchVenuesTool{venues: venues, logger: logger},
		&venueDetailsTool{venues: venues, logger: logger},
		&checkAvailabilityTool{venues: venues, logger: logger},
		&createReservationTool{reservations: reservations, logger: logger},
	)
}

// --- search_venues ---

type searchVenuesTool struct {
	venues VenueStore
	logger *slog.Logger
}

func (t *searchVenuesTool) Spec() domain.Tool {
	return domain.Tool{
		Name:        "search_venues",
		Description: "Search for restaurants based on criteria like cuisine and location. Use this when users ask to find restaurants.",
		InputSchema: domain.JSONSchemaProps{
			Type: "object",
			Properties: map[string]domain.JSONSchemaProps{
				"cuisine": {
					Type:        "string",
					Description: "Type of cuisine (e.g., Italian, Indian, Chinese, French). Omit this field entirely if the user did not specify one; never send an empty string.",
				},
				"city": {
					Type:        "string",
					Description: "City or location. Omit this field entirely if the user did not specify one; never send an empty string.",
				},
			},
			Required: []string{},
		},
	}
}

func (t *searchVenuesTool) Execute(ctx context.Context, sessionID string, args Arguments) domain.ToolResult {
	// Blank or absent filters are coerced to "no filter"; an empty
	// string must never reach the store as a filter value.
	filter := VenueFilter{
		Cuisine: args.OptionalString("cuisine"),
		City:    args.OptionalString("city"),
		Limit:   searchPageSize,
	}

	venues, err := t.venues.Search(ctx, filter)
	if err != nil {
		t.logger.Error("Venue search failed", slog.Any("error", err))
		return domain.ToolResult{
			Tool:    "search_venues",
			Err:     domain.ToolErrorInternal,
			Message: "Something went wrong while searching for restaurants. Please try again.",
		}
	}

	summaries := make([]domain.VenueSummary, 0, len(venues))
	for _, v := range venues {
		summaries = append(summaries, v.Summary())
	}

	msg := fmt.Sprintf("Found %d restaurants matching your criteria.", len(summaries))
	if len(summaries) == 0 {
		msg = "I couldn't find any restaurants matching that search. Want to try different criteria?"
	}
	return domain.ToolResult{Tool: "search_venues", Venues: summaries, Message: msg}
}

// --- get_venue_details ---

type venueDetailsTool struct {
	venues VenueStore
	logger *slog.Logger
}

func (t *venueDetailsTool) Spec() domain.Tool {
	return domain.Tool{
		Name:        "get_venue_details",
		Description: "Get detailed information about a specific restaurant",
		InputSchema: domain.JSONSchemaProps{
			Type: "object",
			Properties: map[string]domain.JSONSchemaProps{
				"venue_id": {
					Type:        "string",
					Description: "The unique ID of the venue",
				},
			},
			Required: []string{"venue_id"},
		},
	}
}

func (t *venueDetailsTool) Execute(ctx context.Context, sessionID string, args Arguments) domain.ToolResult {
	venueID, err := args.RequiredString("venue_id")
	if err != nil {
		return badArgument("get_venue_details", err)
	}

	venue, err := t.venues.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, ErrVenueNotFound) {
			return domain.ToolResult{
				Tool:    "get_venue_details",
				Err:     domain.ToolErrorNotFound,
				Message: "I couldn't find that restaurant. Could you tell me which one you meant?",
			}
		}
		t.logger.Error("Venue lookup failed", slog.String("venue_id", venueID), slog.Any("error", err))
		return domain.ToolResult{
			Tool:    "get_venue_details",
			Err:     domain.ToolErrorInternal,
			Message: "Something went wrong while looking up that restaurant. Please try again.",
		}
	}

	return domain.ToolResult{
		Tool:    "get_venue_details",
		Venue:   venue,
		Message: describeVenue(venue),
	}
}

// describeVenue builds the human-readable detail blurb. Venue ids stay
// internal; they never appear in text shown to the guest.
func describeVenue(v *domain.Venue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s in %s", v.Name, v.City)
	if v.Address != "" {
		fmt.Fprintf(&b, " (%s)", v.Address)
	}
	fmt.Fprintf(&b, ". Rated %.1f, %s, seats up to %d.", v.Rating, strings.Repeat("$", v.PriceTier), v.Capacity)
	if v.Description != "" {
		b.WriteString(" ")
		b.WriteString(v.Description)
		if !strings.HasSuffix(v.Description, ".") {
			b.WriteString(".")
		}
	}
	if v.Phone != "" {
		fmt.Fprintf(&b, " You can reach them at %s.", v.Phone)
	}
	return b.String()
}

// --- check_availability ---

type checkAvailabilityTool struct {
	venues VenueStore
	logger *slog.Logger
}

func (t *checkAvailabilityTool) Spec() domain.Tool {
	return domain.Tool{
		Name:        "check_availability",
		Description: "Check if a restaurant has availability for a specific date, time, and party size",
		InputSchema: domain.JSONSchemaProps{
			Type: "object",
			Properties: map[string]domain.JSONSchemaProps{
				"venue_id": {
					Type:        "string",
					Description: "The unique ID of the venue",
				},
				"datetime": {
					Type:        "string",
					Description: "Date and time in ISO format (e.g., 2026-12-25T19:00:00)",
				},
				"party_size": {
					Type:        "integer",
					Description: "Number of people",
				},
			},
			Required: []string{"venue_id", "datetime", "party_size"},
		},
	}
}

func (t *checkAvailabilityTool) Execute(ctx context.Context, sessionID string, args Arguments) domain.ToolResult {
	venueID, err := args.RequiredString("venue_id")
	if err != nil {
		return badArgument("check_availability", err)
	}
	if _, err := args.RequiredString("datetime"); err != nil {
		return badArgument("check_availability", err)
	}
	partySize, err := args.RequiredInt("party_size")
	if err != nil {
		return badArgument("check_availability", err)
	}

	// Capacity check only. No time-slot ledger is kept, so a fitting
	// party is always considered seatable.
	available := false
	venue, err := t.venues.GetByID(ctx, venueID)
	if err == nil && partySize > 0 && partySize <= venue.Capacity {
		available = true
	}
	if err != nil && !errors.Is(err, ErrVenueNotFound) {
		t.logger.Error("Availability lookup failed", slog.String("venue_id", venueID), slog.Any("error", err))
	}

	msg := "Sorry, they can't accommodate a party of that size."
	if available {
		msg = fmt.Sprintf("Good news! %s can seat your party of %d.", venue.Name, partySize)
	}
	return domain.ToolResult{Tool: "check_availability", Available: &available, Message: msg}
}

// --- create_reservation ---

type createReservationTool struct {
	reservations *ReservationsUseCase
	logger       *slog.Logger
}

func (t *createReservationTool) Spec() domain.Tool {
	return domain.Tool{
		Name:        "create_reservation",
		Description: "Create a reservation at a restaurant. Only use this after confirming all details with the user.",
		InputSchema: domain.JSONSchemaProps{
			Type: "object",
			Properties: map[string]domain.JSONSchemaProps{
				"venue_id": {
					Type:        "string",
					Description: "The unique ID of the venue",
				},
				"datetime": {
					Type:        "string",
					Description: "Date and time in ISO format",
				},
				"party_size": {
					Type:        "integer",
					Description: "Number of people",
				},
				"contact_name": {
					Type:        "string",
					Description: "Customer's full name",
				},
				"contact_phone": {
					Type:        "string",
					Description: "Customer's phone number",
				},
				"contact_email": {
					Type:        "string",
					Description: "Customer's email address",
					Format:      "email",
				},
				"notes": {
					Type:        "string",
					Description: "Special requests or notes. Omit this field entirely when there are none.",
				},
			},
			Required: []string{"venue_id", "datetime", "party_size", "contact_name", "contact_phone", "contact_email"},
		},
	}
}

func (t *createReservationTool) Execute(ctx context.Context, sessionID string, args Arguments) domain.ToolResult {
	input := CreateReservationInput{SessionID: sessionID, Notes: args.OptionalString("notes")}

	var err error
	if input.VenueID, err = args.RequiredString("venue_id"); err != nil {
		return badArgument("create_reservation", err)
	}
	if input.Datetime, err = args.RequiredString("datetime"); err != nil {
		return badArgument("create_reservation", err)
	}
	if input.PartySize, err = args.RequiredInt("party_size"); err != nil {
		return badArgument("create_reservation", err)
	}
	if input.ContactName, err = args.RequiredString("contact_name"); err != nil {
		return badArgument("create_reservation", err)
	}
	if input.ContactPhone, err = args.RequiredString("contact_phone"); err != nil {
		return badArgument("create_reservation", err)
	}
	if input.ContactEmail, err = args.RequiredString("contact_email"); err != nil {
		return badArgument("create_reservation", err)
	}

	reservation, err := t.reservations.Create(ctx, input)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			return domain.ToolResult{
				Tool:    "create_reservation",
				Err:     domain.ToolErrorValidation,
				Message: fmt.Sprintf("I couldn't complete that booking: %s.", vErr.Reason),
			}
		case errors.Is(err, ErrVenueNotFound):
			return domain.ToolResult{
				Tool:    "create_reservation",
				Err:     domain.ToolErrorNotFound,
				Message: "I couldn't find that restaurant. Could you tell me which one you meant?",
			}
		default:
			t.logger.Error("Reservation creation failed", slog.Any("error", err))
			return domain.ToolResult{
				Tool:    "create_reservation",
				Err:     domain.ToolErrorInternal,
				Message: "Something went wrong while creating your reservation. Please try again.",
			}
		}
	}

	return domain.ToolResult{
		Tool:        "create_reservation",
		Reservation: reservation,
		Message:     fmt.Sprintf("Reservation confirmed! Your booking ID is %s", reservation.BookingID),
	}
}

// badArgument wraps an ArgumentError into a clarifying tool result.
func badArgument(tool string, err error) domain.ToolResult {
	msg := "I'm missing some details for that request."
	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		msg = fmt.Sprintf("I'm missing a valid %q for that request. Could you provide it?", argErr.Field)
	}
	return domain.ToolResult{Tool: tool, Err: domain.ToolErrorBadArgument, Message: msg}
}
