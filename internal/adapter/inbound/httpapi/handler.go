// Package httpapi is the inbound HTTP adapter: request decoding, a thin
// layer of validation, and JSON responses. All decisions live in the
// use cases.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/goodfoods/goodfoods/internal/domain"
	"github.com/goodfoods/goodfoods/internal/usecase"
)

// Agent processes one user message end to end.
type Agent interface {
	Execute(ctx context.Context, sessionID, message string, history []domain.ChatMessage) (domain.AgentResponse, error)
}

// Reservations is the booking lifecycle surface used by the handlers.
type Reservations interface {
	Create(ctx context.Context, in usecase.CreateReservationInput) (*domain.Reservation, error)
	List(ctx context.Context, sessionID string) ([]domain.Reservation, error)
	ListAll(ctx context.Context, limit int) ([]domain.Reservation, error)
	Cancel(ctx context.Context, id string) (bool, error)
}

// VenueSearch is the direct (no-LLM) venue search surface.
type VenueSearch interface {
	Search(ctx context.Context, filter usecase.VenueFilter) ([]domain.Venue, error)
}

// Handlers holds dependencies for the HTTP handlers.
type Handlers struct {
	agent        Agent
	reservations Reservations
	venues       VenueSearch
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers struct.
func NewHandlers(agent Agent, reservations Reservations, venues VenueSearch, logger *slog.Logger) *Handlers {
	return &Handlers{
		agent:        agent,
		reservations: reservations,
		venues:       venues,
		logger:       logger.With("component", "http_handler"),
	}
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/agent/message", h.handleAgentMessage)
	mux.HandleFunc("POST /api/agent/recommend", h.handleRecommend)
	mux.HandleFunc("POST /api/reservations/create", h.handleCreateReservation)
	mux.HandleFunc("GET /api/reservations", h.handleListReservations)
	mux.HandleFunc("GET /api/reservations/admin", h.handleAdminReservations)
	mux.HandleFunc("POST /api/reservations/{id}/cancel", h.handleCancelReservation)
	mux.HandleFunc("GET /health", h.handleHealth)
}

// MessageRequest is the body of POST /api/agent/message. History holds
// prior turns of the conversation, oldest first; the server keeps no
// state between calls.
type MessageRequest struct {
	SessionID string               `json:"session_id"`
	Message   string               `json:"message"`
	History   []domain.ChatMessage `json:"history,omitempty"`
}

func (h *Handlers) handleAgentMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	if req.SessionID == "" || req.Message == "" {
		h.writeError(w, http.StatusBadRequest, "session_id and message are required")
		return
	}

	resp, err := h.agent.Execute(r.Context(), req.SessionID, req.Message, req.History)
	if err != nil {
		h.logger.Error("Agent failed to process message", slog.String("session_id", req.SessionID), slog.Any("error", err))
		if errors.Is(err, usecase.ErrUpstream) {
			h.writeError(w, http.StatusBadGateway, "assistant is temporarily unavailable")
			return
		}
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// RecommendRequest is the body of POST /api/agent/recommend.
type RecommendRequest struct {
	Cuisine   string `json:"cuisine,omitempty"`
	City      string `json:"city,omitempty"`
	PartySize int    `json:"party_size,omitempty"`
	Prefs     struct {
		PriceTier int `json:"price_tier,omitempty"`
	} `json:"prefs,omitempty"`
}

func (h *Handlers) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	venues, err := h.venues.Search(r.Context(), usecase.VenueFilter{
		Cuisine:     req.Cuisine,
		City:        req.City,
		MinCapacity: req.PartySize,
		PriceTier:   req.Prefs.PriceTier,
		Limit:       10,
	})
	if err != nil {
		h.logger.Error("Recommendation search failed", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	summaries := make([]domain.VenueSummary, 0, len(venues))
	for _, v := range venues {
		summaries = append(summaries, v.Summary())
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"venues": summaries})
}

// CreateReservationRequest is the body of POST /api/reservations/create.
type CreateReservationRequest struct {
	VenueID   string `json:"venue_id"`
	Datetime  string `json:"datetime"`
	PartySize int    `json:"party_size"`
	Contact   struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	} `json:"contact"`
	Notes string `json:"notes,omitempty"`
}

// ReservationResponse is the wire shape of a reservation.
type ReservationResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	VenueID   string  `json:"venue_id"`
	VenueName string  `json:"venue_name"`
	Datetime  string  `json:"datetime"`
	PartySize int     `json:"party_size"`
	Status    string  `json:"status"`
	Contact   Contact `json:"contact"`
	Notes     string  `json:"notes,omitempty"`
}

// Contact is the guest contact block of a reservation response.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func toReservationResponse(r domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        r.ID,
		BookingID: r.BookingID,
		VenueID:   r.VenueID,
		VenueName: r.VenueName,
		Datetime:  r.Time.Format("2006-01-02T15:04:05"),
		PartySize: r.PartySize,
		Status:    r.Status,
		Contact:   Contact{Name: r.ContactName, Phone: r.ContactPhone, Email: r.ContactEmail},
		Notes:     r.Notes,
	}
}

func (h *Handlers) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = "default_session"
	}

	reservation, err := h.reservations.Create(r.Context(), usecase.CreateReservationInput{
		SessionID:    sessionID,
		VenueID:      req.VenueID,
		Datetime:     req.Datetime,
		PartySize:    req.PartySize,
		ContactName:  req.Contact.Name,
		ContactPhone: req.Contact.Phone,
		ContactEmail: req.Contact.Email,
		Notes:        req.Notes,
	})
	if err != nil {
		var vErr *usecase.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.writeError(w, http.StatusUnprocessableEntity, vErr.Reason)
		case errors.Is(err, usecase.ErrVenueNotFound):
			h.writeError(w, http.StatusNotFound, "venue not found")
		default:
			h.logger.Error("Reservation creation failed", slog.Any("error", err))
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	h.writeJSON(w, http.StatusCreated, toReservationResponse(*reservation))
}

func (h *Handlers) handleListReservations(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = "default_session"
	}

	reservations, err := h.reservations.List(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("Listing reservations failed", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, toReservationResponse(res))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) handleAdminReservations(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	reservations, err := h.reservations.ListAll(r.Context(), limit)
	if err != nil {
		h.logger.Error("Listing all reservations failed", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]ReservationResponse, 0, len(reservations))
	for _, res := range reservations {
		out = append(out, toReservationResponse(res))
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) handleCancelReservation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ok, err := h.reservations.Cancel(r.Context(), id)
	if err != nil {
		h.logger.Error("Cancellation failed", slog.String("id", id), slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !ok {
		h.writeError(w, http.StatusNotFound, "reservation not found")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "cancelled_id": id})
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", slog.Any("error", err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, map[string]string{"detail": detail})
}
