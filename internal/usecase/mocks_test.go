package usecase_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/goodfoods/goodfoods/internal/domain"
	"github.com/goodfoods/goodfoods/internal/usecase"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// MockVenueStore is a mock implementation of the VenueStore interface.
type MockVenueStore struct {
	mock.Mock
}

func (m *MockVenueStore) Search(ctx context.Context, filter usecase.VenueFilter) ([]domain.Venue, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]domain.Venue), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockVenueStore) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Venue), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockReservationStore is a mock implementation of the ReservationStore interface.
type MockReservationStore struct {
	mock.Mock
}

func (m *MockReservationStore) Insert(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationStore) ListBySession(ctx context.Context, sessionID string) ([]domain.Reservation, error) {
	args := m.Called(ctx, sessionID)
	if v := args.Get(0); v != nil {
		return v.([]domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReservationStore) ListAll(ctx context.Context, limit int) ([]domain.Reservation, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.([]domain.Reservation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReservationStore) Cancel(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockChatModel is a mock implementation of the ChatModel interface.
type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) Converse(ctx context.Context, messages []domain.ChatMessage, tools []domain.Tool) (domain.ModelTurn, error) {
	args := m.Called(ctx, messages, tools)
	return args.Get(0).(domain.ModelTurn), args.Error(1)
}

// stubNotifier records confirmations on a channel. Sends happen on a
// separate goroutine, so a channel keeps the tests race-free.
type stubNotifier struct {
	sent chan usecase.Confirmation
	ok   bool
}

func newStubNotifier(ok bool) *stubNotifier {
	return &stubNotifier{sent: make(chan usecase.Confirmation, 8), ok: ok}
}

func (s *stubNotifier) SendConfirmation(ctx context.Context, c usecase.Confirmation) bool {
	s.sent <- c
	return s.ok
}
