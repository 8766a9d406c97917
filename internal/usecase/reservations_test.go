package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goodfoods/goodfoods/internal/domain"
	"github.com/goodfoods/goodfoods/internal/usecase"
)

func validInput() usecase.CreateReservationInput {
	return usecase.CreateReservationInput{
		SessionID:    "s1",
		VenueID:      "ven_001",
		Datetime:     "2026-12-25T19:00:00",
		PartySize:    4,
		ContactName:  "Ada Lovelace",
		ContactPhone: "+1-212-555-0199",
		ContactEmail: "ada@example.com",
		Notes:        "window table",
	}
}

func TestReservationsCreate(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		venues := new(MockVenueStore)
		venues.On("GetByID", mock.Anything, "ven_001").Return(testVenue("ven_001", "Trattoria Roma"), nil)
		store := new(MockReservationStore)
		store.On("Insert", mock.Anything, mock.Anything).Return(nil)
		notifier := newStubNotifier(true)
		uc := usecase.NewReservationsUseCase(venues, store, notifier, testLogger(t))

		reservation, err := uc.Create(context.Background(), validInput())
		require.NoError(t, err)

		assert.Regexp(t, `^res_[0-9a-f]{12}$`, reservation.ID)
		assert.Regexp(t, `^GF-[A-Z0-9]{6}$`, reservation.BookingID)
		assert.Equal(t, "Trattoria Roma", reservation.VenueName)
		assert.Equal(t, domain.ReservationConfirmed, reservation.Status)
		assert.Equal(t, time.Date(2026, 12, 25, 19, 0, 0, 0, time.UTC), reservation.Time)

		// The confirmation goes out asynchronously after commit.
		select {
		case c := <-notifier.sent:
			assert.Equal(t, reservation.BookingID, c.BookingID)
			assert.Equal(t, "ada@example.com", c.Email)
			assert.Equal(t, "window table", c.Notes)
		case <-time.After(2 * time.Second):
			t.Fatal("confirmation was never sent")
		}
		store.AssertExpectations(t)
	})

	t.Run("zoned datetime accepted", func(t *testing.T) {
		venues := new(MockVenueStore)
		venues.On("GetByID", mock.Anything, "ven_001").Return(testVenue("ven_001", "Trattoria Roma"), nil)
		store := new(MockReservationStore)
		store.On("Insert", mock.Anything, mock.Anything).Return(nil)
		uc := usecase.NewReservationsUseCase(venues, store, newStubNotifier(true), testLogger(t))

		in := validInput()
		in.Datetime = "2026-12-25T19:00:00+02:00"
		reservation, err := uc.Create(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, 19, reservation.Time.Hour())
	})

	t.Run("booking ids differ across reservations", func(t *testing.T) {
		venues := new(MockVenueStore)
		venues.On("GetByID", mock.Anything, "ven_001").Return(testVenue("ven_001", "Trattoria Roma"), nil)
		store := new(MockReservationStore)
		store.On("Insert", mock.Anything, mock.Anything).Return(nil)
		uc := usecase.NewReservationsUseCase(venues, store, newStubNotifier(true), testLogger(t))

		seen := map[string]bool{}
		for i := 0; i < 20; i++ {
			reservation, err := uc.Create(context.Background(), validInput())
			require.NoError(t, err)
			assert.Falsef(t, seen[reservation.ID], "row id %s repeated", reservation.ID)
			seen[reservation.ID] = true
		}
	})

	t.Run("booking id collision retried", func(t *testing.T) {
		venues := new(MockVenueStore)
		venues.On("GetByID", mock.Anything, "ven_001").Return(testVenue("ven_001", "Trattoria Roma"), nil)
		store := new(MockReservationStore)
		store.On("Insert", mock.Anything, mock.Anything).Return(usecase.ErrDuplicateBooking).Once()
		store.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()
		uc := usecase.NewReservationsUseCase(venues, store, newStubNotifier(true), testLogger(t))

		reservation, err := uc.Create(context.Background(), validInput())
		require.NoError(t, err)
		assert.Regexp(t, `^GF-[A-Z0-9]{6}$`, reservation.BookingID)
		store.AssertNumberOfCalls(t, "Insert", 2)
	})

	t.Run("persistent collision gives up", func(t *testing.T) {
		venues := new(MockVenueStore)
		venues.On("GetByID", mock.Anything, "ven_001").Return(testVenue("ven_001", "Trattoria Roma"), nil)
		store := new(MockReservationStore)
		store.On("Insert", mock.Anything, mock.Anything).Return(usecase.ErrDuplicateBooking)
		uc := usecase.NewReservationsUseCase(venues, store, newStubNotifier(true), testLogger(t))

		_, err := uc.Create(context.Background(), validInput())
		require.Error(t, err)
		assert.ErrorIs(t, err, usecase.ErrDuplicateBooking)
		store.AssertNumberOfCalls(t, "Insert", 5)
	})

	t.Run("party exceeds capacity", func(t *testing.T) {
		venues := new(MockVenueStore)
		venues.On("GetByID", mock.Anything, "ven_001").Return(testVenue("ven_001", "Trattoria Roma"), nil)
		store := new(MockReservationStore)
		notifier := newStubNotifier(true)
		uc := usecase.NewReservationsUseCase(venues, store, notifier, testLogger(t))

		in := validInput()
		in.PartySize = 100
		_, err := uc.Create(context.Background(), in)

		var vErr *usecase.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Reason, "exceeds venue capacity")
		// Nothing written, nothing sent.
		store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		assert.Empty(t, notifier.sent)
	})

	t.Run("unknown venue", func(t *testing.T) {
		venues := new(MockVenueStore)
		venues.On("GetByID", mock.Anything, "ven_404").Return(nil, usecase.ErrVenueNotFound)
		uc := usecase.NewReservationsUseCase(venues, new(MockReservationStore), newStubNotifier(true), testLogger(t))

		in := validInput()
		in.VenueID = "ven_404"
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, usecase.ErrVenueNotFound)
	})

	t.Run("rejected input", func(t *testing.T) {
		mutations := map[string]func(*usecase.CreateReservationInput){
			"blank name":      func(in *usecase.CreateReservationInput) { in.ContactName = "  " },
			"blank phone":     func(in *usecase.CreateReservationInput) { in.ContactPhone = "" },
			"bad email":       func(in *usecase.CreateReservationInput) { in.ContactEmail = "not-an-email" },
			"zero party":      func(in *usecase.CreateReservationInput) { in.PartySize = 0 },
			"negative party":  func(in *usecase.CreateReservationInput) { in.PartySize = -2 },
			"bad datetime":    func(in *usecase.CreateReservationInput) { in.Datetime = "tomorrow at 7" },
			"empty datetime":  func(in *usecase.CreateReservationInput) { in.Datetime = "" },
			"date only":       func(in *usecase.CreateReservationInput) { in.Datetime = "25/12/2026" },
		}

		for name, mutate := range mutations {
			t.Run(name, func(t *testing.T) {
				venues := new(MockVenueStore)
				venues.On("GetByID", mock.Anything, mock.Anything).Return(testVenue("ven_001", "Trattoria Roma"), nil).Maybe()
				store := new(MockReservationStore)
				uc := usecase.NewReservationsUseCase(venues, store, newStubNotifier(true), testLogger(t))

				in := validInput()
				mutate(&in)
				_, err := uc.Create(context.Background(), in)

				var vErr *usecase.ValidationError
				assert.ErrorAs(t, err, &vErr)
				store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("failed notification does not fail booking", func(t *testing.T) {
		venues := new(MockVenueStore)
		venues.On("GetByID", mock.Anything, "ven_001").Return(testVenue("ven_001", "Trattoria Roma"), nil)
		store := new(MockReservationStore)
		store.On("Insert", mock.Anything, mock.Anything).Return(nil)
		notifier := newStubNotifier(false)
		uc := usecase.NewReservationsUseCase(venues, store, notifier, testLogger(t))

		reservation, err := uc.Create(context.Background(), validInput())
		require.NoError(t, err)
		assert.Equal(t, domain.ReservationConfirmed, reservation.Status)

		select {
		case <-notifier.sent:
		case <-time.After(2 * time.Second):
			t.Fatal("notification attempt never happened")
		}
	})
}

func TestReservationsListAndCancel(t *testing.T) {
	t.Run("list by session", func(t *testing.T) {
		store := new(MockReservationStore)
		store.On("ListBySession", mock.Anything, "s1").Return([]domain.Reservation{{ID: "res_1"}}, nil)
		uc := usecase.NewReservationsUseCase(new(MockVenueStore), store, newStubNotifier(true), testLogger(t))

		got, err := uc.List(context.Background(), "s1")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("list all defaults limit", func(t *testing.T) {
		store := new(MockReservationStore)
		store.On("ListAll", mock.Anything, 100).Return([]domain.Reservation{}, nil)
		uc := usecase.NewReservationsUseCase(new(MockVenueStore), store, newStubNotifier(true), testLogger(t))

		_, err := uc.ListAll(context.Background(), 0)
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("cancel", func(t *testing.T) {
		store := new(MockReservationStore)
		store.On("Cancel", mock.Anything, "res_1").Return(true, nil)
		store.On("Cancel", mock.Anything, "res_404").Return(false, nil)
		uc := usecase.NewReservationsUseCase(new(MockVenueStore), store, newStubNotifier(true), testLogger(t))

		ok, err := uc.Cancel(context.Background(), "res_1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = uc.Cancel(context.Background(), "res_404")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("cancel store failure", func(t *testing.T) {
		store := new(MockReservationStore)
		store.On("Cancel", mock.Anything, "res_1").Return(false, errors.New("boom"))
		uc := usecase.NewReservationsUseCase(new(MockVenueStore), store, newStubNotifier(true), testLogger(t))

		_, err := uc.Cancel(context.Background(), "res_1")
		assert.Error(t, err)
	})
}
