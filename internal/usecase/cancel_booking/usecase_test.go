package cancel_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/bookings"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/waitlist"
	"github.com/m04kA/SMC-FlightScheduler/pkg/logger"
	"github.com/m04kA/SMC-FlightScheduler/pkg/ptr"
)

type mockCanceller struct{ mock.Mock }

func (m *mockCanceller) Cancel(ctx context.Context, organizationID, id, actor uuid.UUID, reason string) (*bookings.CancelResult, error) {
	args := m.Called(ctx, organizationID, id, actor, reason)
	if r := args.Get(0); r != nil {
		return r.(*bookings.CancelResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMatcher struct{ mock.Mock }

func (m *mockMatcher) FindMatches(ctx context.Context, q waitlist.SlotQuery) ([]*domain.WaitlistEntry, error) {
	args := m.Called(ctx, q)
	if r := args.Get(0); r != nil {
		return r.([]*domain.WaitlistEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	orgID = uuid.New()
	actor = uuid.New()
	start = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
)

func cancelled() *bookings.CancelResult {
	return &bookings.CancelResult{
		Booking: &domain.Booking{
			ID:                uuid.New(),
			OrganizationID:    orgID,
			AircraftID:        ptr.Ptr(uuid.New()),
			ScheduledStart:    start,
			ScheduledEnd:      start.Add(2 * time.Hour),
			PreflightMinutes:  30,
			PostflightMinutes: 30,
			Status:            domain.StatusCancelled,
		},
		Fee: domain.CancellationFee{Fee: decimal.RequireFromString("250.00"), IsLate: true},
	}
}

func TestExecute_ReturnsFeeAndMatches(t *testing.T) {
	canceller, matcher := &mockCanceller{}, &mockMatcher{}
	uc := NewUseCase(canceller, matcher, logger.NewNop())
	result := cancelled()
	first, second := uuid.New(), uuid.New()

	canceller.On("Cancel", mock.Anything, orgID, result.Booking.ID, actor, "weather").Return(result, nil)
	matcher.On("FindMatches", mock.Anything, waitlist.SlotQuery{
		OrganizationID: orgID,
		Start:          start.Add(-30 * time.Minute),
		End:            start.Add(150 * time.Minute),
		AircraftID:     result.Booking.AircraftID,
	}).Return([]*domain.WaitlistEntry{{ID: first}, {ID: second}}, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		OrganizationID: orgID,
		BookingID:      result.Booking.ID,
		ActorID:        actor,
		Reason:         "weather",
	})

	require.NoError(t, err)
	assert.Equal(t, "250", resp.Fee.Fee.String())
	assert.True(t, resp.WaitlistMatched)
	assert.Equal(t, []uuid.UUID{first, second}, resp.WaitlistMatches)
	matcher.AssertExpectations(t)
}

func TestExecute_CancelErrorStopsMatching(t *testing.T) {
	canceller, matcher := &mockCanceller{}, &mockMatcher{}
	uc := NewUseCase(canceller, matcher, logger.NewNop())
	id := uuid.New()

	canceller.On("Cancel", mock.Anything, orgID, id, actor, "").
		Return(nil, &domain.StateError{Entity: "booking", ID: id, From: string(domain.StatusCompleted), Action: string(domain.ActionCancel)})

	_, err := uc.Execute(context.Background(), &Request{OrganizationID: orgID, BookingID: id, ActorID: actor})

	assert.ErrorIs(t, err, domain.ErrState)
	matcher.AssertNotCalled(t, "FindMatches", mock.Anything, mock.Anything)
}

func TestExecute_MatchingFailureKeepsCancellation(t *testing.T) {
	canceller, matcher := &mockCanceller{}, &mockMatcher{}
	uc := NewUseCase(canceller, matcher, logger.NewNop())
	result := cancelled()

	canceller.On("Cancel", mock.Anything, orgID, result.Booking.ID, actor, "").Return(result, nil)
	matcher.On("FindMatches", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	resp, err := uc.Execute(context.Background(), &Request{OrganizationID: orgID, BookingID: result.Booking.ID, ActorID: actor})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)
	assert.False(t, resp.WaitlistMatched)
	assert.Empty(t, resp.WaitlistMatches)
}

func TestExecute_RequiresBookingID(t *testing.T) {
	uc := NewUseCase(&mockCanceller{}, &mockMatcher{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{OrganizationID: orgID})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
