package bookings

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
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-FlightScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/rules"
	"github.com/m04kA/SMC-FlightScheduler/pkg/logger"
	"github.com/m04kA/SMC-FlightScheduler/pkg/ptr"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, organizationID, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, booking *domain.Booking, expected domain.BookingStatus) error {
	return m.Called(ctx, booking, expected).Error(0)
}

type mockChecker struct{ mock.Mock }

func (m *mockChecker) FindConflicts(
	ctx context.Context,
	organizationID uuid.UUID,
	resource domain.ResourceRef,
	window domain.TimeRange,
	excludeBookingID *uuid.UUID,
) ([]*domain.Availability, []*domain.Booking, error) {
	args := m.Called(ctx, organizationID, resource, window, excludeBookingID)
	return args.Get(0).([]*domain.Availability), args.Get(1).([]*domain.Booking), args.Error(2)
}

type mockRules struct{ mock.Mock }

func (m *mockRules) CalculateCancellationFee(ctx context.Context, req *rules.FeeRequest) (*domain.CancellationFee, error) {
	args := m.Called(ctx, req)
	if f := args.Get(0); f != nil {
		return f.(*domain.CancellationFee), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

// passthroughTx выполняет fn без БД
type passthroughTx struct{ calls int }

func (p *passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	orgID = uuid.New()
	actor = uuid.New()
	now   = time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
)

type fixture struct {
	repo      *mockBookingRepo
	checker   *mockChecker
	rules     *mockRules
	tx        *passthroughTx
	publisher *mockPublisher
	svc       *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:      &mockBookingRepo{},
		checker:   &mockChecker{},
		rules:     &mockRules{},
		tx:        &passthroughTx{},
		publisher: &mockPublisher{},
	}
	f.svc = NewService(f.repo, f.checker, f.rules, f.tx, f.publisher, fixedTime{now: now}, logger.NewNop())
	return f
}

func newBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:             uuid.New(),
		OrganizationID: orgID,
		LocationID:     uuid.New(),
		AircraftID:     ptr.Ptr(uuid.New()),
		StudentID:      ptr.Ptr(uuid.New()),
		BookingType:    domain.BookingTypeFlight,
		ScheduledStart: now.Add(12 * time.Hour),
		ScheduledEnd:   now.Add(14 * time.Hour),
		Status:         status,
		EstimatedCost:  decimal.NewFromInt(500),
	}
}

func TestCancel_ComputesAndStoresFee(t *testing.T) {
	f := newFixture()
	b := newBooking(domain.StatusConfirmed)

	f.repo.On("GetByID", mock.Anything, orgID, b.ID).Return(b, nil)
	f.rules.On("CalculateCancellationFee", mock.Anything, mock.MatchedBy(func(r *rules.FeeRequest) bool {
		return r.HoursUntilStart == 12 && r.EstimatedCost.Equal(decimal.NewFromInt(500))
	})).Return(&domain.CancellationFee{Fee: decimal.RequireFromString("250.00"), IsLate: true}, nil)
	f.repo.On("UpdateStatus", mock.Anything, b, domain.StatusConfirmed).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		return e.Type == events.BookingCancelled && e.AggregateID == b.ID
	})).Return(nil)

	result, err := f.svc.Cancel(context.Background(), orgID, b.ID, actor, "weather")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, result.Booking.Status)
	assert.True(t, result.Fee.IsLate)
	assert.Equal(t, "250.00", result.Booking.CancellationFee.StringFixed(2))
	assert.Equal(t, "weather", *result.Booking.CancellationReason)
	assert.Equal(t, actor, *result.Booking.CancelledBy)
	assert.Equal(t, now, *result.Booking.CancelledAt)
	f.repo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestCancel_IllegalFromTerminalStatus(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow} {
		f := newFixture()
		b := newBooking(status)
		f.repo.On("GetByID", mock.Anything, orgID, b.ID).Return(b, nil)

		_, err := f.svc.Cancel(context.Background(), orgID, b.ID, actor, "")

		var stateErr *domain.StateError
		require.ErrorAs(t, err, &stateErr, status)
		assert.Equal(t, string(status), stateErr.From)
		f.rules.AssertNotCalled(t, "CalculateCancellationFee", mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestSchedule_ConflictBlocksTransition(t *testing.T) {
	f := newFixture()
	b := newBooking(domain.StatusDraft)
	other := newBooking(domain.StatusScheduled)

	f.repo.On("GetByID", mock.Anything, orgID, b.ID).Return(b, nil)
	f.checker.On("FindConflicts", mock.Anything, orgID, domain.ResourceRef{Type: domain.ResourceAircraft, ID: *b.AircraftID}, b.BlockRange(), &b.ID).
		Return([]*domain.Availability{}, []*domain.Booking{other}, nil)

	_, err := f.svc.Schedule(context.Background(), orgID, b.ID, actor)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.ResourceAircraft, conflict.ResourceType)
	require.Len(t, conflict.Bookings, 1)
	assert.Equal(t, other.ID, conflict.Bookings[0].ID)
	assert.Equal(t, 1, f.tx.calls)
	f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestSchedule_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	b := newBooking(domain.StatusDraft)

	f.repo.On("GetByID", mock.Anything, orgID, b.ID).Return(b, nil)
	f.checker.On("FindConflicts", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Availability{}, []*domain.Booking{}, nil)
	f.repo.On("UpdateStatus", mock.Anything, b, domain.StatusDraft).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	got, err := f.svc.Schedule(context.Background(), orgID, b.ID, actor)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, got.Status)
	// самолёт, студент и площадка
	f.checker.AssertNumberOfCalls(t, "FindConflicts", 3)
}

func TestLocationBookingsDoNotConflict(t *testing.T) {
	f := newFixture()
	b := newBooking(domain.StatusDraft)
	sameLocation := newBooking(domain.StatusScheduled)

	location := domain.ResourceRef{Type: domain.ResourceLocation, ID: b.LocationID}
	f.checker.On("FindConflicts", mock.Anything, orgID, location, mock.Anything, mock.Anything).
		Return([]*domain.Availability{}, []*domain.Booking{sameLocation}, nil)
	f.checker.On("FindConflicts", mock.Anything, orgID, mock.Anything, mock.Anything, mock.Anything).
		Return([]*domain.Availability{}, []*domain.Booking{}, nil)

	assert.NoError(t, f.svc.EnsureResourcesFree(context.Background(), b))
}

func TestTransition_IllegalRaisesStateError(t *testing.T) {
	f := newFixture()
	b := newBooking(domain.StatusDraft)
	f.repo.On("GetByID", mock.Anything, orgID, b.ID).Return(b, nil)

	_, err := f.svc.Confirm(context.Background(), orgID, b.ID, actor)

	assert.ErrorIs(t, err, domain.ErrState)
	f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransition_ConcurrentChange(t *testing.T) {
	f := newFixture()
	b := newBooking(domain.StatusScheduled)
	f.repo.On("GetByID", mock.Anything, orgID, b.ID).Return(b, nil)
	f.repo.On("UpdateStatus", mock.Anything, b, domain.StatusScheduled).Return(bookingRepo.ErrStatusChanged)

	_, err := f.svc.Confirm(context.Background(), orgID, b.ID, actor)

	var stateErr *domain.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, string(domain.ActionConfirm), stateErr.Action)
}

func TestTransition_Confirm(t *testing.T) {
	f := newFixture()
	b := newBooking(domain.StatusScheduled)
	f.repo.On("GetByID", mock.Anything, orgID, b.ID).Return(b, nil)
	f.repo.On("UpdateStatus", mock.Anything, b, domain.StatusScheduled).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		p, ok := e.Payload.(statusChangedPayload)
		return ok && p.From == domain.StatusScheduled && p.To == domain.StatusConfirmed
	})).Return(nil)

	got, err := f.svc.Apply(context.Background(), orgID, b.ID, actor, domain.ActionConfirm)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, now, *got.ConfirmedAt)
	assert.Equal(t, actor, *got.StatusChangedBy)
	f.publisher.AssertExpectations(t)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, orgID, id).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := f.svc.GetByID(context.Background(), orgID, id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_CancelNeedsReason(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Apply(context.Background(), orgID, uuid.New(), actor, domain.ActionCancel)

	assert.ErrorIs(t, err, ErrUnknownAction)
}
