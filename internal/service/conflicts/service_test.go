package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/pkg/logger"
	"github.com/m04kA/SMC-FlightScheduler/pkg/ptr"
)

// memoryBookings отдаёт все бронирования организации, фильтрацию делает сервис
type memoryBookings struct {
	bookings []*domain.Booking
}

func (m *memoryBookings) ListActive(_ context.Context, filter domain.ActiveBookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.OrganizationID == filter.OrganizationID {
			out = append(out, b)
		}
	}
	return out, nil
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) ListActive(ctx context.Context, filter domain.ActiveBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if b := args.Get(0); b != nil {
		return b.([]*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

var (
	orgID    = uuid.New()
	aircraft = uuid.New()
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 5, 4, hour, minute, 0, 0, time.UTC)
}

func booking(aircraftID uuid.UUID, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:             uuid.New(),
		OrganizationID: orgID,
		AircraftID:     ptr.Ptr(aircraftID),
		ScheduledStart: start,
		ScheduledEnd:   end,
		Status:         status,
	}
}

func TestGetConflicts_Scenario(t *testing.T) {
	a := booking(aircraft, at(10, 0), at(12, 0), domain.StatusScheduled)
	svc := NewService(&memoryBookings{bookings: []*domain.Booking{a}}, logger.NewNop())
	ctx := context.Background()

	overlapping, err := svc.GetConflicts(ctx, orgID, domain.ResourceAircraft, aircraft, at(11, 0), at(13, 0), nil)
	require.NoError(t, err)
	assert.Equal(t, []*domain.Booking{a}, overlapping)

	free, err := svc.GetConflicts(ctx, orgID, domain.ResourceAircraft, aircraft, at(13, 0), at(14, 0), nil)
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestGetConflicts_UsesBlockTime(t *testing.T) {
	a := booking(aircraft, at(10, 0), at(12, 0), domain.StatusConfirmed)
	a.PostflightMinutes = 30
	svc := NewService(&memoryBookings{bookings: []*domain.Booking{a}}, logger.NewNop())

	got, err := svc.GetConflicts(context.Background(), orgID, domain.ResourceAircraft, aircraft, at(12, 15), at(13, 0), nil)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetConflicts_IgnoresInactiveOtherResourceAndExcluded(t *testing.T) {
	cancelled := booking(aircraft, at(10, 0), at(12, 0), domain.StatusCancelled)
	completed := booking(aircraft, at(10, 0), at(12, 0), domain.StatusCompleted)
	noShow := booking(aircraft, at(10, 0), at(12, 0), domain.StatusNoShow)
	draft := booking(aircraft, at(10, 0), at(12, 0), domain.StatusDraft)
	other := booking(uuid.New(), at(10, 0), at(12, 0), domain.StatusScheduled)
	self := booking(aircraft, at(10, 0), at(12, 0), domain.StatusCheckedIn)

	svc := NewService(&memoryBookings{
		bookings: []*domain.Booking{cancelled, completed, noShow, draft, other, self},
	}, logger.NewNop())

	got, err := svc.GetConflicts(context.Background(), orgID, domain.ResourceAircraft, aircraft, at(9, 0), at(13, 0), ptr.Ptr(self.ID))

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDetect_Symmetric(t *testing.T) {
	pairs := [][2]*domain.Booking{
		{booking(aircraft, at(10, 0), at(12, 0), domain.StatusScheduled), booking(aircraft, at(11, 0), at(13, 0), domain.StatusScheduled)},
		{booking(aircraft, at(10, 0), at(12, 0), domain.StatusScheduled), booking(aircraft, at(12, 0), at(13, 0), domain.StatusConfirmed)},
		{booking(aircraft, at(9, 0), at(15, 0), domain.StatusCheckedIn), booking(aircraft, at(11, 0), at(12, 0), domain.StatusScheduled)},
	}
	resource := &domain.ResourceRef{Type: domain.ResourceAircraft, ID: aircraft}

	for _, p := range pairs {
		a, b := p[0], p[1]
		aHitsB := len(Detect([]*domain.Booking{b}, resource, a.BlockRange(), nil)) == 1
		bHitsA := len(Detect([]*domain.Booking{a}, resource, b.BlockRange(), nil)) == 1
		assert.Equal(t, aHitsB, bHitsA)
	}
}

func TestGetConflicts_InvalidInput(t *testing.T) {
	svc := NewService(&memoryBookings{}, logger.NewNop())
	ctx := context.Background()

	_, err := svc.GetConflicts(ctx, orgID, domain.ResourceAircraft, aircraft, at(12, 0), at(12, 0), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.GetConflicts(ctx, orgID, domain.ResourceType("BOAT"), aircraft, at(10, 0), at(12, 0), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCheckConflicts_DeduplicatesAcrossResources(t *testing.T) {
	instructor := uuid.New()
	shared := booking(aircraft, at(10, 0), at(12, 0), domain.StatusScheduled)
	shared.InstructorID = ptr.Ptr(instructor)

	repo := &mockBookingRepo{}
	repo.On("ListActive", mock.Anything, mock.Anything).Return([]*domain.Booking{shared}, nil)

	svc := NewService(repo, logger.NewNop())

	result, err := svc.CheckConflicts(context.Background(), &CheckRequest{
		OrganizationID: orgID,
		ScheduledStart: at(11, 0),
		ScheduledEnd:   at(11, 30),
		AircraftID:     ptr.Ptr(aircraft),
		InstructorID:   ptr.Ptr(instructor),
	})

	require.NoError(t, err)
	assert.True(t, result.HasConflicts)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, shared.ID, result.Conflicts[0].ID)
	repo.AssertNumberOfCalls(t, "ListActive", 2)
}

func TestCheckConflicts_OrganizationWide(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("ListActive", mock.Anything, mock.MatchedBy(func(f domain.ActiveBookingsFilter) bool {
		return f.Resource == nil && f.OrganizationID == orgID
	})).Return([]*domain.Booking{}, nil)

	svc := NewService(repo, logger.NewNop())

	result, err := svc.CheckConflicts(context.Background(), &CheckRequest{
		OrganizationID: orgID,
		ScheduledStart: at(11, 0),
		ScheduledEnd:   at(12, 0),
	})

	require.NoError(t, err)
	assert.False(t, result.HasConflicts)
	repo.AssertExpectations(t)
}

func TestGetConflicts_RepositoryErrorBlocks(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("ListActive", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	svc := NewService(repo, logger.NewNop())

	got, err := svc.GetConflicts(context.Background(), orgID, domain.ResourceAircraft, aircraft, at(10, 0), at(11, 0), nil)

	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, got)
}
