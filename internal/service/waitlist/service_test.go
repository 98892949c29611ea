package waitlist

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/events"
	waitlistRepo "github.com/m04kA/SMC-FlightScheduler/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-FlightScheduler/pkg/logger"
	"github.com/m04kA/SMC-FlightScheduler/pkg/ptr"
	"github.com/m04kA/SMC-FlightScheduler/pkg/types"
)

// memoryEntries хранит копии записей и повторяет compare-and-set репозитория
type memoryEntries struct {
	mu      sync.Mutex
	entries map[uuid.UUID]domain.WaitlistEntry
	err     error
}

func newMemoryEntries(entries ...*domain.WaitlistEntry) *memoryEntries {
	m := &memoryEntries{entries: make(map[uuid.UUID]domain.WaitlistEntry)}
	for _, e := range entries {
		m.entries[e.ID] = *e
	}
	return m
}

func (m *memoryEntries) GetByID(_ context.Context, organizationID, id uuid.UUID) (*domain.WaitlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.entries[id]
	if !ok || e.OrganizationID != organizationID {
		return nil, waitlistRepo.ErrEntryNotFound
	}
	return &e, nil
}

func (m *memoryEntries) FindWaiting(_ context.Context, organizationID uuid.UUID, date time.Time) ([]*domain.WaitlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.WaitlistEntry
	for _, e := range m.entries {
		if e.OrganizationID == organizationID && e.Status == domain.WaitlistWaiting && e.RequestedDate.Equal(date) {
			e := e
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryEntries) UpdateState(_ context.Context, entry *domain.WaitlistEntry, expectedStatus domain.WaitlistStatus, expectedOfferedBookingID *uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	stored, ok := m.entries[entry.ID]
	if !ok || stored.Status != expectedStatus || !ptr.Equal(stored.OfferedBookingID, expectedOfferedBookingID) {
		return waitlistRepo.ErrStateChanged
	}
	m.entries[entry.ID] = *entry
	return nil
}

func (m *memoryEntries) CountByStatus(_ context.Context, organizationID uuid.UUID) (map[domain.WaitlistStatus]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	counts := make(map[domain.WaitlistStatus]int)
	for _, e := range m.entries {
		if e.OrganizationID == organizationID {
			counts[e.Status]++
		}
	}
	return counts, nil
}

func (m *memoryEntries) status(id uuid.UUID) domain.WaitlistStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[id].Status
}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, organizationID, id)
	if b := args.Get(0); b != nil {
		return b.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return p.err
}

// movableTime позволяет сдвигать «сейчас» внутри теста
type movableTime struct{ now time.Time }

func (m *movableTime) Now() time.Time { return m.now }

var (
	orgID = uuid.New()
	day   = time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
)

func mustTime(s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func waitingEntry(createdAt time.Time, from, to string) *domain.WaitlistEntry {
	return &domain.WaitlistEntry{
		ID:                 uuid.New(),
		OrganizationID:     orgID,
		UserID:             uuid.New(),
		RequestedDate:      day,
		PreferredStartTime: mustTime(from),
		PreferredEndTime:   mustTime(to),
		AnyAircraft:        true,
		AnyInstructor:      true,
		Status:             domain.WaitlistWaiting,
		CreatedAt:          createdAt,
	}
}

type fixture struct {
	repo      *memoryEntries
	bookings  *mockBookings
	publisher *recordingPublisher
	clock     *movableTime
	svc       *Service
}

func newFixture(entries ...*domain.WaitlistEntry) *fixture {
	f := &fixture{
		repo:      newMemoryEntries(entries...),
		bookings:  &mockBookings{},
		publisher: &recordingPublisher{},
		clock:     &movableTime{now: day.Add(6 * time.Hour)},
	}
	f.svc = NewService(f.repo, f.bookings, f.publisher, 24, f.clock, logger.NewNop())
	return f
}

func (f *fixture) offer(t *testing.T, entry *domain.WaitlistEntry, hours int) uuid.UUID {
	t.Helper()
	bookingID := uuid.New()
	f.bookings.On("GetByID", mock.Anything, orgID, bookingID).Return(&domain.Booking{ID: bookingID}, nil).Once()
	_, err := f.svc.SendOffer(context.Background(), &OfferRequest{
		OrganizationID: orgID,
		EntryID:        entry.ID,
		BookingID:      bookingID,
		ExpiresInHours: hours,
	})
	require.NoError(t, err)
	return bookingID
}

func TestMatchesSlot(t *testing.T) {
	aircraft := uuid.New()
	other := uuid.New()
	slotStart, slotEnd := day.Add(10*time.Hour), day.Add(12*time.Hour)

	tests := []struct {
		name     string
		mutate   func(e *domain.WaitlistEntry)
		aircraft *uuid.UUID
		want     bool
	}{
		{name: "any aircraft", mutate: func(*domain.WaitlistEntry) {}, aircraft: &aircraft, want: true},
		{name: "same aircraft", mutate: func(e *domain.WaitlistEntry) { e.AnyAircraft, e.AircraftID = false, &aircraft }, aircraft: &aircraft, want: true},
		{name: "different aircraft", mutate: func(e *domain.WaitlistEntry) { e.AnyAircraft, e.AircraftID = false, &other }, aircraft: &aircraft, want: false},
		{name: "no preference and no flag vs aircraft slot", mutate: func(e *domain.WaitlistEntry) { e.AnyAircraft = false }, aircraft: &aircraft, want: false},
		{name: "no preference and no flag vs slot without aircraft", mutate: func(e *domain.WaitlistEntry) { e.AnyAircraft = false }, aircraft: nil, want: true},
		{name: "window ends at slot start", mutate: func(e *domain.WaitlistEntry) { e.PreferredEndTime = mustTime("10:00") }, aircraft: &aircraft, want: false},
		{name: "window until midnight", mutate: func(e *domain.WaitlistEntry) { e.PreferredStartTime, e.PreferredEndTime = mustTime("11:30"), mustTime("00:00") }, aircraft: &aircraft, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := waitingEntry(day, "08:00", "11:00")
			tt.mutate(entry)
			assert.Equal(t, tt.want, MatchesSlot(entry, slotStart, slotEnd, tt.aircraft, nil))
		})
	}
}

func TestFindMatches_FIFO(t *testing.T) {
	first := waitingEntry(day.Add(-3*time.Hour), "09:00", "12:00")
	second := waitingEntry(day.Add(-2*time.Hour), "10:00", "11:00")
	outside := waitingEntry(day.Add(-4*time.Hour), "14:00", "16:00")
	f := newFixture(second, outside, first)

	matches, err := f.svc.FindMatches(context.Background(), SlotQuery{
		OrganizationID: orgID,
		Start:          day.Add(10 * time.Hour),
		End:            day.Add(12 * time.Hour),
	})

	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, first.ID, matches[0].ID)
	assert.Equal(t, second.ID, matches[1].ID)
}

func TestFindMatches_SlotCrossesMidnight(t *testing.T) {
	nextDay := waitingEntry(day.Add(-time.Hour), "00:00", "03:00")
	nextDay.RequestedDate = day.AddDate(0, 0, 1)
	lateEvening := waitingEntry(day.Add(-2*time.Hour), "22:00", "00:00")
	f := newFixture(nextDay, lateEvening)

	matches, err := f.svc.FindMatches(context.Background(), SlotQuery{
		OrganizationID: orgID,
		Start:          day.Add(23*time.Hour + 30*time.Minute),
		End:            day.AddDate(0, 0, 1).Add(2 * time.Hour),
	})

	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, lateEvening.ID, matches[0].ID)
	assert.Equal(t, nextDay.ID, matches[1].ID)
}

func TestFindMatches_SlotEndingAtMidnightSkipsNextDay(t *testing.T) {
	nextDay := waitingEntry(day, "00:00", "03:00")
	nextDay.RequestedDate = day.AddDate(0, 0, 1)
	f := newFixture(nextDay)

	matches, err := f.svc.FindMatches(context.Background(), SlotQuery{
		OrganizationID: orgID,
		Start:          day.Add(22 * time.Hour),
		End:            day.AddDate(0, 0, 1),
	})

	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindMatches_InvalidRange(t *testing.T) {
	f := newFixture()

	_, err := f.svc.FindMatches(context.Background(), SlotQuery{OrganizationID: orgID, Start: day, End: day})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSendOffer_DefaultExpiry(t *testing.T) {
	entry := waitingEntry(day, "09:00", "12:00")
	f := newFixture(entry)

	bookingID := f.offer(t, entry, 0)

	stored, err := f.repo.GetByID(context.Background(), orgID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WaitlistOffered, stored.Status)
	assert.Equal(t, bookingID, *stored.OfferedBookingID)
	assert.Equal(t, f.clock.now.Add(24*time.Hour), *stored.OfferExpiresAt)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.WaitlistOfferSent, f.publisher.events[0].Type)
}

func TestSendOffer_RejectsNonWaiting(t *testing.T) {
	entry := waitingEntry(day, "09:00", "12:00")
	f := newFixture(entry)
	f.offer(t, entry, 2)

	bookingID := uuid.New()
	f.bookings.On("GetByID", mock.Anything, orgID, bookingID).Return(&domain.Booking{ID: bookingID}, nil)
	_, err := f.svc.SendOffer(context.Background(), &OfferRequest{OrganizationID: orgID, EntryID: entry.ID, BookingID: bookingID})

	var wErr *domain.WaitlistError
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, domain.WaitlistInvalidState, wErr.Code)
}

func TestSendOffer_UnknownBooking(t *testing.T) {
	entry := waitingEntry(day, "09:00", "12:00")
	f := newFixture(entry)
	bookingID := uuid.New()
	f.bookings.On("GetByID", mock.Anything, orgID, bookingID).
		Return(nil, &domain.NotFoundError{Entity: "booking", ID: bookingID})

	_, err := f.svc.SendOffer(context.Background(), &OfferRequest{OrganizationID: orgID, EntryID: entry.ID, BookingID: bookingID})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.WaitlistWaiting, f.repo.status(entry.ID))
}

func TestSendOffer_NegativeExpiry(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SendOffer(context.Background(), &OfferRequest{OrganizationID: orgID, EntryID: uuid.New(), BookingID: uuid.New(), ExpiresInHours: -1})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAcceptOffer_BeforeExpiry(t *testing.T) {
	entry := waitingEntry(day, "09:00", "12:00")
	f := newFixture(entry)
	bookingID := f.offer(t, entry, 2)
	f.clock.now = f.clock.now.Add(2 * time.Hour)

	accepted, err := f.svc.AcceptOffer(context.Background(), orgID, entry.ID, ptr.Ptr("see you"))

	require.NoError(t, err)
	assert.Equal(t, domain.WaitlistAccepted, accepted.Status)
	assert.Equal(t, bookingID, *accepted.AcceptedBookingID)
	assert.Equal(t, domain.WaitlistAccepted, f.repo.status(entry.ID))
	assert.Equal(t, events.WaitlistOfferAccepted, f.publisher.events[1].Type)
}

func TestAcceptOffer_ExpiredPersistsExpired(t *testing.T) {
	entry := waitingEntry(day, "09:00", "12:00")
	f := newFixture(entry)
	f.offer(t, entry, 2)
	f.clock.now = f.clock.now.Add(2*time.Hour + time.Minute)

	_, err := f.svc.AcceptOffer(context.Background(), orgID, entry.ID, nil)

	var wErr *domain.WaitlistError
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, domain.WaitlistOfferExpired, wErr.Code)
	assert.Equal(t, domain.WaitlistExpired, f.repo.status(entry.ID))
	assert.Len(t, f.publisher.events, 1)
}

func TestAcceptOffer_NotOffered(t *testing.T) {
	entry := waitingEntry(day, "09:00", "12:00")
	f := newFixture(entry)

	_, err := f.svc.AcceptOffer(context.Background(), orgID, entry.ID, nil)

	var wErr *domain.WaitlistError
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, domain.WaitlistInvalidState, wErr.Code)
}

func TestAcceptOffer_ConcurrentDecline(t *testing.T) {
	entry := waitingEntry(day, "09:00", "12:00")
	f := newFixture(entry)
	f.offer(t, entry, 2)

	stale, err := f.repo.GetByID(context.Background(), orgID, entry.ID)
	require.NoError(t, err)

	_, err = f.svc.DeclineOffer(context.Background(), orgID, entry.ID, nil)
	require.NoError(t, err)

	offered := stale.OfferedBookingID
	require.NoError(t, stale.Accept(nil, f.clock.now))
	err = f.svc.save(context.Background(), stale, domain.WaitlistOffered, offered)

	var wErr *domain.WaitlistError
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, domain.WaitlistInvalidState, wErr.Code)
	assert.Equal(t, domain.WaitlistDeclined, f.repo.status(entry.ID))
}

func TestDeclineOffer_AfterExpiry(t *testing.T) {
	entry := waitingEntry(day, "09:00", "12:00")
	f := newFixture(entry)
	f.offer(t, entry, 1)
	f.clock.now = f.clock.now.Add(5 * time.Hour)

	declined, err := f.svc.DeclineOffer(context.Background(), orgID, entry.ID, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.WaitlistDeclined, declined.Status)
	assert.Equal(t, events.WaitlistOfferDeclined, f.publisher.events[1].Type)
}

func TestGet_LazyExpiry(t *testing.T) {
	entry := waitingEntry(day, "09:00", "12:00")
	f := newFixture(entry)
	f.offer(t, entry, 1)
	f.clock.now = f.clock.now.Add(90 * time.Minute)

	got, err := f.svc.Get(context.Background(), orgID, entry.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.WaitlistExpired, got.Status)
	assert.Nil(t, got.OfferedBookingID)
	assert.Equal(t, domain.WaitlistExpired, f.repo.status(entry.ID))
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Get(context.Background(), orgID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelEntry(t *testing.T) {
	waiting := waitingEntry(day, "09:00", "12:00")
	offered := waitingEntry(day, "09:00", "12:00")
	f := newFixture(waiting, offered)
	f.offer(t, offered, 2)

	_, err := f.svc.CancelEntry(context.Background(), orgID, waiting.ID, "no longer needed")
	require.NoError(t, err)
	_, err = f.svc.CancelEntry(context.Background(), orgID, offered.ID, "")
	require.NoError(t, err)

	assert.Equal(t, domain.WaitlistCancelled, f.repo.status(waiting.ID))
	assert.Equal(t, domain.WaitlistCancelled, f.repo.status(offered.ID))

	_, err = f.svc.CancelEntry(context.Background(), orgID, waiting.ID, "")
	assert.ErrorIs(t, err, domain.ErrWaitlist)
}

func TestStatistics(t *testing.T) {
	a := waitingEntry(day, "09:00", "12:00")
	b := waitingEntry(day, "09:00", "12:00")
	c := waitingEntry(day, "09:00", "12:00")
	d := waitingEntry(day, "09:00", "12:00")
	f := newFixture(a, b, c, d)
	f.offer(t, a, 2)
	_, err := f.svc.AcceptOffer(context.Background(), orgID, a.ID, nil)
	require.NoError(t, err)
	_, err = f.svc.CancelEntry(context.Background(), orgID, b.ID, "")
	require.NoError(t, err)

	stats, err := f.svc.Statistics(context.Background(), orgID)

	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.ByStatus[domain.WaitlistWaiting])
	assert.Equal(t, 1, stats.ByStatus[domain.WaitlistAccepted])
	assert.Equal(t, 0, stats.ByStatus[domain.WaitlistExpired])
	assert.Len(t, stats.ByStatus, len(domain.WaitlistStatuses))
	assert.InDelta(t, 0.25, stats.FulfillmentRate, 1e-9)
}

func TestStatistics_Empty(t *testing.T) {
	f := newFixture()

	stats, err := f.svc.Statistics(context.Background(), orgID)

	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.FulfillmentRate)
}

func TestStatistics_RepositoryError(t *testing.T) {
	f := newFixture()
	f.repo.err = errors.New("connection reset")

	_, err := f.svc.Statistics(context.Background(), orgID)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestPublishFailureDoesNotFailOffer(t *testing.T) {
	entry := waitingEntry(day, "09:00", "12:00")
	f := newFixture(entry)
	f.publisher.err = errors.New("broker down")

	f.offer(t, entry, 2)

	assert.Equal(t, domain.WaitlistOffered, f.repo.status(entry.ID))
}
