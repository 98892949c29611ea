package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FlightScheduler/pkg/types"
)

func offeredEntry(expiresAt time.Time) *WaitlistEntry {
	e := &WaitlistEntry{ID: uuid.New(), Status: WaitlistWaiting}
	if err := e.SendOffer(uuid.New(), nil, expiresAt, expiresAt.Add(-24*time.Hour)); err != nil {
		panic(err)
	}
	return e
}

func TestWaitlistEntry_AcceptBeforeExpiry(t *testing.T) {
	e := offeredEntry(at(12, 0))
	offered := *e.OfferedBookingID

	require.NoError(t, e.Accept(nil, at(12, 0)))

	assert.Equal(t, WaitlistAccepted, e.Status)
	assert.Equal(t, offered, *e.AcceptedBookingID)
	assert.Nil(t, e.OfferedBookingID)
	assert.Nil(t, e.OfferExpiresAt)
}

func TestWaitlistEntry_AcceptExpired(t *testing.T) {
	e := offeredEntry(at(12, 0))

	err := e.Accept(nil, at(12, 1))

	var wErr *WaitlistError
	require.ErrorAs(t, err, &wErr)
	assert.Equal(t, WaitlistOfferExpired, wErr.Code)
	assert.ErrorIs(t, err, ErrWaitlist)
	assert.Equal(t, WaitlistOffered, e.Status)
}

func TestWaitlistEntry_InvalidState(t *testing.T) {
	e := &WaitlistEntry{ID: uuid.New(), Status: WaitlistWaiting}

	for _, err := range []error{e.Accept(nil, at(10, 0)), e.Decline(nil, at(10, 0))} {
		var wErr *WaitlistError
		require.ErrorAs(t, err, &wErr)
		assert.Equal(t, WaitlistInvalidState, wErr.Code)
	}

	offered := offeredEntry(at(12, 0))
	err := offered.SendOffer(uuid.New(), nil, at(13, 0), at(10, 0))
	assert.ErrorIs(t, err, ErrWaitlist)
}

func TestWaitlistEntry_DeclineIgnoresExpiry(t *testing.T) {
	e := offeredEntry(at(12, 0))

	require.NoError(t, e.Decline(nil, at(18, 0)))
	assert.Equal(t, WaitlistDeclined, e.Status)
}

func TestWaitlistEntry_Cancel(t *testing.T) {
	waiting := &WaitlistEntry{Status: WaitlistWaiting}
	require.NoError(t, waiting.Cancel("plans changed", at(10, 0)))
	assert.Equal(t, WaitlistCancelled, waiting.Status)
	assert.Equal(t, "plans changed", *waiting.CancelReason)

	require.NoError(t, offeredEntry(at(12, 0)).Cancel("", at(10, 0)))

	accepted := &WaitlistEntry{Status: WaitlistAccepted}
	assert.ErrorIs(t, accepted.Cancel("", at(10, 0)), ErrWaitlist)
}

func TestWaitlistEntry_Expire(t *testing.T) {
	e := offeredEntry(at(12, 0))

	assert.False(t, e.Expire(at(12, 0)))
	assert.True(t, e.Expire(at(12, 30)))
	assert.Equal(t, WaitlistExpired, e.Status)
	assert.False(t, e.Expire(at(13, 0)))
}

func TestWaitlistEntry_PreferredWindow(t *testing.T) {
	date := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		from, to  types.TimeString
		wantStart time.Time
		wantEnd   time.Time
	}{
		{name: "same day", from: "09:00", to: "12:00", wantStart: date.Add(9 * time.Hour), wantEnd: date.Add(12 * time.Hour)},
		{name: "until midnight", from: "22:00", to: "00:00", wantStart: date.Add(22 * time.Hour), wantEnd: date.AddDate(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &WaitlistEntry{RequestedDate: date, PreferredStartTime: tt.from, PreferredEndTime: tt.to}

			window := e.PreferredWindow()

			assert.Equal(t, tt.wantStart, window.Start)
			assert.Equal(t, tt.wantEnd, window.End)
		})
	}
}
