package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/pkg/types"
)

// WaitlistStatus is the lifecycle state of a waitlist entry.
type WaitlistStatus string

const (
	WaitlistWaiting   WaitlistStatus = "WAITING"
	WaitlistOffered   WaitlistStatus = "OFFERED"
	WaitlistAccepted  WaitlistStatus = "ACCEPTED"
	WaitlistDeclined  WaitlistStatus = "DECLINED"
	WaitlistCancelled WaitlistStatus = "CANCELLED"
	WaitlistExpired   WaitlistStatus = "EXPIRED"
)

// WaitlistStatuses lists every status, in display order.
var WaitlistStatuses = []WaitlistStatus{
	WaitlistWaiting, WaitlistOffered, WaitlistAccepted,
	WaitlistDeclined, WaitlistCancelled, WaitlistExpired,
}

// WaitlistEntry is a user's request for a slot that is currently taken.
// Offer fields are set only while OFFERED; at most one outstanding offer exists per entry.
type WaitlistEntry struct {
	ID                 uuid.UUID
	OrganizationID     uuid.UUID
	UserID             uuid.UUID
	LocationID         *uuid.UUID
	RequestedDate      time.Time
	PreferredStartTime types.TimeString
	PreferredEndTime   types.TimeString
	AircraftID         *uuid.UUID
	InstructorID       *uuid.UUID
	AnyAircraft        bool
	AnyInstructor      bool
	Notes              *string

	Status            WaitlistStatus
	OfferedBookingID  *uuid.UUID
	OfferMessage      *string
	OfferedAt         *time.Time
	OfferExpiresAt    *time.Time
	AcceptedBookingID *uuid.UUID
	ResponseNotes     *string
	RespondedAt       *time.Time
	CancelReason      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PreferredWindow is the requested date combined with the preferred times (UTC).
// An end time of 00:00 means the midnight that closes the requested date.
func (e *WaitlistEntry) PreferredWindow() TimeRange {
	end := e.PreferredEndTime.On(e.RequestedDate)
	if e.PreferredEndTime.Minutes() == 0 {
		end = end.AddDate(0, 0, 1)
	}
	return TimeRange{
		Start: e.PreferredStartTime.On(e.RequestedDate),
		End:   end,
	}
}

// OfferExpired reports whether an outstanding offer is past its expiry at now.
func (e *WaitlistEntry) OfferExpired(now time.Time) bool {
	return e.Status == WaitlistOffered && e.OfferExpiresAt != nil && now.After(*e.OfferExpiresAt)
}

// WaitlistStatistics aggregates an organization's waitlist.
type WaitlistStatistics struct {
	Total           int                    `json:"total"`
	ByStatus        map[WaitlistStatus]int `json:"byStatus"`
	FulfillmentRate float64                `json:"fulfillmentRate"`
}
