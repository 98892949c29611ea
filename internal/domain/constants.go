package domain

// Defaults applied when no rule or configuration sets a value
const (
	DefaultFreeCancellationHours = 24
	DefaultSlotIntervalMinutes   = 30
	DefaultOfferExpiresHours     = 24
	DefaultOpenTime              = "06:00"
	DefaultCloseTime             = "22:00"
	DefaultPreflightMinutes      = 0
	DefaultPostflightMinutes     = 0
	MaxOccurrencesPerRequest     = 366
	MaxBufferMinutes             = 240
	MaxCancellationReasonLength  = 500
	MaxNotesLength               = 1000
	MaxOfferMessageLength        = 1000
	FeeDecimalPlaces             = 2
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that occupy resources and take part in conflict detection
var ActiveStatuses = []BookingStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCheckedIn,
}
