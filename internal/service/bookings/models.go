package bookings

import "github.com/m04kA/SMC-FlightScheduler/internal/domain"

// CancelResult отменённое бронирование вместе с рассчитанной платой
type CancelResult struct {
	Booking *domain.Booking
	Fee     domain.CancellationFee
}

// statusChangedPayload тело события booking.status_changed
type statusChangedPayload struct {
	From   domain.BookingStatus `json:"from"`
	To     domain.BookingStatus `json:"to"`
	Action domain.BookingAction `json:"action"`
}

// cancelledPayload тело события booking.cancelled
type cancelledPayload struct {
	From   domain.BookingStatus   `json:"from"`
	Reason string                 `json:"reason"`
	Fee    domain.CancellationFee `json:"fee"`
}
