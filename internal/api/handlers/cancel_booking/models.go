package cancel_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Booking         *handlers.BookingResponse `json:"booking"`
	Fee             domain.CancellationFee    `json:"cancellationFee"`
	WaitlistMatches []uuid.UUID               `json:"waitlistMatches"`
	WaitlistMatched bool                      `json:"waitlistMatched"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *cancel_booking.Response) *CancelBookingResponse {
	matches := resp.WaitlistMatches
	if matches == nil {
		matches = []uuid.UUID{}
	}
	return &CancelBookingResponse{
		Booking:         handlers.NewBookingResponse(resp.Booking),
		Fee:             resp.Fee,
		WaitlistMatches: matches,
		WaitlistMatched: resp.WaitlistMatched,
	}
}
