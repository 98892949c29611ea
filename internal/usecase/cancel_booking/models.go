package cancel_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	OrganizationID uuid.UUID
	BookingID      uuid.UUID
	ActorID        uuid.UUID
	Reason         string
}

// Response отменённое бронирование, плата и подходящие записи листа ожидания
// WaitlistMatched=false означает, что подбор не выполнился и WaitlistMatches пуст.
type Response struct {
	Booking         *domain.Booking
	Fee             domain.CancellationFee
	WaitlistMatches []uuid.UUID
	WaitlistMatched bool
}
