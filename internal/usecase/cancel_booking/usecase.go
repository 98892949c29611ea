package cancel_booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/service/waitlist"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookings BookingCanceller
	waitlist WaitlistMatcher
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookings BookingCanceller, waitlist WaitlistMatcher, logger Logger) *UseCase {
	return &UseCase{
		bookings: bookings,
		waitlist: waitlist,
		logger:   logger,
	}
}

// Execute отменяет бронирование и подбирает под освободившийся block-интервал записи листа ожидания
// Предложения не отправляются автоматически, выбор остаётся за оператором.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: org=%s booking=%s actor=%s", req.OrganizationID, req.BookingID, req.ActorID)

	if req.BookingID == uuid.Nil {
		return nil, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	// 1. Отмена со списанием платы по правилам
	result, err := uc.bookings.Cancel(ctx, req.OrganizationID, req.BookingID, req.ActorID, req.Reason)
	if err != nil {
		uc.logger.Warn("CancelBooking: booking=%s not cancelled: %v", req.BookingID, err)
		return nil, err
	}

	booking := result.Booking
	response := &Response{Booking: booking, Fee: result.Fee, WaitlistMatches: []uuid.UUID{}}

	// 2. Подбор листа ожидания; отмена уже зафиксирована, ошибка подбора её не откатывает
	matches, err := uc.waitlist.FindMatches(ctx, waitlist.SlotQuery{
		OrganizationID: req.OrganizationID,
		Start:          booking.BlockStart(),
		End:            booking.BlockEnd(),
		AircraftID:     booking.AircraftID,
		InstructorID:   booking.InstructorID,
	})
	if err != nil {
		uc.logger.Error("CancelBooking: waitlist matching failed for booking=%s: %v", req.BookingID, err)
		return response, nil
	}

	response.WaitlistMatched = true
	for _, entry := range matches {
		response.WaitlistMatches = append(response.WaitlistMatches, entry.ID)
	}

	uc.logger.Info("CancelBooking: booking=%s cancelled, fee=%s, %d waitlist matches",
		req.BookingID, result.Fee.Fee, len(response.WaitlistMatches))

	return response, nil
}
