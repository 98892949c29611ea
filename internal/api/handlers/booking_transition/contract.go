package booking_transition

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

type BookingService interface {
	Apply(ctx context.Context, organizationID, id, actor uuid.UUID, action domain.BookingAction) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
