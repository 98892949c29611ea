package cancel_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/bookings"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/waitlist"
)

// BookingCanceller интерфейс отмены бронирования через машину состояний
type BookingCanceller interface {
	Cancel(ctx context.Context, organizationID, id, actor uuid.UUID, reason string) (*bookings.CancelResult, error)
}

// WaitlistMatcher интерфейс подбора записей листа ожидания под освободившийся слот
type WaitlistMatcher interface {
	FindMatches(ctx context.Context, q waitlist.SlotQuery) ([]*domain.WaitlistEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
