package materialize_pattern

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/usecase/create_booking"
)

// PatternExpander интерфейс развёртки шаблона повторения
type PatternExpander interface {
	Expand(ctx context.Context, organizationID, patternID uuid.UUID, count int, relativeToStart bool) (*domain.RecurringPattern, []time.Time, error)
}

// BookingCreator интерфейс конвейера создания бронирования
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
