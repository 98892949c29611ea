package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/events"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/rules"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, booking *domain.Booking, expected domain.BookingStatus) error
}

// ResourceChecker интерфейс поиска конфликтов ресурса (блоки и бронирования)
type ResourceChecker interface {
	FindConflicts(
		ctx context.Context,
		organizationID uuid.UUID,
		resource domain.ResourceRef,
		window domain.TimeRange,
		excludeBookingID *uuid.UUID,
	) ([]*domain.Availability, []*domain.Booking, error)
}

// RuleResolver интерфейс расчёта платы за отмену
type RuleResolver interface {
	CalculateCancellationFee(ctx context.Context, req *rules.FeeRequest) (*domain.CancellationFee, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в UTC
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
