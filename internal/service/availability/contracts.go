package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// BlockRepository интерфейс репозитория блоков доступности
type BlockRepository interface {
	List(ctx context.Context, filter domain.AvailabilityFilter) ([]*domain.Availability, error)
}

// ConflictDetector интерфейс поиска конфликтующих бронирований
type ConflictDetector interface {
	GetConflicts(
		ctx context.Context,
		organizationID uuid.UUID,
		resourceType domain.ResourceType,
		resourceID uuid.UUID,
		start, end time.Time,
		excludeBookingID *uuid.UUID,
	) ([]*domain.Booking, error)
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
