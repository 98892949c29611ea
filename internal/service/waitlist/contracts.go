package waitlist

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/events"
)

// EntryRepository интерфейс репозитория листа ожидания
type EntryRepository interface {
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.WaitlistEntry, error)
	FindWaiting(ctx context.Context, organizationID uuid.UUID, date time.Time) ([]*domain.WaitlistEntry, error)
	UpdateState(ctx context.Context, entry *domain.WaitlistEntry, expectedStatus domain.WaitlistStatus, expectedOfferedBookingID *uuid.UUID) error
	CountByStatus(ctx context.Context, organizationID uuid.UUID) (map[domain.WaitlistStatus]int, error)
}

// BookingReader интерфейс для проверки предлагаемого бронирования
type BookingReader interface {
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.Booking, error)
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
