package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/events"
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/lock"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/rules"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// RuleValidator интерфейс проверки бронирования по правилам организации
type RuleValidator interface {
	ValidateBooking(ctx context.Context, req *rules.ValidationRequest) (*rules.ValidationResult, error)
}

// ResourceGuard интерфейс проверки занятости ресурсов бронирования
type ResourceGuard interface {
	EnsureResourcesFree(ctx context.Context, booking *domain.Booking) error
}

// ResourceLocker интерфейс распределённой блокировки ресурсов
type ResourceLocker interface {
	Acquire(ctx context.Context, keys []string) (*lock.Lock, error)
	Release(ctx context.Context, l *lock.Lock)
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
