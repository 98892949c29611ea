package get_resource_bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

type ConflictService interface {
	GetConflicts(
		ctx context.Context,
		organizationID uuid.UUID,
		resourceType domain.ResourceType,
		resourceID uuid.UUID,
		start, end time.Time,
		excludeBookingID *uuid.UUID,
	) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
