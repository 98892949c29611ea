package check_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

type AvailabilityService interface {
	IsResourceAvailable(
		ctx context.Context,
		organizationID uuid.UUID,
		resourceType domain.ResourceType,
		resourceID uuid.UUID,
		start, end time.Time,
	) (*domain.AvailabilityResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
