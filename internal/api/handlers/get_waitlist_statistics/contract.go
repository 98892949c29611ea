package get_waitlist_statistics

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

type WaitlistService interface {
	Statistics(ctx context.Context, organizationID uuid.UUID) (*domain.WaitlistStatistics, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
