package get_waitlist_entry

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

type WaitlistService interface {
	Get(ctx context.Context, organizationID, id uuid.UUID) (*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
