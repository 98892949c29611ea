package waitlist_action

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

type WaitlistService interface {
	AcceptOffer(ctx context.Context, organizationID, id uuid.UUID, notes *string) (*domain.WaitlistEntry, error)
	DeclineOffer(ctx context.Context, organizationID, id uuid.UUID, notes *string) (*domain.WaitlistEntry, error)
	CancelEntry(ctx context.Context, organizationID, id uuid.UUID, reason string) (*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
