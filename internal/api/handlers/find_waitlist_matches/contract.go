package find_waitlist_matches

import (
	"context"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/waitlist"
)

type WaitlistService interface {
	FindMatches(ctx context.Context, q waitlist.SlotQuery) ([]*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
