package send_waitlist_offer

import (
	"context"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/waitlist"
)

type WaitlistService interface {
	SendOffer(ctx context.Context, req *waitlist.OfferRequest) (*domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
