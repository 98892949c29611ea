package calculate_cancellation_fee

import (
	"context"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/rules"
)

type RulesService interface {
	CalculateCancellationFee(ctx context.Context, req *rules.FeeRequest) (*domain.CancellationFee, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
