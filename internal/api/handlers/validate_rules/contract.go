package validate_rules

import (
	"context"

	"github.com/m04kA/SMC-FlightScheduler/internal/service/rules"
)

type RulesService interface {
	ValidateBooking(ctx context.Context, req *rules.ValidationRequest) (*rules.ValidationResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
