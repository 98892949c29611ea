package check_conflicts

import (
	"context"

	"github.com/m04kA/SMC-FlightScheduler/internal/service/conflicts"
)

type ConflictService interface {
	CheckConflicts(ctx context.Context, req *conflicts.CheckRequest) (*conflicts.CheckResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
