package materialize_pattern

import (
	"context"

	"github.com/m04kA/SMC-FlightScheduler/internal/usecase/materialize_pattern"
)

type MaterializePatternUseCase interface {
	Execute(ctx context.Context, req *materialize_pattern.Request) (*materialize_pattern.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
