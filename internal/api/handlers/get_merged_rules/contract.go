package get_merged_rules

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

type RulesService interface {
	GetMergedRules(ctx context.Context, organizationID uuid.UUID, scope domain.RuleScope) (*domain.MergedRules, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
