package rules

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// ValidationRequest запрос проверки бронирования по правилам
type ValidationRequest struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Scope          domain.RuleScope
}

// ValidationResult результат проверки: все нарушения и применённые правила
type ValidationResult struct {
	Valid        bool        `json:"valid"`
	Errors       []string    `json:"errors"`
	RulesApplied []uuid.UUID `json:"rulesApplied"`
}

// FeeRequest запрос расчёта платы за отмену
type FeeRequest struct {
	OrganizationID  uuid.UUID
	HoursUntilStart float64
	EstimatedCost   decimal.Decimal
	Scope           domain.RuleScope
}
