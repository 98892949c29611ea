package rules

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// Service сервис разрешения правил бронирования
type Service struct {
	ruleRepo     RuleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(ruleRepo RuleRepository, timeProvider TimeProvider, logger Logger) *Service {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		ruleRepo:     ruleRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetMergedRules возвращает действующие правила организации для заданной области
func (s *Service) GetMergedRules(ctx context.Context, organizationID uuid.UUID, scope domain.RuleScope) (*domain.MergedRules, error) {
	rules, err := s.ruleRepo.ListByOrganization(ctx, organizationID)
	if err != nil {
		s.logger.Error("GetMergedRules: repository error for org=%s: %v", organizationID, err)
		return nil, fmt.Errorf("%w: GetMergedRules - repository error: %w", ErrInternal, err)
	}

	merged := Merge(rules, scope, s.timeProvider.Now())
	return &merged, nil
}

// ValidateBooking проверяет длительность и срок уведомления, возвращая все нарушения сразу
func (s *Service) ValidateBooking(ctx context.Context, req *ValidationRequest) (*ValidationResult, error) {
	s.logger.Info("ValidateBooking: org=%s user=%s start=%s end=%s",
		req.OrganizationID, req.UserID, req.ScheduledStart.Format(time.RFC3339), req.ScheduledEnd.Format(time.RFC3339))

	merged, err := s.GetMergedRules(ctx, req.OrganizationID, req.Scope)
	if err != nil {
		return nil, err
	}

	violations := ValidateAgainst(*merged, req.ScheduledStart, req.ScheduledEnd, s.timeProvider.Now())
	if len(violations) > 0 {
		s.logger.Warn("ValidateBooking: %d violations for org=%s: %v", len(violations), req.OrganizationID, violations)
	}

	return &ValidationResult{
		Valid:        len(violations) == 0,
		Errors:       violations,
		RulesApplied: merged.RuleIDs,
	}, nil
}

// CalculateCancellationFee считает плату за отмену по объединённым правилам
func (s *Service) CalculateCancellationFee(ctx context.Context, req *FeeRequest) (*domain.CancellationFee, error) {
	if req.EstimatedCost.IsNegative() {
		return nil, domain.NewValidationError(domain.MsgNegativeCost)
	}

	merged, err := s.GetMergedRules(ctx, req.OrganizationID, req.Scope)
	if err != nil {
		return nil, err
	}

	fee := CancellationFee(*merged, req.HoursUntilStart, req.EstimatedCost)

	s.logger.Info("CalculateCancellationFee: org=%s hours=%.2f cost=%s fee=%s free=%t late=%t",
		req.OrganizationID, req.HoursUntilStart, req.EstimatedCost, fee.Fee, fee.IsFree, fee.IsLate)
	return &fee, nil
}
