package recurrence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	patternRepo "github.com/m04kA/SMC-FlightScheduler/internal/infra/storage/pattern"
)

// Service сервис разворачивания повторяющихся шаблонов
type Service struct {
	patternRepo  PatternRepository
	expander     *Expander
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса повторений
func NewService(patternRepo PatternRepository, timeProvider TimeProvider, logger Logger) *Service {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		patternRepo:  patternRepo,
		expander:     NewExpander(),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetNextOccurrences возвращает count следующих дат шаблона
// relativeToStart=true считает от start_date, иначе от сегодняшнего дня
func (s *Service) GetNextOccurrences(
	ctx context.Context,
	organizationID, patternID uuid.UUID,
	count int,
	relativeToStart bool,
) ([]time.Time, error) {
	_, dates, err := s.Expand(ctx, organizationID, patternID, count, relativeToStart)
	return dates, err
}

// Expand загружает шаблон и разворачивает его, возвращая шаблон вместе с датами
func (s *Service) Expand(
	ctx context.Context,
	organizationID, patternID uuid.UUID,
	count int,
	relativeToStart bool,
) (*domain.RecurringPattern, []time.Time, error) {
	s.logger.Info("Expand: pattern=%s org=%s count=%d relativeToStart=%t",
		patternID, organizationID, count, relativeToStart)

	if count <= 0 || count > domain.MaxOccurrencesPerRequest {
		s.logger.Warn("Expand: invalid count=%d", count)
		return nil, nil, domain.NewValidationError(domain.MsgInvalidCount)
	}

	pattern, err := s.patternRepo.GetByID(ctx, organizationID, patternID)
	if err != nil {
		if errors.Is(err, patternRepo.ErrPatternNotFound) {
			s.logger.Warn("Expand: pattern=%s not found", patternID)
			return nil, nil, &domain.NotFoundError{Entity: "pattern", ID: patternID}
		}
		s.logger.Error("Expand: repository error for pattern=%s: %v", patternID, err)
		return nil, nil, fmt.Errorf("%w: Expand - repository error: %w", ErrInternal, err)
	}

	from := s.timeProvider.Now()
	if relativeToStart {
		from = pattern.StartDate
	}

	dates := s.expander.NextOccurrences(pattern, count, from)

	s.logger.Info("Expand: pattern=%s produced %d occurrences", patternID, len(dates))
	return pattern, dates, nil
}
