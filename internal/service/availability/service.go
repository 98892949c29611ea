package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// Service сервис доступности ресурсов
type Service struct {
	blockRepo           BlockRepository
	conflicts           ConflictDetector
	schedule            domain.WeeklySchedule
	slotIntervalMinutes int
	buffers             Buffers
	timeProvider        TimeProvider
	logger              Logger
}

// NewService создает новый экземпляр сервиса доступности
// schedule задаёт часы работы по дням недели, slotIntervalMinutes - шаг слотов по умолчанию,
// buffers - preflight/postflight, с которыми будет создано бронирование в слоте
func NewService(
	blockRepo BlockRepository,
	conflicts ConflictDetector,
	schedule domain.WeeklySchedule,
	slotIntervalMinutes int,
	buffers Buffers,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if slotIntervalMinutes <= 0 {
		slotIntervalMinutes = domain.DefaultSlotIntervalMinutes
	}
	return &Service{
		blockRepo:           blockRepo,
		conflicts:           conflicts,
		schedule:            schedule,
		slotIntervalMinutes: slotIntervalMinutes,
		buffers:             buffers,
		timeProvider:        timeProvider,
		logger:              logger,
	}
}

// IsResourceAvailable проверяет блоки UNAVAILABLE и активные бронирования ресурса
// Любой из источников делает ресурс недоступным, в ответе возвращаются конфликты обоих.
func (s *Service) IsResourceAvailable(
	ctx context.Context,
	organizationID uuid.UUID,
	resourceType domain.ResourceType,
	resourceID uuid.UUID,
	start, end time.Time,
) (*domain.AvailabilityResult, error) {
	if !resourceType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown resource_type %q", resourceType))
	}

	window, err := domain.NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}

	resource := domain.ResourceRef{Type: resourceType, ID: resourceID}
	blocks, bookings, err := s.FindConflicts(ctx, organizationID, resource, window, nil)
	if err != nil {
		return nil, err
	}

	conflicts := make([]domain.AvailabilityConflict, 0, len(blocks)+len(bookings))
	for _, block := range blocks {
		conflicts = append(conflicts, domain.AvailabilityConflict{
			Source: domain.SourceAvailabilityBlock,
			ID:     block.ID.String(),
			Start:  block.StartDatetime,
			End:    block.EndDatetime,
			Reason: block.Reason,
		})
	}
	for _, booking := range bookings {
		conflicts = append(conflicts, domain.AvailabilityConflict{
			Source: domain.SourceBooking,
			ID:     booking.ID.String(),
			Start:  booking.BlockStart(),
			End:    booking.BlockEnd(),
			Status: string(booking.Status),
		})
	}

	s.logger.Info("IsResourceAvailable: %s=%s window=%s..%s conflicts=%d",
		resourceType, resourceID, window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339), len(conflicts))

	return &domain.AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

// GetAvailableSlots возвращает только свободные слоты ресурса на дату
// Блоки и бронирования дня загружаются один раз, каждый слот проверяется в памяти
// вместе с буферами, как его проверит создание бронирования.
func (s *Service) GetAvailableSlots(ctx context.Context, req *SlotsRequest) ([]domain.AvailableSlot, error) {
	if err := validateSlotsRequest(req); err != nil {
		s.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	interval := req.SlotIntervalMinutes
	if interval == 0 {
		interval = s.slotIntervalMinutes
	}

	date := domain.DateOf(req.Date)
	window, isOpen := s.schedule.For(date).Window(date)
	if !isOpen {
		s.logger.Info("GetAvailableSlots: closed on %s", date.Format(domain.DateFormat))
		return []domain.AvailableSlot{}, nil
	}

	candidates := generateSlots(
		window,
		time.Duration(req.DurationMinutes)*time.Minute,
		time.Duration(interval)*time.Minute,
		s.timeProvider.Now(),
	)
	if len(candidates) == 0 {
		return []domain.AvailableSlot{}, nil
	}

	resource := domain.ResourceRef{Type: req.ResourceType, ID: req.ResourceID}
	blocks, bookings, err := s.FindConflicts(ctx, req.OrganizationID, resource, s.buffers.Widen(window), nil)
	if err != nil {
		return nil, err
	}

	slots := make([]domain.AvailableSlot, 0, len(candidates))
	for _, candidate := range candidates {
		if !isSlotFree(s.buffers.Widen(candidate), blocks, bookings) {
			continue
		}
		slots = append(slots, domain.AvailableSlot{
			Start:           candidate.Start,
			End:             candidate.End,
			DurationMinutes: req.DurationMinutes,
			Available:       true,
		})
	}

	s.logger.Info("GetAvailableSlots: %s=%s date=%s free=%d of %d",
		req.ResourceType, req.ResourceID, date.Format(domain.DateFormat), len(slots), len(candidates))
	return slots, nil
}

// FindConflicts возвращает блоки UNAVAILABLE и активные бронирования ресурса, пересекающиеся с окном
// excludeBookingID исключает само проверяемое бронирование (перевод DRAFT в SCHEDULED).
// Для площадки бронирования не конфликтуют, учитываются только блоки.
func (s *Service) FindConflicts(
	ctx context.Context,
	organizationID uuid.UUID,
	resource domain.ResourceRef,
	window domain.TimeRange,
	excludeBookingID *uuid.UUID,
) ([]*domain.Availability, []*domain.Booking, error) {
	unavailable := domain.AvailabilityUnavailable

	candidates, err := s.blockRepo.List(ctx, domain.AvailabilityFilter{
		OrganizationID: organizationID,
		Resource:       resource,
		Window:         window,
		Type:           &unavailable,
	})
	if err != nil {
		s.logger.Error("FindConflicts: availability repository error for %s=%s: %v", resource.Type, resource.ID, err)
		return nil, nil, fmt.Errorf("%w: FindConflicts - availability repository error: %w", ErrInternal, err)
	}

	blocks := make([]*domain.Availability, 0, len(candidates))
	for _, block := range candidates {
		if block.Blocks(window.Start, window.End) {
			blocks = append(blocks, block)
		}
	}

	if resource.Type == domain.ResourceLocation {
		return blocks, []*domain.Booking{}, nil
	}

	bookings, err := s.conflicts.GetConflicts(ctx, organizationID, resource.Type, resource.ID, window.Start, window.End, excludeBookingID)
	if err != nil {
		s.logger.Error("FindConflicts: conflict detection failed for %s=%s: %v", resource.Type, resource.ID, err)
		return nil, nil, err
	}

	return blocks, bookings, nil
}

func validateSlotsRequest(req *SlotsRequest) error {
	violations := make([]string, 0)

	if !req.ResourceType.IsValid() {
		violations = append(violations, fmt.Sprintf("unknown resource_type %q", req.ResourceType))
	}
	if req.DurationMinutes <= 0 {
		violations = append(violations, domain.MsgInvalidSlotDuration)
	}
	if req.SlotIntervalMinutes < 0 {
		violations = append(violations, domain.MsgInvalidSlotInterval)
	}

	if len(violations) > 0 {
		return domain.NewValidationError(violations...)
	}
	return nil
}
