package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// Service сервис поиска конфликтов бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса конфликтов
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetConflicts возвращает все активные бронирования ресурса, чей block-интервал пересекается с [start, end)
// Внутри транзакции строки читаются с блокировкой, поэтому проверка атомарна с последующей вставкой.
func (s *Service) GetConflicts(
	ctx context.Context,
	organizationID uuid.UUID,
	resourceType domain.ResourceType,
	resourceID uuid.UUID,
	start, end time.Time,
	excludeBookingID *uuid.UUID,
) ([]*domain.Booking, error) {
	if !resourceType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown resource_type %q", resourceType))
	}

	window, err := domain.NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}

	resource := &domain.ResourceRef{Type: resourceType, ID: resourceID}
	return s.find(ctx, organizationID, resource, window, excludeBookingID)
}

// CheckConflicts проверяет окно по самолёту и/или инструктору, без них по всей организации
func (s *Service) CheckConflicts(ctx context.Context, req *CheckRequest) (*CheckResult, error) {
	window, err := domain.NewTimeRange(req.ScheduledStart, req.ScheduledEnd)
	if err != nil {
		return nil, err
	}

	resources := make([]*domain.ResourceRef, 0, 2)
	if req.AircraftID != nil {
		resources = append(resources, &domain.ResourceRef{Type: domain.ResourceAircraft, ID: *req.AircraftID})
	}
	if req.InstructorID != nil {
		resources = append(resources, &domain.ResourceRef{Type: domain.ResourceInstructor, ID: *req.InstructorID})
	}
	if len(resources) == 0 {
		resources = append(resources, nil)
	}

	seen := make(map[uuid.UUID]struct{})
	summaries := make([]domain.BookingSummary, 0)

	for _, resource := range resources {
		bookings, err := s.find(ctx, req.OrganizationID, resource, window, req.ExcludeID)
		if err != nil {
			return nil, err
		}
		for _, booking := range bookings {
			if _, ok := seen[booking.ID]; ok {
				continue
			}
			seen[booking.ID] = struct{}{}
			summaries = append(summaries, booking.Summary())
		}
	}

	s.logger.Info("CheckConflicts: org=%s window=%s..%s conflicts=%d",
		req.OrganizationID, window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339), len(summaries))

	return &CheckResult{
		HasConflicts: len(summaries) > 0,
		Conflicts:    summaries,
	}, nil
}

func (s *Service) find(
	ctx context.Context,
	organizationID uuid.UUID,
	resource *domain.ResourceRef,
	window domain.TimeRange,
	excludeID *uuid.UUID,
) ([]*domain.Booking, error) {
	candidates, err := s.bookingRepo.ListActive(ctx, domain.ActiveBookingsFilter{
		OrganizationID: organizationID,
		Resource:       resource,
		Window:         window,
		ExcludeID:      excludeID,
	})
	if err != nil {
		s.logger.Error("GetConflicts: repository error for org=%s: %v", organizationID, err)
		return nil, fmt.Errorf("%w: GetConflicts - repository error: %w", ErrInternal, err)
	}

	return Detect(candidates, resource, window, excludeID), nil
}
