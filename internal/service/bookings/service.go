package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-FlightScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/rules"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo  BookingRepository
	checker      ResourceChecker
	rules        RuleResolver
	txManager    TransactionManager
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	checker ResourceChecker,
	rules RuleResolver,
	txManager TransactionManager,
	publisher EventPublisher,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		bookingRepo:  bookingRepo,
		checker:      checker,
		rules:        rules,
		txManager:    txManager,
		publisher:    publisher,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование организации по ID
func (s *Service) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, &domain.NotFoundError{Entity: "booking", ID: id}
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}
	return booking, nil
}

// EnsureResourcesFree проверяет все ресурсы бронирования по его block-интервалу
// Возвращает *domain.ConflictError для первого занятого ресурса.
func (s *Service) EnsureResourcesFree(ctx context.Context, booking *domain.Booking) error {
	window := booking.BlockRange()
	exclude := &booking.ID
	if booking.ID == uuid.Nil {
		exclude = nil
	}

	resources := append(booking.Resources(), domain.ResourceRef{Type: domain.ResourceLocation, ID: booking.LocationID})

	for _, resource := range resources {
		blocks, conflicting, err := s.checker.FindConflicts(ctx, booking.OrganizationID, resource, window, exclude)
		if err != nil {
			return err
		}

		// на площадке одновременно идут разные занятия, для неё учитываются только блоки
		if resource.Type == domain.ResourceLocation {
			conflicting = nil
		}

		if len(blocks) == 0 && len(conflicting) == 0 {
			continue
		}

		conflictErr := &domain.ConflictError{
			ResourceType: resource.Type,
			ResourceID:   resource.ID,
			Bookings:     make([]domain.BookingSummary, 0, len(conflicting)),
			Blocks:       make([]domain.Availability, 0, len(blocks)),
		}
		for _, b := range conflicting {
			conflictErr.Bookings = append(conflictErr.Bookings, b.Summary())
		}
		for _, block := range blocks {
			conflictErr.Blocks = append(conflictErr.Blocks, *block)
		}
		return conflictErr
	}

	return nil
}

// Apply выполняет действие машины состояний, кроме отмены (для неё нужна причина, см. Cancel)
func (s *Service) Apply(ctx context.Context, organizationID, id, actor uuid.UUID, action domain.BookingAction) (*domain.Booking, error) {
	switch action {
	case domain.ActionSchedule:
		return s.Schedule(ctx, organizationID, id, actor)
	case domain.ActionConfirm, domain.ActionCheckIn, domain.ActionComplete, domain.ActionReject, domain.ActionMarkNoShow:
		return s.transition(ctx, organizationID, id, actor, action)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
}

// Schedule переводит DRAFT в SCHEDULED
// Конфликты перепроверяются в той же сериализуемой транзакции, что и запись статуса.
func (s *Service) Schedule(ctx context.Context, organizationID, id, actor uuid.UUID) (*domain.Booking, error) {
	s.logger.Info("Schedule: booking=%s actor=%s", id, actor)

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.GetByID(txCtx, organizationID, id)
		if err != nil {
			return err
		}

		from := booking.Status
		if err := booking.Schedule(actor, s.timeProvider.Now()); err != nil {
			return err
		}

		if err := s.EnsureResourcesFree(txCtx, booking); err != nil {
			s.logger.Warn("Schedule: booking=%s conflicts: %v", id, err)
			return err
		}

		if err := s.save(txCtx, booking, from, domain.ActionSchedule); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.BookingStatusChanged, organizationID, id, &actor, s.timeProvider.Now(),
		statusChangedPayload{From: domain.StatusDraft, To: result.Status, Action: domain.ActionSchedule}))

	return result, nil
}

// Confirm переводит SCHEDULED в CONFIRMED
func (s *Service) Confirm(ctx context.Context, organizationID, id, actor uuid.UUID) (*domain.Booking, error) {
	return s.transition(ctx, organizationID, id, actor, domain.ActionConfirm)
}

// CheckIn переводит CONFIRMED в CHECKED_IN
func (s *Service) CheckIn(ctx context.Context, organizationID, id, actor uuid.UUID) (*domain.Booking, error) {
	return s.transition(ctx, organizationID, id, actor, domain.ActionCheckIn)
}

// Complete переводит CHECKED_IN в COMPLETED
func (s *Service) Complete(ctx context.Context, organizationID, id, actor uuid.UUID) (*domain.Booking, error) {
	return s.transition(ctx, organizationID, id, actor, domain.ActionComplete)
}

// Reject переводит DRAFT в REJECTED
func (s *Service) Reject(ctx context.Context, organizationID, id, actor uuid.UUID) (*domain.Booking, error) {
	return s.transition(ctx, organizationID, id, actor, domain.ActionReject)
}

// MarkNoShow отмечает неявку после наступления scheduled_start
func (s *Service) MarkNoShow(ctx context.Context, organizationID, id, actor uuid.UUID) (*domain.Booking, error) {
	return s.transition(ctx, organizationID, id, actor, domain.ActionMarkNoShow)
}

// Cancel отменяет бронирование и синхронно возвращает плату за отмену
// Плата считается по правилам на момент отмены от часов до scheduled_start.
func (s *Service) Cancel(ctx context.Context, organizationID, id, actor uuid.UUID, reason string) (*CancelResult, error) {
	s.logger.Info("Cancel: booking=%s actor=%s", id, actor)

	if len(reason) > domain.MaxCancellationReasonLength {
		return nil, domain.NewValidationError(
			fmt.Sprintf("cancellation reason longer than %d characters", domain.MaxCancellationReasonLength))
	}

	booking, err := s.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if !booking.CanApply(domain.ActionCancel) {
		s.logger.Warn("Cancel: booking=%s cannot be cancelled from %s", id, booking.Status)
		return nil, &domain.StateError{Entity: "booking", ID: id, From: string(booking.Status), Action: string(domain.ActionCancel)}
	}

	now := s.timeProvider.Now()
	fee, err := s.rules.CalculateCancellationFee(ctx, &rules.FeeRequest{
		OrganizationID:  organizationID,
		HoursUntilStart: booking.HoursUntilStart(now),
		EstimatedCost:   booking.EstimatedCost,
		Scope:           scopeOf(booking),
	})
	if err != nil {
		s.logger.Error("Cancel: fee calculation failed for booking=%s: %v", id, err)
		return nil, err
	}

	from := booking.Status
	if err := booking.Cancel(reason, actor, now, fee.Fee); err != nil {
		return nil, err
	}

	if err := s.save(ctx, booking, from, domain.ActionCancel); err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking=%s cancelled, fee=%s free=%t late=%t", id, fee.Fee, fee.IsFree, fee.IsLate)

	s.publish(ctx, events.New(events.BookingCancelled, organizationID, id, &actor, now,
		cancelledPayload{From: from, Reason: reason, Fee: *fee}))

	return &CancelResult{Booking: booking, Fee: *fee}, nil
}

// transition загружает, применяет действие и сохраняет статус через compare-and-set
func (s *Service) transition(ctx context.Context, organizationID, id, actor uuid.UUID, action domain.BookingAction) (*domain.Booking, error) {
	s.logger.Info("Transition: booking=%s action=%s actor=%s", id, action, actor)

	booking, err := s.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	from := booking.Status
	now := s.timeProvider.Now()

	switch action {
	case domain.ActionConfirm:
		err = booking.Confirm(actor, now)
	case domain.ActionCheckIn:
		err = booking.CheckIn(actor, now)
	case domain.ActionComplete:
		err = booking.Complete(actor, now)
	case domain.ActionReject:
		err = booking.Reject(actor, now)
	case domain.ActionMarkNoShow:
		err = booking.MarkNoShow(actor, now)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	if err != nil {
		s.logger.Warn("Transition: booking=%s action=%s rejected: %v", id, action, err)
		return nil, err
	}

	if err := s.save(ctx, booking, from, action); err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.BookingStatusChanged, organizationID, id, &actor, now,
		statusChangedPayload{From: from, To: booking.Status, Action: action}))

	return booking, nil
}

// save сохраняет новый статус, если в БД всё ещё from
func (s *Service) save(ctx context.Context, booking *domain.Booking, from domain.BookingStatus, action domain.BookingAction) error {
	err := s.bookingRepo.UpdateStatus(ctx, booking, from)
	if err == nil {
		return nil
	}

	if errors.Is(err, bookingRepo.ErrStatusChanged) {
		s.logger.Warn("save: booking=%s changed concurrently, expected status %s", booking.ID, from)
		return &domain.StateError{Entity: "booking", ID: booking.ID, From: string(from), Action: string(action)}
	}

	s.logger.Error("save: repository error for booking=%s: %v", booking.ID, err)
	return fmt.Errorf("%w: save - repository error: %w", ErrInternal, err)
}

// publish отправляет событие после коммита; ошибка только логируется
func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish: %s for %s failed: %v", event.Type, event.AggregateID, err)
	}
}

func scopeOf(booking *domain.Booking) domain.RuleScope {
	locationID := booking.LocationID
	return domain.RuleScope{
		AircraftID:   booking.AircraftID,
		InstructorID: booking.InstructorID,
		LocationID:   &locationID,
		BookingType:  booking.BookingType,
	}
}
