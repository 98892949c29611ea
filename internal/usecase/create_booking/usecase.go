package create_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/events"
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/lock"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/rules"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	rules        RuleValidator
	guard        ResourceGuard
	locker       ResourceLocker
	txManager    TransactionManager
	publisher    EventPublisher
	defaults     Defaults
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rules RuleValidator,
	guard ResourceGuard,
	locker ResourceLocker,
	txManager TransactionManager,
	publisher EventPublisher,
	defaults Defaults,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		rules:        rules,
		guard:        guard,
		locker:       locker,
		txManager:    txManager,
		publisher:    publisher,
		defaults:     defaults,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка конфликтов и запись идут в одной сериализуемой транзакции под блокировкой ресурсов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: org=%s location=%s type=%s start=%s end=%s validateOnly=%t",
		req.OrganizationID, req.LocationID, req.BookingType,
		req.ScheduledStart.Format(time.RFC3339), req.ScheduledEnd.Format(time.RFC3339), req.ValidateOnly)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	booking := uc.newDraft(req)

	// 2. Правила организации (длительность, срок уведомления, горизонт)
	ruleResult, err := uc.rules.ValidateBooking(ctx, &rules.ValidationRequest{
		OrganizationID: req.OrganizationID,
		UserID:         req.CreatedBy,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		Scope: domain.RuleScope{
			AircraftID:   req.AircraftID,
			InstructorID: req.InstructorID,
			LocationID:   &req.LocationID,
			BookingType:  req.BookingType,
		},
	})
	if err != nil {
		uc.logger.Error("CreateBooking: rule validation failed: %v", err)
		return nil, err
	}
	if !ruleResult.Valid {
		uc.logger.Warn("CreateBooking: rejected by rules: %v", ruleResult.Errors)
		return nil, domain.NewValidationError(ruleResult.Errors...)
	}

	// 3. Режим проверки: конфликты без блокировок и записи
	if req.ValidateOnly {
		if err := uc.guard.EnsureResourcesFree(ctx, booking); err != nil {
			uc.logger.Warn("CreateBooking: validate only, conflicts: %v", err)
			return nil, err
		}
		uc.logger.Info("CreateBooking: validate only, booking is acceptable")
		return &Response{Booking: booking, ValidateOnly: true, RulesApplied: ruleResult.RulesApplied}, nil
	}

	// 4. Блокируем ресурсы, чтобы параллельные запросы не спорили в транзакции
	held, err := uc.locker.Acquire(ctx, lock.ResourceKeys(req.OrganizationID, booking.Resources()))
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to lock resources: %v", err)
		return nil, err
	}
	defer uc.locker.Release(ctx, held)

	var result *domain.Booking

	// 5. Проверка конфликтов и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// при повторе транзакции ID не должен остаться от прошлой попытки
		booking.ID = uuid.Nil

		if err := uc.guard.EnsureResourcesFree(txCtx, booking); err != nil {
			uc.logger.Warn("CreateBooking: conflicts: %v", err)
			return err
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// 6. Событие публикуется после коммита
	event := events.New(events.BookingCreated, result.OrganizationID, result.ID, &result.CreatedBy, uc.timeProvider.Now(),
		createdPayload{
			Status:         result.Status,
			BookingType:    result.BookingType,
			LocationID:     result.LocationID,
			AircraftID:     result.AircraftID,
			InstructorID:   result.InstructorID,
			StudentID:      result.StudentID,
			ScheduledStart: result.ScheduledStart,
			ScheduledEnd:   result.ScheduledEnd,
		})
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish %s for id=%s: %v", event.Type, result.ID, err)
	}

	return &Response{Booking: result, RulesApplied: ruleResult.RulesApplied}, nil
}

// newDraft собирает бронирование в DRAFT с буферами по умолчанию
func (uc *UseCase) newDraft(req *Request) *domain.Booking {
	preflight := uc.defaults.PreflightMinutes
	if req.PreflightMinutes != nil {
		preflight = *req.PreflightMinutes
	}

	postflight := uc.defaults.PostflightMinutes
	if req.PostflightMinutes != nil {
		postflight = *req.PostflightMinutes
	}

	return &domain.Booking{
		OrganizationID:    req.OrganizationID,
		LocationID:        req.LocationID,
		AircraftID:        req.AircraftID,
		InstructorID:      req.InstructorID,
		StudentID:         req.StudentID,
		PatternID:         req.PatternID,
		BookingType:       req.BookingType,
		ScheduledStart:    req.ScheduledStart.UTC(),
		ScheduledEnd:      req.ScheduledEnd.UTC(),
		PreflightMinutes:  preflight,
		PostflightMinutes: postflight,
		Status:            domain.StatusDraft,
		EstimatedCost:     req.EstimatedCost,
		Notes:             req.Notes,
		CreatedBy:         req.CreatedBy,
	}
}
