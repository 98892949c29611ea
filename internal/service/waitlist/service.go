package waitlist

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/events"
	waitlistRepo "github.com/m04kA/SMC-FlightScheduler/internal/infra/storage/waitlist"
)

// Service сервис листа ожидания
type Service struct {
	entryRepo         EntryRepository
	bookings          BookingReader
	publisher         EventPublisher
	offerExpiresHours int
	timeProvider      TimeProvider
	logger            Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(
	entryRepo EntryRepository,
	bookings BookingReader,
	publisher EventPublisher,
	offerExpiresHours int,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		entryRepo:         entryRepo,
		bookings:          bookings,
		publisher:         publisher,
		offerExpiresHours: offerExpiresHours,
		timeProvider:      timeProvider,
		logger:            logger,
	}
}

// FindMatches возвращает ожидающие записи, подходящие под слот, в порядке FIFO
// Записи берутся на каждую дату, которую задевает слот (слот может пересекать полночь).
func (s *Service) FindMatches(ctx context.Context, q SlotQuery) ([]*domain.WaitlistEntry, error) {
	if _, err := domain.NewTimeRange(q.Start, q.End); err != nil {
		return nil, err
	}

	waiting := make([]*domain.WaitlistEntry, 0)
	for date := domain.DateOf(q.Start); date.Before(q.End); date = date.AddDate(0, 0, 1) {
		entries, err := s.entryRepo.FindWaiting(ctx, q.OrganizationID, date)
		if err != nil {
			s.logger.Error("FindMatches: repository error for organization=%s date=%s: %v",
				q.OrganizationID, date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: FindMatches - repository error: %w", ErrInternal, err)
		}
		waiting = append(waiting, entries...)
	}
	sort.SliceStable(waiting, func(i, j int) bool { return waiting[i].CreatedAt.Before(waiting[j].CreatedAt) })

	matches := make([]*domain.WaitlistEntry, 0, len(waiting))
	for _, entry := range waiting {
		if MatchesSlot(entry, q.Start, q.End, q.AircraftID, q.InstructorID) {
			matches = append(matches, entry)
		}
	}

	s.logger.Info("FindMatches: organization=%s slot=%s..%s matched %d of %d",
		q.OrganizationID, q.Start.Format(time.RFC3339), q.End.Format(time.RFC3339), len(matches), len(waiting))

	return matches, nil
}

// Get получает запись; просроченное предложение сохраняется как EXPIRED
func (s *Service) Get(ctx context.Context, organizationID, id uuid.UUID) (*domain.WaitlistEntry, error) {
	entry, err := s.load(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if err := s.expireIfDue(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// SendOffer предлагает записи бронирование; допустимо только из WAITING
func (s *Service) SendOffer(ctx context.Context, req *OfferRequest) (*domain.WaitlistEntry, error) {
	s.logger.Info("SendOffer: entry=%s booking=%s", req.EntryID, req.BookingID)

	hours := req.ExpiresInHours
	if hours < 0 {
		return nil, domain.NewValidationError(domain.MsgInvalidOfferExpiry)
	}
	if req.Message != nil && len(*req.Message) > domain.MaxOfferMessageLength {
		return nil, domain.NewValidationError(
			fmt.Sprintf("offer message longer than %d characters", domain.MaxOfferMessageLength))
	}
	if hours == 0 {
		hours = s.offerExpiresHours
	}

	entry, err := s.load(ctx, req.OrganizationID, req.EntryID)
	if err != nil {
		return nil, err
	}

	if _, err := s.bookings.GetByID(ctx, req.OrganizationID, req.BookingID); err != nil {
		s.logger.Warn("SendOffer: booking=%s unavailable: %v", req.BookingID, err)
		return nil, err
	}

	now := s.timeProvider.Now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)

	if err := entry.SendOffer(req.BookingID, req.Message, expiresAt, now); err != nil {
		s.logger.Warn("SendOffer: entry=%s rejected: %v", entry.ID, err)
		return nil, err
	}

	if err := s.save(ctx, entry, domain.WaitlistWaiting, nil); err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.WaitlistOfferSent, entry.OrganizationID, entry.ID, nil, now,
		offerSentPayload{BookingID: req.BookingID, ExpiresAt: expiresAt, Message: req.Message}))

	return entry, nil
}

// AcceptOffer принимает предложение до истечения срока
// Просроченное предложение сохраняется как EXPIRED, возвращается offer_expired.
func (s *Service) AcceptOffer(ctx context.Context, organizationID, id uuid.UUID, notes *string) (*domain.WaitlistEntry, error) {
	s.logger.Info("AcceptOffer: entry=%s", id)

	entry, err := s.load(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	offered := entry.OfferedBookingID
	now := s.timeProvider.Now()

	if err := entry.Accept(notes, now); err != nil {
		var wErr *domain.WaitlistError
		if errors.As(err, &wErr) && wErr.Code == domain.WaitlistOfferExpired {
			s.logger.Warn("AcceptOffer: entry=%s offer expired at %s", id, entry.OfferExpiresAt.Format(time.RFC3339))
			if expireErr := s.expireIfDue(ctx, entry); expireErr != nil {
				return nil, expireErr
			}
		}
		return nil, err
	}

	if err := s.save(ctx, entry, domain.WaitlistOffered, offered); err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.WaitlistOfferAccepted, organizationID, id, nil, now,
		offerResponsePayload{BookingID: *offered, Notes: notes}))

	return entry, nil
}

// DeclineOffer отклоняет предложение независимо от срока
func (s *Service) DeclineOffer(ctx context.Context, organizationID, id uuid.UUID, notes *string) (*domain.WaitlistEntry, error) {
	s.logger.Info("DeclineOffer: entry=%s", id)

	entry, err := s.load(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	offered := entry.OfferedBookingID
	now := s.timeProvider.Now()

	if err := entry.Decline(notes, now); err != nil {
		s.logger.Warn("DeclineOffer: entry=%s rejected: %v", id, err)
		return nil, err
	}

	if err := s.save(ctx, entry, domain.WaitlistOffered, offered); err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.WaitlistOfferDeclined, organizationID, id, nil, now,
		offerResponsePayload{BookingID: *offered, Notes: notes}))

	return entry, nil
}

// CancelEntry снимает запись из WAITING или OFFERED
func (s *Service) CancelEntry(ctx context.Context, organizationID, id uuid.UUID, reason string) (*domain.WaitlistEntry, error) {
	s.logger.Info("CancelEntry: entry=%s", id)

	entry, err := s.load(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	from, offered := entry.Status, entry.OfferedBookingID

	if err := entry.Cancel(reason, s.timeProvider.Now()); err != nil {
		s.logger.Warn("CancelEntry: entry=%s rejected: %v", id, err)
		return nil, err
	}

	if err := s.save(ctx, entry, from, offered); err != nil {
		return nil, err
	}

	return entry, nil
}

// Statistics считает записи организации по статусам и долю принятых предложений
func (s *Service) Statistics(ctx context.Context, organizationID uuid.UUID) (*domain.WaitlistStatistics, error) {
	counts, err := s.entryRepo.CountByStatus(ctx, organizationID)
	if err != nil {
		s.logger.Error("Statistics: repository error for organization=%s: %v", organizationID, err)
		return nil, fmt.Errorf("%w: Statistics - repository error: %w", ErrInternal, err)
	}

	stats := &domain.WaitlistStatistics{ByStatus: make(map[domain.WaitlistStatus]int, len(domain.WaitlistStatuses))}
	for _, status := range domain.WaitlistStatuses {
		stats.ByStatus[status] = counts[status]
		stats.Total += counts[status]
	}

	if stats.Total > 0 {
		stats.FulfillmentRate = float64(stats.ByStatus[domain.WaitlistAccepted]) / float64(stats.Total)
	}

	return stats, nil
}

func (s *Service) load(ctx context.Context, organizationID, id uuid.UUID) (*domain.WaitlistEntry, error) {
	entry, err := s.entryRepo.GetByID(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("load: entry id=%s not found", id)
			return nil, &domain.NotFoundError{Entity: "waitlist_entry", ID: id}
		}
		s.logger.Error("load: repository error for entry id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: load - repository error: %w", ErrInternal, err)
	}
	return entry, nil
}

// expireIfDue сохраняет EXPIRED для просроченного предложения
// Если запись успели изменить параллельно, подгружается её актуальное состояние.
func (s *Service) expireIfDue(ctx context.Context, entry *domain.WaitlistEntry) error {
	offered := entry.OfferedBookingID
	if !entry.Expire(s.timeProvider.Now()) {
		return nil
	}

	err := s.entryRepo.UpdateState(ctx, entry, domain.WaitlistOffered, offered)
	if err == nil {
		s.logger.Info("expireIfDue: entry=%s expired", entry.ID)
		return nil
	}

	if errors.Is(err, waitlistRepo.ErrStateChanged) {
		fresh, loadErr := s.load(ctx, entry.OrganizationID, entry.ID)
		if loadErr != nil {
			return loadErr
		}
		*entry = *fresh
		return nil
	}

	s.logger.Error("expireIfDue: repository error for entry=%s: %v", entry.ID, err)
	return fmt.Errorf("%w: expireIfDue - repository error: %w", ErrInternal, err)
}

// save сохраняет запись, если в БД всё ещё (status, offered_booking_id)
func (s *Service) save(ctx context.Context, entry *domain.WaitlistEntry, expected domain.WaitlistStatus, offered *uuid.UUID) error {
	err := s.entryRepo.UpdateState(ctx, entry, expected, offered)
	if err == nil {
		return nil
	}

	if errors.Is(err, waitlistRepo.ErrStateChanged) {
		s.logger.Warn("save: entry=%s changed concurrently, expected %s", entry.ID, expected)
		return &domain.WaitlistError{Code: domain.WaitlistInvalidState, EntryID: entry.ID, Status: expected}
	}

	s.logger.Error("save: repository error for entry=%s: %v", entry.ID, err)
	return fmt.Errorf("%w: save - repository error: %w", ErrInternal, err)
}

// publish отправляет событие после записи; ошибка только логируется
func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish: %s for %s failed: %v", event.Type, event.AggregateID, err)
	}
}
