package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-FlightScheduler/pkg/psqlbuilder"
)

const table = "waitlist_entries"

var columns = []string{
	"id",
	"organization_id",
	"user_id",
	"location_id",
	"requested_date",
	"preferred_start_time",
	"preferred_end_time",
	"aircraft_id",
	"instructor_id",
	"any_aircraft",
	"any_instructor",
	"notes",
	"status",
	"offered_booking_id",
	"offer_message",
	"offered_at",
	"offer_expires_at",
	"accepted_booking_id",
	"response_notes",
	"responded_at",
	"cancel_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий листа ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает запись организации по ID
func (r *Repository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "organization_id": organizationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %w", ErrScanRow, err)
	}

	return entry, nil
}

// FindWaiting получает записи в статусе WAITING на указанную дату в порядке очереди (FIFO)
func (r *Repository) FindWaiting(ctx context.Context, organizationID uuid.UUID, date time.Time) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"organization_id": organizationID,
			"requested_date":  domain.DateOf(date),
			"status":          domain.WaitlistWaiting,
		}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindWaiting - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindWaiting - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: FindWaiting - scan row: %w", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindWaiting - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}

// UpdateState сохраняет состояние записи при условии, что в БД всё ещё
// expectedStatus и expectedOfferedBookingID (compare-and-set)
func (r *Repository) UpdateState(
	ctx context.Context,
	entry *domain.WaitlistEntry,
	expectedStatus domain.WaitlistStatus,
	expectedOfferedBookingID *uuid.UUID,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.Eq{
		"id":                 entry.ID,
		"organization_id":    entry.OrganizationID,
		"status":             expectedStatus,
		"offered_booking_id": nil,
	}
	if expectedOfferedBookingID != nil {
		where["offered_booking_id"] = *expectedOfferedBookingID
	}

	query, args, err := psqlbuilder.Update(table).
		Set("status", entry.Status).
		Set("offered_booking_id", entry.OfferedBookingID).
		Set("offer_message", entry.OfferMessage).
		Set("offered_at", entry.OfferedAt).
		Set("offer_expires_at", entry.OfferExpiresAt).
		Set("accepted_booking_id", entry.AcceptedBookingID).
		Set("response_notes", entry.ResponseNotes).
		Set("responded_at", entry.RespondedAt).
		Set("cancel_reason", entry.CancelReason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(where).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateState - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateState - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStateChanged
	}

	return nil
}

// CountByStatus считает записи организации по статусам
func (r *Repository) CountByStatus(ctx context.Context, organizationID uuid.UUID) (map[domain.WaitlistStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From(table).
		Where(squirrel.Eq{"organization_id": organizationID}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.WaitlistStatus]int)
	for rows.Next() {
		var status domain.WaitlistStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %w", ErrScanRow, err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*domain.WaitlistEntry, error) {
	var e domain.WaitlistEntry

	err := row.Scan(
		&e.ID,
		&e.OrganizationID,
		&e.UserID,
		&e.LocationID,
		&e.RequestedDate,
		&e.PreferredStartTime,
		&e.PreferredEndTime,
		&e.AircraftID,
		&e.InstructorID,
		&e.AnyAircraft,
		&e.AnyInstructor,
		&e.Notes,
		&e.Status,
		&e.OfferedBookingID,
		&e.OfferMessage,
		&e.OfferedAt,
		&e.OfferExpiresAt,
		&e.AcceptedBookingID,
		&e.ResponseNotes,
		&e.RespondedAt,
		&e.CancelReason,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.RequestedDate = domain.DateOf(e.RequestedDate)
	return &e, nil
}
