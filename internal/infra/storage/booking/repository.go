package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-FlightScheduler/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"organization_id",
	"location_id",
	"aircraft_id",
	"instructor_id",
	"student_id",
	"pattern_id",
	"booking_type",
	"scheduled_start",
	"scheduled_end",
	"preflight_minutes",
	"postflight_minutes",
	"status",
	"estimated_cost",
	"notes",
	"created_by",
	"status_changed_by",
	"status_changed_at",
	"confirmed_at",
	"checked_in_at",
	"completed_at",
	"cancellation_reason",
	"cancelled_by",
	"cancelled_at",
	"cancellation_fee",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// block_start/block_end сохраняются вместе с бронированием, чтобы поиск конфликтов шёл по индексу.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"organization_id",
			"location_id",
			"aircraft_id",
			"instructor_id",
			"student_id",
			"pattern_id",
			"booking_type",
			"scheduled_start",
			"scheduled_end",
			"preflight_minutes",
			"postflight_minutes",
			"block_start",
			"block_end",
			"status",
			"estimated_cost",
			"notes",
			"created_by",
		).
		Values(
			booking.ID,
			booking.OrganizationID,
			booking.LocationID,
			booking.AircraftID,
			booking.InstructorID,
			booking.StudentID,
			booking.PatternID,
			booking.BookingType,
			booking.ScheduledStart,
			booking.ScheduledEnd,
			booking.PreflightMinutes,
			booking.PostflightMinutes,
			booking.BlockStart(),
			booking.BlockEnd(),
			booking.Status,
			booking.EstimatedCost,
			booking.Notes,
			booking.CreatedBy,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование организации по ID
func (r *Repository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "organization_id": organizationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListActive получает активные бронирования, чей block-интервал пересекается с окном фильтра
// Без filter.Resource ищет по всей организации.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) ListActive(ctx context.Context, filter domain.ActiveBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"organization_id": filter.OrganizationID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		Where(squirrel.Lt{"block_start": filter.Window.End}).
		Where(squirrel.Gt{"block_end": filter.Window.Start})

	if filter.Resource != nil {
		column, err := resourceColumn(filter.Resource.Type)
		if err != nil {
			return nil, err
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{column: filter.Resource.ID})
	}

	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	selectBuilder = selectBuilder.OrderBy("block_start ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus сохраняет переход статуса, если статус в БД всё ещё равен expected (compare-and-set)
func (r *Repository) UpdateStatus(ctx context.Context, booking *domain.Booking, expected domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", booking.Status).
		Set("status_changed_by", booking.StatusChangedBy).
		Set("status_changed_at", booking.StatusChangedAt).
		Set("confirmed_at", booking.ConfirmedAt).
		Set("checked_in_at", booking.CheckedInAt).
		Set("completed_at", booking.CompletedAt).
		Set("cancellation_reason", booking.CancellationReason).
		Set("cancelled_by", booking.CancelledBy).
		Set("cancelled_at", booking.CancelledAt).
		Set("cancellation_fee", booking.CancellationFee).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":              booking.ID,
			"organization_id": booking.OrganizationID,
			"status":          expected,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

// resourceColumn колонка таблицы bookings для типа ресурса
func resourceColumn(resourceType domain.ResourceType) (string, error) {
	switch resourceType {
	case domain.ResourceAircraft:
		return "aircraft_id", nil
	case domain.ResourceInstructor:
		return "instructor_id", nil
	case domain.ResourceStudent:
		return "student_id", nil
	case domain.ResourceLocation:
		return "location_id", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedResource, resourceType)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.OrganizationID,
		&booking.LocationID,
		&booking.AircraftID,
		&booking.InstructorID,
		&booking.StudentID,
		&booking.PatternID,
		&booking.BookingType,
		&booking.ScheduledStart,
		&booking.ScheduledEnd,
		&booking.PreflightMinutes,
		&booking.PostflightMinutes,
		&booking.Status,
		&booking.EstimatedCost,
		&booking.Notes,
		&booking.CreatedBy,
		&booking.StatusChangedBy,
		&booking.StatusChangedAt,
		&booking.ConfirmedAt,
		&booking.CheckedInAt,
		&booking.CompletedAt,
		&booking.CancellationReason,
		&booking.CancelledBy,
		&booking.CancelledAt,
		&booking.CancellationFee,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.ScheduledStart = booking.ScheduledStart.UTC()
	booking.ScheduledEnd = booking.ScheduledEnd.UTC()
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
