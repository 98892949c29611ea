package pattern

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-FlightScheduler/pkg/psqlbuilder"
)

const table = "recurring_patterns"

// Repository репозиторий шаблонов повторяющихся бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает шаблон организации по ID
// days_of_week хранится как integer[], exception_dates как date[]
func (r *Repository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*domain.RecurringPattern, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"organization_id",
		"location_id",
		"frequency",
		"interval_value",
		"days_of_week",
		"start_date",
		"end_date",
		"max_occurrences",
		"exception_dates",
		"status",
		"aircraft_id",
		"instructor_id",
		"student_id",
		"booking_type",
		"start_time",
		"duration_minutes",
		"preflight_minutes",
		"postflight_minutes",
		"estimated_cost",
		"created_by",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": id, "organization_id": organizationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var p domain.RecurringPattern
	var daysOfWeek pq.Int64Array
	var exceptionDates pq.StringArray
	var maxOccurrences sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.OrganizationID,
		&p.LocationID,
		&p.Frequency,
		&p.Interval,
		&daysOfWeek,
		&p.StartDate,
		&p.EndDate,
		&maxOccurrences,
		&exceptionDates,
		&p.Status,
		&p.Template.AircraftID,
		&p.Template.InstructorID,
		&p.Template.StudentID,
		&p.Template.BookingType,
		&p.Template.StartTime,
		&p.Template.DurationMinutes,
		&p.Template.PreflightMinutes,
		&p.Template.PostflightMinutes,
		&p.Template.EstimatedCost,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatternNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan pattern: %w", ErrScanRow, err)
	}

	p.StartDate = domain.DateOf(p.StartDate)
	if p.EndDate != nil {
		end := domain.DateOf(*p.EndDate)
		p.EndDate = &end
	}
	if maxOccurrences.Valid {
		v := int(maxOccurrences.Int64)
		p.MaxOccurrences = &v
	}

	for _, d := range daysOfWeek {
		p.DaysOfWeek = addWeekday(p.DaysOfWeek, d)
	}

	p.ExceptionDates = domain.NewDateSet()
	for _, raw := range exceptionDates {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern id=%s: %q", ErrInvalidDate, p.ID, raw)
		}
		p.ExceptionDates.Add(date)
	}

	return &p, nil
}

func addWeekday(set domain.WeekdaySet, day int64) domain.WeekdaySet {
	if day >= 0 && day <= 6 {
		set[day] = true
	}
	return set
}
