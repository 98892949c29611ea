package rule

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-FlightScheduler/pkg/psqlbuilder"
)

const table = "booking_rules"

// Repository репозиторий правил бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByOrganization получает все правила организации
// Порядок: priority ASC, created_at ASC. Отбор по области действия и датам делает сервис правил.
func (r *Repository) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*domain.BookingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"organization_id",
		"name",
		"rule_type",
		"target_id",
		"priority",
		"is_active",
		"conditions",
		"min_booking_duration",
		"max_booking_duration",
		"min_notice_hours",
		"max_advance_days",
		"free_cancellation_hours",
		"late_cancellation_fee_percent",
		"no_show_fee_percent",
		"effective_from",
		"effective_to",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"organization_id": organizationID}).
		OrderBy("priority ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOrganization - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOrganization - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.BookingRule, 0)
	for rows.Next() {
		var rule domain.BookingRule
		var conditions []byte

		if err := rows.Scan(
			&rule.ID,
			&rule.OrganizationID,
			&rule.Name,
			&rule.RuleType,
			&rule.TargetID,
			&rule.Priority,
			&rule.IsActive,
			&conditions,
			&rule.MinBookingDuration,
			&rule.MaxBookingDuration,
			&rule.MinNoticeHours,
			&rule.MaxAdvanceDays,
			&rule.FreeCancellationHours,
			&rule.LateCancellationFeePercent,
			&rule.NoShowFeePercent,
			&rule.EffectiveFrom,
			&rule.EffectiveTo,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByOrganization - scan row: %w", ErrScanRow, err)
		}

		if len(conditions) > 0 {
			if err := json.Unmarshal(conditions, &rule.Conditions); err != nil {
				return nil, fmt.Errorf("%w: rule id=%s: %w", ErrInvalidConditions, rule.ID, err)
			}
		}

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOrganization - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}
