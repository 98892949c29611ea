package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-FlightScheduler/pkg/psqlbuilder"
)

const table = "availability"

// Repository репозиторий явных блоков доступности ресурсов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает блоки ресурса, пересекающиеся с окном фильтра
// Сравнение полуоткрытое: start_datetime < window.End AND end_datetime > window.Start
func (r *Repository) List(ctx context.Context, filter domain.AvailabilityFilter) ([]*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"organization_id",
		"resource_type",
		"resource_id",
		"availability_type",
		"start_datetime",
		"end_datetime",
		"reason",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{
			"organization_id": filter.OrganizationID,
			"resource_type":   filter.Resource.Type,
			"resource_id":     filter.Resource.ID,
		}).
		Where(squirrel.Lt{"start_datetime": filter.Window.End}).
		Where(squirrel.Gt{"end_datetime": filter.Window.Start})

	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"availability_type": *filter.Type})
	}

	query, args, err := selectBuilder.OrderBy("start_datetime ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.Availability, 0)
	for rows.Next() {
		var block domain.Availability
		var reason sql.NullString

		if err := rows.Scan(
			&block.ID,
			&block.OrganizationID,
			&block.ResourceType,
			&block.ResourceID,
			&block.AvailabilityType,
			&block.StartDatetime,
			&block.EndDatetime,
			&reason,
			&block.CreatedAt,
			&block.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}

		block.StartDatetime = block.StartDatetime.UTC()
		block.EndDatetime = block.EndDatetime.UTC()
		block.Reason = reason.String
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return blocks, nil
}
