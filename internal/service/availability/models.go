package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// SlotsRequest запрос свободных слотов ресурса на дату
type SlotsRequest struct {
	OrganizationID      uuid.UUID
	ResourceType        domain.ResourceType
	ResourceID          uuid.UUID
	Date                time.Time
	DurationMinutes     int
	SlotIntervalMinutes int // 0 - интервал по умолчанию из конфигурации
}

// Buffers preflight/postflight по умолчанию для новых бронирований
type Buffers struct {
	PreflightMinutes  int
	PostflightMinutes int
}

// Widen расширяет интервал до block-интервала бронирования
func (b Buffers) Widen(r domain.TimeRange) domain.TimeRange {
	return domain.TimeRange{
		Start: r.Start.Add(-time.Duration(b.PreflightMinutes) * time.Minute),
		End:   r.End.Add(time.Duration(b.PostflightMinutes) * time.Minute),
	}
}
