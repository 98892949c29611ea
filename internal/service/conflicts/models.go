package conflicts

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// CheckRequest запрос проверки конфликтов
// Без AircraftID и InstructorID проверяются все активные бронирования организации.
type CheckRequest struct {
	OrganizationID uuid.UUID
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	AircraftID     *uuid.UUID
	InstructorID   *uuid.UUID
	ExcludeID      *uuid.UUID
}

// CheckResult результат проверки конфликтов
type CheckResult struct {
	HasConflicts bool                    `json:"hasConflicts"`
	Conflicts    []domain.BookingSummary `json:"conflicts"`
}
