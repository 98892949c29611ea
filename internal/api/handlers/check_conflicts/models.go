package check_conflicts

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/service/conflicts"
)

// CheckConflictsRequest HTTP request model
type CheckConflictsRequest struct {
	ScheduledStart   time.Time  `json:"scheduledStart" validate:"required"`
	ScheduledEnd     time.Time  `json:"scheduledEnd" validate:"required"`
	AircraftID       *uuid.UUID `json:"aircraftId,omitempty"`
	InstructorID     *uuid.UUID `json:"instructorId,omitempty"`
	ExcludeBookingID *uuid.UUID `json:"excludeBookingId,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *CheckConflictsRequest) ToServiceRequest(organizationID uuid.UUID) *conflicts.CheckRequest {
	return &conflicts.CheckRequest{
		OrganizationID: organizationID,
		ScheduledStart: r.ScheduledStart.UTC(),
		ScheduledEnd:   r.ScheduledEnd.UTC(),
		AircraftID:     r.AircraftID,
		InstructorID:   r.InstructorID,
		ExcludeID:      r.ExcludeBookingID,
	}
}
