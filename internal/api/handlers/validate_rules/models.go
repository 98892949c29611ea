package validate_rules

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/rules"
)

// ValidateRulesRequest HTTP request model
type ValidateRulesRequest struct {
	ScheduledStart time.Time  `json:"scheduledStart" validate:"required"`
	ScheduledEnd   time.Time  `json:"scheduledEnd" validate:"required,gtfield=ScheduledStart"`
	BookingType    string     `json:"bookingType" validate:"omitempty,oneof=FLIGHT GROUND SIMULATOR CHECKRIDE RENTAL OTHER"`
	AircraftID     *uuid.UUID `json:"aircraftId,omitempty"`
	InstructorID   *uuid.UUID `json:"instructorId,omitempty"`
	LocationID     *uuid.UUID `json:"locationId,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса правил
func (r *ValidateRulesRequest) ToServiceRequest(organizationID, userID uuid.UUID) *rules.ValidationRequest {
	return &rules.ValidationRequest{
		OrganizationID: organizationID,
		UserID:         userID,
		ScheduledStart: r.ScheduledStart.UTC(),
		ScheduledEnd:   r.ScheduledEnd.UTC(),
		Scope: domain.RuleScope{
			AircraftID:   r.AircraftID,
			InstructorID: r.InstructorID,
			LocationID:   r.LocationID,
			BookingType:  domain.BookingType(r.BookingType),
		},
	}
}
