package calculate_cancellation_fee

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/rules"
)

// CancellationFeeRequest HTTP request model
type CancellationFeeRequest struct {
	HoursUntilStart float64         `json:"hoursUntilStart"`
	EstimatedCost   decimal.Decimal `json:"estimatedCost"`
	BookingType     string          `json:"bookingType" validate:"omitempty,oneof=FLIGHT GROUND SIMULATOR CHECKRIDE RENTAL OTHER"`
	AircraftID      *uuid.UUID      `json:"aircraftId,omitempty"`
	InstructorID    *uuid.UUID      `json:"instructorId,omitempty"`
	LocationID      *uuid.UUID      `json:"locationId,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса правил
func (r *CancellationFeeRequest) ToServiceRequest(organizationID uuid.UUID) *rules.FeeRequest {
	return &rules.FeeRequest{
		OrganizationID:  organizationID,
		HoursUntilStart: r.HoursUntilStart,
		EstimatedCost:   r.EstimatedCost,
		Scope: domain.RuleScope{
			AircraftID:   r.AircraftID,
			InstructorID: r.InstructorID,
			LocationID:   r.LocationID,
			BookingType:  domain.BookingType(r.BookingType),
		},
	}
}
