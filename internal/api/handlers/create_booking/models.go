package create_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	createBooking "github.com/m04kA/SMC-FlightScheduler/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	LocationID        uuid.UUID       `json:"locationId" validate:"required"`
	AircraftID        *uuid.UUID      `json:"aircraftId,omitempty"`
	InstructorID      *uuid.UUID      `json:"instructorId,omitempty"`
	StudentID         *uuid.UUID      `json:"studentId,omitempty"`
	BookingType       string          `json:"bookingType" validate:"required,oneof=FLIGHT GROUND SIMULATOR CHECKRIDE RENTAL OTHER"`
	ScheduledStart    time.Time       `json:"scheduledStart" validate:"required"`
	ScheduledEnd      time.Time       `json:"scheduledEnd" validate:"required,gtfield=ScheduledStart"`
	PreflightMinutes  *int            `json:"preflightMinutes,omitempty" validate:"omitempty,gte=0,max=240"`
	PostflightMinutes *int            `json:"postflightMinutes,omitempty" validate:"omitempty,gte=0,max=240"`
	EstimatedCost     decimal.Decimal `json:"estimatedCost"`
	Notes             *string         `json:"notes,omitempty" validate:"omitempty,max=1000"`
	ValidateOnly      bool            `json:"validateOnly"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking      *handlers.BookingResponse `json:"booking"`
	ValidateOnly bool                      `json:"validateOnly"`
	RulesApplied []uuid.UUID               `json:"rulesApplied"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(organizationID, userID uuid.UUID) *createBooking.Request {
	return &createBooking.Request{
		OrganizationID:    organizationID,
		LocationID:        r.LocationID,
		AircraftID:        r.AircraftID,
		InstructorID:      r.InstructorID,
		StudentID:         r.StudentID,
		BookingType:       domain.BookingType(r.BookingType),
		ScheduledStart:    r.ScheduledStart.UTC(),
		ScheduledEnd:      r.ScheduledEnd.UTC(),
		PreflightMinutes:  r.PreflightMinutes,
		PostflightMinutes: r.PostflightMinutes,
		EstimatedCost:     r.EstimatedCost,
		Notes:             r.Notes,
		CreatedBy:         userID,
		ValidateOnly:      r.ValidateOnly,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	rulesApplied := resp.RulesApplied
	if rulesApplied == nil {
		rulesApplied = []uuid.UUID{}
	}
	return &CreateBookingResponse{
		Booking:      handlers.NewBookingResponse(resp.Booking),
		ValidateOnly: resp.ValidateOnly,
		RulesApplied: rulesApplied,
	}
}
