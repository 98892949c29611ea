package create_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	OrganizationID uuid.UUID
	LocationID     uuid.UUID
	AircraftID     *uuid.UUID
	InstructorID   *uuid.UUID
	StudentID      *uuid.UUID
	PatternID      *uuid.UUID
	BookingType    domain.BookingType
	ScheduledStart time.Time
	ScheduledEnd   time.Time

	// nil означает буфер по умолчанию из конфигурации
	PreflightMinutes  *int
	PostflightMinutes *int

	EstimatedCost decimal.Decimal
	Notes         *string
	CreatedBy     uuid.UUID

	// ValidateOnly выполняет все проверки без записи
	ValidateOnly bool
}

// Defaults буферы по умолчанию
type Defaults struct {
	PreflightMinutes  int
	PostflightMinutes int
}

// Response модель ответа
// Booking при ValidateOnly не сохранён и не имеет ID.
type Response struct {
	Booking      *domain.Booking
	ValidateOnly bool
	RulesApplied []uuid.UUID
}

type createdPayload struct {
	Status         domain.BookingStatus `json:"status"`
	BookingType    domain.BookingType   `json:"bookingType"`
	LocationID     uuid.UUID            `json:"locationId"`
	AircraftID     *uuid.UUID           `json:"aircraftId,omitempty"`
	InstructorID   *uuid.UUID           `json:"instructorId,omitempty"`
	StudentID      *uuid.UUID           `json:"studentId,omitempty"`
	ScheduledStart time.Time            `json:"scheduledStart"`
	ScheduledEnd   time.Time            `json:"scheduledEnd"`
}
