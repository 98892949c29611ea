package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// BookingResponse HTTP-представление бронирования
type BookingResponse struct {
	ID                 uuid.UUID            `json:"id"`
	OrganizationID     uuid.UUID            `json:"organizationId"`
	LocationID         uuid.UUID            `json:"locationId"`
	AircraftID         *uuid.UUID           `json:"aircraftId,omitempty"`
	InstructorID       *uuid.UUID           `json:"instructorId,omitempty"`
	StudentID          *uuid.UUID           `json:"studentId,omitempty"`
	PatternID          *uuid.UUID           `json:"patternId,omitempty"`
	BookingType        domain.BookingType   `json:"bookingType"`
	ScheduledStart     time.Time            `json:"scheduledStart"`
	ScheduledEnd       time.Time            `json:"scheduledEnd"`
	PreflightMinutes   int                  `json:"preflightMinutes"`
	PostflightMinutes  int                  `json:"postflightMinutes"`
	BlockStart         time.Time            `json:"blockStart"`
	BlockEnd           time.Time            `json:"blockEnd"`
	Status             domain.BookingStatus `json:"status"`
	EstimatedCost      decimal.Decimal      `json:"estimatedCost"`
	Notes              *string              `json:"notes,omitempty"`
	CreatedBy          uuid.UUID            `json:"createdBy"`
	StatusChangedBy    *uuid.UUID           `json:"statusChangedBy,omitempty"`
	StatusChangedAt    *time.Time           `json:"statusChangedAt,omitempty"`
	ConfirmedAt        *time.Time           `json:"confirmedAt,omitempty"`
	CheckedInAt        *time.Time           `json:"checkedInAt,omitempty"`
	CompletedAt        *time.Time           `json:"completedAt,omitempty"`
	CancellationReason *string              `json:"cancellationReason,omitempty"`
	CancelledBy        *uuid.UUID           `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time           `json:"cancelledAt,omitempty"`
	CancellationFee    *decimal.Decimal     `json:"cancellationFee,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

// NewBookingResponse конвертирует доменное бронирование в HTTP-ответ
func NewBookingResponse(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		OrganizationID:     b.OrganizationID,
		LocationID:         b.LocationID,
		AircraftID:         b.AircraftID,
		InstructorID:       b.InstructorID,
		StudentID:          b.StudentID,
		PatternID:          b.PatternID,
		BookingType:        b.BookingType,
		ScheduledStart:     b.ScheduledStart,
		ScheduledEnd:       b.ScheduledEnd,
		PreflightMinutes:   b.PreflightMinutes,
		PostflightMinutes:  b.PostflightMinutes,
		BlockStart:         b.BlockStart(),
		BlockEnd:           b.BlockEnd(),
		Status:             b.Status,
		EstimatedCost:      b.EstimatedCost,
		Notes:              b.Notes,
		CreatedBy:          b.CreatedBy,
		StatusChangedBy:    b.StatusChangedBy,
		StatusChangedAt:    b.StatusChangedAt,
		ConfirmedAt:        b.ConfirmedAt,
		CheckedInAt:        b.CheckedInAt,
		CompletedAt:        b.CompletedAt,
		CancellationReason: b.CancellationReason,
		CancelledBy:        b.CancelledBy,
		CancelledAt:        b.CancelledAt,
		CancellationFee:    b.CancellationFee,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// BlockResponse блок недоступности в отчёте о конфликте
type BlockResponse struct {
	ID     uuid.UUID `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Reason string    `json:"reason,omitempty"`
}

// ConflictResponse подробности конфликта ресурса
type ConflictResponse struct {
	ResourceType domain.ResourceType     `json:"resourceType"`
	ResourceID   uuid.UUID               `json:"resourceId"`
	Bookings     []domain.BookingSummary `json:"bookings"`
	Blocks       []BlockResponse         `json:"blocks"`
}

// NewConflictResponse конвертирует ConflictError в HTTP-ответ
func NewConflictResponse(err *domain.ConflictError) *ConflictResponse {
	blocks := make([]BlockResponse, len(err.Blocks))
	for i, block := range err.Blocks {
		blocks[i] = BlockResponse{
			ID:     block.ID,
			Start:  block.StartDatetime,
			End:    block.EndDatetime,
			Reason: block.Reason,
		}
	}

	bookings := err.Bookings
	if bookings == nil {
		bookings = []domain.BookingSummary{}
	}

	return &ConflictResponse{
		ResourceType: err.ResourceType,
		ResourceID:   err.ResourceID,
		Bookings:     bookings,
		Blocks:       blocks,
	}
}

// WaitlistEntryResponse HTTP-представление записи листа ожидания
type WaitlistEntryResponse struct {
	ID                 uuid.UUID             `json:"id"`
	OrganizationID     uuid.UUID             `json:"organizationId"`
	UserID             uuid.UUID             `json:"userId"`
	LocationID         *uuid.UUID            `json:"locationId,omitempty"`
	RequestedDate      string                `json:"requestedDate"`
	PreferredStartTime string                `json:"preferredStartTime"`
	PreferredEndTime   string                `json:"preferredEndTime"`
	AircraftID         *uuid.UUID            `json:"aircraftId,omitempty"`
	InstructorID       *uuid.UUID            `json:"instructorId,omitempty"`
	AnyAircraft        bool                  `json:"anyAircraft"`
	AnyInstructor      bool                  `json:"anyInstructor"`
	Notes              *string               `json:"notes,omitempty"`
	Status             domain.WaitlistStatus `json:"status"`
	OfferedBookingID   *uuid.UUID            `json:"offeredBookingId,omitempty"`
	OfferMessage       *string               `json:"offerMessage,omitempty"`
	OfferedAt          *time.Time            `json:"offeredAt,omitempty"`
	OfferExpiresAt     *time.Time            `json:"offerExpiresAt,omitempty"`
	AcceptedBookingID  *uuid.UUID            `json:"acceptedBookingId,omitempty"`
	ResponseNotes      *string               `json:"responseNotes,omitempty"`
	RespondedAt        *time.Time            `json:"respondedAt,omitempty"`
	CancelReason       *string               `json:"cancelReason,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
}

// NewWaitlistEntryResponse конвертирует запись листа ожидания в HTTP-ответ
func NewWaitlistEntryResponse(e *domain.WaitlistEntry) *WaitlistEntryResponse {
	return &WaitlistEntryResponse{
		ID:                 e.ID,
		OrganizationID:     e.OrganizationID,
		UserID:             e.UserID,
		LocationID:         e.LocationID,
		RequestedDate:      e.RequestedDate.Format(domain.DateFormat),
		PreferredStartTime: e.PreferredStartTime.String(),
		PreferredEndTime:   e.PreferredEndTime.String(),
		AircraftID:         e.AircraftID,
		InstructorID:       e.InstructorID,
		AnyAircraft:        e.AnyAircraft,
		AnyInstructor:      e.AnyInstructor,
		Notes:              e.Notes,
		Status:             e.Status,
		OfferedBookingID:   e.OfferedBookingID,
		OfferMessage:       e.OfferMessage,
		OfferedAt:          e.OfferedAt,
		OfferExpiresAt:     e.OfferExpiresAt,
		AcceptedBookingID:  e.AcceptedBookingID,
		ResponseNotes:      e.ResponseNotes,
		RespondedAt:        e.RespondedAt,
		CancelReason:       e.CancelReason,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
