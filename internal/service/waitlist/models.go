package waitlist

import (
	"time"

	"github.com/google/uuid"
)

// OfferRequest запрос на отправку предложения записи листа ожидания
type OfferRequest struct {
	OrganizationID uuid.UUID
	EntryID        uuid.UUID
	BookingID      uuid.UUID
	Message        *string
	// ExpiresInHours 0 означает срок по умолчанию из конфигурации
	ExpiresInHours int
}

// SlotQuery освободившийся слот, под который подбираются записи
type SlotQuery struct {
	OrganizationID uuid.UUID
	Start          time.Time
	End            time.Time
	AircraftID     *uuid.UUID
	InstructorID   *uuid.UUID
}

type offerSentPayload struct {
	BookingID uuid.UUID `json:"bookingId"`
	ExpiresAt time.Time `json:"expiresAt"`
	Message   *string   `json:"message,omitempty"`
}

type offerResponsePayload struct {
	BookingID uuid.UUID `json:"bookingId"`
	Notes     *string   `json:"notes,omitempty"`
}
