package send_waitlist_offer

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/service/waitlist"
)

// SendOfferRequest HTTP request model
type SendOfferRequest struct {
	BookingID      uuid.UUID `json:"bookingId" validate:"required"`
	Message        *string   `json:"message,omitempty" validate:"omitempty,max=1000"`
	ExpiresInHours int       `json:"expiresInHours" validate:"gte=0"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса листа ожидания
func (r *SendOfferRequest) ToServiceRequest(organizationID, entryID uuid.UUID) *waitlist.OfferRequest {
	return &waitlist.OfferRequest{
		OrganizationID: organizationID,
		EntryID:        entryID,
		BookingID:      r.BookingID,
		Message:        r.Message,
		ExpiresInHours: r.ExpiresInHours,
	}
}
