package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/availability"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date         string                 `json:"date"`
	ResourceType domain.ResourceType    `json:"resourceType"`
	ResourceID   uuid.UUID              `json:"resourceId"`
	Slots        []domain.AvailableSlot `json:"slots"`
}

// ToServiceRequest создает запрос сервиса из query параметров
// Query params: resourceType, resourceId, date (YYYY-MM-DD), durationMinutes, slotIntervalMinutes (опционально)
func ToServiceRequest(r *http.Request, organizationID uuid.UUID) (*availability.SlotsRequest, error) {
	resourceID, err := handlers.QueryUUID(r, "resourceId")
	if err != nil {
		return nil, err
	}
	if resourceID == nil {
		return nil, errors.New("resourceId is required")
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}

	duration, err := handlers.QueryInt(r, "durationMinutes", 0)
	if err != nil {
		return nil, err
	}

	interval, err := handlers.QueryInt(r, "slotIntervalMinutes", 0)
	if err != nil {
		return nil, err
	}

	return &availability.SlotsRequest{
		OrganizationID:      organizationID,
		ResourceType:        domain.ResourceType(r.URL.Query().Get("resourceType")),
		ResourceID:          *resourceID,
		Date:                date,
		DurationMinutes:     duration,
		SlotIntervalMinutes: interval,
	}, nil
}
