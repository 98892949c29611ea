package get_resource_bookings

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// resourceQuery параметры выборки активных бронирований ресурса
type resourceQuery struct {
	ResourceType domain.ResourceType
	ResourceID   uuid.UUID
	From         time.Time
	To           time.Time
}

// parseQuery читает query: resourceType, resourceId, from, to (RFC3339)
func parseQuery(r *http.Request) (*resourceQuery, error) {
	resourceID, err := handlers.QueryUUID(r, "resourceId")
	if err != nil {
		return nil, err
	}
	if resourceID == nil {
		return nil, errors.New("resourceId is required")
	}

	from, err := queryTime(r, "from")
	if err != nil {
		return nil, err
	}
	to, err := queryTime(r, "to")
	if err != nil {
		return nil, err
	}

	return &resourceQuery{
		ResourceType: domain.ResourceType(r.URL.Query().Get("resourceType")),
		ResourceID:   *resourceID,
		From:         from,
		To:           to,
	}, nil
}

func queryTime(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required", name)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", name, err)
	}
	return t.UTC(), nil
}

func newBookingList(bookings []*domain.Booking) []*handlers.BookingResponse {
	list := make([]*handlers.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		list = append(list, handlers.NewBookingResponse(b))
	}
	return list
}
