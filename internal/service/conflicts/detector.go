package conflicts

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// Detect отбирает бронирования, занимающие ресурс в окне window
// Учитываются только активные статусы, сравнивается block-интервал, а не scheduled.
// resource == nil означает любой ресурс организации.
func Detect(bookings []*domain.Booking, resource *domain.ResourceRef, window domain.TimeRange, excludeID *uuid.UUID) []*domain.Booking {
	result := make([]*domain.Booking, 0)

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if excludeID != nil && booking.ID == *excludeID {
			continue
		}
		if resource != nil {
			id := booking.ResourceID(resource.Type)
			if id == nil || *id != resource.ID {
				continue
			}
		}
		if domain.Overlaps(booking.BlockStart(), booking.BlockEnd(), window.Start, window.End) {
			result = append(result, booking)
		}
	}

	return result
}
