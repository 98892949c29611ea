package availability

import (
	"time"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// generateSlots генерирует кандидаты [start, start+duration) с шагом interval внутри окна работы
// Слот должен закончиться не позже закрытия. Слоты, начинающиеся раньше now, отбрасываются.
func generateSlots(window domain.TimeRange, duration, interval time.Duration, now time.Time) []domain.TimeRange {
	slots := make([]domain.TimeRange, 0)

	for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(interval) {
		if start.Before(now) {
			continue
		}
		slots = append(slots, domain.TimeRange{Start: start, End: start.Add(duration)})
	}

	return slots
}

// isSlotFree проверяет слот по заранее загруженным блокам и бронированиям дня
// Пересечение полуоткрытое: бронирование, заканчивающееся ровно в начале слота, его не занимает.
func isSlotFree(slot domain.TimeRange, blocks []*domain.Availability, bookings []*domain.Booking) bool {
	for _, block := range blocks {
		if block.Blocks(slot.Start, slot.End) {
			return false
		}
	}

	for _, booking := range bookings {
		if booking.IsActive() && domain.Overlaps(booking.BlockStart(), booking.BlockEnd(), slot.Start, slot.End) {
			return false
		}
	}

	return true
}
