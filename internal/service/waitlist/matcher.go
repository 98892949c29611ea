package waitlist

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/pkg/ptr"
)

// MatchesSlot сообщает, подходит ли слот под пожелания записи
// Без конкретного ресурса и без флага any_* запись подходит только слоту без этого ресурса.
func MatchesSlot(entry *domain.WaitlistEntry, slotStart, slotEnd time.Time, aircraftID, instructorID *uuid.UUID) bool {
	window := entry.PreferredWindow()
	if !domain.Overlaps(window.Start, window.End, slotStart, slotEnd) {
		return false
	}

	if !entry.AnyAircraft && !ptr.Equal(entry.AircraftID, aircraftID) {
		return false
	}

	if !entry.AnyInstructor && !ptr.Equal(entry.InstructorID, instructorID) {
		return false
	}

	return true
}
