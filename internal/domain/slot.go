package domain

import (
	"time"

	"github.com/m04kA/SMC-FlightScheduler/pkg/types"
)

// ConflictSource tells where an availability conflict came from.
type ConflictSource string

const (
	SourceAvailabilityBlock ConflictSource = "availability_block"
	SourceBooking           ConflictSource = "booking"
)

// AvailabilityConflict is one reason a resource is not available.
type AvailabilityConflict struct {
	Source ConflictSource `json:"source"`
	ID     string         `json:"id"`
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
	Reason string         `json:"reason,omitempty"`
	Status string         `json:"status,omitempty"`
}

// AvailabilityResult answers an availability check.
type AvailabilityResult struct {
	Available bool                   `json:"available"`
	Conflicts []AvailabilityConflict `json:"conflicts"`
}

// AvailableSlot is an open candidate slot for a resource.
type AvailableSlot struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
	Available       bool      `json:"available"`
}

// DaySchedule is the operating window for one weekday, UTC wall-clock.
type DaySchedule struct {
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// Window returns the operating window on date; ok is false on closed days.
func (d DaySchedule) Window(date time.Time) (TimeRange, bool) {
	if !d.IsOpen || d.OpenTime.IsZero() || d.CloseTime.IsZero() || !d.OpenTime.IsBefore(d.CloseTime) {
		return TimeRange{}, false
	}
	return TimeRange{Start: d.OpenTime.On(date), End: d.CloseTime.On(date)}, true
}

// WeeklySchedule holds operating hours indexed by time.Weekday.
type WeeklySchedule [7]DaySchedule

func (s WeeklySchedule) For(date time.Time) DaySchedule {
	return s[date.UTC().Weekday()]
}
