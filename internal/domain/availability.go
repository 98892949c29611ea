package domain

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityType marks an explicit block as open or closed.
type AvailabilityType string

const (
	AvailabilityAvailable   AvailabilityType = "AVAILABLE"
	AvailabilityUnavailable AvailabilityType = "UNAVAILABLE"
)

// Availability is an explicit block layered over the default operating hours.
// Only UNAVAILABLE blocks mask slots and cause conflicts.
type Availability struct {
	ID               uuid.UUID
	OrganizationID   uuid.UUID
	ResourceType     ResourceType
	ResourceID       uuid.UUID
	AvailabilityType AvailabilityType
	StartDatetime    time.Time
	EndDatetime      time.Time
	Reason           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (a *Availability) Range() TimeRange {
	return TimeRange{Start: a.StartDatetime, End: a.EndDatetime}
}

// Blocks reports whether the block makes [start, end) unavailable.
func (a *Availability) Blocks(start, end time.Time) bool {
	return a.AvailabilityType == AvailabilityUnavailable &&
		Overlaps(a.StartDatetime, a.EndDatetime, start, end)
}

// AvailabilityFilter selects blocks of one resource overlapping Window.
type AvailabilityFilter struct {
	OrganizationID uuid.UUID
	Resource       ResourceRef
	Window         TimeRange
	Type           *AvailabilityType
}
