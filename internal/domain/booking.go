package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResourceType identifies what a booking or availability block occupies.
type ResourceType string

const (
	ResourceAircraft   ResourceType = "AIRCRAFT"
	ResourceInstructor ResourceType = "INSTRUCTOR"
	ResourceStudent    ResourceType = "STUDENT"
	ResourceLocation   ResourceType = "LOCATION"
)

func (r ResourceType) IsValid() bool {
	switch r {
	case ResourceAircraft, ResourceInstructor, ResourceStudent, ResourceLocation:
		return true
	}
	return false
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusDraft     BookingStatus = "DRAFT"
	StatusScheduled BookingStatus = "SCHEDULED"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCheckedIn BookingStatus = "CHECKED_IN"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusNoShow    BookingStatus = "NO_SHOW"
	StatusRejected  BookingStatus = "REJECTED"
)

// BookingType classifies the training activity.
type BookingType string

const (
	BookingTypeFlight    BookingType = "FLIGHT"
	BookingTypeGround    BookingType = "GROUND"
	BookingTypeSimulator BookingType = "SIMULATOR"
	BookingTypeCheckride BookingType = "CHECKRIDE"
	BookingTypeRental    BookingType = "RENTAL"
	BookingTypeOther     BookingType = "OTHER"
)

func (t BookingType) IsValid() bool {
	switch t {
	case BookingTypeFlight, BookingTypeGround, BookingTypeSimulator,
		BookingTypeCheckride, BookingTypeRental, BookingTypeOther:
		return true
	}
	return false
}

// Booking reserves an aircraft, instructor and/or student for a time window.
// Bookings are never deleted; terminal statuses keep them for audit.
type Booking struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	LocationID     uuid.UUID
	AircraftID     *uuid.UUID
	InstructorID   *uuid.UUID
	StudentID      *uuid.UUID
	PatternID      *uuid.UUID
	BookingType    BookingType

	ScheduledStart    time.Time
	ScheduledEnd      time.Time
	PreflightMinutes  int
	PostflightMinutes int

	Status        BookingStatus
	EstimatedCost decimal.Decimal
	Notes         *string

	CreatedBy       uuid.UUID
	StatusChangedBy *uuid.UUID
	StatusChangedAt *time.Time
	ConfirmedAt     *time.Time
	CheckedInAt     *time.Time
	CompletedAt     *time.Time

	CancellationReason *string
	CancelledBy        *uuid.UUID
	CancelledAt        *time.Time
	CancellationFee    *decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlockStart is the scheduled start minus the preflight buffer.
func (b *Booking) BlockStart() time.Time {
	return b.ScheduledStart.Add(-time.Duration(b.PreflightMinutes) * time.Minute)
}

// BlockEnd is the scheduled end plus the postflight buffer.
func (b *Booking) BlockEnd() time.Time {
	return b.ScheduledEnd.Add(time.Duration(b.PostflightMinutes) * time.Minute)
}

func (b *Booking) BlockRange() TimeRange {
	return TimeRange{Start: b.BlockStart(), End: b.BlockEnd()}
}

// IsActive reports whether the booking occupies its resources.
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsActive reports whether bookings in this status take part in conflict detection.
func (s BookingStatus) IsActive() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCheckedIn:
		return true
	}
	return false
}

// ResourceID returns the id the booking holds for the given resource type, or nil.
func (b *Booking) ResourceID(resourceType ResourceType) *uuid.UUID {
	switch resourceType {
	case ResourceAircraft:
		return b.AircraftID
	case ResourceInstructor:
		return b.InstructorID
	case ResourceStudent:
		return b.StudentID
	case ResourceLocation:
		id := b.LocationID
		return &id
	}
	return nil
}

// Resources lists every (type, id) pair the booking occupies, location excluded.
func (b *Booking) Resources() []ResourceRef {
	refs := make([]ResourceRef, 0, 3)
	for _, rt := range []ResourceType{ResourceAircraft, ResourceInstructor, ResourceStudent} {
		if id := b.ResourceID(rt); id != nil {
			refs = append(refs, ResourceRef{Type: rt, ID: *id})
		}
	}
	return refs
}

// Summary projects the booking for conflict reports.
func (b *Booking) Summary() BookingSummary {
	return BookingSummary{
		ID:             b.ID,
		AircraftID:     b.AircraftID,
		InstructorID:   b.InstructorID,
		StudentID:      b.StudentID,
		ScheduledStart: b.ScheduledStart,
		ScheduledEnd:   b.ScheduledEnd,
		BlockStart:     b.BlockStart(),
		BlockEnd:       b.BlockEnd(),
		Status:         b.Status,
	}
}

// ResourceRef names one occupied resource.
type ResourceRef struct {
	Type ResourceType
	ID   uuid.UUID
}

// BookingSummary is the projection returned by conflict checks.
type BookingSummary struct {
	ID             uuid.UUID     `json:"id"`
	AircraftID     *uuid.UUID    `json:"aircraftId,omitempty"`
	InstructorID   *uuid.UUID    `json:"instructorId,omitempty"`
	StudentID      *uuid.UUID    `json:"studentId,omitempty"`
	ScheduledStart time.Time     `json:"scheduledStart"`
	ScheduledEnd   time.Time     `json:"scheduledEnd"`
	BlockStart     time.Time     `json:"blockStart"`
	BlockEnd       time.Time     `json:"blockEnd"`
	Status         BookingStatus `json:"status"`
}

// ActiveBookingsFilter selects active bookings whose block range overlaps Window.
// A nil Resource selects across the whole organization.
type ActiveBookingsFilter struct {
	OrganizationID uuid.UUID
	Resource       *ResourceRef
	Window         TimeRange
	ExcludeID      *uuid.UUID
}
