package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FlightScheduler/pkg/types"
)

// Frequency is the recurrence unit of a pattern.
type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

func (f Frequency) IsValid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly || f == FrequencyMonthly
}

// PatternStatus is the lifecycle state of a recurring pattern.
type PatternStatus string

const (
	PatternActive    PatternStatus = "ACTIVE"
	PatternPaused    PatternStatus = "PAUSED"
	PatternCancelled PatternStatus = "CANCELLED"
)

// DateSet is a set of UTC calendar dates.
type DateSet map[time.Time]struct{}

// NewDateSet normalizes every date to UTC midnight.
func NewDateSet(dates ...time.Time) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

func (s DateSet) Add(d time.Time) {
	s[DateOf(d)] = struct{}{}
}

func (s DateSet) Contains(d time.Time) bool {
	_, ok := s[DateOf(d)]
	return ok
}

// Sorted returns the dates in ascending order.
func (s DateSet) Sorted() []time.Time {
	dates := make([]time.Time, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// WeekdaySet holds the weekdays a WEEKLY pattern fires on (Go numbering, 0 = Sunday).
type WeekdaySet [7]bool

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var set WeekdaySet
	for _, d := range days {
		if d >= time.Sunday && d <= time.Saturday {
			set[d] = true
		}
	}
	return set
}

func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s[d]
}

func (s WeekdaySet) IsEmpty() bool {
	for _, v := range s {
		if v {
			return false
		}
	}
	return true
}

// Days lists the weekdays in ascending order.
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for i, v := range s {
		if v {
			days = append(days, time.Weekday(i))
		}
	}
	return days
}

// BookingTemplate describes the booking materialized for each occurrence.
type BookingTemplate struct {
	AircraftID        *uuid.UUID
	InstructorID      *uuid.UUID
	StudentID         *uuid.UUID
	BookingType       BookingType
	StartTime         types.TimeString
	DurationMinutes   int
	PreflightMinutes  int
	PostflightMinutes int
	EstimatedCost     decimal.Decimal
}

// RecurringPattern generates occurrence dates from StartDate.
// It never yields more than MaxOccurrences dates over its lifetime and never yields an exception date.
type RecurringPattern struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	LocationID     uuid.UUID
	Frequency      Frequency
	Interval       int
	DaysOfWeek     WeekdaySet
	StartDate      time.Time
	EndDate        *time.Time
	MaxOccurrences *int
	ExceptionDates DateSet
	Status         PatternStatus
	Template       BookingTemplate
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectiveInterval treats a non-positive interval as 1.
func (p *RecurringPattern) EffectiveInterval() int {
	if p.Interval < 1 {
		return 1
	}
	return p.Interval
}
