package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RuleType is the scope a booking rule applies to.
type RuleType string

const (
	RuleGeneral    RuleType = "GENERAL"
	RuleAircraft   RuleType = "AIRCRAFT"
	RuleInstructor RuleType = "INSTRUCTOR"
	RuleLocation   RuleType = "LOCATION"
)

func (t RuleType) IsValid() bool {
	switch t {
	case RuleGeneral, RuleAircraft, RuleInstructor, RuleLocation:
		return true
	}
	return false
}

// RuleConditions narrows where a rule applies beyond its scope.
type RuleConditions struct {
	// BookingTypes limits the rule to these booking types; empty means all.
	BookingTypes []BookingType `json:"booking_types,omitempty"`
}

func (c RuleConditions) Allows(bt BookingType) bool {
	if len(c.BookingTypes) == 0 || bt == "" {
		return true
	}
	for _, t := range c.BookingTypes {
		if t == bt {
			return true
		}
	}
	return false
}

// BookingRule is a scoped policy. Nil fields are unset and never override other rules.
type BookingRule struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	RuleType       RuleType
	TargetID       *uuid.UUID
	Priority       int
	IsActive       bool
	Conditions     RuleConditions

	MinBookingDuration         *int
	MaxBookingDuration         *int
	MinNoticeHours             *int
	MaxAdvanceDays             *int
	FreeCancellationHours      *int
	LateCancellationFeePercent *decimal.Decimal
	NoShowFeePercent           *decimal.Decimal

	EffectiveFrom *time.Time
	EffectiveTo   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEffective reports whether today falls inside the rule's effective window (dates, inclusive).
func (r *BookingRule) IsEffective(today time.Time) bool {
	if !r.IsActive {
		return false
	}
	day := DateOf(today)
	if r.EffectiveFrom != nil && day.Before(DateOf(*r.EffectiveFrom)) {
		return false
	}
	if r.EffectiveTo != nil && day.After(DateOf(*r.EffectiveTo)) {
		return false
	}
	return true
}

// RuleScope is the booking context rules are matched against.
type RuleScope struct {
	AircraftID   *uuid.UUID
	InstructorID *uuid.UUID
	LocationID   *uuid.UUID
	BookingType  BookingType
}

// AppliesTo reports whether the rule's scope and conditions match.
func (r *BookingRule) AppliesTo(scope RuleScope) bool {
	if !r.Conditions.Allows(scope.BookingType) {
		return false
	}
	switch r.RuleType {
	case RuleGeneral:
		return true
	case RuleAircraft:
		return matchesTarget(r.TargetID, scope.AircraftID)
	case RuleInstructor:
		return matchesTarget(r.TargetID, scope.InstructorID)
	case RuleLocation:
		return matchesTarget(r.TargetID, scope.LocationID)
	}
	return false
}

func matchesTarget(target, id *uuid.UUID) bool {
	return target != nil && id != nil && *target == *id
}

// MergedRules is the effective rule set; a nil field was set by no participating rule.
type MergedRules struct {
	MinBookingDuration         *int             `json:"minBookingDuration,omitempty"`
	MaxBookingDuration         *int             `json:"maxBookingDuration,omitempty"`
	MinNoticeHours             *int             `json:"minNoticeHours,omitempty"`
	MaxAdvanceDays             *int             `json:"maxAdvanceDays,omitempty"`
	FreeCancellationHours      *int             `json:"freeCancellationHours,omitempty"`
	LateCancellationFeePercent *decimal.Decimal `json:"lateCancellationFeePercent,omitempty"`
	NoShowFeePercent           *decimal.Decimal `json:"noShowFeePercent,omitempty"`
	RuleIDs                    []uuid.UUID      `json:"ruleIds"`
}

// CancellationFee is the fee policy outcome for cancelling at a given lead time.
// IsFree and IsLate are mutually exclusive; both false means the start time has passed.
type CancellationFee struct {
	Fee    decimal.Decimal `json:"fee"`
	IsFree bool            `json:"isFree"`
	IsLate bool            `json:"isLate"`
}
