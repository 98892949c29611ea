package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Error kinds. Every typed error below matches exactly one of them via errors.Is.
var (
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	ErrState      = errors.New("illegal state transition")
	ErrNotFound   = errors.New("not found")
	ErrWaitlist   = errors.New("waitlist error")
)

// Validation messages shared by the rule resolver and request validation.
const (
	MsgInvalidTimeRange    = "scheduled_end must be after scheduled_start"
	MsgDurationBelowMin    = "duration below minimum"
	MsgDurationAboveMax    = "duration above maximum"
	MsgInsufficientNotice  = "insufficient notice"
	MsgTooFarInAdvance     = "booking too far in advance"
	MsgMissingParticipant  = "at least one of instructor_id or student_id is required"
	MsgNegativeBuffer      = "preflight and postflight minutes must not be negative"
	MsgNegativeCost        = "estimated_cost must not be negative"
	MsgInvalidBookingType  = "unknown booking_type"
	MsgInvalidOfferExpiry  = "expires_in_hours must be positive"
	MsgInvalidSlotDuration = "duration_minutes must be positive"
	MsgInvalidSlotInterval = "slot_interval_minutes must be positive"
	MsgInvalidCount        = "count must be positive"
)

// ConflictError reports every active booking and unavailable block overlapping a request.
type ConflictError struct {
	ResourceType ResourceType
	ResourceID   uuid.UUID
	Bookings     []BookingSummary
	Blocks       []Availability
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s is not available: %d booking(s), %d unavailable block(s) overlap",
		e.ResourceType, e.ResourceID, len(e.Bookings), len(e.Blocks))
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// ValidationError carries all violations, not just the first.
type ValidationError struct {
	Errors []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// StateError is returned for a lifecycle action that is illegal from the current status.
type StateError struct {
	Entity string
	ID     uuid.UUID
	From   string
	Action string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s %s: cannot %s from status %s", e.Entity, e.ID, e.Action, e.From)
}

func (e *StateError) Is(target error) bool { return target == ErrState }

// NotFoundError is returned when a referenced booking, entry or pattern does not exist.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// WaitlistErrorCode distinguishes waitlist failures.
type WaitlistErrorCode string

const (
	WaitlistOfferExpired WaitlistErrorCode = "offer_expired"
	WaitlistInvalidState WaitlistErrorCode = "invalid_state"
)

type WaitlistError struct {
	Code    WaitlistErrorCode
	EntryID uuid.UUID
	Status  WaitlistStatus
}

func (e *WaitlistError) Error() string {
	return fmt.Sprintf("waitlist entry %s: %s (status %s)", e.EntryID, e.Code, e.Status)
}

func (e *WaitlistError) Is(target error) bool { return target == ErrWaitlist }
