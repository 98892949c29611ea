package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingAction names a lifecycle transition.
type BookingAction string

const (
	ActionSchedule   BookingAction = "schedule"
	ActionConfirm    BookingAction = "confirm"
	ActionCheckIn    BookingAction = "check-in"
	ActionComplete   BookingAction = "complete"
	ActionCancel     BookingAction = "cancel"
	ActionMarkNoShow BookingAction = "no-show"
	ActionReject     BookingAction = "reject"
)

// transitions maps an action to the statuses it is legal from and the status it leads to.
var transitions = map[BookingAction]struct {
	from []BookingStatus
	to   BookingStatus
}{
	ActionSchedule:   {from: []BookingStatus{StatusDraft}, to: StatusScheduled},
	ActionConfirm:    {from: []BookingStatus{StatusScheduled}, to: StatusConfirmed},
	ActionCheckIn:    {from: []BookingStatus{StatusConfirmed}, to: StatusCheckedIn},
	ActionComplete:   {from: []BookingStatus{StatusCheckedIn}, to: StatusCompleted},
	ActionCancel:     {from: []BookingStatus{StatusDraft, StatusScheduled, StatusConfirmed}, to: StatusCancelled},
	ActionMarkNoShow: {from: []BookingStatus{StatusScheduled, StatusConfirmed}, to: StatusNoShow},
	ActionReject:     {from: []BookingStatus{StatusDraft}, to: StatusRejected},
}

// ParseBookingAction validates an action name from the transport layer.
func ParseBookingAction(s string) (BookingAction, bool) {
	a := BookingAction(s)
	_, ok := transitions[a]
	return a, ok
}

// TargetStatus returns the status reached by a legal action.
func (a BookingAction) TargetStatus() BookingStatus {
	return transitions[a].to
}

// CanApply reports whether action is legal from the booking's current status.
func (b *Booking) CanApply(action BookingAction) bool {
	t, ok := transitions[action]
	if !ok {
		return false
	}
	for _, s := range t.from {
		if b.Status == s {
			return true
		}
	}
	return false
}

func (b *Booking) stateError(action BookingAction) *StateError {
	return &StateError{Entity: "booking", ID: b.ID, From: string(b.Status), Action: string(action)}
}

func (b *Booking) apply(action BookingAction, actor uuid.UUID, at time.Time) error {
	if !b.CanApply(action) {
		return b.stateError(action)
	}
	at = at.UTC()
	b.Status = transitions[action].to
	b.StatusChangedBy = &actor
	b.StatusChangedAt = &at
	b.UpdatedAt = at
	return nil
}

// Schedule moves a draft into the active schedule.
func (b *Booking) Schedule(actor uuid.UUID, at time.Time) error {
	return b.apply(ActionSchedule, actor, at)
}

func (b *Booking) Confirm(actor uuid.UUID, at time.Time) error {
	if err := b.apply(ActionConfirm, actor, at); err != nil {
		return err
	}
	b.ConfirmedAt = b.StatusChangedAt
	return nil
}

func (b *Booking) CheckIn(actor uuid.UUID, at time.Time) error {
	if err := b.apply(ActionCheckIn, actor, at); err != nil {
		return err
	}
	b.CheckedInAt = b.StatusChangedAt
	return nil
}

func (b *Booking) Complete(actor uuid.UUID, at time.Time) error {
	if err := b.apply(ActionComplete, actor, at); err != nil {
		return err
	}
	b.CompletedAt = b.StatusChangedAt
	return nil
}

func (b *Booking) Reject(actor uuid.UUID, at time.Time) error {
	return b.apply(ActionReject, actor, at)
}

// Cancel records reason, actor, time and the already computed fee.
func (b *Booking) Cancel(reason string, actor uuid.UUID, at time.Time, fee decimal.Decimal) error {
	if err := b.apply(ActionCancel, actor, at); err != nil {
		return err
	}
	b.CancellationReason = &reason
	b.CancelledBy = &actor
	b.CancelledAt = b.StatusChangedAt
	b.CancellationFee = &fee
	return nil
}

// MarkNoShow is legal only once scheduled_start has passed without check-in.
func (b *Booking) MarkNoShow(actor uuid.UUID, at time.Time) error {
	if !b.CanApply(ActionMarkNoShow) || at.Before(b.ScheduledStart) {
		return b.stateError(ActionMarkNoShow)
	}
	return b.apply(ActionMarkNoShow, actor, at)
}

// HoursUntilStart is the signed number of hours between at and scheduled_start.
func (b *Booking) HoursUntilStart(at time.Time) float64 {
	return b.ScheduledStart.Sub(at).Hours()
}
