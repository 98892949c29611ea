package domain

import (
	"time"

	"github.com/google/uuid"
)

func (e *WaitlistEntry) invalidState() *WaitlistError {
	return &WaitlistError{Code: WaitlistInvalidState, EntryID: e.ID, Status: e.Status}
}

func (e *WaitlistEntry) clearOffer() {
	e.OfferedBookingID = nil
	e.OfferMessage = nil
	e.OfferedAt = nil
	e.OfferExpiresAt = nil
}

// SendOffer proposes bookingID until expiresAt. Legal only from WAITING.
func (e *WaitlistEntry) SendOffer(bookingID uuid.UUID, message *string, expiresAt, now time.Time) error {
	if e.Status != WaitlistWaiting {
		return e.invalidState()
	}
	now, expiresAt = now.UTC(), expiresAt.UTC()
	e.Status = WaitlistOffered
	e.OfferedBookingID = &bookingID
	e.OfferMessage = message
	e.OfferedAt = &now
	e.OfferExpiresAt = &expiresAt
	e.UpdatedAt = now
	return nil
}

// Accept takes the outstanding offer. Legal only from OFFERED while now <= offer_expires_at.
func (e *WaitlistEntry) Accept(notes *string, now time.Time) error {
	if e.Status != WaitlistOffered {
		return e.invalidState()
	}
	if e.OfferExpired(now) {
		return &WaitlistError{Code: WaitlistOfferExpired, EntryID: e.ID, Status: e.Status}
	}
	now = now.UTC()
	e.AcceptedBookingID = e.OfferedBookingID
	e.Status = WaitlistAccepted
	e.ResponseNotes = notes
	e.RespondedAt = &now
	e.UpdatedAt = now
	e.clearOffer()
	return nil
}

// Decline refuses the offer, expired or not.
func (e *WaitlistEntry) Decline(notes *string, now time.Time) error {
	if e.Status != WaitlistOffered {
		return e.invalidState()
	}
	now = now.UTC()
	e.Status = WaitlistDeclined
	e.ResponseNotes = notes
	e.RespondedAt = &now
	e.UpdatedAt = now
	e.clearOffer()
	return nil
}

// Cancel withdraws the entry from WAITING or OFFERED.
func (e *WaitlistEntry) Cancel(reason string, now time.Time) error {
	if e.Status != WaitlistWaiting && e.Status != WaitlistOffered {
		return e.invalidState()
	}
	now = now.UTC()
	e.Status = WaitlistCancelled
	e.CancelReason = &reason
	e.UpdatedAt = now
	e.clearOffer()
	return nil
}

// Expire flips an offer past its expiry to EXPIRED; it reports whether anything changed.
func (e *WaitlistEntry) Expire(now time.Time) bool {
	if !e.OfferExpired(now) {
		return false
	}
	e.Status = WaitlistExpired
	e.UpdatedAt = now.UTC()
	e.clearOffer()
	return true
}
