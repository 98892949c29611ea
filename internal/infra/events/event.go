package events

import (
	"time"

	"github.com/google/uuid"
)

// Type тип доменного события
type Type string

const (
	BookingCreated        Type = "booking.created"
	BookingStatusChanged  Type = "booking.status_changed"
	BookingCancelled      Type = "booking.cancelled"
	WaitlistOfferSent     Type = "waitlist.offer_sent"
	WaitlistOfferAccepted Type = "waitlist.offer_accepted"
	WaitlistOfferDeclined Type = "waitlist.offer_declined"
)

// Event конверт события, публикуемого после коммита
// Ключ сообщения - AggregateID, поэтому события одной сущности попадают в одну партицию.
type Event struct {
	ID             uuid.UUID   `json:"id"`
	Type           Type        `json:"type"`
	OrganizationID uuid.UUID   `json:"organizationId"`
	AggregateID    uuid.UUID   `json:"aggregateId"`
	ActorID        *uuid.UUID  `json:"actorId,omitempty"`
	OccurredAt     time.Time   `json:"occurredAt"`
	Payload        interface{} `json:"payload,omitempty"`
}

// New создаёт событие с новым ID и временем OccurredAt
func New(eventType Type, organizationID, aggregateID uuid.UUID, actorID *uuid.UUID, at time.Time, payload interface{}) Event {
	return Event{
		ID:             uuid.New(),
		Type:           eventType,
		OrganizationID: organizationID,
		AggregateID:    aggregateID,
		ActorID:        actorID,
		OccurredAt:     at.UTC(),
		Payload:        payload,
	}
}
