package find_waitlist_matches

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/service/waitlist"
)

// FindMatchesRequest HTTP request model
type FindMatchesRequest struct {
	Start        time.Time  `json:"start" validate:"required"`
	End          time.Time  `json:"end" validate:"required,gtfield=Start"`
	AircraftID   *uuid.UUID `json:"aircraftId,omitempty"`
	InstructorID *uuid.UUID `json:"instructorId,omitempty"`
}

// FindMatchesResponse HTTP response model; записи в порядке постановки в очередь
type FindMatchesResponse struct {
	Matches []*handlers.WaitlistEntryResponse `json:"matches"`
}

// ToServiceQuery конвертирует HTTP запрос в запрос сервиса
func (r *FindMatchesRequest) ToServiceQuery(organizationID uuid.UUID) waitlist.SlotQuery {
	return waitlist.SlotQuery{
		OrganizationID: organizationID,
		Start:          r.Start.UTC(),
		End:            r.End.UTC(),
		AircraftID:     r.AircraftID,
		InstructorID:   r.InstructorID,
	}
}

func newFindMatchesResponse(entries []*domain.WaitlistEntry) *FindMatchesResponse {
	matches := make([]*handlers.WaitlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		matches = append(matches, handlers.NewWaitlistEntryResponse(e))
	}
	return &FindMatchesResponse{Matches: matches}
}
