package get_pattern_occurrences

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

const defaultCount = 10

// OccurrencesResponse HTTP response model
type OccurrencesResponse struct {
	PatternID   uuid.UUID `json:"patternId"`
	Occurrences []string  `json:"occurrences"`
}

func newOccurrencesResponse(patternID uuid.UUID, dates []time.Time) *OccurrencesResponse {
	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format(domain.DateFormat))
	}
	return &OccurrencesResponse{
		PatternID:   patternID,
		Occurrences: formatted,
	}
}
