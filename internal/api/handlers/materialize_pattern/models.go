package materialize_pattern

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/usecase/materialize_pattern"
)

// MaterializeRequest HTTP request model
type MaterializeRequest struct {
	Count           int  `json:"count" validate:"required,min=1,max=366"`
	RelativeToStart bool `json:"relativeToStart"`
	ValidateOnly    bool `json:"validateOnly"`
}

// OccurrenceResponse результат по одной дате
type OccurrenceResponse struct {
	Date      string                    `json:"date"`
	Booking   *handlers.BookingResponse `json:"booking,omitempty"`
	Error     string                    `json:"error,omitempty"`
	ErrorKind string                    `json:"errorKind,omitempty"`
}

// MaterializeResponse HTTP response model
type MaterializeResponse struct {
	PatternID   uuid.UUID            `json:"patternId"`
	Occurrences []OccurrenceResponse `json:"occurrences"`
	Created     int                  `json:"created"`
	Failed      int                  `json:"failed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *materialize_pattern.Response) *MaterializeResponse {
	occurrences := make([]OccurrenceResponse, 0, len(resp.Occurrences))
	for _, o := range resp.Occurrences {
		item := OccurrenceResponse{Date: o.Date.Format(domain.DateFormat)}
		if o.Err != nil {
			item.Error = o.Err.Error()
			item.ErrorKind = handlers.ErrorKind(o.Err)
		} else if o.Booking != nil {
			item.Booking = handlers.NewBookingResponse(o.Booking)
		}
		occurrences = append(occurrences, item)
	}

	return &MaterializeResponse{
		PatternID:   resp.PatternID,
		Occurrences: occurrences,
		Created:     resp.Created,
		Failed:      resp.Failed,
	}
}
