package materialize_pattern

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/usecase/create_booking"
)

// UseCase use case для материализации шаблона повторения в бронирования
type UseCase struct {
	expander PatternExpander
	creator  BookingCreator
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(expander PatternExpander, creator BookingCreator, logger Logger) *UseCase {
	return &UseCase{
		expander: expander,
		creator:  creator,
		logger:   logger,
	}
}

// Execute разворачивает count дат шаблона и проводит каждую через создание бронирования
// Ошибка одной даты не останавливает остальные.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MaterializePattern: org=%s pattern=%s count=%d validateOnly=%t",
		req.OrganizationID, req.PatternID, req.Count, req.ValidateOnly)

	pattern, dates, err := uc.expander.Expand(ctx, req.OrganizationID, req.PatternID, req.Count, req.RelativeToStart)
	if err != nil {
		return nil, err
	}

	response := &Response{
		PatternID:   pattern.ID,
		Occurrences: make([]Occurrence, 0, len(dates)),
	}

	for _, date := range dates {
		occurrence := Occurrence{Date: date}

		created, err := uc.creator.Execute(ctx, bookingRequest(pattern, date, req))
		if err != nil {
			uc.logger.Warn("MaterializePattern: pattern=%s date=%s failed: %v",
				pattern.ID, date.Format(domain.DateFormat), err)
			occurrence.Err = err
			response.Failed++
		} else {
			occurrence.Booking = created.Booking
			response.Created++
		}

		response.Occurrences = append(response.Occurrences, occurrence)
	}

	uc.logger.Info("MaterializePattern: pattern=%s created=%d failed=%d", pattern.ID, response.Created, response.Failed)

	return response, nil
}

// bookingRequest собирает запрос на бронирование по шаблону для даты
func bookingRequest(pattern *domain.RecurringPattern, date time.Time, req *Request) *create_booking.Request {
	tpl := pattern.Template
	start := tpl.StartTime.On(date)
	patternID := pattern.ID
	preflight, postflight := tpl.PreflightMinutes, tpl.PostflightMinutes

	return &create_booking.Request{
		OrganizationID:    pattern.OrganizationID,
		LocationID:        pattern.LocationID,
		AircraftID:        tpl.AircraftID,
		InstructorID:      tpl.InstructorID,
		StudentID:         tpl.StudentID,
		PatternID:         &patternID,
		BookingType:       tpl.BookingType,
		ScheduledStart:    start,
		ScheduledEnd:      start.Add(time.Duration(tpl.DurationMinutes) * time.Minute),
		PreflightMinutes:  &preflight,
		PostflightMinutes: &postflight,
		EstimatedCost:     tpl.EstimatedCost,
		CreatedBy:         req.ActorID,
		ValidateOnly:      req.ValidateOnly,
	}
}
