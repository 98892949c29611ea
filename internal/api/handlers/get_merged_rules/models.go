package get_merged_rules

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

// scopeFromQuery собирает контекст правил из query: aircraftId, instructorId, locationId, bookingType
func scopeFromQuery(r *http.Request) (domain.RuleScope, error) {
	var scope domain.RuleScope
	var err error

	if scope.AircraftID, err = handlers.QueryUUID(r, "aircraftId"); err != nil {
		return scope, err
	}
	if scope.InstructorID, err = handlers.QueryUUID(r, "instructorId"); err != nil {
		return scope, err
	}
	if scope.LocationID, err = handlers.QueryUUID(r, "locationId"); err != nil {
		return scope, err
	}
	scope.BookingType = domain.BookingType(r.URL.Query().Get("bookingType"))

	return scope, nil
}
