package booking_transition

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

const (
	route = "POST /bookings/{id}/{action}"

	msgInvalidBookingID = "некорректный ID бронирования"
	msgUnknownAction    = "неизвестное действие над бронированием"
	msgMissingIdentity  = "отсутствует идентификатор пользователя или организации"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/{action}
// action: schedule, confirm, check-in, complete, no-show, reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	action, ok := domain.ParseBookingAction(mux.Vars(r)["action"])
	if !ok || action == domain.ActionCancel {
		h.logger.Warn("%s - Unknown action: %q", route, mux.Vars(r)["action"])
		handlers.RespondNotFound(w, msgUnknownAction)
		return
	}

	userID, okUser := middleware.GetUserID(r.Context())
	organizationID, okOrg := middleware.GetOrganizationID(r.Context())
	if !okUser || !okOrg {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	booking, err := h.service.Apply(r.Context(), organizationID, bookingID, userID, action)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Transition applied: booking_id=%s, action=%s, status=%s", route, bookingID, action, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingResponse(booking))
}
