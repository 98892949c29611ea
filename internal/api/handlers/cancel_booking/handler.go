package cancel_booking

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/usecase/cancel_booking"
)

const (
	route = "POST /bookings/{id}/cancel"

	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "отсутствует идентификатор пользователя или организации"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, okUser := middleware.GetUserID(r.Context())
	organizationID, okOrg := middleware.GetOrganizationID(r.Context())
	if !okUser || !okOrg {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if violations := handlers.ValidateStruct(&req); len(violations) > 0 {
		handlers.RespondDomainError(w, h.logger, route, domain.NewValidationError(violations...))
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &cancel_booking.Request{
		OrganizationID: organizationID,
		BookingID:      bookingID,
		ActorID:        userID,
		Reason:         req.Reason,
	})
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Booking cancelled: booking_id=%s, fee=%s, waitlist_matches=%d",
		route, bookingID, resp.Fee.Fee, len(resp.WaitlistMatches))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
