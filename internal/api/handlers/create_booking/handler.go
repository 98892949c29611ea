package create_booking

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

const (
	route = "POST /bookings"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "отсутствует идентификатор пользователя или организации"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, okOrg := middleware.GetOrganizationID(r.Context())
	userID, okUser := middleware.GetUserID(r.Context())
	if !okOrg || !okUser {
		h.logger.Warn("%s - Missing identity", route)
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if violations := handlers.ValidateStruct(&req); len(violations) > 0 {
		handlers.RespondDomainError(w, h.logger, route, domain.NewValidationError(violations...))
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(organizationID, userID))
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	status := http.StatusCreated
	if result.ValidateOnly {
		status = http.StatusOK
	}

	h.logger.Info("%s - Booking accepted: booking_id=%s, validate_only=%t, organization_id=%s",
		route, result.Booking.ID, result.ValidateOnly, organizationID)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
