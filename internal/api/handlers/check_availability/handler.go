package check_availability

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

const (
	route = "POST /availability/check"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingOrg         = "отсутствует ID организации"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingOrg)
		return
	}

	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if violations := handlers.ValidateStruct(&req); len(violations) > 0 {
		handlers.RespondDomainError(w, h.logger, route, domain.NewValidationError(violations...))
		return
	}

	result, err := h.service.IsResourceAvailable(r.Context(), organizationID,
		domain.ResourceType(req.ResourceType), req.ResourceID, req.Start.UTC(), req.End.UTC())
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Checked: resource=%s/%s, available=%t", route, req.ResourceType, req.ResourceID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, result)
}
