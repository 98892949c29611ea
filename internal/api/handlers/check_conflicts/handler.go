package check_conflicts

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

const (
	route = "POST /bookings/check-conflicts"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingOrg         = "отсутствует ID организации"
)

type Handler struct {
	service ConflictService
	logger  Logger
}

func NewHandler(service ConflictService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/check-conflicts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingOrg)
		return
	}

	var req CheckConflictsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if violations := handlers.ValidateStruct(&req); len(violations) > 0 {
		handlers.RespondDomainError(w, h.logger, route, domain.NewValidationError(violations...))
		return
	}

	result, err := h.service.CheckConflicts(r.Context(), req.ToServiceRequest(organizationID))
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Checked: organization_id=%s, conflicts=%d", route, organizationID, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
