package validate_rules

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

const (
	route = "POST /rules/validate"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "отсутствует идентификатор пользователя или организации"
)

type Handler struct {
	service RulesService
	logger  Logger
}

func NewHandler(service RulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/rules/validate
// Нарушения правил возвращаются в теле ответа со статусом 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, okUser := middleware.GetUserID(r.Context())
	organizationID, okOrg := middleware.GetOrganizationID(r.Context())
	if !okUser || !okOrg {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req ValidateRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if violations := handlers.ValidateStruct(&req); len(violations) > 0 {
		handlers.RespondDomainError(w, h.logger, route, domain.NewValidationError(violations...))
		return
	}

	result, err := h.service.ValidateBooking(r.Context(), req.ToServiceRequest(organizationID, userID))
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Validated: org=%s, valid=%t, rules_applied=%d", route, organizationID, result.Valid, len(result.RulesApplied))
	handlers.RespondJSON(w, http.StatusOK, result)
}
