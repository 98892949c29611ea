package get_merged_rules

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
)

const (
	route = "GET /rules/merged"

	msgInvalidQuery = "некорректные параметры запроса"
	msgMissingOrg   = "отсутствует ID организации"
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

// Handle GET /api/v1/rules/merged
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingOrg)
		return
	}

	scope, err := scopeFromQuery(r)
	if err != nil {
		h.logger.Warn("%s - Invalid query: %v", route, err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidQuery, handlers.KindValidation, []string{err.Error()})
		return
	}

	merged, err := h.service.GetMergedRules(r.Context(), organizationID, scope)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Merged rules: org=%s, rules_count=%d", route, organizationID, len(merged.RuleIDs))
	handlers.RespondJSON(w, http.StatusOK, merged)
}
