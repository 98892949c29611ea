package find_waitlist_matches

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

const (
	route = "POST /waitlist/matches"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingOrg         = "отсутствует ID организации"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist/matches
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingOrg)
		return
	}

	var req FindMatchesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if violations := handlers.ValidateStruct(&req); len(violations) > 0 {
		handlers.RespondDomainError(w, h.logger, route, domain.NewValidationError(violations...))
		return
	}

	entries, err := h.service.FindMatches(r.Context(), req.ToServiceQuery(organizationID))
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Matches found: org=%s, count=%d", route, organizationID, len(entries))
	handlers.RespondJSON(w, http.StatusOK, newFindMatchesResponse(entries))
}
