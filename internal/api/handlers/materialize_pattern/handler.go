package materialize_pattern

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/usecase/materialize_pattern"
)

const (
	route = "POST /patterns/{id}/materialize"

	msgInvalidPatternID   = "некорректный ID шаблона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "отсутствует идентификатор пользователя или организации"
)

type Handler struct {
	useCase MaterializePatternUseCase
	logger  Logger
}

func NewHandler(useCase MaterializePatternUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/patterns/{patternId}/materialize
// Ошибки отдельных дат не прерывают запрос и возвращаются в occurrences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patternID, err := handlers.PathUUID(r, "patternId")
	if err != nil {
		h.logger.Warn("%s - Invalid pattern ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPatternID)
		return
	}

	userID, okUser := middleware.GetUserID(r.Context())
	organizationID, okOrg := middleware.GetOrganizationID(r.Context())
	if !okUser || !okOrg {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req MaterializeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if violations := handlers.ValidateStruct(&req); len(violations) > 0 {
		handlers.RespondDomainError(w, h.logger, route, domain.NewValidationError(violations...))
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &materialize_pattern.Request{
		OrganizationID:  organizationID,
		PatternID:       patternID,
		ActorID:         userID,
		Count:           req.Count,
		RelativeToStart: req.RelativeToStart,
		ValidateOnly:    req.ValidateOnly,
	})
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Pattern materialized: pattern_id=%s, created=%d, failed=%d",
		route, patternID, resp.Created, resp.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
