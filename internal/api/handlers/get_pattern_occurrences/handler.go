package get_pattern_occurrences

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
)

const (
	route = "GET /patterns/{id}/occurrences"

	msgInvalidPatternID = "некорректный ID шаблона"
	msgInvalidQuery     = "некорректные параметры запроса"
	msgMissingOrg       = "отсутствует ID организации"
)

type Handler struct {
	service RecurrenceService
	logger  Logger
}

func NewHandler(service RecurrenceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/patterns/{patternId}/occurrences?count=10&relativeToStart=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patternID, err := handlers.PathUUID(r, "patternId")
	if err != nil {
		h.logger.Warn("%s - Invalid pattern ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPatternID)
		return
	}

	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingOrg)
		return
	}

	count, err := handlers.QueryInt(r, "count", defaultCount)
	if err != nil {
		h.logger.Warn("%s - Invalid query: %v", route, err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidQuery, handlers.KindValidation, []string{err.Error()})
		return
	}
	relativeToStart, err := handlers.QueryBool(r, "relativeToStart")
	if err != nil {
		h.logger.Warn("%s - Invalid query: %v", route, err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidQuery, handlers.KindValidation, []string{err.Error()})
		return
	}

	dates, err := h.service.GetNextOccurrences(r.Context(), organizationID, patternID, count, relativeToStart)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Occurrences computed: pattern_id=%s, count=%d", route, patternID, len(dates))
	handlers.RespondJSON(w, http.StatusOK, newOccurrencesResponse(patternID, dates))
}
