package get_resource_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
)

const (
	route = "GET /bookings"

	msgInvalidParams = "некорректные параметры запроса"
	msgMissingOrg    = "отсутствует ID организации"
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

// Handle GET /api/v1/bookings?resourceType=AIRCRAFT&resourceId=...&from=...&to=...
// Возвращает активные бронирования ресурса, чей block-интервал пересекается с окном
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingOrg)
		return
	}

	q, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("%s - Invalid parameters: %v", route, err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidParams, handlers.KindValidation, []string{err.Error()})
		return
	}

	bookings, err := h.service.GetConflicts(r.Context(), organizationID, q.ResourceType, q.ResourceID, q.From, q.To, nil)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Bookings retrieved successfully: resource=%s/%s, count=%d",
		route, q.ResourceType, q.ResourceID, len(bookings))
	handlers.RespondJSON(w, http.StatusOK, newBookingList(bookings))
}
