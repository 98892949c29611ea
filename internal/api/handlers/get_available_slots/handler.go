package get_available_slots

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

const (
	route = "GET /availability/slots"

	msgInvalidQuery = "некорректные параметры запроса"
	msgMissingOrg   = "отсутствует ID организации"
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

// Handle GET /api/v1/availability/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingOrg)
		return
	}

	req, err := ToServiceRequest(r, organizationID)
	if err != nil {
		h.logger.Warn("%s - Invalid query: %v", route, err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidQuery, handlers.KindValidation, []string{err.Error()})
		return
	}

	slots, err := h.service.GetAvailableSlots(r.Context(), req)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Slots retrieved: resource=%s/%s, date=%s, slots_count=%d",
		route, req.ResourceType, req.ResourceID, req.Date.Format(domain.DateFormat), len(slots))
	handlers.RespondJSON(w, http.StatusOK, &AvailableSlotsResponse{
		Date:         req.Date.Format(domain.DateFormat),
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		Slots:        slots,
	})
}
