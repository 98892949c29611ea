package get_waitlist_entry

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
)

const (
	route = "GET /waitlist/{id}"

	msgInvalidEntryID = "некорректный ID записи листа ожидания"
	msgMissingOrg     = "отсутствует ID организации"
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

// Handle GET /api/v1/waitlist/{entryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	entryID, err := handlers.PathUUID(r, "entryId")
	if err != nil {
		h.logger.Warn("%s - Invalid entry ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingOrg)
		return
	}

	entry, err := h.service.Get(r.Context(), organizationID, entryID)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Entry retrieved: entry_id=%s, status=%s", route, entryID, entry.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewWaitlistEntryResponse(entry))
}
