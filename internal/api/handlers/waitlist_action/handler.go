package waitlist_action

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

const (
	route = "POST /waitlist/{id}/{action}"

	msgInvalidEntryID     = "некорректный ID записи листа ожидания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownAction      = "неизвестное действие над записью листа ожидания"
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

// Handle POST /api/v1/waitlist/{entryId}/{action}
// action: accept, decline, cancel; тело запроса необязательно
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

	var req ActionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if violations := handlers.ValidateStruct(&req); len(violations) > 0 {
		handlers.RespondDomainError(w, h.logger, route, domain.NewValidationError(violations...))
		return
	}

	action := mux.Vars(r)["action"]

	var entry *domain.WaitlistEntry
	switch action {
	case actionAccept:
		entry, err = h.service.AcceptOffer(r.Context(), organizationID, entryID, req.Notes)
	case actionDecline:
		entry, err = h.service.DeclineOffer(r.Context(), organizationID, entryID, req.Notes)
	case actionCancel:
		entry, err = h.service.CancelEntry(r.Context(), organizationID, entryID, req.Reason)
	default:
		h.logger.Warn("%s - Unknown action: %q", route, action)
		handlers.RespondNotFound(w, msgUnknownAction)
		return
	}
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Action applied: entry_id=%s, action=%s, status=%s", route, entryID, action, entry.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewWaitlistEntryResponse(entry))
}
