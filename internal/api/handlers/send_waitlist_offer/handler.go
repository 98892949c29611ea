package send_waitlist_offer

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

const (
	route = "POST /waitlist/{id}/offer"

	msgInvalidEntryID     = "некорректный ID записи листа ожидания"
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

// Handle POST /api/v1/waitlist/{entryId}/offer
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

	var req SendOfferRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if violations := handlers.ValidateStruct(&req); len(violations) > 0 {
		handlers.RespondDomainError(w, h.logger, route, domain.NewValidationError(violations...))
		return
	}

	entry, err := h.service.SendOffer(r.Context(), req.ToServiceRequest(organizationID, entryID))
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Offer sent: entry_id=%s, booking_id=%s", route, entryID, req.BookingID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewWaitlistEntryResponse(entry))
}
