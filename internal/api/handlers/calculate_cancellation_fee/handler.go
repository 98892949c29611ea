package calculate_cancellation_fee

import (
	"net/http"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
)

const (
	route = "POST /rules/cancellation-fee"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingOrg         = "отсутствует ID организации"
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

// Handle POST /api/v1/rules/cancellation-fee
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingOrg)
		return
	}

	var req CancellationFeeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if violations := handlers.ValidateStruct(&req); len(violations) > 0 {
		handlers.RespondDomainError(w, h.logger, route, domain.NewValidationError(violations...))
		return
	}

	fee, err := h.service.CalculateCancellationFee(r.Context(), req.ToServiceRequest(organizationID))
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Fee calculated: org=%s, fee=%s", route, organizationID, fee.Fee)
	handlers.RespondJSON(w, http.StatusOK, fee)
}
