package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/internal/infra/lock"
	"github.com/m04kA/SMC-FlightScheduler/pkg/logger"
)

func TestRespondDomainError(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "validation",
			err:    domain.NewValidationError(domain.MsgInvalidTimeRange, domain.MsgMissingParticipant),
			status: http.StatusBadRequest,
			code:   KindValidation,
		},
		{
			name:   "conflict wrapped",
			err:    fmt.Errorf("create: %w", &domain.ConflictError{ResourceType: domain.ResourceAircraft, ResourceID: id}),
			status: http.StatusConflict,
			code:   KindConflict,
		},
		{
			name:   "state",
			err:    &domain.StateError{Entity: "booking", ID: id, From: "COMPLETED", Action: "cancel"},
			status: http.StatusConflict,
			code:   KindState,
		},
		{
			name:   "not found",
			err:    &domain.NotFoundError{Entity: "booking", ID: id},
			status: http.StatusNotFound,
			code:   KindNotFound,
		},
		{
			name:   "offer expired",
			err:    &domain.WaitlistError{Code: domain.WaitlistOfferExpired, EntryID: id, Status: domain.WaitlistExpired},
			status: http.StatusGone,
			code:   string(domain.WaitlistOfferExpired),
		},
		{
			name:   "waitlist invalid state",
			err:    &domain.WaitlistError{Code: domain.WaitlistInvalidState, EntryID: id, Status: domain.WaitlistAccepted},
			status: http.StatusConflict,
			code:   string(domain.WaitlistInvalidState),
		},
		{
			name:   "resource busy",
			err:    fmt.Errorf("acquire: %w", lock.ErrResourceBusy),
			status: http.StatusConflict,
			code:   KindResourceBusy,
		},
		{
			name:   "internal",
			err:    errors.New("connection reset"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			RespondDomainError(rec, logger.NewNop(), "TEST", tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRespondDomainError_ValidationListsEveryViolation(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondDomainError(rec, logger.NewNop(), "TEST",
		domain.NewValidationError(domain.MsgInvalidTimeRange, domain.MsgNegativeCost))

	var body struct {
		Details []string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{domain.MsgInvalidTimeRange, domain.MsgNegativeCost}, body.Details)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, KindValidation, ErrorKind(domain.NewValidationError("x")))
	assert.Equal(t, KindConflict, ErrorKind(&domain.ConflictError{}))
	assert.Equal(t, KindResourceBusy, ErrorKind(lock.ErrResourceBusy))
	assert.Equal(t, KindInternal, ErrorKind(errors.New("boom")))
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	type payload struct {
		Count  int    `json:"count" validate:"required,min=1"`
		Reason string `json:"reason" validate:"max=3"`
	}

	violations := ValidateStruct(&payload{Reason: "too long"})

	assert.ElementsMatch(t, []string{"count is required", "reason must be at most 3"}, violations)
}
