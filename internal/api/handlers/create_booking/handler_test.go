package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	createBooking "github.com/m04kA/SMC-FlightScheduler/internal/usecase/create_booking"
	"github.com/m04kA/SMC-FlightScheduler/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

var (
	orgID  = uuid.New()
	userID = uuid.New()
)

func newRequest(t *testing.T, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(raw))
	return req.WithContext(middleware.WithIdentity(req.Context(), orgID, userID))
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"locationId":     uuid.New(),
		"instructorId":   uuid.New(),
		"bookingType":    "FLIGHT",
		"scheduledStart": "2026-05-04T09:00:00Z",
		"scheduledEnd":   "2026-05-04T11:00:00Z",
	}
}

func TestHandle_Created(t *testing.T) {
	uc := new(mockUseCase)
	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	booking := &domain.Booking{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Status:         domain.StatusDraft,
		BookingType:    domain.BookingTypeFlight,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(2 * time.Hour),
	}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.OrganizationID == orgID && r.CreatedBy == userID && !r.ValidateOnly
	})).Return(&createBooking.Response{Booking: booking}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(t, validBody()))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateBookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, booking.ID, resp.Booking.ID)
	assert.Equal(t, domain.StatusDraft, resp.Booking.Status)
	uc.AssertExpectations(t)
}

func TestHandle_ValidateOnlyReturnsOK(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(&createBooking.Response{Booking: &domain.Booking{}, ValidateOnly: true}, nil)

	body := validBody()
	body["validateOnly"] = true

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(t, body))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandle_RejectsInvalidBody(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{name: "end before start", mutate: func(b map[string]interface{}) { b["scheduledEnd"] = "2026-05-04T08:00:00Z" }},
		{name: "unknown booking type", mutate: func(b map[string]interface{}) { b["bookingType"] = "BALLOON" }},
		{name: "buffer too large", mutate: func(b map[string]interface{}) { b["preflightMinutes"] = 300 }},
		{name: "unknown field", mutate: func(b map[string]interface{}) { b["priority"] = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			body := validBody()
			tt.mutate(body)

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(t, body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_ConflictMapsTo409(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &domain.ConflictError{ResourceType: domain.ResourceInstructor, ResourceID: uuid.New()})

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, newRequest(t, validBody()))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_MissingIdentity(t *testing.T) {
	uc := new(mockUseCase)
	raw, _ := json.Marshal(validBody())

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(raw)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
