package waitlist_action

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FlightScheduler/internal/domain"
	"github.com/m04kA/SMC-FlightScheduler/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) result(args mock.Arguments) (*domain.WaitlistEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitlistEntry), args.Error(1)
}

func (m *mockService) AcceptOffer(ctx context.Context, organizationID, id uuid.UUID, notes *string) (*domain.WaitlistEntry, error) {
	return m.result(m.Called(ctx, organizationID, id, notes))
}

func (m *mockService) DeclineOffer(ctx context.Context, organizationID, id uuid.UUID, notes *string) (*domain.WaitlistEntry, error) {
	return m.result(m.Called(ctx, organizationID, id, notes))
}

func (m *mockService) CancelEntry(ctx context.Context, organizationID, id uuid.UUID, reason string) (*domain.WaitlistEntry, error) {
	return m.result(m.Called(ctx, organizationID, id, reason))
}

func serve(svc *mockService, entryID, action, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/waitlist/{entryId}/{action}", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodPost, "/waitlist/"+entryID+"/"+action, strings.NewReader(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), uuid.New(), uuid.New()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_AcceptWithoutBody(t *testing.T) {
	svc := new(mockService)
	id := uuid.New()
	svc.On("AcceptOffer", mock.Anything, mock.Anything, id, (*string)(nil)).
		Return(&domain.WaitlistEntry{ID: id, Status: domain.WaitlistAccepted}, nil)

	rec := serve(svc, id.String(), "accept", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ACCEPTED"`)
	svc.AssertExpectations(t)
}

func TestHandle_AcceptExpiredOffer(t *testing.T) {
	svc := new(mockService)
	id := uuid.New()
	svc.On("AcceptOffer", mock.Anything, mock.Anything, id, mock.Anything).
		Return(nil, &domain.WaitlistError{Code: domain.WaitlistOfferExpired, EntryID: id, Status: domain.WaitlistExpired})

	rec := serve(svc, id.String(), "accept", `{"notes":"on my way"}`)

	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestHandle_CancelPassesReason(t *testing.T) {
	svc := new(mockService)
	id := uuid.New()
	svc.On("CancelEntry", mock.Anything, mock.Anything, id, "schedule changed").
		Return(&domain.WaitlistEntry{ID: id, Status: domain.WaitlistCancelled}, nil)

	rec := serve(svc, id.String(), "cancel", `{"reason":"schedule changed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_UnknownActionAndBadID(t *testing.T) {
	svc := new(mockService)

	assert.Equal(t, http.StatusNotFound, serve(svc, uuid.New().String(), "snooze", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "not-a-uuid", "accept", "").Code)
	svc.AssertNotCalled(t, "AcceptOffer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
