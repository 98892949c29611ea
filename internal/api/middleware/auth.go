package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FlightScheduler/internal/api/handlers"
)

const (
	HeaderUserID         = "X-User-ID"
	HeaderOrganizationID = "X-Organization-ID"

	msgMissingUserID         = "отсутствует или некорректен заголовок X-User-ID"
	msgMissingOrganizationID = "отсутствует или некорректен заголовок X-Organization-ID"
)

type contextKey string

const (
	userIDKey         contextKey = "user_id"
	organizationIDKey contextKey = "organization_id"
)

// Auth кладёт в контекст пользователя и организацию из заголовков
// Аутентификацию выполняет шлюз перед сервисом, здесь проверяется только формат.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.Header.Get(HeaderUserID))
		if err != nil {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		organizationID, err := uuid.Parse(r.Header.Get(HeaderOrganizationID))
		if err != nil {
			handlers.RespondUnauthorized(w, msgMissingOrganizationID)
			return
		}

		ctx := WithIdentity(r.Context(), organizationID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithIdentity кладёт организацию и пользователя в контекст
func WithIdentity(ctx context.Context, organizationID, userID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, organizationIDKey, organizationID)
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// GetOrganizationID возвращает ID организации из контекста
func GetOrganizationID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(organizationIDKey).(uuid.UUID)
	return id, ok
}
