package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jazyl-tech/JZL-BookingService/internal/api/handlers"
	"github.com/jazyl-tech/JZL-BookingService/internal/domain"
)

// Заголовки, которые проставляет API-gateway после аутентификации
const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

type actorKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth извлекает актора из заголовков gateway и кладет его в контекст.
// Запросы без корректной пары заголовков отклоняются: до этого сервиса
// они могут дойти только в обход gateway.
func Auth(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := uuid.Parse(r.Header.Get(headerUserID))
			if err != nil {
				log.Warn("Auth: %s %s - missing or invalid %s header", r.Method, r.URL.Path, headerUserID)
				handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
				return
			}

			role := domain.Role(r.Header.Get(headerUserRole))
			switch role {
			case domain.RoleClient, domain.RoleSalon, domain.RoleManager:
			default:
				log.Warn("Auth: %s %s - unknown role %q", r.Method, r.URL.Path, role)
				handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
				return
			}

			actor := domain.Actor{UserID: userID, Role: role}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor кладет актора в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext достает актора из контекста
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
