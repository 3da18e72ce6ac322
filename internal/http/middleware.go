package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/arun-kumar2004/TastyCart/internal/domain"
	"github.com/arun-kumar2004/TastyCart/internal/repository"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware resolves the bearer token into a user record and stores it
// in the request context. Requests without a valid token are rejected.
func AuthMiddleware(users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
				return
			}

			user, err := users.GetUserByToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					respondError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
					return
				}
				respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func userFromContext(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(userContextKey).(*domain.User); ok {
		return user
	}
	return nil
}
