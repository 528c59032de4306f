// Package middleware holds the HTTP middleware chain: correlation ids and
// bearer-token authentication.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	id "mintgate/pkg/domain"
	"mintgate/pkg/requestcontext"
)

// Claims represents the claims the middleware expects from a validator.
type Claims struct {
	UserID         string
	OrganizationID string
}

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenString string) (*Claims, error)
}

const unauthorizedBody = `{"error":"unauthorized","error_description":"Missing or invalid Authorization header"}`

// RequireAuth validates the bearer token and injects the authenticated
// user and organization into the request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access, missing token",
					"correlation_id", requestcontext.CorrelationID(ctx),
				)
				writeUnauthorized(w)
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access, invalid token",
					"error", err,
					"correlation_id", requestcontext.CorrelationID(ctx),
				)
				writeUnauthorized(w)
				return
			}

			if userID, err := id.ParseUserID(claims.UserID); err == nil {
				ctx = requestcontext.WithUserID(ctx, userID)
			}
			if orgID, err := id.ParseOrganizationID(claims.OrganizationID); err == nil {
				ctx = requestcontext.WithOrganizationID(ctx, orgID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(unauthorizedBody))
}
