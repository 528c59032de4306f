package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"mintgate/pkg/requestcontext"
)

// CorrelationHeader is the inbound/outbound correlation id header.
const CorrelationHeader = "X-Correlation-Id"

// Correlation propagates the caller's correlation id, generating one when
// absent, and echoes it on the response so clients can tie decisions to
// their audit trail.
func Correlation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(CorrelationHeader)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}

		ctx := requestcontext.WithCorrelationID(r.Context(), correlationID)
		w.Header().Set(CorrelationHeader, correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
