package testutil

import (
	"net/http"
	"time"

	id "mintgate/pkg/domain"
	"mintgate/pkg/requestcontext"
)

// WithUserID adds a user ID to the request context.
// This simulates what the auth middleware would do for authenticated requests.
// If the userID is not a valid UUID, it will not be added to the context.
func WithUserID(req *http.Request, userID string) *http.Request {
	if parsed, err := id.ParseUserID(userID); err == nil {
		return req.WithContext(requestcontext.WithUserID(req.Context(), parsed))
	}
	return req
}

// WithOrganizationID adds an organization ID to the request context.
// If the orgID is not a valid UUID, it will not be added to the context.
func WithOrganizationID(req *http.Request, orgID string) *http.Request {
	if parsed, err := id.ParseOrganizationID(orgID); err == nil {
		return req.WithContext(requestcontext.WithOrganizationID(req.Context(), parsed))
	}
	return req
}

// WithAuth adds both user ID and organization ID to the request context.
// This is the typical state for an authenticated request.
// Invalid IDs are silently ignored.
func WithAuth(req *http.Request, userID, orgID string) *http.Request {
	ctx := req.Context()
	if userID != "" {
		if parsed, err := id.ParseUserID(userID); err == nil {
			ctx = requestcontext.WithUserID(ctx, parsed)
		}
	}
	if orgID != "" {
		if parsed, err := id.ParseOrganizationID(orgID); err == nil {
			ctx = requestcontext.WithOrganizationID(ctx, parsed)
		}
	}
	return req.WithContext(ctx)
}

// WithCorrelationID adds a correlation ID to the request context.
func WithCorrelationID(req *http.Request, correlationID string) *http.Request {
	return req.WithContext(requestcontext.WithCorrelationID(req.Context(), correlationID))
}

// WithFrozenTime pins the request's evaluation time for deterministic tests.
func WithFrozenTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
