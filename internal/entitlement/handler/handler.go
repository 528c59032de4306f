package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mintgate/internal/entitlement"
	dErrors "mintgate/pkg/domain-errors"
	"mintgate/pkg/platform/httputil"
	"mintgate/pkg/requestcontext"
)

// Service defines the interface for entitlement operations.
type Service interface {
	Check(ctx context.Context, req entitlement.CheckRequest) (*entitlement.Decision, error)
	Tiers() []entitlement.TierPolicyConfiguration
}

// Handler wires entitlement endpoints to the entitlement service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an entitlement handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts entitlement endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/entitlement/check", h.HandleCheck)
	r.Get("/entitlement/tiers", h.HandleTiers)
}

// HandleCheck handles POST /entitlement/check requests.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	correlationID := requestcontext.CorrelationID(ctx)
	start := time.Now()

	// Require authenticated user
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	// Decode and validate request
	req, ok := httputil.DecodeAndPrepare[CheckRequest](w, r, h.logger, ctx, correlationID)
	if !ok {
		return
	}

	// Call service
	decision, err := h.service.Check(ctx, entitlement.CheckRequest{
		UserID:        userID,
		Operation:     req.ParsedOperation(),
		Requested:     req.Requested,
		CorrelationID: correlationID,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "entitlement check failed",
			"correlation_id", correlationID,
			"user_id", userID,
			"operation", req.Operation,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "entitlement checked",
		"correlation_id", correlationID,
		"user_id", userID,
		"operation", req.Operation,
		"allowed", decision.IsAllowed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, decision)
}

// HandleTiers handles GET /entitlement/tiers requests.
func (h *Handler) HandleTiers(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromConfigurations(h.service.Tiers()))
}
