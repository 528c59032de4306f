package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mintgate/internal/policy"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
	"mintgate/pkg/platform/httputil"
	"mintgate/pkg/requestcontext"
)

// Service defines the interface for policy operations.
type Service interface {
	Evaluate(ctx context.Context, ec policy.EvaluationContext) (*policy.EvaluationResult, error)
	Rules(ctx context.Context, step id.OnboardingStep) ([]policy.Rule, string, error)
	Stats() *policy.Stats
}

// Handler wires policy endpoints to the policy engine.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a policy handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts policy endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/policy/evaluate", h.HandleEvaluate)
	r.Get("/policy/rules/{step}", h.HandleRules)
	r.Get("/policy/stats", h.HandleStats)
}

// HandleEvaluate handles POST /policy/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	correlationID := requestcontext.CorrelationID(ctx)
	start := time.Now()

	// Require an authenticated organization
	orgID := requestcontext.OrganizationID(ctx)
	if orgID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	// Decode and validate request
	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, correlationID)
	if !ok {
		return
	}

	// Call engine
	result, err := h.service.Evaluate(ctx, policy.EvaluationContext{
		Step:           req.ParsedStep(),
		OrganizationID: orgID,
		Evidence:       req.ParsedEvidence(),
		CorrelationID:  correlationID,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "policy evaluation failed",
			"correlation_id", correlationID,
			"organization_id", orgID,
			"step", req.Step,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "policy evaluated",
		"correlation_id", correlationID,
		"organization_id", orgID,
		"step", req.Step,
		"outcome", result.Outcome,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleRules handles GET /policy/rules/{step} requests.
func (h *Handler) HandleRules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	step, err := id.ParseOnboardingStep(chi.URLParam(r, "step"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rules, version, err := h.service.Rules(ctx, step)
	if err != nil {
		h.logger.ErrorContext(ctx, "rule listing failed",
			"step", step,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRules(step.String(), version, rules))
}

// HandleStats handles GET /policy/stats requests.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromSnapshot(h.service.Stats().Snapshot()))
}
