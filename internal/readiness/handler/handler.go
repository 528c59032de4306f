package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"mintgate/internal/readiness"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
	"mintgate/pkg/platform/httputil"
	"mintgate/pkg/requestcontext"
)

// Service defines the interface for readiness operations.
type Service interface {
	EvaluateReadiness(ctx context.Context, req readiness.EvaluateRequest) (*readiness.Response, error)
	GetEvidence(ctx context.Context, evaluationID id.EvaluationID) (*readiness.EvidenceRecord, error)
	History(ctx context.Context, userID id.UserID, limit int, from time.Time) ([]readiness.EvidenceRecord, error)
}

// Handler wires readiness endpoints to the aggregator.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a readiness handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts readiness endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/readiness/evaluate", h.HandleEvaluate)
	r.Get("/readiness/evidence/{id}", h.HandleGetEvidence)
	r.Get("/readiness/history", h.HandleHistory)
}

// HandleEvaluate handles POST /readiness/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
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
	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, correlationID)
	if !ok {
		return
	}

	// Call aggregator
	response, err := h.service.EvaluateReadiness(ctx, readiness.EvaluateRequest{
		UserID:            userID,
		TokenType:         req.TokenType,
		CorrelationID:     correlationID,
		DeploymentContext: req.DeploymentContext,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "readiness evaluation failed",
			"correlation_id", correlationID,
			"user_id", userID,
			"token_type", req.TokenType,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "readiness evaluated",
		"correlation_id", correlationID,
		"user_id", userID,
		"token_type", req.TokenType,
		"status", response.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, response)
}

// HandleGetEvidence handles GET /readiness/evidence/{id} requests.
func (h *Handler) HandleGetEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	evaluationID, err := id.ParseEvaluationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.GetEvidence(ctx, evaluationID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "evidence lookup failed",
				"evaluation_id", evaluationID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, record)
}

// HandleHistory handles GET /readiness/history requests. Results are scoped
// to the authenticated user.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}

	var from time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "from must be RFC 3339"))
			return
		}
		from = parsed
	}

	records, err := h.service.History(ctx, userID, limit, from)
	if err != nil {
		h.logger.ErrorContext(ctx, "evidence history failed",
			"user_id", userID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if records == nil {
		records = []readiness.EvidenceRecord{}
	}

	httputil.WriteJSON(w, http.StatusOK, records)
}
