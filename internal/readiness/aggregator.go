package readiness

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"mintgate/internal/entitlement"
	"mintgate/internal/readiness/metrics"
	"mintgate/internal/risk"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
	audit "mintgate/pkg/platform/audit"
	"mintgate/pkg/requestcontext"
)

//go:generate mockgen -source=aggregator.go -destination=mocks/mocks.go -package=mocks EntitlementChecker,AccountProbe,KycProvider,EvidenceStore

// EntitlementChecker gates the deployment against the user's tier.
type EntitlementChecker interface {
	Check(ctx context.Context, req entitlement.CheckRequest) (*entitlement.Decision, error)
}

// AccountProbe reports the provisioning state of the user's issuing account.
type AccountProbe interface {
	AccountState(ctx context.Context, userID id.UserID) (id.AccountState, error)
}

// KycProvider reports the user's KYC review status.
type KycProvider interface {
	KycStatus(ctx context.Context, userID id.UserID) (id.KycStatus, error)
}

// EvidenceStore persists evaluation snapshots. Append-only.
type EvidenceStore interface {
	Save(ctx context.Context, record EvidenceRecord) error
	Get(ctx context.Context, evaluationID id.EvaluationID) (*EvidenceRecord, error)
	ListByUser(ctx context.Context, userID id.UserID, limit int, from time.Time) ([]EvidenceRecord, error)
}

// AuditPublisher emits audit events for readiness evaluations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const defaultCacheTTL = 30 * time.Second

// Service orchestrates the concurrent category evaluations and assembles
// the aggregate decision.
type Service struct {
	entitlements   EntitlementChecker
	accounts       AccountProbe
	kyc            KycProvider
	evidence       EvidenceStore
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	cache          *resultCache
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

// WithCacheTTL overrides how long an evaluation result is reused before the
// category fan-out runs again.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) { s.cache = newResultCache(ttl) }
}

func New(entitlements EntitlementChecker, accounts AccountProbe, kyc KycProvider, evidence EvidenceStore, opts ...Option) (*Service, error) {
	if entitlements == nil {
		return nil, fmt.Errorf("entitlement checker is required")
	}
	if accounts == nil {
		return nil, fmt.Errorf("account probe is required")
	}
	if kyc == nil {
		return nil, fmt.Errorf("kyc provider is required")
	}
	if evidence == nil {
		return nil, fmt.Errorf("evidence store is required")
	}

	svc := &Service{
		entitlements: entitlements,
		accounts:     accounts,
		kyc:          kyc,
		evidence:     evidence,
		tracer:       noop.NewTracerProvider().Tracer("readiness"),
		cache:        newResultCache(defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// EvaluateReadiness runs the entitlement, account-state, and KYC checks
// concurrently and combines them: a failing entitlement or account check
// blocks, a failing KYC check only warns. Each category failure is
// contained to that category; one broken dependency never aborts the whole
// evaluation. The result is persisted as evidence best-effort before
// returning.
func (s *Service) EvaluateReadiness(ctx context.Context, req EvaluateRequest) (*Response, error) {
	if req.UserID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user_id is required")
	}
	if req.TokenType == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "token_type is required")
	}

	now := requestcontext.Now(ctx)
	key := cacheKey{userID: req.UserID.String(), tokenType: req.TokenType}
	if cached, ok := s.cache.get(key, now); ok {
		if s.metrics != nil {
			s.metrics.IncrementCacheHit()
		}
		return cached, nil
	}

	ctx, span := s.tracer.Start(ctx, "readiness.evaluate")
	defer span.End()
	start := time.Now()

	categories := s.evaluateCategories(ctx, req)

	response := &Response{
		EvaluationID:  id.NewEvaluationID(),
		UserID:        req.UserID,
		Categories:    categories,
		EvaluatedAt:   now,
		CorrelationID: req.CorrelationID,
	}
	enrichWithRiskSignals(categories, req.CorrelationID)
	response.Status, response.CanProceed = deriveStatus(categories)
	response.RemediationTasks = remediationTasks(categories)
	response.Score = ComputeScore(categories)

	s.persistEvidence(ctx, req, response)

	if s.metrics != nil {
		s.metrics.IncrementEvaluation(string(response.Status))
		s.metrics.ObserveEvaluateLatency(time.Since(start))
	}
	s.audit(ctx, req, response)

	s.cache.put(key, response, now)
	return response, nil
}

// GetEvidence returns one persisted evaluation snapshot.
func (s *Service) GetEvidence(ctx context.Context, evaluationID id.EvaluationID) (*EvidenceRecord, error) {
	record, err := s.evidence.Get(ctx, evaluationID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load evidence")
	}
	if record == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "evaluation not found")
	}
	return record, nil
}

// History lists a user's persisted evaluations, newest first.
func (s *Service) History(ctx context.Context, userID id.UserID, limit int, from time.Time) ([]EvidenceRecord, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user_id is required")
	}
	if limit <= 0 {
		limit = 20
	}
	records, err := s.evidence.ListByUser(ctx, userID, limit, from)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list evidence")
	}
	return records, nil
}

// evaluateCategories runs the category checks concurrently. Goroutines
// never return an error to the group: each converts its own failure into a
// category result, so one category's outcome cannot cancel another's
// context mid-flight.
func (s *Service) evaluateCategories(ctx context.Context, req EvaluateRequest) map[Category]CategoryResult {
	var (
		entitlementResult CategoryResult
		accountResult     CategoryResult
		kycResult         CategoryResult
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		entitlementResult = s.checkEntitlement(ctx, req)
		if s.metrics != nil {
			s.metrics.ObserveCategoryLatency(string(CategoryEntitlement), time.Since(start))
		}
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		accountResult = s.checkAccountState(ctx, req)
		if s.metrics != nil {
			s.metrics.ObserveCategoryLatency(string(CategoryAccountState), time.Since(start))
		}
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		kycResult = s.checkKyc(ctx, req)
		if s.metrics != nil {
			s.metrics.ObserveCategoryLatency(string(CategoryKYC), time.Since(start))
		}
		return nil
	})

	// Goroutines return nil unconditionally; Wait only joins.
	_ = g.Wait()

	return map[Category]CategoryResult{
		CategoryEntitlement:  entitlementResult,
		CategoryAccountState: accountResult,
		CategoryKYC:          kycResult,
	}
}

func (s *Service) checkEntitlement(ctx context.Context, req EvaluateRequest) CategoryResult {
	decision, err := s.entitlements.Check(ctx, entitlement.CheckRequest{
		UserID:        req.UserID,
		Operation:     entitlement.OperationDeployToken,
		Requested:     1,
		CorrelationID: req.CorrelationID,
	})
	if err != nil {
		s.categoryFailed(ctx, CategoryEntitlement, req, err)
		return CategoryResult{
			Passed:      false,
			Message:     "entitlement check unavailable",
			ReasonCodes: []string{id.ReasonInternalServerError.String()},
		}
	}

	if !decision.IsAllowed {
		result := CategoryResult{
			Passed:      false,
			Message:     decision.DenialReason,
			ReasonCodes: []string{decision.DenialCode},
			Details: map[string]any{
				"subscription_tier": decision.SubscriptionTier.String(),
			},
		}
		if decision.CurrentUsage != nil {
			result.Details["current_usage"] = *decision.CurrentUsage
		}
		if decision.MaxAllowed != nil {
			result.Details["max_allowed"] = *decision.MaxAllowed
		}
		if decision.UpgradeRecommendation != "" {
			result.Details["upgrade_recommendation"] = decision.UpgradeRecommendation
		}
		return result
	}

	return CategoryResult{
		Passed:  true,
		Message: fmt.Sprintf("deployment allowed on the %s tier", decision.SubscriptionTier),
		Details: map[string]any{
			"subscription_tier": decision.SubscriptionTier.String(),
		},
	}
}

func (s *Service) checkAccountState(ctx context.Context, req EvaluateRequest) CategoryResult {
	state, err := s.accounts.AccountState(ctx, req.UserID)
	if err != nil {
		s.categoryFailed(ctx, CategoryAccountState, req, err)
		return CategoryResult{
			Passed:      false,
			Message:     "account readiness check unavailable",
			ReasonCodes: []string{id.ReasonInternalServerError.String()},
		}
	}

	if state == id.AccountReady {
		return CategoryResult{
			Passed:  true,
			Message: "issuing account is ready",
			Details: map[string]any{"account_state": state.String()},
		}
	}

	return CategoryResult{
		Passed:      false,
		Message:     fmt.Sprintf("issuing account is %s", state),
		ReasonCodes: []string{accountReasonCode(state).String()},
		Details:     map[string]any{"account_state": state.String()},
	}
}

// checkKyc is advisory-only: an evaluation error still yields passed:true,
// because KYC absence must never hard-block by infrastructure accident.
func (s *Service) checkKyc(ctx context.Context, req EvaluateRequest) CategoryResult {
	status, err := s.kyc.KycStatus(ctx, req.UserID)
	if err != nil {
		s.categoryFailed(ctx, CategoryKYC, req, err)
		return CategoryResult{
			Passed:  true,
			Message: "KYC status unavailable; advisory check skipped",
		}
	}

	if status == id.KycApproved {
		return CategoryResult{
			Passed:  true,
			Message: "KYC review approved",
			Details: map[string]any{"kyc_status": status.String()},
		}
	}

	return CategoryResult{
		Passed:      false,
		Message:     fmt.Sprintf("KYC review is %s", status),
		ReasonCodes: []string{id.ReasonKycRequired.String()},
		Details:     map[string]any{"kyc_status": status.String()},
	}
}

func (s *Service) categoryFailed(ctx context.Context, category Category, req EvaluateRequest, err error) {
	if s.logger != nil {
		s.logger.WarnContext(ctx, "category evaluation failed",
			"category", category,
			"user_id", req.UserID,
			"correlation_id", req.CorrelationID,
			"error", err,
		)
	}
	if s.metrics != nil {
		s.metrics.IncrementCategoryFailure(string(category))
	}
}

func accountReasonCode(state id.AccountState) id.ReasonCode {
	switch state {
	case id.AccountInitializing:
		return id.ReasonAccountInitializing
	case id.AccountDegraded:
		return id.ReasonAccountDegraded
	case id.AccountFailed:
		return id.ReasonAccountInitFailed
	default:
		return id.ReasonAccountNotReady
	}
}

// enrichWithRiskSignals classifies each failing category's first reason
// code into a bounded risk signal so consumers get a remediation hint
// without parsing messages.
func enrichWithRiskSignals(categories map[Category]CategoryResult, correlationID string) {
	for category, result := range categories {
		if result.Passed || len(result.ReasonCodes) == 0 {
			continue
		}
		signal := risk.Classify(result.ReasonCodes[0], correlationID)
		if result.Details == nil {
			result.Details = make(map[string]any)
		}
		result.Details["risk_signal"] = signal
		categories[category] = result
	}
}

// deriveStatus applies the blocking-vs-advisory policy: entitlement and
// account-state block, KYC only warns.
func deriveStatus(categories map[Category]CategoryResult) (Status, bool) {
	if !categories[CategoryEntitlement].Passed || !categories[CategoryAccountState].Passed {
		return StatusBlocked, false
	}
	if !categories[CategoryKYC].Passed {
		return StatusWarning, true
	}
	return StatusReady, true
}

var categorySeverities = map[Category]TaskSeverity{
	CategoryEntitlement:  SeverityCritical,
	CategoryAccountState: SeverityHigh,
	CategoryKYC:          SeverityMedium,
}

var categoryOwners = map[Category]string{
	CategoryEntitlement:  "billing",
	CategoryAccountState: "platform",
	CategoryKYC:          "compliance",
}

var categoryActions = map[Category][]string{
	CategoryEntitlement:  {"Review your plan's usage limits", "Upgrade your subscription tier"},
	CategoryAccountState: {"Wait for account provisioning to finish", "Contact support if the state persists"},
	CategoryKYC:          {"Complete identity verification", "Submit outstanding KYC documents"},
}

// remediationTasks builds one task per failing category and sorts them
// descending by severity, then by category for a stable total order.
func remediationTasks(categories map[Category]CategoryResult) []RemediationTask {
	var tasks []RemediationTask
	for category, result := range categories {
		if result.Passed {
			continue
		}
		code := id.ReasonInternalServerError.String()
		if len(result.ReasonCodes) > 0 {
			code = result.ReasonCodes[0]
		}
		tasks = append(tasks, RemediationTask{
			Category: category,
			Code:     code,
			Actions:  categoryActions[category],
			Owner:    categoryOwners[category],
			Severity: categorySeverities[category],
		})
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Severity.Rank() != tasks[j].Severity.Rank() {
			return tasks[i].Severity.Rank() > tasks[j].Severity.Rank()
		}
		return tasks[i].Category < tasks[j].Category
	})
	return tasks
}

// persistEvidence snapshots the evaluation before returning. Best-effort:
// a store failure is logged, never surfaced to the read path.
func (s *Service) persistEvidence(ctx context.Context, req EvaluateRequest, response *Response) {
	requestSnapshot, err := json.Marshal(struct {
		UserID            id.UserID         `json:"user_id"`
		TokenType         string            `json:"token_type"`
		DeploymentContext map[string]string `json:"deployment_context,omitempty"`
	}{req.UserID, req.TokenType, req.DeploymentContext})
	if err == nil {
		var responseSnapshot []byte
		responseSnapshot, err = json.Marshal(response)
		if err == nil {
			err = s.evidence.Save(ctx, EvidenceRecord{
				EvaluationID:     response.EvaluationID,
				UserID:           req.UserID,
				RequestSnapshot:  requestSnapshot,
				ResponseSnapshot: responseSnapshot,
				CorrelationID:    req.CorrelationID,
				CreatedAt:        response.EvaluatedAt,
			})
		}
	}
	if err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to persist evaluation evidence",
			"evaluation_id", response.EvaluationID,
			"user_id", req.UserID,
			"error", err,
		)
	}
}

func (s *Service) audit(ctx context.Context, req EvaluateRequest, response *Response) {
	if s.auditPublisher == nil {
		return
	}
	event := audit.Event{
		Action:        string(audit.EventReadinessEvaluated),
		UserID:        req.UserID,
		Subject:       response.EvaluationID.String(),
		Decision:      string(response.Status),
		CorrelationID: req.CorrelationID,
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}
