// Package service implements the entitlement decision path: resolve the
// user's tier, compare requested capacity or feature access against the
// tier table, and record the outcome as an audit event.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"mintgate/internal/entitlement"
	"mintgate/internal/entitlement/metrics"
	"mintgate/internal/entitlement/ports"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
	"mintgate/pkg/platform/audit"
)

// Type aliases for shared interfaces.
type (
	Store          = ports.UsageStore
	AuditPublisher = ports.AuditPublisher
)

type Service struct {
	store          Store
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("usage store is required")
	}

	svc := &Service{
		store: store,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Check decides whether the user may perform the operation. Quota
// operations compare current + requested against the tier ceiling, with
// Unlimited (-1) always passing; feature operations are a toggle lookup.
// Denials carry a stable code and an upgrade recommendation. The audit
// write is fire-and-forget; it never blocks or fails the decision.
func (s *Service) Check(ctx context.Context, req entitlement.CheckRequest) (*entitlement.Decision, error) {
	if req.UserID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "user_id is required")
	}
	if !req.Operation.IsValid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid operation")
	}

	tier, err := s.store.GetUserTier(ctx, req.UserID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve subscription tier")
	}
	cfg := entitlement.ConfigurationFor(tier)

	var decision *entitlement.Decision
	if ceiling, ok := cfg.Quotas[req.Operation]; ok {
		decision, err = s.checkQuota(ctx, req, cfg, ceiling)
		if err != nil {
			return nil, err
		}
	} else {
		decision = checkFeature(req, cfg)
	}
	decision.PolicyVersion = entitlement.TierTableVersion

	s.record(ctx, req, decision)
	return decision, nil
}

// Tiers returns every tier configuration in ascending lattice order.
func (s *Service) Tiers() []entitlement.TierPolicyConfiguration {
	return entitlement.AllConfigurations()
}

func (s *Service) checkQuota(ctx context.Context, req entitlement.CheckRequest, cfg entitlement.TierPolicyConfiguration, ceiling int) (*entitlement.Decision, error) {
	requested := req.Requested
	if requested <= 0 {
		requested = 1
	}

	current, err := s.store.GetUsage(ctx, req.UserID, req.Operation)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read usage counter")
	}

	decision := &entitlement.Decision{
		SubscriptionTier: cfg.Tier,
		CurrentUsage:     &current,
		MaxAllowed:       &ceiling,
	}

	if ceiling == entitlement.Unlimited || current+requested <= ceiling {
		decision.IsAllowed = true
		return decision, nil
	}

	decision.DenialCode = id.ReasonEntitlementLimitExceeded.String()
	decision.DenialReason = fmt.Sprintf("%s limit reached: %d of %d used, %d requested",
		req.Operation, current, ceiling, requested)
	decision.UpgradeRecommendation = upgradeRecommendation(cfg.Tier)
	return decision, nil
}

func checkFeature(req entitlement.CheckRequest, cfg entitlement.TierPolicyConfiguration) *entitlement.Decision {
	decision := &entitlement.Decision{
		SubscriptionTier: cfg.Tier,
		IsAllowed:        cfg.Features[req.Operation],
	}
	if !decision.IsAllowed {
		decision.DenialCode = id.ReasonFeatureNotIncluded.String()
		decision.DenialReason = fmt.Sprintf("%s is not included in the %s tier", req.Operation, cfg.Tier)
		decision.UpgradeRecommendation = upgradeRecommendation(cfg.Tier)
	}
	return decision
}

// upgradeRecommendation points one tier up the lattice. Enterprise is the
// ceiling; there is nothing to recommend.
func upgradeRecommendation(tier id.SubscriptionTier) string {
	next := tier.Next()
	if next == tier {
		return ""
	}
	return fmt.Sprintf("Upgrade to the %s tier for higher limits", next)
}

func (s *Service) record(ctx context.Context, req entitlement.CheckRequest, decision *entitlement.Decision) {
	event := audit.EventEntitlementAllowed
	outcome := "allowed"
	if !decision.IsAllowed {
		event = audit.EventEntitlementDenied
		outcome = "denied"
	}
	if s.metrics != nil {
		s.metrics.IncrementDecision(req.Operation.String(), outcome)
	}
	ports.LogAudit(ctx, s.logger, s.auditPublisher, string(event),
		"user_id", req.UserID.String(),
		"operation", req.Operation.String(),
		"tier", decision.SubscriptionTier.String(),
		"decision", outcome,
		"denial_code", decision.DenialCode,
		"policy_version", decision.PolicyVersion,
	)
}
