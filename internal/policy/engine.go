package policy

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
	audit "mintgate/pkg/platform/audit"
	pstrings "mintgate/pkg/platform/strings"
	"mintgate/pkg/requestcontext"

	"mintgate/internal/policy/metrics"
)

// Catalog supplies the rule set. Implementations load rules once and hold
// them as read-only state; Version changes only when the rule table does.
type Catalog interface {
	// ActiveRules returns the rules for a step whose activity window
	// contains now. Order is unspecified; evaluation is order-independent.
	ActiveRules(ctx context.Context, step id.OnboardingStep, now time.Time) ([]Rule, error)

	// Version is the opaque policy version identifier returned with every
	// evaluation result.
	Version() string
}

// AuditPublisher emits audit events for evaluations.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Predicate is the per-rule extension point. The default predicate only
// checks evidence presence and verification; bespoke rules register their
// own logic here instead of growing switch arms in the engine.
//
// A predicate returns pass/fail plus an optional message overriding the
// rule's configured one. Errors and panics are converted into a failed
// evaluation for that rule alone.
type Predicate func(ctx context.Context, rule Rule, evidence []Evidence) (bool, string, error)

// Service evaluates policy rules for an onboarding step.
type Service struct {
	catalog        Catalog
	predicates     map[id.RuleID]Predicate
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	stats          *Stats
}

// Option configures the Service.
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

// WithPredicate registers bespoke evaluation logic for one rule.
func WithPredicate(ruleID id.RuleID, predicate Predicate) Option {
	return func(s *Service) { s.predicates[ruleID] = predicate }
}

func New(catalog Catalog, opts ...Option) (*Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("rule catalog is required")
	}
	svc := &Service{
		catalog:    catalog,
		predicates: make(map[id.RuleID]Predicate),
		stats:      NewStats(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Stats returns the service's running evaluation counters.
func (s *Service) Stats() *Stats {
	return s.stats
}

// Rules returns the rules currently active for a step along with the
// catalog version they came from.
func (s *Service) Rules(ctx context.Context, step id.OnboardingStep) ([]Rule, string, error) {
	if !step.IsValid() {
		return nil, "", dErrors.New(dErrors.CodeBadRequest, "invalid onboarding step")
	}
	rules, err := s.catalog.ActiveRules(ctx, step, requestcontext.Now(ctx))
	if err != nil {
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load rule catalog")
	}
	return rules, s.catalog.Version(), nil
}

// Evaluate runs every active rule for the step against the supplied
// evidence and derives the overall outcome from the decision table:
// any failed required rule rejects; otherwise any other failure downgrades
// to conditional approval; otherwise approved. An empty rule set yields
// manual review - absence of policy never silently approves.
func (s *Service) Evaluate(ctx context.Context, ec EvaluationContext) (*EvaluationResult, error) {
	if ec.OrganizationID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "organization_id is required")
	}
	if !ec.Step.IsValid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid onboarding step")
	}

	start := time.Now()
	now := requestcontext.Now(ctx)

	rules, err := s.catalog.ActiveRules(ctx, ec.Step, now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load rule catalog")
	}

	result := &EvaluationResult{
		PolicyVersion: s.catalog.Version(),
		EvaluatedAt:   now,
	}

	if len(rules) == 0 {
		result.Outcome = OutcomeRequiresManualReview
		result.Reason = fmt.Sprintf("no rules configured for step %s", ec.Step)
		s.finish(ctx, ec, result, start)
		return result, nil
	}

	evaluations := make([]RuleEvaluation, 0, len(rules))
	var failed []Rule
	for _, rule := range rules {
		evaluation := s.evaluateRule(ctx, rule, ec.Evidence)
		evaluations = append(evaluations, evaluation)
		if !evaluation.Passed {
			failed = append(failed, rule)
			s.stats.RecordRuleFailure(rule.RuleID)
		}
	}
	result.RuleEvaluations = evaluations

	// Partition on the evaluation, not the catalog rule: predicate errors
	// and panics upgrade the evaluation's severity to error, and that
	// upgraded severity must drive the outcome.
	var failedRequired, advisory int
	for _, evaluation := range evaluations {
		if evaluation.Passed {
			continue
		}
		if evaluation.IsRequired && evaluation.Severity.Rank() >= SeverityError.Rank() {
			failedRequired++
		} else {
			advisory++
		}
	}

	switch {
	case failedRequired > 0:
		result.Outcome = OutcomeRejected
		result.Reason = fmt.Sprintf("%d required rule(s) failed", failedRequired)
	case advisory > 0:
		result.Outcome = OutcomeConditionalApproval
		result.Reason = fmt.Sprintf("%d advisory rule(s) failed", advisory)
	default:
		result.Outcome = OutcomeApproved
		result.Reason = "all rules passed"
	}

	if len(failed) > 0 {
		result.RequiredActions = aggregateActions(failed)
		result.EstimatedResolutionTime = bucketResolutionTime(maxRemediationHours(failed))
	}

	s.finish(ctx, ec, result, start)
	return result, nil
}

// evaluateRule applies one rule, recovering from predicate panics so a
// single bad rule cannot abort the whole evaluation.
func (s *Service) evaluateRule(ctx context.Context, rule Rule, evidence []Evidence) (evaluation RuleEvaluation) {
	evaluation = RuleEvaluation{
		RuleID:     rule.RuleID,
		Severity:   rule.Severity,
		IsRequired: rule.IsRequired,
	}

	defer func() {
		if r := recover(); r != nil {
			if s.logger != nil {
				s.logger.ErrorContext(ctx, "rule evaluation panicked",
					"rule_id", rule.RuleID,
					"panic", r,
				)
			}
			evaluation.Passed = false
			evaluation.Severity = SeverityError
			evaluation.Message = "rule evaluation failed"
		}
	}()

	missing := missingEvidence(rule, evidence)
	if len(missing) > 0 {
		evaluation.Passed = false
		evaluation.Message = fmt.Sprintf("%s: missing verified evidence: %s",
			rule.FailMessage, strings.Join(missing, ", "))
		return evaluation
	}

	if predicate, ok := s.predicates[rule.RuleID]; ok {
		passed, message, err := predicate(ctx, rule, evidence)
		if err != nil {
			if s.logger != nil {
				s.logger.WarnContext(ctx, "rule predicate failed",
					"rule_id", rule.RuleID,
					"error", err,
				)
			}
			evaluation.Passed = false
			evaluation.Severity = SeverityError
			evaluation.Message = "rule evaluation failed"
			return evaluation
		}
		evaluation.Passed = passed
		evaluation.Message = message
		if message == "" {
			evaluation.Message = ruleMessage(rule, passed)
		}
	} else {
		evaluation.Passed = true
		evaluation.Message = rule.PassMessage
	}

	evaluation.EvidenceIDs = matchedEvidenceIDs(rule, evidence)
	return evaluation
}

// missingEvidence is the set difference between the rule's required types
// and the types present with verified status.
func missingEvidence(rule Rule, evidence []Evidence) []string {
	verified := make(map[string]bool, len(evidence))
	for _, e := range evidence {
		if e.VerificationStatus == id.VerificationVerified {
			verified[e.EvidenceType] = true
		}
	}
	var missing []string
	for _, required := range rule.RequiredEvidenceTypes {
		if !verified[required] {
			missing = append(missing, required)
		}
	}
	sort.Strings(missing)
	return missing
}

func matchedEvidenceIDs(rule Rule, evidence []Evidence) []string {
	required := make(map[string]bool, len(rule.RequiredEvidenceTypes))
	for _, t := range rule.RequiredEvidenceTypes {
		required[t] = true
	}
	var ids []string
	for _, e := range evidence {
		if required[e.EvidenceType] {
			ids = append(ids, e.ReferenceID)
		}
	}
	return ids
}

func ruleMessage(rule Rule, passed bool) string {
	if passed {
		return rule.PassMessage
	}
	return rule.FailMessage
}

// aggregateActions returns the de-duplicated union of the failing rules'
// remediation actions, preserving rule order.
func aggregateActions(failed []Rule) []string {
	var actions []string
	for _, rule := range failed {
		actions = append(actions, rule.RemediationActions...)
	}
	return pstrings.DedupeAndTrim(actions)
}

func maxRemediationHours(failed []Rule) int {
	maxHours := 0
	for _, rule := range failed {
		if rule.EstimatedRemediationHours > maxHours {
			maxHours = rule.EstimatedRemediationHours
		}
	}
	return maxHours
}

// bucketResolutionTime renders hours into a coarse human estimate so the
// result never implies more precision than the rule data carries.
func bucketResolutionTime(hours int) string {
	switch {
	case hours <= 0:
		return ""
	case hours <= 24:
		return fmt.Sprintf("%d hours", hours)
	case hours <= 168:
		days := (hours + 23) / 24
		return fmt.Sprintf("%d days", days)
	default:
		weeks := (hours + 167) / 168
		return fmt.Sprintf("%d weeks", weeks)
	}
}

func (s *Service) finish(ctx context.Context, ec EvaluationContext, result *EvaluationResult, start time.Time) {
	elapsed := time.Since(start)
	s.stats.RecordEvaluation(result.Outcome, elapsed)
	if s.metrics != nil {
		s.metrics.IncrementOutcome(string(result.Outcome), ec.Step.String())
		s.metrics.ObserveEvaluateLatency(elapsed)
	}
	if s.auditPublisher != nil {
		event := audit.Event{
			Action:        string(audit.EventPolicyEvaluated),
			Subject:       ec.OrganizationID.String(),
			Decision:      string(result.Outcome),
			Reason:        result.Reason,
			PolicyVersion: result.PolicyVersion,
			CorrelationID: ec.CorrelationID,
		}
		if err := s.auditPublisher.Emit(ctx, event); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "failed to emit audit event",
				"action", event.Action,
				"error", err,
			)
		}
	}
}
