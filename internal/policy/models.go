// Package policy evaluates declarative onboarding rules against supplied
// evidence. Evaluation is deterministic and idempotent: identical rules and
// evidence always produce identical results, since outputs are used as
// compliance evidence.
package policy

import (
	"time"

	id "mintgate/pkg/domain"
)

// Severity ranks a rule's weight in the decision table.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// severityRank is the single source of truth for severity ordering.
var severityRank = map[Severity]int{
	SeverityInfo:     0,
	SeverityWarning:  1,
	SeverityError:    2,
	SeverityCritical: 3,
}

// Rank returns the severity's position, Info being 0. Unknown severities
// rank highest so a corrupt rule fails closed.
func (s Severity) Rank() int {
	if rank, ok := severityRank[s]; ok {
		return rank
	}
	return len(severityRank)
}

// Outcome is the overall decision for one evaluation.
type Outcome string

const (
	OutcomeApproved             Outcome = "approved"
	OutcomeRejected             Outcome = "rejected"
	OutcomeConditionalApproval  Outcome = "conditional_approval"
	OutcomeRequiresManualReview Outcome = "requires_manual_review"
)

// Evidence is a typed, verifiable artifact the caller supplies to justify a
// decision. Immutable for the duration of one evaluation.
type Evidence struct {
	EvidenceType       string                `json:"evidence_type"`
	ReferenceID        string                `json:"reference_id"`
	VerificationStatus id.VerificationStatus `json:"verification_status"`
}

// Rule is one declarative policy rule, scoped by onboarding step.
// A rule is active iff IsActive and the evaluation time falls inside
// [EffectiveFrom, EffectiveTo).
type Rule struct {
	RuleID                    id.RuleID
	Step                      id.OnboardingStep
	Category                  string
	Severity                  Severity
	IsRequired                bool
	IsActive                  bool
	RequiredEvidenceTypes     []string
	PassMessage               string
	FailMessage               string
	RemediationActions        []string
	EstimatedRemediationHours int
	EffectiveFrom             time.Time
	EffectiveTo               *time.Time
}

// ActiveAt reports whether the rule applies at the given instant.
func (r Rule) ActiveAt(now time.Time) bool {
	if !r.IsActive {
		return false
	}
	if now.Before(r.EffectiveFrom) {
		return false
	}
	if r.EffectiveTo != nil && !r.EffectiveTo.After(now) {
		return false
	}
	return true
}

// RuleEvaluation is the result of one rule against one evidence set.
type RuleEvaluation struct {
	RuleID      id.RuleID `json:"rule_id"`
	Passed      bool      `json:"passed"`
	Severity    Severity  `json:"severity"`
	IsRequired  bool      `json:"is_required"`
	Message     string    `json:"message"`
	EvidenceIDs []string  `json:"evidence_ids,omitempty"`
}

// EvaluationContext is the input to one policy evaluation.
type EvaluationContext struct {
	Step           id.OnboardingStep
	OrganizationID id.OrganizationID
	Evidence       []Evidence
	CorrelationID  string
}

// EvaluationResult is the decision object returned to the caller. Outcome
// is a pure function of the rule evaluations; nothing else feeds it.
type EvaluationResult struct {
	Outcome                 Outcome          `json:"outcome"`
	Reason                  string           `json:"reason"`
	RequiredActions         []string         `json:"required_actions,omitempty"`
	RuleEvaluations         []RuleEvaluation `json:"rule_evaluations"`
	EstimatedResolutionTime string           `json:"estimated_resolution_time,omitempty"`
	PolicyVersion           string           `json:"policy_version"`
	EvaluatedAt             time.Time        `json:"evaluated_at"`
}
