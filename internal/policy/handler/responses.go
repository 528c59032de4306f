package handler

import (
	"time"

	"mintgate/internal/policy"
)

// EvaluateResponse is the HTTP response for POST /policy/evaluate.
type EvaluateResponse struct {
	Outcome                 string                   `json:"outcome"`
	Reason                  string                   `json:"reason"`
	RequiredActions         []string                 `json:"required_actions,omitempty"`
	RuleEvaluations         []RuleEvaluationResponse `json:"rule_evaluations"`
	EstimatedResolutionTime string                   `json:"estimated_resolution_time,omitempty"`
	PolicyVersion           string                   `json:"policy_version"`
	EvaluatedAt             time.Time                `json:"evaluated_at"`
}

// RuleEvaluationResponse is one rule's result within the response.
type RuleEvaluationResponse struct {
	RuleID      string   `json:"rule_id"`
	Passed      bool     `json:"passed"`
	Severity    string   `json:"severity"`
	IsRequired  bool     `json:"is_required"`
	Message     string   `json:"message"`
	EvidenceIDs []string `json:"evidence_ids,omitempty"`
}

// FromResult converts a domain EvaluationResult to an HTTP response.
func FromResult(result *policy.EvaluationResult) *EvaluateResponse {
	evaluations := make([]RuleEvaluationResponse, 0, len(result.RuleEvaluations))
	for _, re := range result.RuleEvaluations {
		evaluations = append(evaluations, RuleEvaluationResponse{
			RuleID:      string(re.RuleID),
			Passed:      re.Passed,
			Severity:    string(re.Severity),
			IsRequired:  re.IsRequired,
			Message:     re.Message,
			EvidenceIDs: re.EvidenceIDs,
		})
	}
	return &EvaluateResponse{
		Outcome:                 string(result.Outcome),
		Reason:                  result.Reason,
		RequiredActions:         result.RequiredActions,
		RuleEvaluations:         evaluations,
		EstimatedResolutionTime: result.EstimatedResolutionTime,
		PolicyVersion:           result.PolicyVersion,
		EvaluatedAt:             result.EvaluatedAt,
	}
}

// RulesResponse is the HTTP response for GET /policy/rules/{step}.
type RulesResponse struct {
	Step          string         `json:"step"`
	PolicyVersion string         `json:"policy_version"`
	Rules         []RuleResponse `json:"rules"`
}

// RuleResponse is one catalog rule. Remediation guidance is included so
// callers can surface requirements before submitting evidence.
type RuleResponse struct {
	RuleID                string   `json:"rule_id"`
	Category              string   `json:"category"`
	Severity              string   `json:"severity"`
	IsRequired            bool     `json:"is_required"`
	RequiredEvidenceTypes []string `json:"required_evidence_types"`
	RemediationActions    []string `json:"remediation_actions,omitempty"`
}

// FromRules converts catalog rules to an HTTP response.
func FromRules(step string, version string, rules []policy.Rule) *RulesResponse {
	out := make([]RuleResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, RuleResponse{
			RuleID:                string(rule.RuleID),
			Category:              rule.Category,
			Severity:              string(rule.Severity),
			IsRequired:            rule.IsRequired,
			RequiredEvidenceTypes: rule.RequiredEvidenceTypes,
			RemediationActions:    rule.RemediationActions,
		})
	}
	return &RulesResponse{Step: step, PolicyVersion: version, Rules: out}
}

// StatsResponse is the HTTP response for GET /policy/stats.
type StatsResponse struct {
	TotalEvaluations int64            `json:"total_evaluations"`
	AverageLatencyMS float64          `json:"average_latency_ms"`
	OutcomeCounts    map[string]int64 `json:"outcome_counts"`
	RuleFailures     map[string]int64 `json:"rule_failures"`
}

// FromSnapshot converts a stats snapshot to an HTTP response.
func FromSnapshot(snap policy.Snapshot) *StatsResponse {
	resp := &StatsResponse{
		TotalEvaluations: snap.TotalEvaluations,
		AverageLatencyMS: snap.AverageLatencyMS,
		OutcomeCounts:    make(map[string]int64, len(snap.OutcomeCounts)),
		RuleFailures:     make(map[string]int64, len(snap.RuleFailures)),
	}
	for outcome, count := range snap.OutcomeCounts {
		resp.OutcomeCounts[string(outcome)] = count
	}
	for ruleID, count := range snap.RuleFailures {
		resp.RuleFailures[string(ruleID)] = count
	}
	return resp
}
