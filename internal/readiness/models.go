// Package readiness aggregates independent category checks into one
// decision: may this user deploy, why not, and what must be fixed first.
// Categories are evaluated concurrently and combined under a
// blocking-vs-advisory policy; the scorer then turns the category results
// into a weighted confidence score.
package readiness

import (
	"encoding/json"
	"time"

	id "mintgate/pkg/domain"
)

// Status is the overall readiness outcome.
type Status string

const (
	StatusReady   Status = "ready"
	StatusWarning Status = "warning"
	StatusBlocked Status = "blocked"
)

// Category is one independent readiness check. Every category returns the
// same result shape so aggregation and scoring treat them uniformly.
type Category string

const (
	CategoryEntitlement  Category = "entitlement"
	CategoryAccountState Category = "account_state"
	CategoryKYC          Category = "kyc_aml"
	CategoryCompliance   Category = "compliance"
	CategoryIntegration  Category = "integration"
)

// CategoryResult is the uniform outcome of one category evaluation.
type CategoryResult struct {
	Passed      bool           `json:"passed"`
	Message     string         `json:"message"`
	ReasonCodes []string       `json:"reason_codes,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// TaskSeverity orders remediation tasks; the caller shows the top issue
// first.
type TaskSeverity string

const (
	SeverityCritical TaskSeverity = "critical"
	SeverityHigh     TaskSeverity = "high"
	SeverityMedium   TaskSeverity = "medium"
)

var taskSeverityRank = map[TaskSeverity]int{
	SeverityMedium:   0,
	SeverityHigh:     1,
	SeverityCritical: 2,
}

// Rank returns the severity's position, Medium being 0.
func (s TaskSeverity) Rank() int {
	return taskSeverityRank[s]
}

// RemediationTask is one actionable fix for a failing category. One task
// per category, not per rule.
type RemediationTask struct {
	Category Category     `json:"category"`
	Code     string       `json:"code"`
	Actions  []string     `json:"actions"`
	Owner    string       `json:"owner"`
	Severity TaskSeverity `json:"severity"`
}

// EvaluateRequest is the input to one readiness evaluation.
type EvaluateRequest struct {
	UserID            id.UserID
	TokenType         string
	CorrelationID     string
	DeploymentContext map[string]string
}

// Response is the aggregate readiness decision returned to the caller.
type Response struct {
	EvaluationID     id.EvaluationID             `json:"evaluation_id"`
	UserID           id.UserID                   `json:"user_id"`
	Status           Status                      `json:"status"`
	CanProceed       bool                        `json:"can_proceed"`
	Categories       map[Category]CategoryResult `json:"categories"`
	RemediationTasks []RemediationTask           `json:"remediation_tasks,omitempty"`
	Score            *Score                      `json:"score"`
	EvaluatedAt      time.Time                   `json:"evaluated_at"`
	CorrelationID    string                      `json:"correlation_id,omitempty"`
}

// EvidenceRecord is the immutable persisted snapshot of one evaluation.
// Append-only; evaluations are compliance evidence and are never updated.
type EvidenceRecord struct {
	EvaluationID     id.EvaluationID `json:"evaluation_id"`
	UserID           id.UserID       `json:"user_id"`
	RequestSnapshot  json.RawMessage `json:"request_snapshot"`
	ResponseSnapshot json.RawMessage `json:"response_snapshot"`
	CorrelationID    string          `json:"correlation_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}
