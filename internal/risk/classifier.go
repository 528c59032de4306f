// Package risk turns opaque error codes into bounded, actionable risk
// signals. This is pure domain logic - no I/O, no side effects - so it can
// be called from any request path without ceremony.
package risk

import "strings"

// Category is the bounded set of risk categories a signal can carry.
type Category string

const (
	CategoryNone           Category = "None"
	CategoryAuthorization  Category = "AuthorizationRisk"
	CategoryEntitlement    Category = "EntitlementRisk"
	CategoryCompliance     Category = "ComplianceRisk"
	CategoryAccount        Category = "AccountRisk"
	CategoryValidation     Category = "ValidationRisk"
	CategoryInfrastructure Category = "InfrastructureRisk"
)

// Severity ranks how urgently a signal needs attention.
type Severity string

const (
	SeverityInfo     Severity = "Info"
	SeverityWarning  Severity = "Warning"
	SeverityError    Severity = "Error"
	SeverityCritical Severity = "Critical"
)

// Confidence states how certain the classification is.
type Confidence string

const (
	ConfidenceDefinitive Confidence = "Definitive"
	ConfidenceHigh       Confidence = "High"
	ConfidenceLow        Confidence = "Low"
)

// Signal is the classification result for one error code.
type Signal struct {
	Category        Category   `json:"category"`
	Severity        Severity   `json:"severity"`
	Confidence      Confidence `json:"confidence"`
	SignalCode      string     `json:"signal_code"`
	RemediationHint string     `json:"remediation_hint,omitempty"`
	CorrelationID   string     `json:"correlation_id,omitempty"`
}

// tableEntry maps an error-code prefix to its classification.
type tableEntry struct {
	prefix   string
	category Category
	severity Severity
	hint     string
}

// classificationTable is scanned in order and the first matching prefix
// wins, so more specific prefixes must precede general ones. Matching is
// case-insensitive on the code's start.
var classificationTable = []tableEntry{
	{"ACCOUNT_INITIALIZATION_FAILED", CategoryAccount, SeverityCritical, "Re-run account provisioning or contact support"},
	{"ACCOUNT_DEGRADED", CategoryAccount, SeverityError, "Check account health and restore degraded components"},
	{"ACCOUNT_INITIALIZING", CategoryAccount, SeverityWarning, "Wait for account provisioning to complete"},
	{"ACCOUNT", CategoryAccount, SeverityError, "Complete account setup before retrying"},
	{"ENTITLEMENT_LIMIT_EXCEEDED", CategoryEntitlement, SeverityWarning, "Upgrade the subscription tier or reduce usage"},
	{"ENTITLEMENT", CategoryEntitlement, SeverityWarning, "Review subscription entitlements"},
	{"FEATURE_NOT_INCLUDED", CategoryEntitlement, SeverityInfo, "Upgrade to a tier that includes this feature"},
	{"KYC", CategoryCompliance, SeverityWarning, "Complete KYC verification"},
	{"COMPLIANCE", CategoryCompliance, SeverityError, "Resolve outstanding compliance findings"},
	{"SANCTIONS", CategoryCompliance, SeverityCritical, "Escalate to the compliance team"},
	{"UNAUTHORIZED", CategoryAuthorization, SeverityError, "Re-authenticate and verify token scopes"},
	{"FORBIDDEN", CategoryAuthorization, SeverityError, "Request access from an organization administrator"},
	{"MISSING_REQUIRED_FIELD", CategoryValidation, SeverityWarning, "Supply the missing request fields"},
	{"INVALID", CategoryValidation, SeverityWarning, "Correct the request payload and retry"},
	{"NOT_FOUND", CategoryValidation, SeverityInfo, "Verify the referenced resource exists"},
	{"INTERNAL", CategoryInfrastructure, SeverityError, "Retry; escalate with the correlation id if it persists"},
	{"TIMEOUT", CategoryInfrastructure, SeverityWarning, "Retry with backoff"},
}

// Classify maps an error code to a bounded risk signal.
//
// An empty code is a definitive non-signal. An unrecognized code falls back
// to a low-confidence infrastructure warning so codes added upstream after
// this table shipped still get a safe, non-silent classification.
func Classify(errorCode, correlationID string) Signal {
	if errorCode == "" {
		return Signal{
			Category:      CategoryNone,
			Severity:      SeverityInfo,
			Confidence:    ConfidenceDefinitive,
			CorrelationID: correlationID,
		}
	}

	upper := strings.ToUpper(errorCode)
	for _, entry := range classificationTable {
		if strings.HasPrefix(upper, entry.prefix) {
			return Signal{
				Category:        entry.category,
				Severity:        entry.severity,
				Confidence:      ConfidenceHigh,
				SignalCode:      errorCode,
				RemediationHint: entry.hint,
				CorrelationID:   correlationID,
			}
		}
	}

	return Signal{
		Category:        CategoryInfrastructure,
		Severity:        SeverityWarning,
		Confidence:      ConfidenceLow,
		SignalCode:      errorCode,
		RemediationHint: "Unclassified error; inspect logs with the correlation id",
		CorrelationID:   correlationID,
	}
}
