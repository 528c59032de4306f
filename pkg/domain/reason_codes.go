package domain

// ReasonCode is the bounded vocabulary of machine-readable decision codes
// exposed to consumers. These strings are contractual: internal error types
// and messages must never leak in their place, and new codes are additive.
type ReasonCode string

const (
	ReasonEntitlementLimitExceeded ReasonCode = "ENTITLEMENT_LIMIT_EXCEEDED"
	ReasonFeatureNotIncluded       ReasonCode = "FEATURE_NOT_INCLUDED"
	ReasonAccountNotReady          ReasonCode = "ACCOUNT_NOT_READY"
	ReasonAccountInitializing      ReasonCode = "ACCOUNT_INITIALIZING"
	ReasonAccountDegraded          ReasonCode = "ACCOUNT_DEGRADED"
	ReasonAccountInitFailed        ReasonCode = "ACCOUNT_INITIALIZATION_FAILED"
	ReasonKycRequired              ReasonCode = "KYC_REQUIRED"
	ReasonInternalServerError      ReasonCode = "INTERNAL_SERVER_ERROR"
	ReasonMissingRequiredField     ReasonCode = "MISSING_REQUIRED_FIELD"
	ReasonInvalidRequest           ReasonCode = "INVALID_REQUEST"
	ReasonNotFound                 ReasonCode = "NOT_FOUND"
)

// String returns the string representation of the code.
func (c ReasonCode) String() string {
	return string(c)
}
