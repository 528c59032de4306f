package domain

import dErrors "mintgate/pkg/domain-errors"

// VerificationStatus describes the state of a supplied evidence artifact.
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "verified"
	VerificationPending  VerificationStatus = "pending"
	VerificationRejected VerificationStatus = "rejected"
	VerificationUnknown  VerificationStatus = "unknown"
)

// ParseVerificationStatus constructs a VerificationStatus from external
// input. Unknown values are coerced to VerificationUnknown rather than
// rejected; the rule engine must tolerate statuses added by upstream
// verifiers after this service shipped.
func ParseVerificationStatus(s string) VerificationStatus {
	switch VerificationStatus(s) {
	case VerificationVerified, VerificationPending, VerificationRejected:
		return VerificationStatus(s)
	default:
		return VerificationUnknown
	}
}

// String returns the string representation of the status.
func (s VerificationStatus) String() string {
	return string(s)
}

// KycStatus is the provider-reported state of a user's KYC review.
type KycStatus string

const (
	KycApproved   KycStatus = "approved"
	KycPending    KycStatus = "pending"
	KycRejected   KycStatus = "rejected"
	KycNotStarted KycStatus = "not_started"
)

// ParseKycStatus constructs a KycStatus from external input.
func ParseKycStatus(s string) (KycStatus, error) {
	switch KycStatus(s) {
	case KycApproved, KycPending, KycRejected, KycNotStarted:
		return KycStatus(s), nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "invalid kyc status")
}

// String returns the string representation of the status.
func (s KycStatus) String() string {
	return string(s)
}

// AccountState is the provisioning state of an organization's issuing
// account as reported by the account-readiness probe.
type AccountState string

const (
	AccountReady          AccountState = "ready"
	AccountNotInitialized AccountState = "not_initialized"
	AccountInitializing   AccountState = "initializing"
	AccountDegraded       AccountState = "degraded"
	AccountFailed         AccountState = "failed"
)

// IsValid checks if the state is one of the supported enum values.
func (s AccountState) IsValid() bool {
	switch s {
	case AccountReady, AccountNotInitialized, AccountInitializing, AccountDegraded, AccountFailed:
		return true
	}
	return false
}

// String returns the string representation of the state.
func (s AccountState) String() string {
	return string(s)
}
