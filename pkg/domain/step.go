package domain

import dErrors "mintgate/pkg/domain-errors"

// OnboardingStep is an enumerated stage of the issuer onboarding process.
// Policy rules are scoped by step; an evaluation only considers rules for
// the step being decided.
type OnboardingStep string

const (
	StepIdentityVerification OnboardingStep = "identity_verification"
	StepKYCVerification      OnboardingStep = "kyc_verification"
	StepComplianceReview     OnboardingStep = "compliance_review"
	StepTermsAcceptance      OnboardingStep = "terms_acceptance"
	StepFinalApproval        OnboardingStep = "final_approval"
)

var validSteps = map[OnboardingStep]bool{
	StepIdentityVerification: true,
	StepKYCVerification:      true,
	StepComplianceReview:     true,
	StepTermsAcceptance:      true,
	StepFinalApproval:        true,
}

// ParseOnboardingStep constructs an OnboardingStep from external input.
func ParseOnboardingStep(s string) (OnboardingStep, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "step cannot be empty")
	}
	step := OnboardingStep(s)
	if !step.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid onboarding step")
	}
	return step, nil
}

// IsValid checks if the step is one of the supported enum values.
func (s OnboardingStep) IsValid() bool {
	return validSteps[s]
}

// String returns the string representation of the step.
func (s OnboardingStep) String() string {
	return string(s)
}
