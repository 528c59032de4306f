package catalog

import (
	"time"

	"mintgate/internal/policy"
	id "mintgate/pkg/domain"
)

// DefaultVersion identifies the built-in rule table. Bump when the seed
// rules change so downstream consumers can detect policy drift.
const DefaultVersion = "policy-2026.08"

// SeedRules is the default onboarding rule table used when no catalog
// database is configured.
func SeedRules() []policy.Rule {
	effectiveFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	return []policy.Rule{
		{
			RuleID:                    "identity-government-id",
			Step:                      id.StepIdentityVerification,
			Category:                  "identity",
			Severity:                  policy.SeverityCritical,
			IsRequired:                true,
			IsActive:                  true,
			RequiredEvidenceTypes:     []string{"government_id"},
			PassMessage:               "Government identity document verified",
			FailMessage:               "Government identity document missing or unverified",
			RemediationActions:        []string{"Upload a government-issued identity document", "Complete identity verification with the provider"},
			EstimatedRemediationHours: 24,
			EffectiveFrom:             effectiveFrom,
		},
		{
			RuleID:                    "identity-proof-of-address",
			Step:                      id.StepIdentityVerification,
			Category:                  "identity",
			Severity:                  policy.SeverityWarning,
			IsRequired:                false,
			IsActive:                  true,
			RequiredEvidenceTypes:     []string{"proof_of_address"},
			PassMessage:               "Proof of address verified",
			FailMessage:               "Proof of address missing or unverified",
			RemediationActions:        []string{"Upload a recent utility bill or bank statement"},
			EstimatedRemediationHours: 48,
			EffectiveFrom:             effectiveFrom,
		},
		{
			RuleID:                    "kyc-screening-report",
			Step:                      id.StepKYCVerification,
			Category:                  "kyc",
			Severity:                  policy.SeverityCritical,
			IsRequired:                true,
			IsActive:                  true,
			RequiredEvidenceTypes:     []string{"kyc_report"},
			PassMessage:               "KYC screening report verified",
			FailMessage:               "KYC screening report missing or unverified",
			RemediationActions:        []string{"Complete KYC screening with an approved provider"},
			EstimatedRemediationHours: 72,
			EffectiveFrom:             effectiveFrom,
		},
		{
			RuleID:                    "compliance-legal-opinion",
			Step:                      id.StepComplianceReview,
			Category:                  "compliance",
			Severity:                  policy.SeverityError,
			IsRequired:                true,
			IsActive:                  true,
			RequiredEvidenceTypes:     []string{"legal_opinion"},
			PassMessage:               "Legal opinion on token classification verified",
			FailMessage:               "Legal opinion on token classification missing or unverified",
			RemediationActions:        []string{"Obtain a legal opinion covering the token's regulatory classification"},
			EstimatedRemediationHours: 336,
			EffectiveFrom:             effectiveFrom,
		},
		{
			RuleID:                    "terms-acceptance-signed",
			Step:                      id.StepTermsAcceptance,
			Category:                  "legal",
			Severity:                  policy.SeverityError,
			IsRequired:                true,
			IsActive:                  true,
			RequiredEvidenceTypes:     []string{"signed_terms"},
			PassMessage:               "Platform terms accepted",
			FailMessage:               "Platform terms not yet accepted",
			RemediationActions:        []string{"Review and sign the platform terms of service"},
			EstimatedRemediationHours: 1,
			EffectiveFrom:             effectiveFrom,
		},
		{
			RuleID:                    "final-compliance-attestation",
			Step:                      id.StepFinalApproval,
			Category:                  "compliance",
			Severity:                  policy.SeverityCritical,
			IsRequired:                true,
			IsActive:                  true,
			RequiredEvidenceTypes:     []string{"compliance_attestation", "kyc_report"},
			PassMessage:               "Final compliance attestation verified",
			FailMessage:               "Final compliance attestation incomplete",
			RemediationActions:        []string{"Submit the signed compliance attestation", "Ensure the KYC report is current"},
			EstimatedRemediationHours: 120,
			EffectiveFrom:             effectiveFrom,
		},
	}
}
