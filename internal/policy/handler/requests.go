package handler

import (
	"strings"

	"mintgate/internal/policy"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
)

const maxEvidenceItems = 50

// EvaluateRequest is the HTTP request body for POST /policy/evaluate.
type EvaluateRequest struct {
	Step     string            `json:"step"`
	Evidence []EvidenceRequest `json:"evidence"`

	// Parsed values (populated by Validate)
	parsedStep     id.OnboardingStep
	parsedEvidence []policy.Evidence
}

// EvidenceRequest is one evidence artifact in the request body.
type EvidenceRequest struct {
	EvidenceType       string `json:"evidence_type"`
	ReferenceID        string `json:"reference_id"`
	VerificationStatus string `json:"verification_status"`
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	// Size validation (fail fast)
	if len(r.Evidence) > maxEvidenceItems {
		return dErrors.Newf(dErrors.CodeValidation, "at most %d evidence items allowed", maxEvidenceItems)
	}

	// Required fields
	r.Step = strings.TrimSpace(r.Step)
	if r.Step == "" {
		return dErrors.New(dErrors.CodeValidation, "step is required")
	}
	step, err := id.ParseOnboardingStep(r.Step)
	if err != nil {
		return err
	}
	r.parsedStep = step

	r.parsedEvidence = make([]policy.Evidence, 0, len(r.Evidence))
	for i, e := range r.Evidence {
		e.EvidenceType = strings.TrimSpace(e.EvidenceType)
		if e.EvidenceType == "" {
			return dErrors.Newf(dErrors.CodeValidation, "evidence[%d].evidence_type is required", i)
		}
		e.ReferenceID = strings.TrimSpace(e.ReferenceID)
		if e.ReferenceID == "" {
			return dErrors.Newf(dErrors.CodeValidation, "evidence[%d].reference_id is required", i)
		}
		r.parsedEvidence = append(r.parsedEvidence, policy.Evidence{
			EvidenceType:       e.EvidenceType,
			ReferenceID:        e.ReferenceID,
			VerificationStatus: id.ParseVerificationStatus(e.VerificationStatus),
		})
	}

	return nil
}

// ParsedStep returns the validated onboarding step.
func (r *EvaluateRequest) ParsedStep() id.OnboardingStep {
	return r.parsedStep
}

// ParsedEvidence returns the validated evidence list.
func (r *EvaluateRequest) ParsedEvidence() []policy.Evidence {
	return r.parsedEvidence
}
