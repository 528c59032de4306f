package handler

import (
	"strings"

	"mintgate/internal/entitlement"
	dErrors "mintgate/pkg/domain-errors"
)

const maxRequested = 1000

// CheckRequest is the HTTP request body for POST /entitlement/check.
type CheckRequest struct {
	Operation string `json:"operation"`
	Requested int    `json:"requested,omitempty"`

	// Parsed values (populated by Validate)
	parsedOperation entitlement.Operation
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CheckRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	if r.Requested < 0 {
		return dErrors.New(dErrors.CodeValidation, "requested must be non-negative")
	}
	if r.Requested > maxRequested {
		return dErrors.Newf(dErrors.CodeValidation, "requested must be at most %d", maxRequested)
	}

	r.Operation = strings.TrimSpace(r.Operation)
	if r.Operation == "" {
		return dErrors.New(dErrors.CodeValidation, "operation is required")
	}
	op := entitlement.Operation(r.Operation)
	if !op.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown operation")
	}
	r.parsedOperation = op

	return nil
}

// ParsedOperation returns the validated operation.
func (r *CheckRequest) ParsedOperation() entitlement.Operation {
	return r.parsedOperation
}
