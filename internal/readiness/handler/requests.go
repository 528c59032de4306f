package handler

import (
	"strings"

	dErrors "mintgate/pkg/domain-errors"
)

var supportedTokenTypes = map[string]bool{
	"erc20":   true,
	"erc721":  true,
	"erc1155": true,
}

// EvaluateRequest is the HTTP request body for POST /readiness/evaluate.
type EvaluateRequest struct {
	TokenType         string            `json:"token_type"`
	DeploymentContext map[string]string `json:"deployment_context,omitempty"`
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.TokenType = strings.ToLower(strings.TrimSpace(r.TokenType))
	if r.TokenType == "" {
		return dErrors.New(dErrors.CodeValidation, "token_type is required")
	}
	if !supportedTokenTypes[r.TokenType] {
		return dErrors.New(dErrors.CodeValidation, "unsupported token_type")
	}

	if len(r.DeploymentContext) > 20 {
		return dErrors.New(dErrors.CodeValidation, "deployment_context has too many entries")
	}

	return nil
}
