// Package entitlement maps subscription tiers to usage ceilings and feature
// toggles and gates requested operations against current usage. The tier
// table is loaded once and read-only; decisions are deterministic for a
// fixed (tier table, usage) pair.
package entitlement

import (
	id "mintgate/pkg/domain"
)

// Unlimited is the ceiling sentinel meaning no quota applies.
const Unlimited = -1

// Operation is a gated action. Quota operations consume a numeric ceiling;
// feature operations are boolean toggles.
type Operation string

const (
	// Quota operations
	OperationDeployToken      Operation = "token_deployment"
	OperationCreateDraft      Operation = "draft_creation"
	OperationAddWhitelistAddr Operation = "whitelist_entry"

	// Feature operations
	OperationTestnetDeploy     Operation = "testnet_deployment"
	OperationAdvancedAnalytics Operation = "advanced_analytics"
	OperationCustomBranding    Operation = "custom_branding"
	OperationDedicatedSupport  Operation = "dedicated_support"
)

var validOperations = map[Operation]bool{
	OperationDeployToken:       true,
	OperationCreateDraft:       true,
	OperationAddWhitelistAddr:  true,
	OperationTestnetDeploy:     true,
	OperationAdvancedAnalytics: true,
	OperationCustomBranding:    true,
	OperationDedicatedSupport:  true,
}

// IsValid checks if the operation is one of the supported enum values.
func (o Operation) IsValid() bool {
	return validOperations[o]
}

// String returns the string representation of the operation.
func (o Operation) String() string {
	return string(o)
}

// TierPolicyConfiguration is one tier's ceilings and feature toggles.
// Ceilings use Unlimited (-1) to mean no quota. Tiers form a strict
// lattice: a higher tier's ceilings and toggles are a superset of every
// tier below it.
type TierPolicyConfiguration struct {
	Tier     id.SubscriptionTier
	Quotas   map[Operation]int
	Features map[Operation]bool
}

// CheckRequest is the input to one entitlement decision.
type CheckRequest struct {
	UserID        id.UserID
	Operation     Operation
	Requested     int
	CorrelationID string
}

// Decision is the outcome of one entitlement check. CurrentUsage and
// MaxAllowed are only set for quota operations.
type Decision struct {
	IsAllowed             bool                `json:"is_allowed"`
	SubscriptionTier      id.SubscriptionTier `json:"subscription_tier"`
	CurrentUsage          *int                `json:"current_usage,omitempty"`
	MaxAllowed            *int                `json:"max_allowed,omitempty"`
	DenialReason          string              `json:"denial_reason,omitempty"`
	DenialCode            string              `json:"denial_code,omitempty"`
	UpgradeRecommendation string              `json:"upgrade_recommendation,omitempty"`
	PolicyVersion         string              `json:"policy_version"`
}
