package handler

import (
	"mintgate/internal/entitlement"
)

// TiersResponse is the HTTP response for GET /entitlement/tiers.
type TiersResponse struct {
	Tiers []TierResponse `json:"tiers"`
}

// TierResponse is one tier's ceilings and feature toggles, rendered for
// pricing and plan-comparison UIs.
type TierResponse struct {
	Tier     string          `json:"tier"`
	Quotas   map[string]int  `json:"quotas"`
	Features map[string]bool `json:"features"`
}

// FromConfigurations converts the tier table to an HTTP response.
func FromConfigurations(configs []entitlement.TierPolicyConfiguration) *TiersResponse {
	resp := &TiersResponse{Tiers: make([]TierResponse, 0, len(configs))}
	for _, cfg := range configs {
		tier := TierResponse{
			Tier:     cfg.Tier.String(),
			Quotas:   make(map[string]int, len(cfg.Quotas)),
			Features: make(map[string]bool, len(cfg.Features)),
		}
		for op, ceiling := range cfg.Quotas {
			tier.Quotas[op.String()] = ceiling
		}
		for op, enabled := range cfg.Features {
			tier.Features[op.String()] = enabled
		}
		resp.Tiers = append(resp.Tiers, tier)
	}
	return resp
}
