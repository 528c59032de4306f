package entitlement

import (
	id "mintgate/pkg/domain"
)

// TierTableVersion identifies the tier table below. Bump whenever a
// ceiling or feature toggle changes so audit records stay attributable
// to the configuration that produced them.
const TierTableVersion = "tiers-2026.08"

// tierConfigurations is the process-wide tier table, read-only after init.
// Each tier's ceilings and toggles must be a superset of the tier below;
// TestTierLatticeMonotonic pins that invariant.
var tierConfigurations = map[id.SubscriptionTier]TierPolicyConfiguration{
	id.TierFree: {
		Tier: id.TierFree,
		Quotas: map[Operation]int{
			OperationDeployToken:      3,
			OperationCreateDraft:      1,
			OperationAddWhitelistAddr: 10,
		},
		Features: map[Operation]bool{
			OperationTestnetDeploy:     true,
			OperationAdvancedAnalytics: false,
			OperationCustomBranding:    false,
			OperationDedicatedSupport:  false,
		},
	},
	id.TierBasic: {
		Tier: id.TierBasic,
		Quotas: map[Operation]int{
			OperationDeployToken:      10,
			OperationCreateDraft:      5,
			OperationAddWhitelistAddr: 100,
		},
		Features: map[Operation]bool{
			OperationTestnetDeploy:     true,
			OperationAdvancedAnalytics: true,
			OperationCustomBranding:    false,
			OperationDedicatedSupport:  false,
		},
	},
	id.TierPremium: {
		Tier: id.TierPremium,
		Quotas: map[Operation]int{
			OperationDeployToken:      50,
			OperationCreateDraft:      20,
			OperationAddWhitelistAddr: 1000,
		},
		Features: map[Operation]bool{
			OperationTestnetDeploy:     true,
			OperationAdvancedAnalytics: true,
			OperationCustomBranding:    true,
			OperationDedicatedSupport:  false,
		},
	},
	id.TierEnterprise: {
		Tier: id.TierEnterprise,
		Quotas: map[Operation]int{
			OperationDeployToken:      Unlimited,
			OperationCreateDraft:      Unlimited,
			OperationAddWhitelistAddr: Unlimited,
		},
		Features: map[Operation]bool{
			OperationTestnetDeploy:     true,
			OperationAdvancedAnalytics: true,
			OperationCustomBranding:    true,
			OperationDedicatedSupport:  true,
		},
	},
}

// ConfigurationFor resolves a tier's policy configuration. Unknown tiers
// fall back to Free so a corrupt tier value never grants extra capacity.
func ConfigurationFor(tier id.SubscriptionTier) TierPolicyConfiguration {
	if cfg, ok := tierConfigurations[tier]; ok {
		return cfg
	}
	return tierConfigurations[id.TierFree]
}

// AllConfigurations lists tier configurations in ascending lattice order.
func AllConfigurations() []TierPolicyConfiguration {
	tiers := id.AllTiers()
	configs := make([]TierPolicyConfiguration, 0, len(tiers))
	for _, tier := range tiers {
		configs = append(configs, tierConfigurations[tier])
	}
	return configs
}
