package domain

import dErrors "mintgate/pkg/domain-errors"

// SubscriptionTier is the commercial tier of an organization's plan.
// Invariant: tiers form a strict lattice (Free < Basic < Premium <
// Enterprise); every ceiling and feature toggle of a tier is a superset of
// the tier below it.
type SubscriptionTier string

const (
	TierFree       SubscriptionTier = "free"
	TierBasic      SubscriptionTier = "basic"
	TierPremium    SubscriptionTier = "premium"
	TierEnterprise SubscriptionTier = "enterprise"
)

// tierRank is the single source of truth for lattice ordering.
var tierRank = map[SubscriptionTier]int{
	TierFree:       0,
	TierBasic:      1,
	TierPremium:    2,
	TierEnterprise: 3,
}

// ParseSubscriptionTier constructs a SubscriptionTier from external input.
func ParseSubscriptionTier(s string) (SubscriptionTier, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "tier cannot be empty")
	}
	t := SubscriptionTier(s)
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid tier")
	}
	return t, nil
}

// IsValid checks if the tier is one of the supported enum values.
func (t SubscriptionTier) IsValid() bool {
	_, ok := tierRank[t]
	return ok
}

// Rank returns the tier's position in the lattice, Free being 0.
// Unknown tiers rank below Free so comparisons fail closed.
func (t SubscriptionTier) Rank() int {
	if rank, ok := tierRank[t]; ok {
		return rank
	}
	return -1
}

// Next returns the tier one step up the lattice. Enterprise returns itself;
// there is nothing to upgrade to.
func (t SubscriptionTier) Next() SubscriptionTier {
	switch t {
	case TierFree:
		return TierBasic
	case TierBasic:
		return TierPremium
	case TierPremium:
		return TierEnterprise
	default:
		return TierEnterprise
	}
}

// AllTiers lists tiers in ascending lattice order.
func AllTiers() []SubscriptionTier {
	return []SubscriptionTier{TierFree, TierBasic, TierPremium, TierEnterprise}
}

// String returns the string representation of the tier.
func (t SubscriptionTier) String() string {
	return string(t)
}
