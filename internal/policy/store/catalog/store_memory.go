// Package catalog provides rule catalog stores. The catalog is loaded once
// at engine start and held as process-wide read-only state; no runtime
// mutation, so reads need no lock.
package catalog

import (
	"context"
	"time"

	"mintgate/internal/policy"
	id "mintgate/pkg/domain"
)

// InMemoryCatalog holds a fixed rule table, indexed by step at
// construction time.
type InMemoryCatalog struct {
	version string
	byStep  map[id.OnboardingStep][]policy.Rule
}

// NewInMemoryCatalog indexes the given rules by step.
func NewInMemoryCatalog(version string, rules []policy.Rule) *InMemoryCatalog {
	byStep := make(map[id.OnboardingStep][]policy.Rule)
	for _, rule := range rules {
		byStep[rule.Step] = append(byStep[rule.Step], rule)
	}
	return &InMemoryCatalog{version: version, byStep: byStep}
}

// ActiveRules returns the rules for a step whose activity window contains now.
func (c *InMemoryCatalog) ActiveRules(_ context.Context, step id.OnboardingStep, now time.Time) ([]policy.Rule, error) {
	var active []policy.Rule
	for _, rule := range c.byStep[step] {
		if rule.ActiveAt(now) {
			active = append(active, rule)
		}
	}
	return active, nil
}

// Version returns the catalog's opaque policy version.
func (c *InMemoryCatalog) Version() string {
	return c.version
}
