// Package usage provides usage-counter stores backing entitlement checks.
package usage

import (
	"context"
	"sync"

	"mintgate/internal/entitlement"
	id "mintgate/pkg/domain"
)

type usageKey struct {
	userID    id.UserID
	operation entitlement.Operation
}

// InMemoryUsageStore holds tiers and counters in process memory. Used by
// tests and single-instance deployments without Redis.
type InMemoryUsageStore struct {
	mu       sync.RWMutex
	tiers    map[id.UserID]id.SubscriptionTier
	counters map[usageKey]int
}

func NewInMemory() *InMemoryUsageStore {
	return &InMemoryUsageStore{
		tiers:    make(map[id.UserID]id.SubscriptionTier),
		counters: make(map[usageKey]int),
	}
}

func (s *InMemoryUsageStore) GetUserTier(_ context.Context, userID id.UserID) (id.SubscriptionTier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if tier, exists := s.tiers[userID]; exists {
		return tier, nil
	}
	return id.TierFree, nil
}

// SetUserTier assigns a tier. Test and admin helper.
func (s *InMemoryUsageStore) SetUserTier(_ context.Context, userID id.UserID, tier id.SubscriptionTier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiers[userID] = tier
}

func (s *InMemoryUsageStore) GetUsage(_ context.Context, userID id.UserID, op entitlement.Operation) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[usageKey{userID: userID, operation: op}], nil
}

func (s *InMemoryUsageStore) RecordUsage(_ context.Context, userID id.UserID, op entitlement.Operation, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := usageKey{userID: userID, operation: op}
	s.counters[key] += delta
	return s.counters[key], nil
}
