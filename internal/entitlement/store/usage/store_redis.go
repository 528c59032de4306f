package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mintgate/internal/entitlement"
	id "mintgate/pkg/domain"
)

// usageTTL keeps counter keys around past the billing month so late reads
// during rollover still resolve, then lets Redis reclaim them.
const usageTTL = 40 * 24 * time.Hour

// RedisUsageStore keeps tiers and monthly usage counters in Redis so
// counters survive restarts and are shared across instances.
type RedisUsageStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisUsageStore {
	return &RedisUsageStore{client: client}
}

func tierKey(userID id.UserID) string {
	return fmt.Sprintf("entitlement:tier:%s", userID)
}

// counterKey scopes counters to the current billing month; rollover happens
// implicitly when the month changes.
func counterKey(userID id.UserID, op entitlement.Operation, now time.Time) string {
	return fmt.Sprintf("entitlement:usage:%s:%s:%s", userID, op, now.UTC().Format("2006-01"))
}

func (s *RedisUsageStore) GetUserTier(ctx context.Context, userID id.UserID) (id.SubscriptionTier, error) {
	val, err := s.client.Get(ctx, tierKey(userID)).Result()
	if err == redis.Nil {
		return id.TierFree, nil
	}
	if err != nil {
		return "", fmt.Errorf("get tier: %w", err)
	}
	tier, err := id.ParseSubscriptionTier(val)
	if err != nil {
		// A corrupt tier value must not grant capacity.
		return id.TierFree, nil
	}
	return tier, nil
}

// SetUserTier assigns a tier. Admin helper; plan changes come from billing.
func (s *RedisUsageStore) SetUserTier(ctx context.Context, userID id.UserID, tier id.SubscriptionTier) error {
	if err := s.client.Set(ctx, tierKey(userID), tier.String(), 0).Err(); err != nil {
		return fmt.Errorf("set tier: %w", err)
	}
	return nil
}

func (s *RedisUsageStore) GetUsage(ctx context.Context, userID id.UserID, op entitlement.Operation) (int, error) {
	count, err := s.client.Get(ctx, counterKey(userID, op, time.Now())).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get usage counter: %w", err)
	}
	return count, nil
}

func (s *RedisUsageStore) RecordUsage(ctx context.Context, userID id.UserID, op entitlement.Operation, delta int) (int, error) {
	key := counterKey(userID, op, time.Now())
	pipe := s.client.TxPipeline()
	incr := pipe.IncrBy(ctx, key, int64(delta))
	pipe.Expire(ctx, key, usageTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("increment usage counter: %w", err)
	}
	return int(incr.Val()), nil
}
