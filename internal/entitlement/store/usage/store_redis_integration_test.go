//go:build integration

package usage_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"mintgate/internal/entitlement"
	"mintgate/internal/entitlement/store/usage"
	id "mintgate/pkg/domain"
	"mintgate/pkg/testutil/containers"
)

type RedisUsageSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *usage.RedisUsageStore
}

func TestRedisUsageSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisUsageSuite))
}

func (s *RedisUsageSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = usage.NewRedis(s.redis.Client)
}

func (s *RedisUsageSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisUsageSuite) TestUnknownUserDefaultsToFreeTier() {
	tier, err := s.store.GetUserTier(context.Background(), id.UserID(uuid.New()))
	s.Require().NoError(err)
	s.Equal(id.TierFree, tier)
}

func (s *RedisUsageSuite) TestTierRoundTrip() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	s.Require().NoError(s.store.SetUserTier(ctx, userID, id.TierPremium))

	tier, err := s.store.GetUserTier(ctx, userID)
	s.Require().NoError(err)
	s.Equal(id.TierPremium, tier)
}

func (s *RedisUsageSuite) TestCorruptTierFallsBackToFree() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	err := s.redis.Client.Set(ctx, "entitlement:tier:"+userID.String(), "platinum", 0).Err()
	s.Require().NoError(err)

	tier, err := s.store.GetUserTier(ctx, userID)
	s.Require().NoError(err)
	s.Equal(id.TierFree, tier, "a corrupt tier must not grant capacity")
}

func (s *RedisUsageSuite) TestUsageCounterIncrements() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	count, err := s.store.GetUsage(ctx, userID, entitlement.OperationDeployToken)
	s.Require().NoError(err)
	s.Zero(count)

	total, err := s.store.RecordUsage(ctx, userID, entitlement.OperationDeployToken, 1)
	s.Require().NoError(err)
	s.Equal(1, total)

	total, err = s.store.RecordUsage(ctx, userID, entitlement.OperationDeployToken, 2)
	s.Require().NoError(err)
	s.Equal(3, total)

	count, err = s.store.GetUsage(ctx, userID, entitlement.OperationDeployToken)
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *RedisUsageSuite) TestCountersAreScopedPerOperation() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	_, err := s.store.RecordUsage(ctx, userID, entitlement.OperationDeployToken, 2)
	s.Require().NoError(err)

	drafts, err := s.store.GetUsage(ctx, userID, entitlement.OperationCreateDraft)
	s.Require().NoError(err)
	s.Zero(drafts, "operations must not share counters")
}

// TestConcurrentIncrements verifies INCRBY keeps the counter exact under
// concurrent recorders, which is the whole point of moving usage off the
// in-memory store.
func (s *RedisUsageSuite) TestConcurrentIncrements() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	const goroutines = 50

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.RecordUsage(ctx, userID, entitlement.OperationAddWhitelistAddr, 1)
			s.NoError(err)
		}()
	}
	wg.Wait()

	count, err := s.store.GetUsage(ctx, userID, entitlement.OperationAddWhitelistAddr)
	s.Require().NoError(err)
	s.Equal(goroutines, count)
}
