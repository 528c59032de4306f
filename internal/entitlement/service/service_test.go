package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"mintgate/internal/entitlement"
	usageStore "mintgate/internal/entitlement/store/usage"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
	"mintgate/pkg/platform/audit"
)

// =============================================================================
// Entitlement Service Test Suite
// =============================================================================
// The quota comparison, the unlimited sentinel, and the upgrade
// recommendation generator are tier-table behavior best pinned here rather
// than through full readiness evaluations.

type EntitlementServiceSuite struct {
	suite.Suite
	store   *usageStore.InMemoryUsageStore
	service *Service
	userID  id.UserID
}

func TestEntitlementServiceSuite(t *testing.T) {
	suite.Run(t, new(EntitlementServiceSuite))
}

func (s *EntitlementServiceSuite) SetupTest() {
	s.store = usageStore.NewInMemory()
	s.userID = id.NewUserID()

	var err error
	s.service, err = New(s.store)
	s.Require().NoError(err)
}

func (s *EntitlementServiceSuite) check(op entitlement.Operation, requested int) *entitlement.Decision {
	decision, err := s.service.Check(context.Background(), entitlement.CheckRequest{
		UserID:    s.userID,
		Operation: op,
		Requested: requested,
	})
	s.Require().NoError(err)
	return decision
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *EntitlementServiceSuite) TestNew() {
	s.Run("nil store returns error", func() {
		_, err := New(nil)
		s.Error(err)
		s.Contains(err.Error(), "usage store is required")
	})
}

// =============================================================================
// Quota Tests
// =============================================================================

func (s *EntitlementServiceSuite) TestCheck_Quota() {
	ctx := context.Background()

	// Each subtest starts from a clean usage ledger.
	s.Run("free tier fourth deployment is denied with upgrade recommendation", func() {
		s.userID = id.NewUserID()
		_, err := s.store.RecordUsage(ctx, s.userID, entitlement.OperationDeployToken, 3)
		s.Require().NoError(err)

		decision := s.check(entitlement.OperationDeployToken, 1)
		s.False(decision.IsAllowed)
		s.Equal(id.TierFree, decision.SubscriptionTier)
		s.Equal("ENTITLEMENT_LIMIT_EXCEEDED", decision.DenialCode)
		s.Equal(3, *decision.CurrentUsage)
		s.Equal(3, *decision.MaxAllowed)
		s.Contains(decision.UpgradeRecommendation, "basic")
	})

	s.Run("deployment under the ceiling is allowed", func() {
		s.userID = id.NewUserID()
		decision := s.check(entitlement.OperationDeployToken, 1)
		s.True(decision.IsAllowed)
		s.Empty(decision.DenialCode)
	})

	s.Run("requested batch counts against the ceiling", func() {
		s.userID = id.NewUserID()
		decision := s.check(entitlement.OperationDeployToken, 4)
		s.False(decision.IsAllowed)
	})

	s.Run("zero requested defaults to one", func() {
		s.userID = id.NewUserID()
		_, err := s.store.RecordUsage(ctx, s.userID, entitlement.OperationCreateDraft, 1)
		s.Require().NoError(err)

		decision := s.check(entitlement.OperationCreateDraft, 0)
		s.False(decision.IsAllowed, "free tier allows a single concurrent draft")
	})

	s.Run("unlimited ceiling always passes", func() {
		s.userID = id.NewUserID()
		s.store.SetUserTier(ctx, s.userID, id.TierEnterprise)
		_, err := s.store.RecordUsage(ctx, s.userID, entitlement.OperationDeployToken, 100000)
		s.Require().NoError(err)

		decision := s.check(entitlement.OperationDeployToken, 1)
		s.True(decision.IsAllowed)
		s.Equal(entitlement.Unlimited, *decision.MaxAllowed)
	})
}

// =============================================================================
// Feature Toggle Tests
// =============================================================================

func (s *EntitlementServiceSuite) TestCheck_Features() {
	ctx := context.Background()

	s.Run("feature missing from tier is denied", func() {
		decision := s.check(entitlement.OperationAdvancedAnalytics, 0)
		s.False(decision.IsAllowed)
		s.Equal("FEATURE_NOT_INCLUDED", decision.DenialCode)
		s.Contains(decision.UpgradeRecommendation, "basic")
	})

	s.Run("feature included in tier is allowed", func() {
		s.store.SetUserTier(ctx, s.userID, id.TierBasic)
		decision := s.check(entitlement.OperationAdvancedAnalytics, 0)
		s.True(decision.IsAllowed)
		s.Empty(decision.DenialCode)
	})

	s.Run("enterprise has nothing to recommend", func() {
		s.Empty(upgradeRecommendation(id.TierEnterprise))
		s.Contains(upgradeRecommendation(id.TierPremium), "enterprise")
	})
}

// =============================================================================
// Policy Version Tests
// =============================================================================

type capturePublisher struct {
	events []audit.Event
}

func (p *capturePublisher) Emit(_ context.Context, event audit.Event) error {
	p.events = append(p.events, event)
	return nil
}

func (s *EntitlementServiceSuite) TestCheck_PolicyVersion() {
	publisher := &capturePublisher{}
	svc, err := New(s.store, WithAuditPublisher(publisher))
	s.Require().NoError(err)

	s.Run("quota decision carries the tier table version", func() {
		decision, err := svc.Check(context.Background(), entitlement.CheckRequest{
			UserID:    s.userID,
			Operation: entitlement.OperationDeployToken,
			Requested: 1,
		})
		s.Require().NoError(err)
		s.Equal(entitlement.TierTableVersion, decision.PolicyVersion)
	})

	s.Run("feature decision carries the tier table version", func() {
		decision, err := svc.Check(context.Background(), entitlement.CheckRequest{
			UserID:    s.userID,
			Operation: entitlement.OperationAdvancedAnalytics,
		})
		s.Require().NoError(err)
		s.Equal(entitlement.TierTableVersion, decision.PolicyVersion)
	})

	s.Run("audit events carry the tier table version", func() {
		s.Require().NotEmpty(publisher.events)
		for _, event := range publisher.events {
			s.Equal(entitlement.TierTableVersion, event.PolicyVersion)
		}
	})
}

// =============================================================================
// Determinism and Validation Tests
// =============================================================================

func (s *EntitlementServiceSuite) TestCheck_Determinism() {
	first := s.check(entitlement.OperationDeployToken, 1)
	for range 5 {
		s.Equal(first, s.check(entitlement.OperationDeployToken, 1))
	}
}

func (s *EntitlementServiceSuite) TestCheck_Validation() {
	ctx := context.Background()

	s.Run("nil user id", func() {
		_, err := s.service.Check(ctx, entitlement.CheckRequest{Operation: entitlement.OperationDeployToken})
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("unknown operation", func() {
		_, err := s.service.Check(ctx, entitlement.CheckRequest{UserID: s.userID, Operation: "teleport"})
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}
