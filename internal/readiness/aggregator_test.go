package readiness_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"mintgate/internal/entitlement"
	"mintgate/internal/readiness"
	"mintgate/internal/readiness/mocks"
	id "mintgate/pkg/domain"
	dErrors "mintgate/pkg/domain-errors"
)

// =============================================================================
// Readiness Aggregator Test Suite
// =============================================================================
// The blocking-vs-advisory policy, category isolation, and remediation
// ordering are the aggregator's contract; mocks let each category's
// dependency fail independently.

type AggregatorSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	entitlements *mocks.MockEntitlementChecker
	accounts     *mocks.MockAccountProbe
	kyc          *mocks.MockKycProvider
	evidence     *mocks.MockEvidenceStore
	service      *readiness.Service
	userID       id.UserID
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorSuite))
}

func (s *AggregatorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.entitlements = mocks.NewMockEntitlementChecker(s.ctrl)
	s.accounts = mocks.NewMockAccountProbe(s.ctrl)
	s.kyc = mocks.NewMockKycProvider(s.ctrl)
	s.evidence = mocks.NewMockEvidenceStore(s.ctrl)
	s.userID = id.NewUserID()

	var err error
	s.service, err = readiness.New(s.entitlements, s.accounts, s.kyc, s.evidence)
	s.Require().NoError(err)
}

func (s *AggregatorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func allowedDecision() *entitlement.Decision {
	return &entitlement.Decision{IsAllowed: true, SubscriptionTier: id.TierBasic}
}

func deniedDecision() *entitlement.Decision {
	return &entitlement.Decision{
		IsAllowed:        false,
		SubscriptionTier: id.TierFree,
		DenialCode:       id.ReasonEntitlementLimitExceeded.String(),
		DenialReason:     "token_deployment limit reached",
	}
}

func (s *AggregatorSuite) expectDefaults() {
	s.entitlements.EXPECT().Check(gomock.Any(), gomock.Any()).Return(allowedDecision(), nil).AnyTimes()
	s.accounts.EXPECT().AccountState(gomock.Any(), s.userID).Return(id.AccountReady, nil).AnyTimes()
	s.kyc.EXPECT().KycStatus(gomock.Any(), s.userID).Return(id.KycApproved, nil).AnyTimes()
	s.evidence.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (s *AggregatorSuite) evaluate() *readiness.Response {
	response, err := s.service.EvaluateReadiness(context.Background(), readiness.EvaluateRequest{
		UserID:    s.userID,
		TokenType: "erc20",
	})
	s.Require().NoError(err)
	return response
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *AggregatorSuite) TestNew() {
	s.Run("nil dependencies return errors", func() {
		_, err := readiness.New(nil, s.accounts, s.kyc, s.evidence)
		s.Error(err)
		_, err = readiness.New(s.entitlements, nil, s.kyc, s.evidence)
		s.Error(err)
		_, err = readiness.New(s.entitlements, s.accounts, nil, s.evidence)
		s.Error(err)
		_, err = readiness.New(s.entitlements, s.accounts, s.kyc, nil)
		s.Error(err)
	})
}

// =============================================================================
// Status Derivation Tests
// =============================================================================

func (s *AggregatorSuite) TestEvaluateReadiness_AllPass() {
	s.expectDefaults()

	response := s.evaluate()
	s.Equal(readiness.StatusReady, response.Status)
	s.True(response.CanProceed)
	s.Empty(response.RemediationTasks)
	s.False(response.EvaluationID.IsNil())
	s.Len(response.Categories, 3)
}

func (s *AggregatorSuite) TestEvaluateReadiness_DegradedAccountBlocks() {
	s.entitlements.EXPECT().Check(gomock.Any(), gomock.Any()).Return(allowedDecision(), nil)
	s.accounts.EXPECT().AccountState(gomock.Any(), s.userID).Return(id.AccountDegraded, nil)
	s.kyc.EXPECT().KycStatus(gomock.Any(), s.userID).Return(id.KycNotStarted, nil)
	s.evidence.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	response := s.evaluate()
	s.Equal(readiness.StatusBlocked, response.Status)
	s.False(response.CanProceed)

	var accountTasks []readiness.RemediationTask
	for _, task := range response.RemediationTasks {
		if task.Category == readiness.CategoryAccountState {
			accountTasks = append(accountTasks, task)
		}
	}
	s.Require().Len(accountTasks, 1)
	s.Equal("ACCOUNT_DEGRADED", accountTasks[0].Code)
	s.Equal(readiness.SeverityHigh, accountTasks[0].Severity)
}

func (s *AggregatorSuite) TestEvaluateReadiness_KycOnlyWarns() {
	s.entitlements.EXPECT().Check(gomock.Any(), gomock.Any()).Return(allowedDecision(), nil)
	s.accounts.EXPECT().AccountState(gomock.Any(), s.userID).Return(id.AccountReady, nil)
	s.kyc.EXPECT().KycStatus(gomock.Any(), s.userID).Return(id.KycNotStarted, nil)
	s.evidence.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	response := s.evaluate()
	s.Equal(readiness.StatusWarning, response.Status)
	s.True(response.CanProceed)
	s.Require().Len(response.RemediationTasks, 1)
	s.Equal(readiness.CategoryKYC, response.RemediationTasks[0].Category)
	s.Equal(readiness.SeverityMedium, response.RemediationTasks[0].Severity)
	s.Equal("KYC_REQUIRED", response.RemediationTasks[0].Code)
}

func (s *AggregatorSuite) TestEvaluateReadiness_EntitlementDenialBlocks() {
	s.entitlements.EXPECT().Check(gomock.Any(), gomock.Any()).Return(deniedDecision(), nil)
	s.accounts.EXPECT().AccountState(gomock.Any(), s.userID).Return(id.AccountReady, nil)
	s.kyc.EXPECT().KycStatus(gomock.Any(), s.userID).Return(id.KycApproved, nil)
	s.evidence.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	response := s.evaluate()
	s.Equal(readiness.StatusBlocked, response.Status)
	s.Require().NotEmpty(response.RemediationTasks)
	s.Equal(readiness.CategoryEntitlement, response.RemediationTasks[0].Category)
	s.Equal(readiness.SeverityCritical, response.RemediationTasks[0].Severity)
}

// =============================================================================
// Category Isolation Tests
// =============================================================================

func (s *AggregatorSuite) TestEvaluateReadiness_CategoryIsolation() {
	s.Run("entitlement dependency failure blocks only entitlement", func() {
		s.entitlements.EXPECT().Check(gomock.Any(), gomock.Any()).Return(nil, errors.New("usage store down"))
		s.accounts.EXPECT().AccountState(gomock.Any(), s.userID).Return(id.AccountReady, nil)
		s.kyc.EXPECT().KycStatus(gomock.Any(), s.userID).Return(id.KycApproved, nil)
		s.evidence.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		response := s.evaluate()
		s.Equal(readiness.StatusBlocked, response.Status)
		s.False(response.Categories[readiness.CategoryEntitlement].Passed)
		s.Equal([]string{"INTERNAL_SERVER_ERROR"}, response.Categories[readiness.CategoryEntitlement].ReasonCodes)
		s.True(response.Categories[readiness.CategoryAccountState].Passed)
		s.True(response.Categories[readiness.CategoryKYC].Passed)
	})

	s.Run("kyc dependency failure is advisory", func() {
		s.service, _ = readiness.New(s.entitlements, s.accounts, s.kyc, s.evidence)
		s.entitlements.EXPECT().Check(gomock.Any(), gomock.Any()).Return(allowedDecision(), nil)
		s.accounts.EXPECT().AccountState(gomock.Any(), s.userID).Return(id.AccountReady, nil)
		s.kyc.EXPECT().KycStatus(gomock.Any(), s.userID).Return(id.KycStatus(""), errors.New("provider timeout"))
		s.evidence.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

		response := s.evaluate()
		s.Equal(readiness.StatusReady, response.Status)
		s.True(response.Categories[readiness.CategoryKYC].Passed)
		s.Contains(response.Categories[readiness.CategoryKYC].Message, "unavailable")
	})
}

// =============================================================================
// Evidence and Cache Tests
// =============================================================================

func (s *AggregatorSuite) TestEvaluateReadiness_EvidencePersisted() {
	s.entitlements.EXPECT().Check(gomock.Any(), gomock.Any()).Return(allowedDecision(), nil)
	s.accounts.EXPECT().AccountState(gomock.Any(), s.userID).Return(id.AccountReady, nil)
	s.kyc.EXPECT().KycStatus(gomock.Any(), s.userID).Return(id.KycApproved, nil)

	var saved readiness.EvidenceRecord
	s.evidence.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, record readiness.EvidenceRecord) error {
			saved = record
			return nil
		})

	response := s.evaluate()
	s.Equal(response.EvaluationID, saved.EvaluationID)
	s.Equal(s.userID, saved.UserID)
	s.NotEmpty(saved.RequestSnapshot)
	s.NotEmpty(saved.ResponseSnapshot)
}

func (s *AggregatorSuite) TestEvaluateReadiness_EvidenceFailureDoesNotFail() {
	s.entitlements.EXPECT().Check(gomock.Any(), gomock.Any()).Return(allowedDecision(), nil)
	s.accounts.EXPECT().AccountState(gomock.Any(), s.userID).Return(id.AccountReady, nil)
	s.kyc.EXPECT().KycStatus(gomock.Any(), s.userID).Return(id.KycApproved, nil)
	s.evidence.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	response := s.evaluate()
	s.Equal(readiness.StatusReady, response.Status)
}

func (s *AggregatorSuite) TestEvaluateReadiness_ResultCached() {
	s.entitlements.EXPECT().Check(gomock.Any(), gomock.Any()).Return(allowedDecision(), nil).Times(1)
	s.accounts.EXPECT().AccountState(gomock.Any(), s.userID).Return(id.AccountReady, nil).Times(1)
	s.kyc.EXPECT().KycStatus(gomock.Any(), s.userID).Return(id.KycApproved, nil).Times(1)
	s.evidence.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	first := s.evaluate()
	second := s.evaluate()
	s.Equal(first.EvaluationID, second.EvaluationID)
}

// =============================================================================
// Validation and Evidence Lookup Tests
// =============================================================================

func (s *AggregatorSuite) TestEvaluateReadiness_Validation() {
	ctx := context.Background()

	s.Run("missing user id", func() {
		_, err := s.service.EvaluateReadiness(ctx, readiness.EvaluateRequest{TokenType: "erc20"})
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("missing token type", func() {
		_, err := s.service.EvaluateReadiness(ctx, readiness.EvaluateRequest{UserID: s.userID})
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *AggregatorSuite) TestGetEvidence() {
	ctx := context.Background()
	evaluationID := id.NewEvaluationID()

	s.Run("missing evaluation returns not found", func() {
		s.evidence.EXPECT().Get(gomock.Any(), evaluationID).Return(nil, nil)
		_, err := s.service.GetEvidence(ctx, evaluationID)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("store error wraps as internal", func() {
		s.evidence.EXPECT().Get(gomock.Any(), evaluationID).Return(nil, errors.New("connection reset"))
		_, err := s.service.GetEvidence(ctx, evaluationID)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *AggregatorSuite) TestHistory() {
	ctx := context.Background()

	s.Run("defaults limit", func() {
		s.evidence.EXPECT().ListByUser(gomock.Any(), s.userID, 20, time.Time{}).Return(nil, nil)
		_, err := s.service.History(ctx, s.userID, 0, time.Time{})
		s.NoError(err)
	})

	s.Run("nil user id", func() {
		_, err := s.service.History(ctx, id.UserID{}, 5, time.Time{})
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}
