//go:build integration

package evidence_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"mintgate/internal/readiness"
	evidencestore "mintgate/internal/readiness/store/evidence"
	id "mintgate/pkg/domain"
	"mintgate/pkg/testutil/containers"
)

type PostgresEvidenceSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *evidencestore.PostgresStore
}

func TestPostgresEvidenceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresEvidenceSuite))
}

func (s *PostgresEvidenceSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.Require().NoError(s.postgres.Apply(context.Background(), evidencestore.Schema))
	s.store = evidencestore.NewPostgres(s.postgres.DB)
}

func (s *PostgresEvidenceSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "readiness_evidence")
	s.Require().NoError(err)
}

func (s *PostgresEvidenceSuite) record(userID id.UserID, createdAt time.Time) readiness.EvidenceRecord {
	return readiness.EvidenceRecord{
		EvaluationID:     id.EvaluationID(uuid.New()),
		UserID:           userID,
		RequestSnapshot:  json.RawMessage(`{"token_type":"erc20"}`),
		ResponseSnapshot: json.RawMessage(`{"status":"ready"}`),
		CorrelationID:    "corr-1",
		CreatedAt:        createdAt,
	}
}

func (s *PostgresEvidenceSuite) TestSaveAndGetRoundTrip() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	record := s.record(userID, time.Now().UTC().Truncate(time.Microsecond))

	s.Require().NoError(s.store.Save(ctx, record))

	got, err := s.store.Get(ctx, record.EvaluationID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(record.EvaluationID, got.EvaluationID)
	s.Equal(record.UserID, got.UserID)
	s.JSONEq(string(record.RequestSnapshot), string(got.RequestSnapshot))
	s.JSONEq(string(record.ResponseSnapshot), string(got.ResponseSnapshot))
	s.Equal("corr-1", got.CorrelationID)
}

func (s *PostgresEvidenceSuite) TestGetUnknownReturnsNil() {
	got, err := s.store.Get(context.Background(), id.EvaluationID(uuid.New()))
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *PostgresEvidenceSuite) TestDuplicateEvaluationIDRejected() {
	ctx := context.Background()
	record := s.record(id.UserID(uuid.New()), time.Now().UTC())

	s.Require().NoError(s.store.Save(ctx, record))
	s.Error(s.store.Save(ctx, record), "append-only table must reject duplicate evaluation ids")
}

func (s *PostgresEvidenceSuite) TestListByUserNewestFirst() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	base := time.Now().UTC().Truncate(time.Microsecond)

	oldest := s.record(userID, base.Add(-2*time.Hour))
	middle := s.record(userID, base.Add(-time.Hour))
	newest := s.record(userID, base)
	other := s.record(id.UserID(uuid.New()), base)

	for _, record := range []readiness.EvidenceRecord{oldest, middle, newest, other} {
		s.Require().NoError(s.store.Save(ctx, record))
	}

	records, err := s.store.ListByUser(ctx, userID, 10, time.Time{})
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	s.Equal(newest.EvaluationID, records[0].EvaluationID)
	s.Equal(middle.EvaluationID, records[1].EvaluationID)
	s.Equal(oldest.EvaluationID, records[2].EvaluationID)
}

func (s *PostgresEvidenceSuite) TestListByUserHonorsLimitAndFrom() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())
	base := time.Now().UTC().Truncate(time.Microsecond)

	for i := range 5 {
		record := s.record(userID, base.Add(-time.Duration(i)*time.Hour))
		s.Require().NoError(s.store.Save(ctx, record))
	}

	limited, err := s.store.ListByUser(ctx, userID, 2, time.Time{})
	s.Require().NoError(err)
	s.Len(limited, 2)

	recent, err := s.store.ListByUser(ctx, userID, 10, base.Add(-90*time.Minute))
	s.Require().NoError(err)
	s.Len(recent, 2, "only records at or after the from bound")
}
