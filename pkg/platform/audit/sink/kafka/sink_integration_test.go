//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	id "mintgate/pkg/domain"
	audit "mintgate/pkg/platform/audit"
	kafkasink "mintgate/pkg/platform/audit/sink/kafka"
	"mintgate/pkg/testutil/containers"
)

const testTopic = "mintgate.audit.test"

type KafkaSinkSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
	sink     *kafkasink.Sink
	consumer *kgo.Client
}

func TestKafkaSinkSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaSinkSuite))
}

func (s *KafkaSinkSuite) SetupSuite() {
	ctx := context.Background()
	s.redpanda = containers.NewRedpandaContainer(s.T())

	admin, err := kgo.NewClient(kgo.SeedBrokers(s.redpanda.Broker))
	s.Require().NoError(err)
	defer admin.Close()

	_, err = kadm.NewClient(admin).CreateTopic(ctx, 1, 1, nil, testTopic)
	s.Require().NoError(err)

	s.sink, err = kafkasink.New([]string{s.redpanda.Broker}, kafkasink.WithTopic(testTopic))
	s.Require().NoError(err)

	s.consumer, err = kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Broker),
		kgo.ConsumeTopics(testTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
}

func (s *KafkaSinkSuite) TearDownSuite() {
	if s.sink != nil {
		s.sink.Close()
	}
	if s.consumer != nil {
		s.consumer.Close()
	}
}

func (s *KafkaSinkSuite) poll(want int) []*kgo.Record {
	deadline := time.Now().Add(15 * time.Second)
	var records []*kgo.Record
	for time.Now().Before(deadline) && len(records) < want {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		fetches := s.consumer.PollFetches(ctx)
		cancel()
		fetches.EachRecord(func(record *kgo.Record) {
			records = append(records, record)
		})
	}
	return records
}

func (s *KafkaSinkSuite) TestDeliverPublishesEvent() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	err := s.sink.Deliver(ctx, audit.Event{
		Category:      audit.CategoryCompliance,
		Timestamp:     time.Now().UTC(),
		UserID:        userID,
		Subject:       "eval-1",
		Action:        string(audit.EventReadinessEvaluated),
		Tier:          "premium",
		Decision:      "ready",
		PolicyVersion: "policy-test.01",
		CorrelationID: "corr-42",
	})
	s.Require().NoError(err)

	records := s.poll(1)
	s.Require().Len(records, 1)

	s.Equal(userID.String(), string(records[0].Key), "records are keyed by user id")

	var payload map[string]any
	s.Require().NoError(json.Unmarshal(records[0].Value, &payload))
	s.Equal("compliance", payload["category"])
	s.Equal(string(audit.EventReadinessEvaluated), payload["action"])
	s.Equal(userID.String(), payload["user_id"])
	s.Equal("premium", payload["tier"])
	s.Equal("ready", payload["decision"])
	s.Equal("policy-test.01", payload["policy_version"])
	s.Equal("corr-42", payload["correlation_id"])
}

func (s *KafkaSinkSuite) TestSameUserStaysOrdered() {
	ctx := context.Background()
	userID := id.UserID(uuid.New())

	for i, action := range []audit.AuditEvent{
		audit.EventEntitlementAllowed,
		audit.EventReadinessEvaluated,
		audit.EventEvidenceStored,
	} {
		err := s.sink.Deliver(ctx, audit.Event{
			Timestamp: time.Now().UTC(),
			UserID:    userID,
			Subject:   string(rune('a' + i)),
			Action:    string(action),
		})
		s.Require().NoError(err)
	}

	records := s.poll(3)
	s.Require().Len(records, 3)

	var actions []string
	for _, record := range records {
		var payload map[string]any
		s.Require().NoError(json.Unmarshal(record.Value, &payload))
		actions = append(actions, payload["action"].(string))
	}
	s.Equal([]string{
		string(audit.EventEntitlementAllowed),
		string(audit.EventReadinessEvaluated),
		string(audit.EventEvidenceStored),
	}, actions)
}
