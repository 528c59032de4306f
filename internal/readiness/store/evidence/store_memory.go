// Package evidence provides append-only stores for readiness evaluation
// snapshots.
package evidence

import (
	"context"
	"sync"
	"time"

	"mintgate/internal/readiness"
	id "mintgate/pkg/domain"
)

// InMemoryStore holds evaluation snapshots in process memory. Used by tests
// and deployments without Postgres.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.EvaluationID]readiness.EvidenceRecord
	byUser  map[id.UserID][]id.EvaluationID
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[id.EvaluationID]readiness.EvidenceRecord),
		byUser:  make(map[id.UserID][]id.EvaluationID),
	}
}

func (s *InMemoryStore) Save(_ context.Context, record readiness.EvidenceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.EvaluationID] = record
	s.byUser[record.UserID] = append(s.byUser[record.UserID], record.EvaluationID)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, evaluationID id.EvaluationID) (*readiness.EvidenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if record, exists := s.records[evaluationID]; exists {
		return &record, nil
	}
	return nil, nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID id.UserID, limit int, from time.Time) ([]readiness.EvidenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUser[userID]
	records := make([]readiness.EvidenceRecord, 0, limit)
	// Newest first; ids are appended in insertion order.
	for i := len(ids) - 1; i >= 0 && len(records) < limit; i-- {
		record := s.records[ids[i]]
		if !from.IsZero() && record.CreatedAt.Before(from) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
