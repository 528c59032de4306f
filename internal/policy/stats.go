package policy

import (
	"sync"
	"time"

	id "mintgate/pkg/domain"
)

// Stats holds the engine's running evaluation counters. Counters only grow;
// they reset at process restart. All access goes through the mutex - no
// ambient global state.
type Stats struct {
	mu               sync.Mutex
	totalEvaluations int64
	totalLatency     time.Duration
	outcomeCounts    map[Outcome]int64
	ruleFailures     map[id.RuleID]int64
}

func NewStats() *Stats {
	return &Stats{
		outcomeCounts: make(map[Outcome]int64),
		ruleFailures:  make(map[id.RuleID]int64),
	}
}

// RecordEvaluation accumulates one completed evaluation.
func (s *Stats) RecordEvaluation(outcome Outcome, latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalEvaluations++
	s.totalLatency += latency
	s.outcomeCounts[outcome]++
}

// RecordRuleFailure accumulates one rule failure.
func (s *Stats) RecordRuleFailure(ruleID id.RuleID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ruleFailures[ruleID]++
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	TotalEvaluations int64               `json:"total_evaluations"`
	AverageLatencyMS float64             `json:"average_latency_ms"`
	OutcomeCounts    map[Outcome]int64   `json:"outcome_counts"`
	RuleFailures     map[id.RuleID]int64 `json:"rule_failures"`
}

// Snapshot copies the counters for reporting.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		TotalEvaluations: s.totalEvaluations,
		OutcomeCounts:    make(map[Outcome]int64, len(s.outcomeCounts)),
		RuleFailures:     make(map[id.RuleID]int64, len(s.ruleFailures)),
	}
	if s.totalEvaluations > 0 {
		snap.AverageLatencyMS = float64(s.totalLatency.Milliseconds()) / float64(s.totalEvaluations)
	}
	for outcome, count := range s.outcomeCounts {
		snap.OutcomeCounts[outcome] = count
	}
	for ruleID, count := range s.ruleFailures {
		snap.RuleFailures[ruleID] = count
	}
	return snap
}
