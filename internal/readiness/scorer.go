package readiness

import (
	"fmt"
)

// ScoringVersion identifies the weight table. Bump when weights or factor
// definitions change; scores across versions are not comparable.
const ScoringVersion = "scoring-1.2"

// FactorBreakdown is one category's contribution to the overall score.
type FactorBreakdown struct {
	FactorID      Category `json:"factor_id"`
	Weight        float64  `json:"weight"`
	RawScore      float64  `json:"raw_score"`
	WeightedScore float64  `json:"weighted_score"`
	Passed        bool     `json:"passed"`
	IsBlocking    bool     `json:"is_blocking"`
	Confidence    float64  `json:"confidence"`
}

// ConfidenceMetadata qualifies how much of the canonical factor set the
// score actually saw.
type ConfidenceMetadata struct {
	OverallConfidence float64    `json:"overall_confidence"`
	DataCompleteness  float64    `json:"data_completeness"`
	MissingFactors    []Category `json:"missing_factors,omitempty"`
	QualityWarnings   []string   `json:"quality_warnings,omitempty"`
}

// Score is the weighted readiness score derived from category results.
type Score struct {
	ReadinessScore  float64            `json:"readiness_score"`
	Factors         []FactorBreakdown  `json:"factors"`
	BlockingFactors []Category         `json:"blocking_factors,omitempty"`
	Confidence      ConfidenceMetadata `json:"confidence"`
	ScoringVersion  string             `json:"scoring_version"`
}

type factorSpec struct {
	category   Category
	weight     float64
	isBlocking bool
	// KYC is advisory; its confidence is deliberately lower.
	confidence float64
}

// canonicalFactors is the weight table. The weights sum to 1.0;
// TestCanonicalWeightsSumToOne pins that.
var canonicalFactors = []factorSpec{
	{category: CategoryEntitlement, weight: 0.30, isBlocking: true, confidence: 1.0},
	{category: CategoryAccountState, weight: 0.30, isBlocking: true, confidence: 1.0},
	{category: CategoryKYC, weight: 0.15, isBlocking: false, confidence: 0.7},
	{category: CategoryCompliance, weight: 0.15, isBlocking: true, confidence: 1.0},
	{category: CategoryIntegration, weight: 0.10, isBlocking: false, confidence: 1.0},
}

const lowConfidenceThreshold = 1.0

// ComputeScore is a pure transform over category results. Categories absent
// from the input are omitted rather than zero-filled, so the overall score
// under-counts when data is incomplete instead of rewarding missing data.
// Safe to re-run or cache.
func ComputeScore(categories map[Category]CategoryResult) *Score {
	score := &Score{
		ScoringVersion: ScoringVersion,
	}

	var confidenceSum float64
	lowConfidence := 0
	for _, spec := range canonicalFactors {
		result, evaluated := categories[spec.category]
		if !evaluated {
			score.Confidence.MissingFactors = append(score.Confidence.MissingFactors, spec.category)
			continue
		}

		raw := 0.0
		if result.Passed {
			raw = 1.0
		}
		factor := FactorBreakdown{
			FactorID:      spec.category,
			Weight:        spec.weight,
			RawScore:      raw,
			WeightedScore: raw * spec.weight,
			Passed:        result.Passed,
			IsBlocking:    spec.isBlocking,
			Confidence:    spec.confidence,
		}
		score.Factors = append(score.Factors, factor)
		score.ReadinessScore += factor.WeightedScore
		confidenceSum += spec.confidence
		if spec.confidence < lowConfidenceThreshold {
			lowConfidence++
		}

		if !result.Passed && spec.isBlocking {
			score.BlockingFactors = append(score.BlockingFactors, spec.category)
		}
	}

	evaluated := len(score.Factors)
	if evaluated > 0 {
		score.Confidence.OverallConfidence = confidenceSum / float64(evaluated)
	}
	score.Confidence.DataCompleteness = float64(evaluated) / float64(len(canonicalFactors)) * 100

	if lowConfidence > 0 {
		score.Confidence.QualityWarnings = append(score.Confidence.QualityWarnings,
			fmt.Sprintf("%d factor(s) evaluated with reduced confidence", lowConfidence))
	}
	if len(score.Confidence.MissingFactors) > 0 {
		score.Confidence.QualityWarnings = append(score.Confidence.QualityWarnings,
			fmt.Sprintf("%d canonical factor(s) not evaluated", len(score.Confidence.MissingFactors)))
	}

	return score
}
