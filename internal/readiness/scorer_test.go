package readiness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCanonicalWeightsSumToOne pins the weight-table invariant.
func TestCanonicalWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, spec := range canonicalFactors {
		sum += spec.weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestComputeScore(t *testing.T) {
	passed := CategoryResult{Passed: true}
	failed := CategoryResult{Passed: false}

	t.Run("all five factors passing scores 1.0", func(t *testing.T) {
		score := ComputeScore(map[Category]CategoryResult{
			CategoryEntitlement:  passed,
			CategoryAccountState: passed,
			CategoryKYC:          passed,
			CategoryCompliance:   passed,
			CategoryIntegration:  passed,
		})
		assert.InDelta(t, 1.0, score.ReadinessScore, 1e-9)
		assert.InDelta(t, 100.0, score.Confidence.DataCompleteness, 1e-9)
		assert.Empty(t, score.Confidence.MissingFactors)
		assert.Empty(t, score.BlockingFactors)
		assert.Equal(t, ScoringVersion, score.ScoringVersion)
	})

	t.Run("three of five factors yields 60 percent completeness", func(t *testing.T) {
		score := ComputeScore(map[Category]CategoryResult{
			CategoryEntitlement:  passed,
			CategoryAccountState: passed,
			CategoryKYC:          passed,
		})
		assert.InDelta(t, 60.0, score.Confidence.DataCompleteness, 1e-9)
		assert.InDelta(t, 0.75, score.ReadinessScore, 1e-9)
		assert.ElementsMatch(t, []Category{CategoryCompliance, CategoryIntegration},
			score.Confidence.MissingFactors)
		assert.NotEmpty(t, score.Confidence.QualityWarnings)
	})

	t.Run("missing factors are omitted not zero filled", func(t *testing.T) {
		score := ComputeScore(map[Category]CategoryResult{
			CategoryEntitlement: passed,
		})
		require.Len(t, score.Factors, 1)
		assert.InDelta(t, 0.30, score.ReadinessScore, 1e-9)
	})

	t.Run("kyc confidence lowers the mean", func(t *testing.T) {
		score := ComputeScore(map[Category]CategoryResult{
			CategoryEntitlement:  passed,
			CategoryAccountState: passed,
			CategoryKYC:          passed,
		})
		assert.InDelta(t, (1.0+1.0+0.7)/3, score.Confidence.OverallConfidence, 1e-9)
	})

	t.Run("failing blocking factors are listed", func(t *testing.T) {
		score := ComputeScore(map[Category]CategoryResult{
			CategoryEntitlement:  failed,
			CategoryAccountState: passed,
			CategoryKYC:          failed,
		})
		assert.Equal(t, []Category{CategoryEntitlement}, score.BlockingFactors,
			"kyc is advisory and never blocks")
		assert.InDelta(t, 0.30, score.ReadinessScore, 1e-9)
	})

	t.Run("pure transform is repeatable", func(t *testing.T) {
		input := map[Category]CategoryResult{
			CategoryEntitlement:  passed,
			CategoryAccountState: failed,
		}
		first := ComputeScore(input)
		for range 3 {
			assert.Equal(t, first, ComputeScore(input))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		score := ComputeScore(nil)
		assert.Zero(t, score.ReadinessScore)
		assert.Zero(t, score.Confidence.OverallConfidence)
		assert.Zero(t, score.Confidence.DataCompleteness)
		assert.Len(t, score.Confidence.MissingFactors, 5)
	})
}
