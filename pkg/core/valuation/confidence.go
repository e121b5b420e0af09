package valuation

import (
	"github.com/camayank/StartupValuator-sub000/pkg/core/benchmark"
	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

// ConfidenceScore is the heuristic completeness score in [50,100]: base 60,
// +10 for each of revenue, margin and growth being present, a later-stage
// company, and high-quality assumption data. Deliberately coarse; it is a
// review flag, not a statistical interval.
func ConfidenceScore(p *models.BusinessProfile, a *benchmark.FinancialAssumptions) int {
	score := 60
	if p.HasRevenue() {
		score += 10
	}
	if p.OperatingMargin != nil {
		score += 10
	}
	if p.GrowthRate != nil {
		score += 10
	}
	if p.Stage.IsLaterStage() {
		score += 10
	}
	if a != nil && a.DataQualityHigh {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	if score < 50 {
		score = 50
	}
	return score
}
