package valuation

// Fixed three-point scenario approximation. The haircut/uplift pairs and
// probabilities are the canonical constants; this is intentionally not a
// Monte Carlo simulation.
var (
	worstDeltas = AssumptionDeltas{GrowthMultiplier: 0.7, MarginMultiplier: 0.8, DiscountMultiplier: 1.2}
	baseDeltas  = AssumptionDeltas{GrowthMultiplier: 1.0, MarginMultiplier: 1.0, DiscountMultiplier: 1.0}
	bestDeltas  = AssumptionDeltas{GrowthMultiplier: 1.3, MarginMultiplier: 1.2, DiscountMultiplier: 0.9}
)

const (
	worstValueFactor = 0.7
	bestValueFactor  = 1.3

	worstProbability = 0.25
	baseProbability  = 0.50
	bestProbability  = 0.25
)

// BuildScenarios produces the worst/base/best set around a blended value.
// Values are monotone by construction and probabilities sum to 1.
func BuildScenarios(blendedUSD float64) ScenarioSet {
	set := ScenarioSet{
		Worst: ScenarioOutcome{
			Name:        "worst",
			Value:       blendedUSD * worstValueFactor,
			Probability: worstProbability,
			Deltas:      worstDeltas,
		},
		Base: ScenarioOutcome{
			Name:        "base",
			Value:       blendedUSD,
			Probability: baseProbability,
			Deltas:      baseDeltas,
		},
		Best: ScenarioOutcome{
			Name:        "best",
			Value:       blendedUSD * bestValueFactor,
			Probability: bestProbability,
			Deltas:      bestDeltas,
		},
	}
	set.ExpectedValue = set.Worst.Value*set.Worst.Probability +
		set.Base.Value*set.Base.Probability +
		set.Best.Value*set.Best.Probability
	return set
}

// Sensitivity sweep factors and their per-factor deltas. Growth and margin
// sweep relative (+/-20%, +/-10%); the discount rate sweeps in absolute
// percentage points (+/-2pp, +/-1pp).
const (
	FactorGrowth   = "growth_rate"
	FactorMargin   = "operating_margin"
	FactorDiscount = "discount_rate"
)

var sweepDeltas = map[string][]float64{
	FactorGrowth:   {-0.20, -0.10, 0, 0.10, 0.20},
	FactorMargin:   {-0.20, -0.10, 0, 0.10, 0.20},
	FactorDiscount: {-0.02, -0.01, 0, 0.01, 0.02},
}

// sweepOrder keeps the output deterministic.
var sweepOrder = []string{FactorGrowth, FactorMargin, FactorDiscount}

// RecomputeFunc re-evaluates the blended valuation with a single factor
// shifted by delta, holding everything else constant. A non-nil error skips
// the point (e.g. a discount shift that breaks terminal-value convergence).
type RecomputeFunc func(factor string, delta float64) (float64, error)

// BuildSensitivity runs the single-factor sweeps through recompute.
func BuildSensitivity(recompute RecomputeFunc) []FactorSensitivity {
	out := make([]FactorSensitivity, 0, len(sweepOrder))
	for _, factor := range sweepOrder {
		fs := FactorSensitivity{Factor: factor}
		for _, delta := range sweepDeltas[factor] {
			value, err := recompute(factor, delta)
			if err != nil {
				continue
			}
			fs.Points = append(fs.Points, SensitivityPoint{Delta: delta, Value: value})
		}
		out = append(out, fs)
	}
	return out
}
