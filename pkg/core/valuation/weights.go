package valuation

import (
	"fmt"

	"github.com/camayank/StartupValuator-sub000/pkg/core/benchmark"
	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

// StageBucket groups the five maturity stages into the three weighting
// regimes.
type StageBucket string

const (
	BucketPreRevenue   StageBucket = "pre_revenue"
	BucketEarlyRevenue StageBucket = "early_revenue"
	BucketGrowthMature StageBucket = "growth_mature"
)

// BucketFor maps a stage to its weighting bucket.
func BucketFor(stage models.Stage) StageBucket {
	switch stage {
	case models.StageIdeation, models.StagePreRevenue:
		return BucketPreRevenue
	case models.StageEarlyRevenue:
		return BucketEarlyRevenue
	default:
		return BucketGrowthMature
	}
}

// Base weights per bucket. Pre-revenue leans on comparables and the risk
// chain because there is no cash flow to discount; growth/mature leans on DCF.
var baseWeights = map[StageBucket]WeightVector{
	BucketPreRevenue: {
		MethodDCF:             0.10,
		MethodComparables:     0.40,
		MethodRiskAdjusted:    0.35,
		MethodInsightAdjusted: 0.15,
	},
	BucketEarlyRevenue: {
		MethodDCF:             0.25,
		MethodComparables:     0.35,
		MethodRiskAdjusted:    0.25,
		MethodInsightAdjusted: 0.15,
	},
	BucketGrowthMature: {
		MethodDCF:             0.45,
		MethodComparables:     0.25,
		MethodRiskAdjusted:    0.15,
		MethodInsightAdjusted: 0.15,
	},
}

// volatileSectorShift moves weight from DCF to the insight method in
// innovation-heavy sectors, where projected cash flows are least trustworthy.
const volatileSectorShift = 0.05

// DeriveWeights builds the normalized weight vector for a (stage, sector)
// pair. Methods flagged in degraded get zero weight, with their share
// redistributed proportionally across the remaining methods.
func DeriveWeights(stage models.Stage, sector models.Sector, degraded map[Method]bool) (WeightVector, error) {
	base := baseWeights[BucketFor(stage)]

	weights := WeightVector{}
	for m, v := range base {
		weights[m] = v
	}

	if benchmark.SectorLookup(sector).Volatile {
		if weights[MethodDCF] >= volatileSectorShift {
			weights[MethodDCF] -= volatileSectorShift
			weights[MethodInsightAdjusted] += volatileSectorShift
		}
	}

	for m := range weights {
		if degraded[m] {
			delete(weights, m)
		}
	}
	if len(weights) == 0 {
		return nil, fmt.Errorf("all valuation methods degraded, nothing to weight")
	}

	weights.normalize()
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return weights, nil
}

// Blend computes the weighted value across method results. Methods without a
// weight (degraded) contribute nothing.
func Blend(methods []MethodResult, weights WeightVector) float64 {
	blended := 0.0
	for _, r := range methods {
		blended += r.Value * weights[r.Method]
	}
	return blended
}
