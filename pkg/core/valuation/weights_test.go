package valuation

import (
	"math"
	"testing"

	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

func TestDeriveWeightsSumToOneEverywhere(t *testing.T) {
	stages := []models.Stage{
		models.StageIdeation, models.StagePreRevenue, models.StageEarlyRevenue,
		models.StageGrowth, models.StageMature,
	}
	for _, stage := range stages {
		for _, sector := range models.AllSectors() {
			w, err := DeriveWeights(stage, sector, nil)
			if err != nil {
				t.Fatalf("%s/%s: unexpected error: %v", stage, sector, err)
			}
			if math.Abs(w.Sum()-1.0) > 1e-9 {
				t.Errorf("%s/%s: weights sum to %.12f", stage, sector, w.Sum())
			}
			for m, v := range w {
				if v < 0 {
					t.Errorf("%s/%s: negative weight %v for %s", stage, sector, v, m)
				}
			}
		}
	}
}

func TestPreRevenueFavorsComparablesOverDCF(t *testing.T) {
	w, err := DeriveWeights(models.StagePreRevenue, models.SectorServices, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w[MethodComparables] <= w[MethodDCF] || w[MethodRiskAdjusted] <= w[MethodDCF] {
		t.Errorf("pre-revenue must favor comparables and risk-adjusted over DCF: %v", w)
	}
}

func TestGrowthMatureFavorsDCF(t *testing.T) {
	w, err := DeriveWeights(models.StageMature, models.SectorManufacturing, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range []Method{MethodComparables, MethodRiskAdjusted, MethodInsightAdjusted} {
		if w[MethodDCF] <= w[m] {
			t.Errorf("mature stage must weight DCF above %s: %v", m, w)
		}
	}
}

func TestVolatileSectorShiftsWeightToInsight(t *testing.T) {
	stable, err := DeriveWeights(models.StageGrowth, models.SectorManufacturing, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	volatile, err := DeriveWeights(models.StageGrowth, models.SectorBiotech, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if volatile[MethodDCF] >= stable[MethodDCF] {
		t.Errorf("volatile sector must nudge DCF weight down: %v vs %v", volatile[MethodDCF], stable[MethodDCF])
	}
	if volatile[MethodInsightAdjusted] <= stable[MethodInsightAdjusted] {
		t.Errorf("volatile sector must nudge insight weight up: %v vs %v", volatile[MethodInsightAdjusted], stable[MethodInsightAdjusted])
	}
}

func TestDegradedMethodRedistribution(t *testing.T) {
	full, err := DeriveWeights(models.StageGrowth, models.SectorTechnology, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reduced, err := DeriveWeights(models.StageGrowth, models.SectorTechnology,
		map[Method]bool{MethodInsightAdjusted: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := reduced[MethodInsightAdjusted]; ok {
		t.Error("degraded method must carry no weight")
	}
	if math.Abs(reduced.Sum()-1.0) > 1e-9 {
		t.Errorf("redistributed weights must still sum to 1, got %.12f", reduced.Sum())
	}
	// Proportional redistribution preserves the ratio between survivors.
	wantRatio := full[MethodDCF] / full[MethodComparables]
	gotRatio := reduced[MethodDCF] / reduced[MethodComparables]
	if math.Abs(wantRatio-gotRatio) > 1e-9 {
		t.Errorf("redistribution must be proportional: ratio %v vs %v", gotRatio, wantRatio)
	}
}

func TestBlend(t *testing.T) {
	methods := []MethodResult{
		{Method: MethodDCF, Value: 100},
		{Method: MethodComparables, Value: 200},
	}
	w := WeightVector{MethodDCF: 0.75, MethodComparables: 0.25}
	if got := Blend(methods, w); got != 125 {
		t.Errorf("expected 125, got %v", got)
	}
}
