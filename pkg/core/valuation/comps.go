package valuation

import (
	"fmt"

	"github.com/camayank/StartupValuator-sub000/pkg/core/benchmark"
	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

// Fixed blend weights across the three multiple bases.
const (
	revenueMultipleWeight = 0.40
	ebitdaMultipleWeight  = 0.35
	ebitMultipleWeight    = 0.25
)

// ebitHaircut approximates EBIT from the EBITDA proxy when the profile only
// carries revenue and operating margin.
const ebitHaircut = 0.85

// SelectedMultiple records one applied multiple with its reasoning.
type SelectedMultiple struct {
	Metric        string  `json:"metric"`
	Multiple      float64 `json:"multiple"`
	ImpliedValue  float64 `json:"implied_value"`
	Weight        float64 `json:"weight"`
	Justification string  `json:"justification"`
}

// CompsDetail is the comparables method breakdown.
type CompsDetail struct {
	StageMultiplier float64            `json:"stage_multiplier"`
	Multiples       []SelectedMultiple `json:"multiples"`
	Value           float64            `json:"value"`
}

// CalculateComparables values the business off sector multiples scaled by a
// stage multiplier. Pre-revenue companies are anchored on the sector's
// pre-revenue baseline instead of revenue-derived metrics, so the method never
// collapses to zero for an early company. Unprofitable companies have the
// EBITDA/EBIT legs redistributed onto the revenue leg.
func CalculateComparables(revenueUSD float64, p *models.BusinessProfile, a *benchmark.FinancialAssumptions) *CompsDetail {
	stageMult := benchmark.StageMultiplier(p.Stage)
	detail := &CompsDetail{StageMultiplier: stageMult}

	if revenueUSD <= 0 {
		baseline := benchmark.SectorLookup(p.Sector).PreRevenueBaseline
		value := baseline * stageMult
		detail.Multiples = []SelectedMultiple{{
			Metric:       "pre_revenue_baseline",
			Multiple:     stageMult,
			ImpliedValue: value,
			Weight:       1.0,
			Justification: fmt.Sprintf(
				"no revenue yet; anchored on the %s sector pre-revenue baseline of %.0f USD scaled by the %s stage multiplier %.2f",
				p.Sector, baseline, p.Stage, stageMult),
		}}
		detail.Value = value
		return detail
	}

	ebitda := revenueUSD * a.OperatingMargin
	ebit := ebitda * ebitHaircut

	revenueLeg := SelectedMultiple{
		Metric:       "revenue",
		Multiple:     a.RevenueMultiple * stageMult,
		ImpliedValue: revenueUSD * a.RevenueMultiple * stageMult,
		Weight:       revenueMultipleWeight,
		Justification: fmt.Sprintf(
			"%s sector revenue multiple %.2fx scaled by %s stage multiplier %.2f",
			p.Sector, a.RevenueMultiple, p.Stage, stageMult),
	}

	if ebitda <= 0 {
		// Negative or zero operating profit: revenue is the only reliable base.
		revenueLeg.Weight = 1.0
		revenueLeg.Justification += "; EBITDA and EBIT legs dropped (non-positive operating profit), weight folded into the revenue leg"
		detail.Multiples = []SelectedMultiple{revenueLeg}
		detail.Value = revenueLeg.ImpliedValue
		return detail
	}

	ebitdaLeg := SelectedMultiple{
		Metric:       "ebitda",
		Multiple:     a.EBITDAMultiple * stageMult,
		ImpliedValue: ebitda * a.EBITDAMultiple * stageMult,
		Weight:       ebitdaMultipleWeight,
		Justification: fmt.Sprintf(
			"EBITDA proxied as revenue x operating margin (%.1f%%); %s sector EBITDA multiple %.1fx scaled by stage multiplier %.2f",
			a.OperatingMargin*100, p.Sector, a.EBITDAMultiple, stageMult),
	}
	ebitLeg := SelectedMultiple{
		Metric:       "ebit",
		Multiple:     a.EBITMultiple * stageMult,
		ImpliedValue: ebit * a.EBITMultiple * stageMult,
		Weight:       ebitMultipleWeight,
		Justification: fmt.Sprintf(
			"EBIT approximated as %.0f%% of the EBITDA proxy; %s sector EBIT multiple %.1fx scaled by stage multiplier %.2f",
			ebitHaircut*100, p.Sector, a.EBITMultiple, stageMult),
	}

	detail.Multiples = []SelectedMultiple{revenueLeg, ebitdaLeg, ebitLeg}
	for _, m := range detail.Multiples {
		detail.Value += m.ImpliedValue * m.Weight
	}
	return detail
}
