// Package benchmark derives the financial assumptions a valuation runs on:
// discount rate, growth, terminal growth, beta and industry multiples, looked
// up from region/sector/stage tables and reconciled with user overrides.
package benchmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

// ErrInvalidAssumptions is returned when the derived assumptions cannot
// support a valuation (discount rate <= terminal growth, unknown codes).
var ErrInvalidAssumptions = errors.New("invalid assumptions")

// Discount-rate clamp. A WACC-like rate outside this band indicates a broken
// input rather than a real cost of capital.
const (
	minDiscountRate = 0.10
	maxDiscountRate = 0.30
)

// defaultTaxRate applies when no override source supplies one.
const defaultTaxRate = 0.21

// FinancialAssumptions is the full rate/multiple set handed to the valuators.
// All rates are decimal fractions; multiples are unitless.
type FinancialAssumptions struct {
	DiscountRate       float64 `json:"discount_rate"`
	GrowthRate         float64 `json:"growth_rate"`
	TerminalGrowthRate float64 `json:"terminal_growth_rate"`
	OperatingMargin    float64 `json:"operating_margin"`
	Beta               float64 `json:"beta"`
	RiskFreeRate       float64 `json:"risk_free_rate"`
	MarketRiskPremium  float64 `json:"market_risk_premium"`
	CompanyRiskPremium float64 `json:"company_risk_premium"`
	RevenueMultiple    float64 `json:"revenue_multiple"`
	EBITDAMultiple     float64 `json:"ebitda_multiple"`
	EBITMultiple       float64 `json:"ebit_multiple"`
	TaxRate            float64 `json:"tax_rate"`
	DataQualityHigh    bool    `json:"data_quality_high"`

	// PeerAverages carries optional peer-group figures from the override
	// source (e.g. median peer growth), keyed by metric name.
	PeerAverages map[string]float64 `json:"peer_averages,omitempty"`
}

// Overrides is the partial assumption set an external benchmark source may
// supply for a (sector, region) pair. Nil fields mean "no override".
type Overrides struct {
	RevenueMultiple *float64           `json:"revenue_multiple,omitempty" yaml:"revenue_multiple,omitempty"`
	EBITDAMultiple  *float64           `json:"ebitda_multiple,omitempty" yaml:"ebitda_multiple,omitempty"`
	EBITMultiple    *float64           `json:"ebit_multiple,omitempty" yaml:"ebit_multiple,omitempty"`
	Beta            *float64           `json:"beta,omitempty" yaml:"beta,omitempty"`
	TaxRate         *float64           `json:"tax_rate,omitempty" yaml:"tax_rate,omitempty"`
	PeerAverages    map[string]float64 `json:"peer_averages,omitempty" yaml:"peer_averages,omitempty"`
}

// OverrideSource supplies partial assumption overrides for a sector/region.
// A nil return with nil error means no overrides exist.
type OverrideSource interface {
	GetFinancialAssumptionOverrides(ctx context.Context, sector models.Sector, region models.Region) (*Overrides, error)
}

// Engine performs the assumption derivation. Zero-value Engine is usable;
// an OverrideSource is optional.
type Engine struct {
	source OverrideSource
}

// NewEngine returns an Engine with an optional override source (may be nil).
func NewEngine(source OverrideSource) *Engine {
	return &Engine{source: source}
}

// Derive builds the FinancialAssumptions for a profile and returns any
// benchmark warnings. Warnings never stop the computation; the user's value
// always wins over the benchmark range.
func (e *Engine) Derive(ctx context.Context, p *models.BusinessProfile) (*FinancialAssumptions, []string, error) {
	region, ok := regionTable[p.Region]
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown region %q", ErrInvalidAssumptions, p.Region)
	}
	sector, ok := sectorTable[p.Sector]
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown sector %q", ErrInvalidAssumptions, p.Sector)
	}
	stagePremium, ok := stagePremiumTable[p.Stage]
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidAssumptions, p.Stage)
	}

	var warnings []string

	// Growth: user value wins, out-of-range only warns.
	growthPct := sector.TypicalGrowthPct
	if p.GrowthRate != nil {
		growthPct = *p.GrowthRate
		if growthPct < sector.MinGrowthPct || growthPct > sector.MaxGrowthPct {
			warnings = append(warnings, fmt.Sprintf(
				"growth rate %.1f%% is outside the %s benchmark range [%.1f%%, %.1f%%]",
				growthPct, p.Sector, sector.MinGrowthPct, sector.MaxGrowthPct))
		}
	}

	marginPct := sector.TypicalMarginPct
	if p.OperatingMargin != nil {
		marginPct = *p.OperatingMargin
		if marginPct < sector.MinMarginPct || marginPct > sector.MaxMarginPct {
			warnings = append(warnings, fmt.Sprintf(
				"operating margin %.1f%% is outside the %s benchmark range [%.1f%%, %.1f%%]",
				marginPct, p.Sector, sector.MinMarginPct, sector.MaxMarginPct))
		}
	}

	a := &FinancialAssumptions{
		GrowthRate:        growthPct / 100,
		OperatingMargin:   marginPct / 100,
		Beta:              sector.Beta,
		RiskFreeRate:      region.RiskFreeRate,
		MarketRiskPremium: region.MarketRiskPremium,
		RevenueMultiple:   sector.RevenueMultiple,
		EBITDAMultiple:    sector.EBITDAMultiple,
		EBITMultiple:      sector.EBITMultiple,
		TaxRate:           defaultTaxRate,
	}

	if e.source != nil {
		ov, err := e.source.GetFinancialAssumptionOverrides(ctx, p.Sector, p.Region)
		if err != nil {
			// Benchmark source is a collaborator: degrade, never abort.
			warnings = append(warnings, fmt.Sprintf("benchmark override source unavailable: %v", err))
		} else if ov != nil {
			applyOverrides(a, ov)
		}
	}

	// CAPM-style rate plus stage and sector premiums, clamped to a sane band.
	a.CompanyRiskPremium = stagePremium + sector.RiskPremium
	a.DiscountRate = a.RiskFreeRate + a.Beta*a.MarketRiskPremium + a.CompanyRiskPremium
	if a.DiscountRate < minDiscountRate {
		a.DiscountRate = minDiscountRate
	}
	if a.DiscountRate > maxDiscountRate {
		a.DiscountRate = maxDiscountRate
	}

	// Terminal growth: half the explicit growth, capped regionally. The cap
	// keeps discount > terminal in every normal configuration.
	a.TerminalGrowthRate = a.GrowthRate / 2
	if a.TerminalGrowthRate > region.TerminalGrowthCap {
		a.TerminalGrowthRate = region.TerminalGrowthCap
	}

	if a.DiscountRate <= a.TerminalGrowthRate {
		return nil, warnings, fmt.Errorf(
			"%w: discount rate %.4f must exceed terminal growth %.4f",
			ErrInvalidAssumptions, a.DiscountRate, a.TerminalGrowthRate)
	}

	a.DataQualityHigh = p.HasRevenue() && p.GrowthRate != nil && p.OperatingMargin != nil

	return a, warnings, nil
}

func applyOverrides(a *FinancialAssumptions, ov *Overrides) {
	if ov.RevenueMultiple != nil && *ov.RevenueMultiple > 0 {
		a.RevenueMultiple = *ov.RevenueMultiple
	}
	if ov.EBITDAMultiple != nil && *ov.EBITDAMultiple > 0 {
		a.EBITDAMultiple = *ov.EBITDAMultiple
	}
	if ov.EBITMultiple != nil && *ov.EBITMultiple > 0 {
		a.EBITMultiple = *ov.EBITMultiple
	}
	if ov.Beta != nil && *ov.Beta > 0 {
		a.Beta = *ov.Beta
	}
	if ov.TaxRate != nil && *ov.TaxRate >= 0 && *ov.TaxRate < 1 {
		a.TaxRate = *ov.TaxRate
	}
	if len(ov.PeerAverages) > 0 {
		a.PeerAverages = ov.PeerAverages
	}
}
