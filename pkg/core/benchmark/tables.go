package benchmark

import "github.com/camayank/StartupValuator-sub000/pkg/models"

// RegionBenchmark holds the macro-rate defaults for a region.
// Rates are decimal fractions (0.042 = 4.2%).
type RegionBenchmark struct {
	RiskFreeRate      float64 `yaml:"risk_free_rate"`
	MarketRiskPremium float64 `yaml:"market_risk_premium"`
	TerminalGrowthCap float64 `yaml:"terminal_growth_cap"`
}

// SectorBenchmark holds the sector lookup row: typical operating metrics
// (percent, matching BusinessProfile units), valuation multiples, beta and the
// sector risk premium. PreRevenueBaseline is the USD anchor used by the
// multiple-based methods when the company has no revenue yet.
type SectorBenchmark struct {
	TypicalGrowthPct float64 `yaml:"typical_growth_pct"`
	MinGrowthPct     float64 `yaml:"min_growth_pct"`
	MaxGrowthPct     float64 `yaml:"max_growth_pct"`

	TypicalMarginPct float64 `yaml:"typical_margin_pct"`
	MinMarginPct     float64 `yaml:"min_margin_pct"`
	MaxMarginPct     float64 `yaml:"max_margin_pct"`

	RevenueMultiple float64 `yaml:"revenue_multiple"`
	EBITDAMultiple  float64 `yaml:"ebitda_multiple"`
	EBITMultiple    float64 `yaml:"ebit_multiple"`

	Beta        float64 `yaml:"beta"`
	RiskPremium float64 `yaml:"risk_premium"`
	Volatile    bool    `yaml:"volatile"`

	PreRevenueBaseline float64 `yaml:"pre_revenue_baseline"`
}

// regionTable is the canonical region benchmark set. Chosen as the single
// source of truth over the historical variants; see DESIGN.md.
var regionTable = map[models.Region]RegionBenchmark{
	models.RegionNorthAmerica:  {RiskFreeRate: 0.042, MarketRiskPremium: 0.055, TerminalGrowthCap: 0.035},
	models.RegionEurope:        {RiskFreeRate: 0.038, MarketRiskPremium: 0.060, TerminalGrowthCap: 0.030},
	models.RegionAsiaPacific:   {RiskFreeRate: 0.045, MarketRiskPremium: 0.065, TerminalGrowthCap: 0.040},
	models.RegionLatinAmerica:  {RiskFreeRate: 0.065, MarketRiskPremium: 0.080, TerminalGrowthCap: 0.040},
	models.RegionMiddleEastAfr: {RiskFreeRate: 0.060, MarketRiskPremium: 0.075, TerminalGrowthCap: 0.040},
}

// sectorTable is the canonical sector benchmark set.
var sectorTable = map[models.Sector]SectorBenchmark{
	models.SectorTechnology: {
		TypicalGrowthPct: 30, MinGrowthPct: 5, MaxGrowthPct: 150,
		TypicalMarginPct: 15, MinMarginPct: -40, MaxMarginPct: 40,
		RevenueMultiple: 3.5, EBITDAMultiple: 10, EBITMultiple: 12,
		Beta: 1.25, RiskPremium: 0.015, Volatile: true,
		PreRevenueBaseline: 2_000_000,
	},
	models.SectorHealthcare: {
		TypicalGrowthPct: 15, MinGrowthPct: 2, MaxGrowthPct: 60,
		TypicalMarginPct: 12, MinMarginPct: -20, MaxMarginPct: 35,
		RevenueMultiple: 2.8, EBITDAMultiple: 9, EBITMultiple: 11,
		Beta: 0.95, RiskPremium: 0.012,
		PreRevenueBaseline: 1_500_000,
	},
	models.SectorBiotech: {
		TypicalGrowthPct: 25, MinGrowthPct: 0, MaxGrowthPct: 200,
		TypicalMarginPct: 5, MinMarginPct: -80, MaxMarginPct: 30,
		RevenueMultiple: 4.0, EBITDAMultiple: 12, EBITMultiple: 14,
		Beta: 1.40, RiskPremium: 0.025, Volatile: true,
		PreRevenueBaseline: 2_500_000,
	},
	models.SectorFintech: {
		TypicalGrowthPct: 28, MinGrowthPct: 5, MaxGrowthPct: 120,
		TypicalMarginPct: 12, MinMarginPct: -40, MaxMarginPct: 35,
		RevenueMultiple: 3.2, EBITDAMultiple: 10, EBITMultiple: 12,
		Beta: 1.30, RiskPremium: 0.018, Volatile: true,
		PreRevenueBaseline: 1_800_000,
	},
	models.SectorEcommerce: {
		TypicalGrowthPct: 20, MinGrowthPct: 2, MaxGrowthPct: 100,
		TypicalMarginPct: 8, MinMarginPct: -25, MaxMarginPct: 20,
		RevenueMultiple: 1.8, EBITDAMultiple: 8, EBITMultiple: 10,
		Beta: 1.15, RiskPremium: 0.012,
		PreRevenueBaseline: 1_000_000,
	},
	models.SectorManufacturing: {
		TypicalGrowthPct: 8, MinGrowthPct: 0, MaxGrowthPct: 30,
		TypicalMarginPct: 10, MinMarginPct: -10, MaxMarginPct: 25,
		RevenueMultiple: 1.2, EBITDAMultiple: 7, EBITMultiple: 8,
		Beta: 1.05, RiskPremium: 0.010,
		PreRevenueBaseline: 800_000,
	},
	models.SectorServices: {
		TypicalGrowthPct: 10, MinGrowthPct: 0, MaxGrowthPct: 40,
		TypicalMarginPct: 14, MinMarginPct: -10, MaxMarginPct: 30,
		RevenueMultiple: 1.5, EBITDAMultiple: 7, EBITMultiple: 9,
		Beta: 0.90, RiskPremium: 0.008,
		PreRevenueBaseline: 600_000,
	},
	models.SectorEnergy: {
		TypicalGrowthPct: 7, MinGrowthPct: -5, MaxGrowthPct: 35,
		TypicalMarginPct: 12, MinMarginPct: -15, MaxMarginPct: 30,
		RevenueMultiple: 1.4, EBITDAMultiple: 6, EBITMultiple: 8,
		Beta: 1.10, RiskPremium: 0.014,
		PreRevenueBaseline: 1_200_000,
	},
	models.SectorOther: {
		TypicalGrowthPct: 10, MinGrowthPct: 0, MaxGrowthPct: 50,
		TypicalMarginPct: 10, MinMarginPct: -20, MaxMarginPct: 25,
		RevenueMultiple: 1.5, EBITDAMultiple: 8, EBITMultiple: 10,
		Beta: 1.00, RiskPremium: 0.010,
		PreRevenueBaseline: 750_000,
	},
}

// stagePremiumTable maps stage to its risk premium. Values decrease
// monotonically from ideation to mature.
var stagePremiumTable = map[models.Stage]float64{
	models.StageIdeation:     0.080,
	models.StagePreRevenue:   0.060,
	models.StageEarlyRevenue: 0.045,
	models.StageGrowth:       0.030,
	models.StageMature:       0.015,
}

// stageMultiplierTable scales comparable multiples by maturity: scaling-stage
// companies command richer multiples, ideation-stage companies a steep haircut.
var stageMultiplierTable = map[models.Stage]float64{
	models.StageIdeation:     0.40,
	models.StagePreRevenue:   0.60,
	models.StageEarlyRevenue: 0.85,
	models.StageGrowth:       1.15,
	models.StageMature:       1.05,
}

// SectorLookup returns the benchmark row for the sector, falling back to the
// default bucket for anything unknown.
func SectorLookup(s models.Sector) SectorBenchmark {
	if row, ok := sectorTable[s]; ok {
		return row
	}
	return sectorTable[models.SectorOther]
}

// StageMultiplier returns the comparables multiplier for the stage (1.0 for
// anything unknown).
func StageMultiplier(s models.Stage) float64 {
	if m, ok := stageMultiplierTable[s]; ok {
		return m
	}
	return 1.0
}
