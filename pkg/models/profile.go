// Package models holds the shared request-side types for the valuation engine.
// A BusinessProfile is the single input contract: it is validated once at the
// boundary and treated as immutable everywhere downstream.
package models

import "fmt"

// Sector classifies the business for benchmark lookups.
type Sector string

const (
	SectorTechnology    Sector = "technology"
	SectorHealthcare    Sector = "healthcare"
	SectorBiotech       Sector = "biotech"
	SectorFintech       Sector = "fintech"
	SectorEcommerce     Sector = "ecommerce"
	SectorManufacturing Sector = "manufacturing"
	SectorServices      Sector = "services"
	SectorEnergy        Sector = "energy"
	SectorOther         Sector = "other"
)

// AllSectors lists every supported sector in a stable order.
func AllSectors() []Sector {
	return []Sector{
		SectorTechnology, SectorHealthcare, SectorBiotech, SectorFintech,
		SectorEcommerce, SectorManufacturing, SectorServices, SectorEnergy,
		SectorOther,
	}
}

// Stage is the company maturity stage, ordered from ideation to mature.
type Stage string

const (
	StageIdeation     Stage = "ideation"
	StagePreRevenue   Stage = "pre_revenue"
	StageEarlyRevenue Stage = "early_revenue"
	StageGrowth       Stage = "growth"
	StageMature       Stage = "mature"
)

// stageOrder maps each stage to its position in the maturity ordering.
var stageOrder = map[Stage]int{
	StageIdeation:     0,
	StagePreRevenue:   1,
	StageEarlyRevenue: 2,
	StageGrowth:       3,
	StageMature:       4,
}

// Order returns the maturity rank of the stage (0 = ideation), or -1 if unknown.
func (s Stage) Order() int {
	if o, ok := stageOrder[s]; ok {
		return o
	}
	return -1
}

// IsLaterStage reports whether the company is growth-stage or beyond.
func (s Stage) IsLaterStage() bool {
	return s.Order() >= stageOrder[StageGrowth]
}

// Region selects the macro-rate defaults (risk-free rate, market risk premium).
type Region string

const (
	RegionNorthAmerica  Region = "north_america"
	RegionEurope        Region = "europe"
	RegionAsiaPacific   Region = "asia_pacific"
	RegionLatinAmerica  Region = "latin_america"
	RegionMiddleEastAfr Region = "middle_east_africa"
)

// Currency is an ISO-4217 style code. USD is the engine's base currency.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyINR Currency = "INR"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencySGD Currency = "SGD"
)

// QualitativeFlags are the optional yes/no signals collected alongside the
// financials. They only influence the risk-factor chain, never the DCF math.
type QualitativeFlags struct {
	IPProtected         bool `json:"ip_protected"`
	ExperiencedTeam     bool `json:"experienced_team"`
	MarketValidated     bool `json:"market_validated"`
	Differentiated      bool `json:"differentiated"`
	RegulatoryCompliant bool `json:"regulatory_compliant"`
	ScalableModel       bool `json:"scalable_model"`
}

// BusinessProfile is the validated input to a valuation computation.
// Revenue is annual and expressed in Currency. GrowthRate and OperatingMargin
// are percentages (40 means 40%); nil means "not provided", in which case the
// assumptions engine substitutes the sector-typical value.
type BusinessProfile struct {
	Sector          Sector            `json:"sector"`
	Stage           Stage             `json:"stage"`
	Region          Region            `json:"region"`
	Currency        Currency          `json:"currency"`
	Revenue         float64           `json:"revenue"`
	GrowthRate      *float64          `json:"growth_rate,omitempty"`
	OperatingMargin *float64          `json:"operating_margin,omitempty"`
	Qualitative     *QualitativeFlags `json:"qualitative,omitempty"`
}

// ValidationError reports a single malformed or out-of-range profile field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Message)
}

// Validate checks structural invariants on the profile. Benchmark-range checks
// (e.g. growth outside the sector's typical band) are warnings, not errors, and
// live in the assumptions engine.
func (p *BusinessProfile) Validate() error {
	valid := false
	for _, s := range AllSectors() {
		if p.Sector == s {
			valid = true
			break
		}
	}
	if !valid {
		return &ValidationError{Field: "sector", Message: fmt.Sprintf("unknown sector %q", p.Sector)}
	}
	if p.Stage.Order() < 0 {
		return &ValidationError{Field: "stage", Message: fmt.Sprintf("unknown stage %q", p.Stage)}
	}
	switch p.Region {
	case RegionNorthAmerica, RegionEurope, RegionAsiaPacific, RegionLatinAmerica, RegionMiddleEastAfr:
	default:
		return &ValidationError{Field: "region", Message: fmt.Sprintf("unknown region %q", p.Region)}
	}
	if p.Currency == "" {
		return &ValidationError{Field: "currency", Message: "currency is required"}
	}
	if p.Revenue < 0 {
		return &ValidationError{Field: "revenue", Message: "revenue must be >= 0"}
	}
	if p.GrowthRate != nil && (*p.GrowthRate < -100 || *p.GrowthRate > 1000) {
		return &ValidationError{Field: "growth_rate", Message: "growth rate must be within [-100, 1000]"}
	}
	if p.OperatingMargin != nil && (*p.OperatingMargin < -100 || *p.OperatingMargin > 100) {
		return &ValidationError{Field: "operating_margin", Message: "operating margin must be within [-100, 100]"}
	}
	return nil
}

// HasRevenue reports whether the profile carries a meaningful revenue figure.
func (p *BusinessProfile) HasRevenue() bool { return p.Revenue > 0 }
