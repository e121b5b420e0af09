package valuation

import (
	"fmt"

	"github.com/camayank/StartupValuator-sub000/pkg/core/benchmark"
	"github.com/camayank/StartupValuator-sub000/pkg/core/sentiment"
	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

// RiskFactor is one multiplicative discount in the chain. Retention is the
// share of value surviving that risk, in (0,1].
type RiskFactor struct {
	Name      string  `json:"name"`
	Retention float64 `json:"retention"`
	Rationale string  `json:"rationale"`
}

// RiskFactorProvider derives the factor chain from the profile and sentiment.
// It is pluggable so alternative scoring models can replace the built-in
// heuristics without touching the valuator.
type RiskFactorProvider interface {
	RiskFactors(p *models.BusinessProfile, s *sentiment.Score) []RiskFactor
}

// RiskDetail is the risk-adjusted method breakdown: every factor plus the
// running product, for explainability.
type RiskDetail struct {
	BaseValue          float64      `json:"base_value"`
	Factors            []RiskFactor `json:"factors"`
	CompositeRetention float64      `json:"composite_retention"`
	Value              float64      `json:"value"`
}

// CalculateRiskAdjusted starts from revenue x industry multiple (or the
// sector pre-revenue baseline) and applies the provider's factor chain.
func CalculateRiskAdjusted(revenueUSD float64, p *models.BusinessProfile, a *benchmark.FinancialAssumptions, s *sentiment.Score, provider RiskFactorProvider) *RiskDetail {
	base := revenueUSD * a.RevenueMultiple
	if revenueUSD <= 0 {
		base = benchmark.SectorLookup(p.Sector).PreRevenueBaseline * benchmark.StageMultiplier(p.Stage)
	}

	detail := &RiskDetail{BaseValue: base, CompositeRetention: 1.0}
	for _, f := range provider.RiskFactors(p, s) {
		f.Retention = clampRetention(f.Retention)
		detail.Factors = append(detail.Factors, f)
		detail.CompositeRetention *= f.Retention
	}
	detail.Value = base * detail.CompositeRetention
	return detail
}

// clampRetention forces a factor into (0,1]. A provider returning garbage
// must not zero out or inflate the valuation.
func clampRetention(v float64) float64 {
	if v <= 0 {
		return 0.05
	}
	if v > 1 {
		return 1
	}
	return v
}

// QualitativeRiskProvider is the built-in RiskFactorProvider: heuristic
// retentions seeded from the qualitative flags and nudged by market sentiment.
type QualitativeRiskProvider struct{}

var _ RiskFactorProvider = QualitativeRiskProvider{}

// RiskFactors returns the five standard factors in a stable order.
func (QualitativeRiskProvider) RiskFactors(p *models.BusinessProfile, s *sentiment.Score) []RiskFactor {
	if s == nil {
		s = sentiment.Neutral()
	}
	flags := p.Qualitative
	if flags == nil {
		flags = &models.QualitativeFlags{}
	}

	market := 0.75 + 0.20*s.SentimentByFactor.MarketConditions
	marketWhy := fmt.Sprintf("market conditions sentiment %.2f", s.SentimentByFactor.MarketConditions)
	if flags.MarketValidated {
		market += 0.03
		marketWhy += "; market validation evidenced"
	}

	execution := 0.80
	execWhy := "baseline execution risk"
	if flags.ExperiencedTeam {
		execution = 0.90
		execWhy = "experienced founding team"
	}

	competitive := 0.75 + 0.20*s.SentimentByFactor.CompetitiveLandscape
	compWhy := fmt.Sprintf("competitive landscape sentiment %.2f", s.SentimentByFactor.CompetitiveLandscape)
	if flags.Differentiated {
		competitive += 0.04
		compWhy += "; defensible differentiation"
	}
	if flags.IPProtected {
		competitive += 0.03
		compWhy += "; IP protection in place"
	}

	// Financial risk recedes with maturity.
	financial := 0.82 + 0.03*float64(p.Stage.Order())
	finWhy := fmt.Sprintf("%s stage financial resilience", p.Stage)
	if flags.ScalableModel {
		financial += 0.02
		finWhy += "; scalable business model"
	}

	regulatory := 0.88 + 0.20*(s.SentimentByFactor.RegulatoryEnvironment-0.5)
	regWhy := fmt.Sprintf("regulatory environment sentiment %.2f", s.SentimentByFactor.RegulatoryEnvironment)
	if flags.RegulatoryCompliant {
		regulatory += 0.04
		regWhy += "; compliance already established"
	}

	return []RiskFactor{
		{Name: "market", Retention: market, Rationale: marketWhy},
		{Name: "execution", Retention: execution, Rationale: execWhy},
		{Name: "competitive", Retention: competitive, Rationale: compWhy},
		{Name: "financial", Retention: financial, Rationale: finWhy},
		{Name: "regulatory", Retention: regulatory, Rationale: regWhy},
	}
}
