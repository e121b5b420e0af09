// Package sentiment defines the market-sentiment collaborator contract and a
// neutral fallback. Scores are advisory: the engine tolerates any provider
// failure by substituting the neutral score.
package sentiment

import (
	"context"

	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

// FactorScores breaks overall sentiment into the four tracked dimensions.
// Each score is in [0,1]; 0.5 is neutral.
type FactorScores struct {
	MarketConditions      float64 `json:"market_conditions"`
	IndustryTrends        float64 `json:"industry_trends"`
	CompetitiveLandscape  float64 `json:"competitive_landscape"`
	RegulatoryEnvironment float64 `json:"regulatory_environment"`
}

// Score is the market-sentiment payload consumed by the engine.
type Score struct {
	OverallScore      float64      `json:"overall_score"`
	SentimentByFactor FactorScores `json:"sentiment_by_factor"`
	Insights          []string     `json:"insights,omitempty"`
	RiskFactors       []string     `json:"risk_factors,omitempty"`
	Opportunities     []string     `json:"opportunities,omitempty"`
}

// Provider supplies market sentiment for a (sector, stage, region) triple.
type Provider interface {
	GetMarketSentiment(ctx context.Context, sector models.Sector, stage models.Stage, region models.Region) (*Score, error)
}

// Neutral returns the no-signal score used whenever a provider is missing,
// failing, or returning malformed data.
func Neutral() *Score {
	return &Score{
		OverallScore: 0.5,
		SentimentByFactor: FactorScores{
			MarketConditions:      0.5,
			IndustryTrends:        0.5,
			CompetitiveLandscape:  0.5,
			RegulatoryEnvironment: 0.5,
		},
	}
}

// StaticProvider always returns the neutral score. Used in tests and when no
// LLM backend is configured.
type StaticProvider struct{}

// GetMarketSentiment implements Provider.
func (StaticProvider) GetMarketSentiment(_ context.Context, _ models.Sector, _ models.Stage, _ models.Region) (*Score, error) {
	return Neutral(), nil
}

// Clamp normalizes a provider score into valid ranges so a sloppy
// collaborator cannot push factors outside [0,1].
func Clamp(s *Score) *Score {
	clamp01 := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	s.OverallScore = clamp01(s.OverallScore)
	s.SentimentByFactor.MarketConditions = clamp01(s.SentimentByFactor.MarketConditions)
	s.SentimentByFactor.IndustryTrends = clamp01(s.SentimentByFactor.IndustryTrends)
	s.SentimentByFactor.CompetitiveLandscape = clamp01(s.SentimentByFactor.CompetitiveLandscape)
	s.SentimentByFactor.RegulatoryEnvironment = clamp01(s.SentimentByFactor.RegulatoryEnvironment)
	return s
}
