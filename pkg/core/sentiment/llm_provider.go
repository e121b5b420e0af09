package sentiment

import (
	"context"
	"fmt"

	"github.com/camayank/StartupValuator-sub000/pkg/core/llm"
	"github.com/camayank/StartupValuator-sub000/pkg/core/utils"
	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

const sentimentSystemPrompt = `You are a market analyst. Respond ONLY with a JSON object of the form:
{
  "overall_score": <float 0..1>,
  "sentiment_by_factor": {
    "market_conditions": <float 0..1>,
    "industry_trends": <float 0..1>,
    "competitive_landscape": <float 0..1>,
    "regulatory_environment": <float 0..1>
  },
  "insights": [<strings>],
  "risk_factors": [<strings>],
  "opportunities": [<strings>]
}
A score of 0.5 means neutral. Do not include any other text.`

// LLMProvider implements Provider on top of an llm.Provider.
type LLMProvider struct {
	provider llm.Provider
	model    string
}

// NewLLMProvider wraps a model provider as a sentiment source.
func NewLLMProvider(provider llm.Provider, model string) *LLMProvider {
	return &LLMProvider{provider: provider, model: model}
}

// GetMarketSentiment asks the model for sentiment scores and decodes them
// leniently. Any failure is returned to the caller, which substitutes the
// neutral score.
func (p *LLMProvider) GetMarketSentiment(ctx context.Context, sector models.Sector, stage models.Stage, region models.Region) (*Score, error) {
	prompt := fmt.Sprintf(
		"Assess the current market sentiment for a %s-stage private company in the %s sector operating in %s.",
		stage, sector, region)

	options := map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	}
	if p.model != "" {
		options["model"] = p.model
	}

	raw, err := p.provider.GenerateResponse(ctx, prompt, sentimentSystemPrompt, options)
	if err != nil {
		return nil, fmt.Errorf("sentiment provider: %w", err)
	}

	var score Score
	if err := utils.DecodeLenient(raw, &score); err != nil {
		return nil, fmt.Errorf("sentiment payload: %w", err)
	}
	for i, s := range score.Insights {
		score.Insights[i] = utils.CleanNarrative(s)
	}
	return Clamp(&score), nil
}
