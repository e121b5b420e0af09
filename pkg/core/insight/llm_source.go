package insight

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/camayank/StartupValuator-sub000/pkg/core/llm"
	"github.com/camayank/StartupValuator-sub000/pkg/core/utils"
	"github.com/camayank/StartupValuator-sub000/pkg/models"
)

const insightSystemPrompt = `You are a startup valuation analyst. Given a business profile, respond ONLY with a JSON object:
{
  "adjustment_factor": <float > 0, a multiplier on annual revenue expressing the company's fair value>,
  "factors": {<factor name>: <float weight>},
  "commentary": [<short strings explaining the adjustment>]
}
An adjustment_factor of 3.0 means the company is worth roughly 3x annual revenue. Do not include any other text.`

// LLMSource implements Source on top of an llm.Provider.
type LLMSource struct {
	provider llm.Provider
	model    string
}

// NewLLMSource wraps a model provider as the insight collaborator.
func NewLLMSource(provider llm.Provider, model string) *LLMSource {
	return &LLMSource{provider: provider, model: model}
}

// GetExternalValuationInsight asks the model for an adjustment factor. Errors
// bubble up to the Adapter, which degrades the method.
func (s *LLMSource) GetExternalValuationInsight(ctx context.Context, p *models.BusinessProfile) (*Insight, error) {
	profileJSON, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}

	options := map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	}
	if s.model != "" {
		options["model"] = s.model
	}

	raw, err := s.provider.GenerateResponse(ctx,
		fmt.Sprintf("Business profile:\n%s", profileJSON),
		insightSystemPrompt, options)
	if err != nil {
		return nil, err
	}

	var ins Insight
	if err := utils.DecodeLenient(raw, &ins); err != nil {
		return nil, err
	}
	for i, c := range ins.Commentary {
		ins.Commentary[i] = utils.CleanNarrative(c)
	}
	return &ins, nil
}
