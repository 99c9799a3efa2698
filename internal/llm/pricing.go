package llm

// modelAliases maps the short names accepted in configuration to model ids.
// Names not listed are sent as-is.
var modelAliases = map[string]string{
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"claude-sonnet": "claude-sonnet-4-20250514",
	"gemini-flash":  "gemini-2.5-flash",
	"gemini-pro":    "gemini-2.5-pro",
}

func resolveModel(name string) string {
	if id, ok := modelAliases[name]; ok {
		return id
	}
	return name
}

// ModelCost holds USD pricing per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of a call with the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a resolved model id, or nil if unknown.
// OpenRouter ids ("google/gemini-2.5-flash") are priced as their upstream
// model.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	for i := len(modelID) - 1; i >= 0; i-- {
		if modelID[i] == '/' {
			if c, ok := modelCosts[modelID[i+1:]]; ok {
				return &c
			}
			break
		}
	}
	return nil
}

// Prices for the aliased models and the OpenAI defaults.
var modelCosts = map[string]ModelCost{
	"gemini-2.5-flash":          {0.3, 2.5},
	"gemini-2.5-pro":            {1.25, 10},
	"gpt-4o":                    {2.5, 10},
	"gpt-4o-mini":               {0.15, 0.6},
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-20250514":  {3, 15},
}
