package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider reaches OpenRouter's chat completions API. Model ids
// keep their vendor prefix, e.g. "google/gemini-2.5-flash".
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider for OpenRouter.
func NewOpenRouterProvider(cfg ProviderConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter: %w", errMissingKey)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}
	return &OpenRouterProvider{OpenAIProvider: newChatCompletions(cfg)}, nil
}
