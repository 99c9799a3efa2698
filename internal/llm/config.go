package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// envPrefix prefixes every game-specific environment variable.
const envPrefix = "MATHEXPLORER_"

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use. Values: "gemini",
	// "anthropic", "openai", "openrouter", "mock".
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 20s.
	Timeout time.Duration
}

// ProviderConfig holds the settings shared by every hosted provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional API endpoint override
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults. Gemini is the
// default provider.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// providers lists the hosted providers in discovery order.
var providers = []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter}

func knownProvider(name string) bool {
	for _, p := range providers {
		if p == name {
			return true
		}
	}
	return false
}

// section returns the ProviderConfig for name, or nil.
func (c *Config) section(name string) *ProviderConfig {
	switch name {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// envName returns the game-specific variable for a provider setting, e.g.
// MATHEXPLORER_GEMINI_API_KEY.
func envName(provider, setting string) string {
	return envPrefix + strings.ToUpper(provider) + "_" + setting
}

// ConfigFromEnv builds a Config from MATHEXPLORER_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv(envPrefix + "LLM_PROVIDER"); p != "" {
		cfg.Provider = strings.ToLower(p)
	}

	for _, name := range providers {
		sec := cfg.section(name)
		if k := os.Getenv(envName(name, "API_KEY")); k != "" {
			sec.APIKey = k
		}
		if m := os.Getenv(envName(name, "MODEL")); m != "" {
			sec.Model = m
		}
		if u := os.Getenv(envName(name, "BASE_URL")); u != "" {
			sec.BaseURL = u
		}
	}

	return cfg
}

// standardKeyEnv maps providers to their conventional API key variables.
var standardKeyEnv = map[string]string{
	ProviderGemini:     "GEMINI_API_KEY",
	ProviderOpenAI:     "OPENAI_API_KEY",
	ProviderAnthropic:  "ANTHROPIC_API_KEY",
	ProviderOpenRouter: "OPENROUTER_API_KEY",
}

// DiscoverConfig checks standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, name := range providers {
		if k := os.Getenv(standardKeyEnv[name]); k != "" {
			cfg.Provider = name
			cfg.section(name).APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// ResolveConfig picks the configuration to use: explicit MATHEXPLORER_*
// settings first, then the standard provider variables, then keys saved in
// keys. keys may be nil. It returns ErrNotConfigured when nothing is found.
func ResolveConfig(keys *KeyStore) (Config, error) {
	cfg := ConfigFromEnv()
	if cfg.Provider == ProviderMock || cfg.Validate() == nil {
		return cfg, nil
	}
	explicit := os.Getenv(envPrefix+"LLM_PROVIDER") != ""

	if !explicit {
		if discovered, ok := DiscoverConfig(); ok {
			return discovered, nil
		}
	}

	if keys != nil {
		candidates := providers
		if explicit {
			candidates = []string{cfg.Provider}
		}
		for _, name := range candidates {
			k, err := keys.APIKey(name)
			if err != nil {
				return Config{}, err
			}
			if k != "" {
				cfg.Provider = name
				cfg.section(name).APIKey = k
				return cfg, nil
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	return cfg, nil
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	sec := c.section(c.Provider)
	if sec == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if sec.APIKey == "" {
		return fmt.Errorf("%s is required for the %s provider", envName(c.Provider, "API_KEY"), c.Provider)
	}
	return nil
}
