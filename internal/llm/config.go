package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the model provider.
type Config struct {
	Provider string

	Gemini     ProviderConfig
	OpenAI     ProviderConfig
	Anthropic  ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout bounds one call including retries.
	Timeout time.Duration
}

// ProviderConfig holds credentials and model choice for one provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible endpoints and tests
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig uses Gemini Flash with three attempts and a 30s budget.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.5-flash", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// Selected returns the settings of the chosen provider.
func (c Config) Selected() ProviderConfig {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAI
	case ProviderAnthropic:
		return c.Anthropic
	case ProviderOpenRouter:
		return c.OpenRouter
	default:
		return c.Gemini
	}
}

// SetModel overrides the model of the chosen provider.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	switch c.Provider {
	case ProviderOpenAI:
		c.OpenAI.Model = model
	case ProviderAnthropic:
		c.Anthropic.Model = model
	case ProviderOpenRouter:
		c.OpenRouter.Model = model
	case ProviderGemini:
		c.Gemini.Model = model
	}
}

// ConfigFromEnv reads TABLESTAR_* variables over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays TABLESTAR_* variables on cfg.
func ApplyEnv(cfg *Config) {
	if p := os.Getenv("TABLESTAR_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	readProviderEnv("GEMINI", &cfg.Gemini)
	readProviderEnv("OPENAI", &cfg.OpenAI)
	readProviderEnv("ANTHROPIC", &cfg.Anthropic)
	readProviderEnv("OPENROUTER", &cfg.OpenRouter)
}

func readProviderEnv(name string, pc *ProviderConfig) {
	if k := os.Getenv("TABLESTAR_" + name + "_API_KEY"); k != "" {
		pc.APIKey = k
	}
	if m := os.Getenv("TABLESTAR_" + name + "_MODEL"); m != "" {
		pc.Model = m
	}
	if u := os.Getenv("TABLESTAR_" + name + "_BASE_URL"); u != "" {
		pc.BaseURL = u
	}
}

// DiscoverConfig picks up the vendors' own API key variables and selects
// the first provider found in the order Gemini, OpenAI, Anthropic,
// OpenRouter. It reports false when none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	candidates := []struct {
		env      string
		provider string
		target   *ProviderConfig
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter},
	}
	found := false
	for _, c := range candidates {
		if k := os.Getenv(c.env); k != "" {
			c.target.APIKey = k
			if !found {
				cfg.Provider = c.provider
				found = true
			}
		}
	}
	if !found {
		return Config{}, false
	}
	return cfg, true
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	var envName string
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderGemini:
		envName = "GEMINI"
	case ProviderOpenAI:
		envName = "OPENAI"
	case ProviderAnthropic:
		envName = "ANTHROPIC"
	case ProviderOpenRouter:
		envName = "OPENROUTER"
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Selected().APIKey == "" {
		return fmt.Errorf("TABLESTAR_%s_API_KEY is required for the %s provider", envName, c.Provider)
	}
	return nil
}
