package llm

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tablestar/internal/store"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"TABLESTAR_LLM_PROVIDER", "TABLESTAR_GEMINI_API_KEY", "TABLESTAR_OPENAI_API_KEY",
		"TABLESTAR_ANTHROPIC_API_KEY", "TABLESTAR_OPENROUTER_API_KEY", "TABLESTAR_OPENAI_MODEL",
	} {
		t.Setenv(k, "")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "gemini without a key")

	cfg.Gemini.APIKey = "g"
	assert.NoError(t, cfg.Validate())

	cfg.Provider = ProviderOpenRouter
	assert.ErrorContains(t, cfg.Validate(), "TABLESTAR_OPENROUTER_API_KEY")

	cfg.Provider = ProviderMock
	assert.NoError(t, cfg.Validate())

	cfg.Provider = "llama"
	assert.ErrorContains(t, cfg.Validate(), "unknown LLM provider")
}

func TestConfigFromEnv(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("TABLESTAR_LLM_PROVIDER", "openai")
	t.Setenv("TABLESTAR_OPENAI_API_KEY", "sk-test")
	t.Setenv("TABLESTAR_OPENAI_MODEL", "gpt-4.1-mini")

	cfg := ConfigFromEnv()
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, ProviderConfig{APIKey: "sk-test", Model: "gpt-4.1-mini"}, cfg.Selected())
	assert.NoError(t, cfg.Validate())
}

func TestDiscoverConfig(t *testing.T) {
	clearKeyEnv(t)
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENROUTER_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "a", cfg.Anthropic.APIKey)

	t.Setenv("GEMINI_API_KEY", "g")
	cfg, _ = DiscoverConfig()
	assert.Equal(t, ProviderGemini, cfg.Provider, "gemini wins when several keys are set")
}

func TestSetModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderAnthropic
	cfg.SetModel("claude-sonnet")
	cfg.SetModel("")
	assert.Equal(t, "claude-sonnet", cfg.Anthropic.Model)
	assert.Equal(t, "gemini-flash", cfg.Gemini.Model)
}

func TestNewProvider_WrapsWithLogging(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.OpenAI.APIKey = "k"
	p, err := NewProvider(context.Background(), cfg, s.EventRepo())
	require.NoError(t, err)

	timeout, ok := p.(*TimeoutProvider)
	require.True(t, ok)
	retry, ok := timeout.inner.(*RetryProvider)
	require.True(t, ok)
	_, ok = retry.inner.(*LoggingProvider)
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", p.ModelID())

	cfg.Provider = ProviderMock
	p, err = NewProvider(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	cfg.Provider = ProviderAnthropic
	_, err = NewProvider(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	mock := NewMockProvider(
		MockResponse{Text: "You got it!", Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: &ErrRateLimit{}},
	)
	p := WithLogging(mock, "mock", s.EventRepo())
	ctx := WithPurpose(context.Background(), PurposeTutor)

	_, err = p.Generate(ctx, Request{System: "sys", Messages: []Message{UserMessage("2x2?")}})
	require.NoError(t, err)
	_, err = p.Generate(ctx, textReq())
	require.Error(t, err)

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	failed, ok := events[0], events[1]
	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "rate limited")
	assert.True(t, ok.Success)
	assert.Equal(t, PurposeTutor, ok.Purpose)
	assert.Equal(t, "mock", ok.Provider)
	assert.Equal(t, 10, ok.InputTokens)
	assert.Equal(t, "You got it!", ok.ResponseBody)
	assert.Contains(t, ok.RequestBody, "[system]\nsys")
}
