package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/llm"
)

// FileConfig mirrors config.toml.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	LLM      LLMConfig      `toml:"llm"`
	Telegram TelegramConfig `toml:"telegram"`
}

// PracticeConfig holds session defaults. Unset keys keep the built-in
// defaults.
type PracticeConfig struct {
	Start      *int     `toml:"start"`
	End        *int     `toml:"end"`
	Difficulty *string  `toml:"difficulty"`
	Count      *int     `toml:"count"`
	Operations []string `toml:"operations"`
	Types      []string `toml:"types"`
	Name       *string  `toml:"name"`
}

// LLMConfig picks the model provider. API keys come from the environment.
type LLMConfig struct {
	Provider *string `toml:"provider"`
	Model    *string `toml:"model"`
}

// TelegramConfig configures the bot. The token may also be set with
// TABLESTAR_TELEGRAM_TOKEN.
type TelegramConfig struct {
	Token *string `toml:"token"`
}

// LoadConfig reads path. A missing file yields an empty config.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return FileConfig{}, fmt.Errorf("decode config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Drill merges the practice section over drill.DefaultConfig and validates
// the result.
func (f FileConfig) Drill() (drill.Config, error) {
	cfg := drill.DefaultConfig()
	p := f.Practice
	if p.Start != nil {
		cfg.StartTable = *p.Start
	}
	if p.End != nil {
		cfg.EndTable = *p.End
	}
	if p.Difficulty != nil {
		cfg.Difficulty = drill.Difficulty(strings.ToLower(*p.Difficulty))
	}
	if p.Count != nil {
		cfg.QuestionCount = *p.Count
	}
	if p.Operations != nil {
		ops, err := ParseOperations(p.Operations)
		if err != nil {
			return drill.Config{}, err
		}
		cfg.Operations = ops
	}
	if p.Types != nil {
		kinds, err := ParseKinds(p.Types)
		if err != nil {
			return drill.Config{}, err
		}
		cfg.Kinds = kinds
	}
	if err := cfg.Validate(); err != nil {
		return drill.Config{}, fmt.Errorf("practice settings: %w", err)
	}
	return cfg, nil
}

// UserName returns the configured player name, or "".
func (f FileConfig) UserName() string {
	if f.Practice.Name == nil {
		return ""
	}
	return strings.TrimSpace(*f.Practice.Name)
}

// LLMSettings resolves provider settings. Later sources win: built-in
// defaults, vendor API key variables, the [llm] section, then TABLESTAR_*
// variables.
func (f FileConfig) LLMSettings() llm.Config {
	cfg, ok := llm.DiscoverConfig()
	if !ok {
		cfg = llm.DefaultConfig()
	}
	if f.LLM.Provider != nil && *f.LLM.Provider != "" {
		cfg.Provider = strings.ToLower(*f.LLM.Provider)
	}
	if f.LLM.Model != nil {
		cfg.SetModel(*f.LLM.Model)
	}
	llm.ApplyEnv(&cfg)
	return cfg
}

// TelegramToken returns TABLESTAR_TELEGRAM_TOKEN or the file's token.
func (f FileConfig) TelegramToken() string {
	if t := os.Getenv("TABLESTAR_TELEGRAM_TOKEN"); t != "" {
		return t
	}
	if f.Telegram.Token != nil {
		return *f.Telegram.Token
	}
	return ""
}

// ParseOperations parses names like "mul", "x" or "divide", dropping
// duplicates.
func ParseOperations(names []string) ([]drill.Operation, error) {
	var ops []drill.Operation
	for _, n := range names {
		op, err := drill.ParseOperation(n)
		if err != nil {
			return nil, &drill.ConfigError{Field: "operations", Message: err.Error()}
		}
		if !slices.Contains(ops, op) {
			ops = append(ops, op)
		}
	}
	if len(ops) == 0 {
		return nil, &drill.ConfigError{Field: "operations", Message: "at least one is required"}
	}
	return ops, nil
}

// ParseKinds parses question type names, dropping duplicates.
func ParseKinds(names []string) ([]drill.Kind, error) {
	var kinds []drill.Kind
	for _, n := range names {
		k, err := drill.ParseKind(n)
		if err != nil {
			return nil, &drill.ConfigError{Field: "question types", Message: err.Error()}
		}
		if !slices.Contains(kinds, k) {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return nil, &drill.ConfigError{Field: "question types", Message: "at least one is required"}
	}
	return kinds, nil
}
