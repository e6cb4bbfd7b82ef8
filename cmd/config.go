package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/abhisek/tablestar/internal/config"
	"github.com/abhisek/tablestar/internal/drill"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveConfigPath(cmd)
		fc, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		practice, err := fc.Drill()
		if err != nil {
			return err
		}

		exists := "missing, using defaults"
		if _, err := os.Stat(path); err == nil {
			exists = "found"
		}
		fmt.Printf("Config file:  %s (%s)\n", path, exists)
		fmt.Printf("Database:     %s\n", resolveDBPath(cmd))
		fmt.Println()

		fmt.Println("[practice]")
		fmt.Printf("  name:        %s\n", orDash(fc.UserName()))
		fmt.Printf("  tables:      %d to %d\n", practice.StartTable, practice.EndTable)
		fmt.Printf("  count:       %d\n", practice.QuestionCount)
		fmt.Printf("  difficulty:  %s\n", practice.Difficulty)
		fmt.Printf("  operations:  %s\n", joinNames(practice.Operations))
		fmt.Printf("  types:       %s\n", joinNames(practice.Kinds))
		fmt.Println()

		llmCfg := fc.LLMSettings()
		sel := llmCfg.Selected()
		key := "not set"
		if sel.APIKey != "" {
			key = "set"
		}
		fmt.Println("[llm]")
		fmt.Printf("  provider:    %s\n", llmCfg.Provider)
		fmt.Printf("  model:       %s\n", sel.Model)
		fmt.Printf("  api key:     %s\n", key)
		if err := llmCfg.Validate(); err != nil {
			fmt.Printf("  status:      unavailable (%v)\n", err)
		} else {
			fmt.Println("  status:      ready")
		}
		fmt.Println()

		token := "not set"
		if fc.TelegramToken() != "" {
			token = "set"
		}
		fmt.Println("[telegram]")
		fmt.Printf("  token:       %s\n", token)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default practice settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveConfigPath(cmd)
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config: %w", err)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create config: %w", err)
		}
		defer f.Close()

		if err := toml.NewEncoder(f).Encode(defaultFileConfig()); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Println("Wrote", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

// defaultFileConfig spells out the built-in practice settings.
func defaultFileConfig() config.FileConfig {
	d := drill.DefaultConfig()
	difficulty := string(d.Difficulty)
	ops := make([]string, len(d.Operations))
	for i, op := range d.Operations {
		ops[i] = string(op)
	}
	kinds := make([]string, len(d.Kinds))
	for i, k := range d.Kinds {
		kinds[i] = string(k)
	}
	return config.FileConfig{
		Practice: config.PracticeConfig{
			Start:      &d.StartTable,
			End:        &d.EndTable,
			Difficulty: &difficulty,
			Count:      &d.QuestionCount,
			Operations: ops,
			Types:      kinds,
		},
	}
}

func joinNames[T ~string](vals []T) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = string(v)
	}
	return strings.Join(s, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
