package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/tablestar/internal/config"
	"github.com/abhisek/tablestar/internal/llm"
	"github.com/abhisek/tablestar/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "tablestar",
	Short: "Times tables practice for kids",
	Long:  "TableStar is a terminal app that helps children practice the 2 to 9 times tables.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TABLESTAR_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides TABLESTAR_CONFIG env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TABLESTAR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p
	}
	return config.DefaultDBPath()
}

// resolveConfigPath works like resolveDBPath for the config file.
func resolveConfigPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

func loadConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fc, err := config.LoadConfig(resolveConfigPath(cmd))
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("load config: %w", err)
	}
	return fc, nil
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	st, err := store.Open(resolveDBPath(cmd))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// buildProvider returns the configured model provider, or nil with a
// warning when none is usable. events may be nil.
func buildProvider(ctx context.Context, fc config.FileConfig, events store.EventRepo) llm.Provider {
	provider, err := llm.NewProvider(ctx, fc.LLMSettings(), events)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		return nil
	}
	return provider
}

// requireProvider is buildProvider for commands that cannot run without
// a model.
func requireProvider(ctx context.Context, fc config.FileConfig, events store.EventRepo) (llm.Provider, error) {
	provider, err := llm.NewProvider(ctx, fc.LLMSettings(), events)
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	return provider, nil
}
