package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/tablestar/internal/app"
	"github.com/abhisek/tablestar/internal/config"
	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/session"
	"github.com/abhisek/tablestar/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI. With
// startRound set the practice settings come from the play flags and the
// round begins immediately.
func runApp(cmd *cobra.Command, startRound bool) error {
	fc, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	practice, err := fc.Drill()
	if err != nil {
		return err
	}
	name := fc.UserName()
	if startRound {
		if practice, err = applyPlayFlags(cmd, practice); err != nil {
			return err
		}
		if n, _ := cmd.Flags().GetString("name"); n != "" {
			name = n
		}
	}

	opts := app.Options{
		Practice:   practice,
		UserName:   name,
		StartRound: startRound,
	}

	var events store.EventRepo
	st, err := openStore(cmd)
	if err != nil {
		// Practice still works; rounds just are not kept.
		fmt.Fprintln(os.Stderr, "Warning:", err)
		fmt.Fprintln(os.Stderr, "History will not be saved this time.")
		opts.Recorder = session.NewMemoryRecorder()
	} else {
		defer st.Close()
		opts.Recorder = st.HistoryRepo()
		events = st.EventRepo()
	}

	opts.Provider = buildProvider(cmd.Context(), fc, events)
	return app.Run(opts)
}

// applyPlayFlags overlays the play command's flags on cfg.
func applyPlayFlags(cmd *cobra.Command, cfg drill.Config) (drill.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("from") {
		cfg.StartTable, _ = flags.GetInt("from")
	}
	if flags.Changed("to") {
		cfg.EndTable, _ = flags.GetInt("to")
	}
	if flags.Changed("count") {
		cfg.QuestionCount, _ = flags.GetInt("count")
	}
	if flags.Changed("difficulty") {
		d, _ := flags.GetString("difficulty")
		cfg.Difficulty = drill.Difficulty(d)
	}
	if flags.Changed("ops") {
		names, _ := flags.GetStringSlice("ops")
		ops, err := config.ParseOperations(names)
		if err != nil {
			return drill.Config{}, err
		}
		cfg.Operations = ops
	}
	if flags.Changed("types") {
		names, _ := flags.GetStringSlice("types")
		kinds, err := config.ParseKinds(names)
		if err != nil {
			return drill.Config{}, err
		}
		cfg.Kinds = kinds
	}
	if err := cfg.Validate(); err != nil {
		return drill.Config{}, fmt.Errorf("invalid practice settings: %w", err)
	}
	return cfg, nil
}
