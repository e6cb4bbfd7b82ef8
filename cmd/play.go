package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/tablestar/internal/drill"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice round",
	Long: `Start a practice round right away. Flags override the [practice]
section of the config file. Operations are mul and div; question types
are calc, missing, compare, tf, sign and word.`,
	Example: `  tablestar play --from 6 --to 8 --count 20
  tablestar play --ops mul --types calc,missing`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}

func init() {
	playCmd.Flags().Int("from", drill.MinTable, "First table to practice")
	playCmd.Flags().Int("to", drill.MaxTable, "Last table to practice")
	playCmd.Flags().Int("count", 10, "Number of questions (5, 10 or 20)")
	playCmd.Flags().String("difficulty", string(drill.DifficultyMedium), "Difficulty label: easy, medium or hard")
	playCmd.Flags().StringSlice("ops", nil, "Operations to practice")
	playCmd.Flags().StringSlice("types", nil, "Question types to ask")
	playCmd.Flags().String("name", "", "Player name")
}
