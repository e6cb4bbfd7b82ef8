package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the database, including history and the LLM log",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveDBPath(cmd)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			fmt.Println("Nothing to reset.")
			return nil
		}
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			if !confirm(cmd.InOrStdin(), fmt.Sprintf("Delete %s and all practice history?", path)) {
				fmt.Println("Cancelled.")
				return nil
			}
		}
		// SQLite's WAL and shared-memory files go with the database.
		for _, p := range []string{path, path + "-wal", path + "-shm"} {
			if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove %s: %w", p, err)
			}
		}
		fmt.Println("All data removed.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
