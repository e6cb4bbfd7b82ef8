package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tablestar/internal/archive"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tablestar", version)
		fmt.Println("history archive format", archive.Version)
	},
}
