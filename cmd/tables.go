package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/tablestar/internal/drill"
)

var tablesCmd = &cobra.Command{
	Use:   "tables [table...]",
	Short: "Print times tables",
	Long:  "Print the multiplication (or with --div, division) tables. With no arguments every table from 2 to 9 is printed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		op := drill.Multiply
		if div, _ := cmd.Flags().GetBool("div"); div {
			op = drill.Divide
		}

		tables, err := parseTables(args)
		if err != nil {
			return err
		}
		for i, t := range tables {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s table of %d\n", op.Label(), t)
			for m := drill.MinMultiplier; m <= drill.MaxMultiplier; m++ {
				f := drill.NewFact(op, t, m)
				fmt.Printf("  %3d %s %-2d = %d\n", f.Left, f.Op.Symbol(), f.Right, f.Result)
			}
		}
		return nil
	},
}

func init() {
	tablesCmd.Flags().Bool("div", false, "Print division tables")
}

func parseTables(args []string) ([]int, error) {
	if len(args) == 0 {
		out := make([]int, 0, drill.MaxTable-drill.MinTable+1)
		for t := drill.MinTable; t <= drill.MaxTable; t++ {
			out = append(out, t)
		}
		return out, nil
	}
	out := make([]int, 0, len(args))
	for _, a := range args {
		t, err := strconv.Atoi(a)
		if err != nil || t < drill.MinTable || t > drill.MaxTable {
			return nil, fmt.Errorf("invalid table %q: must be between %d and %d", a, drill.MinTable, drill.MaxTable)
		}
		out = append(out, t)
	}
	return out, nil
}
