package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tablestar/internal/tutor"
)

var askCmd = &cobra.Command{
	Use:     "ask <question...>",
	Short:   "Ask the times tables tutor a question",
	Example: `  tablestar ask why is 6 times 7 the same as 7 times 6`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		provider, err := requireProvider(cmd.Context(), fc, s.EventRepo())
		if err != nil {
			return err
		}

		reply, err := tutor.NewTutor(provider).Reply(cmd.Context(), nil, strings.Join(args, " "))
		fmt.Println(reply)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Warning:", err)
		}
		return nil
	},
}
