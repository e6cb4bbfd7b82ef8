package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/tablestar/internal/archive"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect, clear, export and import practice history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent rounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		player, _ := cmd.Flags().GetString("player")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		items, err := s.HistoryRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("No rounds played yet.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-12s  %7s  %5s  %s\n",
			"ID", "Date", "Player", "Correct", "Score", "Rank")
		fmt.Println(strings.Repeat("─", 100))
		for _, it := range items {
			if player != "" && !strings.EqualFold(it.UserName, player) {
				continue
			}
			fmt.Printf("%-36s  %-16s  %s  %3d/%-3d  %5d  %s\n",
				it.ID,
				it.Date.Local().Format("2006-01-02 15:04"),
				column(it.UserName, 12),
				it.Correct(), it.Questions,
				it.Score,
				it.Rank(),
			)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every question of one round",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		it, err := s.HistoryRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if it == nil {
			return fmt.Errorf("round %s not found", args[0])
		}

		cfg := it.Config
		fmt.Printf("ID:        %s\n", it.ID)
		fmt.Printf("Player:    %s\n", it.UserName)
		fmt.Printf("Date:      %s\n", it.Date.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Tables:    %d to %d (%s)\n", cfg.StartTable, cfg.EndTable, cfg.Difficulty)
		fmt.Printf("Score:     %d (%d of %d correct, %.0f%%)\n", it.Score, it.Correct(), it.Questions, it.Percent())
		fmt.Printf("Rank:      %s\n", it.Rank())
		fmt.Println()

		for i, r := range it.Results {
			mark := "✓"
			if !r.Correct {
				mark = "✗"
			}
			fmt.Printf("%3d. %s %-28s  answered %-6s", i+1, mark, r.Question.Prompt(), r.Submitted)
			if !r.Correct {
				fmt.Printf("  (answer %s)", r.Question.CorrectAnswer())
			}
			fmt.Println()
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded round",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.HistoryRepo()
		n, err := repo.Count(cmd.Context())
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("History is already empty.")
			return nil
		}
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			if !confirm(cmd.InOrStdin(), fmt.Sprintf("Delete all %d rounds?", n)) {
				fmt.Println("Cancelled.")
				return nil
			}
		}
		if err := repo.ClearAll(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Deleted %d rounds.\n", n)
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write history to a JSON archive (- for stdout)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		items, err := s.HistoryRepo().LoadAll(cmd.Context())
		if err != nil {
			return err
		}

		if args[0] == "-" {
			return archive.Export(cmd.OutOrStdout(), items, time.Now())
		}
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create archive: %w", err)
		}
		if err := archive.Export(f, items, time.Now()); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close archive: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d rounds to %s\n", len(items), args[0])
		return nil
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add rounds from a JSON archive, skipping ones already present",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer f.Close()
			r = f
		}
		doc, err := archive.Import(r)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		added, err := archive.Restore(cmd.Context(), s.HistoryRepo(), doc.Items)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d of %d rounds (archive %s).\n", added, len(doc.Items), doc.Version)
		return nil
	},
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "Maximum number of rounds to show")
	historyListCmd.Flags().String("player", "", "Only show rounds by this player")
	historyClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyImportCmd)
}

// confirm asks a yes/no question on stdout and reads the answer from in.
// Piped input never confirms, so scripts must pass --yes.
func confirm(in io.Reader, question string) bool {
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(os.Stderr, "Not a terminal; pass --yes to confirm.")
		return false
	}
	fmt.Printf("%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
