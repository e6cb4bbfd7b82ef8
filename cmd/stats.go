package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tablestar/internal/session"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics per player",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		items, err := s.HistoryRepo().LoadAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("No rounds played yet.")
			return nil
		}

		players := playerStats(items)
		fmt.Println("Rounds by Player")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-16s  %6s  %9s  %6s  %8s  %s\n", "Player", "Rounds", "Questions", "Best", "Average", "Last rank")
		fmt.Println(strings.Repeat("─", 72))
		for _, p := range players {
			fmt.Printf("%s  %6d  %9d  %6d  %7.0f%%  %s\n",
				column(p.name, 16), p.rounds, p.questions, p.best, p.average(), p.lastRank)
		}

		fmt.Println()
		fmt.Println("Trickiest Facts")
		fmt.Println(strings.Repeat("─", 72))
		missed := missedFacts(items, 5)
		if len(missed) == 0 {
			fmt.Println("None yet, every answer was right!")
		}
		for _, m := range missed {
			fmt.Printf("  %-20s  missed %d time(s)\n", m.fact, m.count)
		}
		return nil
	},
}

type playerSummary struct {
	name      string
	rounds    int
	questions int
	best      int
	percent   float64 // sum over rounds
	lastRank  session.Rank
}

func (p playerSummary) average() float64 {
	if p.rounds == 0 {
		return 0
	}
	return p.percent / float64(p.rounds)
}

// playerStats groups items (newest first) by player name.
func playerStats(items []session.HistoryItem) []playerSummary {
	byName := map[string]*playerSummary{}
	var order []string
	for _, it := range items {
		p, ok := byName[it.UserName]
		if !ok {
			p = &playerSummary{name: it.UserName, lastRank: it.Rank()}
			byName[it.UserName] = p
			order = append(order, it.UserName)
		}
		p.rounds++
		p.questions += it.Questions
		p.best = max(p.best, it.Score)
		p.percent += it.Percent()
	}
	out := make([]playerSummary, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out
}

type missedFact struct {
	fact  string
	count int
}

// missedFacts returns the limit facts answered wrongly most often.
func missedFacts(items []session.HistoryItem, limit int) []missedFact {
	counts := map[string]int{}
	for _, it := range items {
		for _, r := range it.Results {
			if r.Correct || r.Question == nil {
				continue
			}
			counts[r.Question.Operands().Equation()]++
		}
	}
	out := make([]missedFact, 0, len(counts))
	for f, n := range counts {
		out = append(out, missedFact{fact: f, count: n})
	}
	slices.SortFunc(out, func(a, b missedFact) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return strings.Compare(a.fact, b.fact)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
