package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/tutor"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <topic...>",
	Short: "Take an AI-generated quiz in the terminal",
	Example: `  tablestar quiz the 7 times table
  tablestar quiz --difficulty hard dividing by 9`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		difficulty, _ := cmd.Flags().GetString("difficulty")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		provider, err := requireProvider(cmd.Context(), fc, s.EventRepo())
		if err != nil {
			return err
		}

		fmt.Println("Thinking up some questions...")
		master := tutor.NewQuizMaster(provider, tutor.DefaultQuizMasterConfig())
		questions, err := master.Generate(cmd.Context(), strings.Join(args, " "), drill.Difficulty(difficulty))
		if err != nil {
			return err
		}
		return runQuiz(cmd.InOrStdin(), tutor.NewQuiz(questions))
	},
}

func init() {
	quizCmd.Flags().String("difficulty", string(drill.DifficultyMedium), "easy, medium or hard")
}

// runQuiz asks each question on stdout and reads answers as letters or
// numbers from in.
func runQuiz(in io.Reader, quiz *tutor.Quiz) error {
	sc := bufio.NewScanner(in)
	for q := quiz.Current(); q != nil; q = quiz.Current() {
		fmt.Printf("\nQuestion %d of %d: %s\n", quiz.Index()+1, len(quiz.Questions), q.Question)
		for i, o := range q.Options {
			fmt.Printf("  %c) %s\n", 'A'+i, o)
		}

		for !quiz.Answered() {
			fmt.Print("Your answer: ")
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return fmt.Errorf("read answer: %w", err)
				}
				fmt.Println()
				return nil
			}
			choice, ok := pickOption(q.Options, sc.Text())
			if !ok {
				fmt.Printf("Type a letter from A to %c.\n", 'A'+len(q.Options)-1)
				continue
			}
			if correct, _ := quiz.Answer(choice); correct {
				fmt.Println("✓ Correct!")
			} else {
				fmt.Printf("✗ The answer is %s.\n", q.CorrectAnswer)
			}
		}
		if q.Explanation != "" {
			fmt.Println("  " + q.Explanation)
		}
		quiz.Next()
	}
	fmt.Printf("\nYou scored %d of %d. ★\n", quiz.Score(), len(quiz.Questions))
	return nil
}

// pickOption maps "b", "B" or "2" to the matching option.
func pickOption(options []string, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	idx := -1
	if n, err := strconv.Atoi(input); err == nil {
		idx = n - 1
	} else if len(input) == 1 {
		idx = int(strings.ToUpper(input)[0] - 'A')
	}
	if idx < 0 || idx >= len(options) {
		return "", false
	}
	return options[idx], true
}
