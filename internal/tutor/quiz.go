// Package tutor holds the model-backed helpers: generated multiple-choice
// quizzes and a chat tutor.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/llm"
)

// QuizLength is the number of questions in a generated quiz.
const QuizLength = 5

var ErrBlankTopic = errors.New("quiz topic is blank")

// QuizQuestion is one generated multiple-choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// IsCorrect reports whether choice is the correct option, ignoring
// surrounding whitespace.
func (q QuizQuestion) IsCorrect(choice string) bool {
	return strings.TrimSpace(choice) == strings.TrimSpace(q.CorrectAnswer)
}

// QuizError reports a generated question that cannot be used.
type QuizError struct {
	Index  int
	Reason string
}

func (e *QuizError) Error() string {
	return fmt.Sprintf("quiz question %d: %s", e.Index+1, e.Reason)
}

// QuizMasterConfig tunes quiz generation.
type QuizMasterConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultQuizMasterConfig leaves room for five questions with explanations.
func DefaultQuizMasterConfig() QuizMasterConfig {
	return QuizMasterConfig{MaxTokens: 2048, Temperature: 0.7}
}

// QuizMaster generates quizzes with a model.
type QuizMaster struct {
	provider llm.Provider
	cfg      QuizMasterConfig
}

// NewQuizMaster creates a QuizMaster.
func NewQuizMaster(provider llm.Provider, cfg QuizMasterConfig) *QuizMaster {
	return &QuizMaster{provider: provider, cfg: cfg}
}

type quizOutput struct {
	Questions []QuizQuestion `json:"questions"`
}

// Generate asks for a quiz on topic. An empty difficulty means medium.
func (m *QuizMaster) Generate(ctx context.Context, topic string, difficulty drill.Difficulty) ([]QuizQuestion, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, ErrBlankTopic
	}
	if difficulty == "" {
		difficulty = drill.DifficultyMedium
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("unknown difficulty %q", difficulty)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)
	resp, err := m.provider.Generate(ctx, llm.Request{
		System:      quizSystemPrompt,
		Messages:    []llm.Message{llm.UserMessage(buildQuizMessage(topic, string(difficulty)))},
		Schema:      QuizSchema,
		MaxTokens:   m.cfg.MaxTokens,
		Temperature: m.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	var out quizOutput
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}
	if err := checkQuiz(out.Questions); err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}
	if len(out.Questions) > QuizLength {
		out.Questions = out.Questions[:QuizLength]
	}
	return out.Questions, nil
}

func checkQuiz(questions []QuizQuestion) error {
	if len(questions) == 0 {
		return &QuizError{Index: 0, Reason: "no questions returned"}
	}
	for i, q := range questions {
		switch {
		case strings.TrimSpace(q.Question) == "":
			return &QuizError{Index: i, Reason: "empty question text"}
		case len(q.Options) < 2:
			return &QuizError{Index: i, Reason: fmt.Sprintf("only %d options", len(q.Options))}
		case !slices.ContainsFunc(q.Options, q.IsCorrect):
			return &QuizError{Index: i, Reason: fmt.Sprintf("correct answer %q is not among the options", q.CorrectAnswer)}
		}
	}
	return nil
}

// Quiz tracks a child's progress through generated questions. Each
// question can be answered once; a correct answer scores one point.
type Quiz struct {
	Questions []QuizQuestion
	index     int
	score     int
	answered  bool
	lastRight bool
}

// NewQuiz starts a quiz at the first question.
func NewQuiz(questions []QuizQuestion) *Quiz {
	return &Quiz{Questions: questions}
}

// Current returns the question being asked, or nil when done.
func (q *Quiz) Current() *QuizQuestion {
	if q.index >= len(q.Questions) {
		return nil
	}
	return &q.Questions[q.index]
}

// Answer records choice for the current question. It returns whether the
// choice was correct and whether it was accepted; a second answer to the
// same question is ignored.
func (q *Quiz) Answer(choice string) (correct, accepted bool) {
	cur := q.Current()
	if cur == nil || q.answered {
		return false, false
	}
	q.answered = true
	q.lastRight = cur.IsCorrect(choice)
	if q.lastRight {
		q.score++
	}
	return q.lastRight, true
}

// Answered reports whether the current question has been answered.
func (q *Quiz) Answered() bool { return q.answered }

// LastCorrect reports the result of the most recent answer.
func (q *Quiz) LastCorrect() bool { return q.lastRight }

// Next moves past an answered question. It reports false if the current
// question is still unanswered.
func (q *Quiz) Next() bool {
	if !q.answered {
		return false
	}
	q.index++
	q.answered = false
	return true
}

// Index is the zero-based position of the current question.
func (q *Quiz) Index() int { return q.index }

// Score is the number of correct answers so far.
func (q *Quiz) Score() int { return q.score }

// Done reports whether every question has been passed.
func (q *Quiz) Done() bool { return q.index >= len(q.Questions) }
