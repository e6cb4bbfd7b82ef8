package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/tablestar/internal/drill"
)

// PointsPerCorrect is awarded for every correct answer.
const PointsPerCorrect = 10

// DefaultUserName is used when a session is started without a name.
const DefaultUserName = "Friend"

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota // No questions served yet
	PhaseInProgress              // Serving and scoring questions
	PhaseCompleted               // Target count reached, waiting for Finish
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// QuestionResult is one answered question.
type QuestionResult struct {
	Question  drill.Question
	Submitted string
	Correct   bool
}

type questionResultJSON struct {
	Question  drill.Record `json:"question"`
	Submitted string       `json:"user_answer"`
	Correct   bool         `json:"is_correct"`
}

func (r QuestionResult) MarshalJSON() ([]byte, error) {
	if r.Question == nil {
		return nil, fmt.Errorf("encode result: missing question")
	}
	return json.Marshal(questionResultJSON{
		Question:  drill.ToRecord(r.Question),
		Submitted: r.Submitted,
		Correct:   r.Correct,
	})
}

func (r *QuestionResult) UnmarshalJSON(data []byte) error {
	var raw questionResultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	q, err := raw.Question.Question()
	if err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	*r = QuestionResult{Question: q, Submitted: raw.Submitted, Correct: raw.Correct}
	return nil
}

// HistoryItem is the immutable record of a finished session.
type HistoryItem struct {
	ID        string           `json:"id"`
	Date      time.Time        `json:"date"`
	Score     int              `json:"score"`
	Questions int              `json:"questions"`
	Config    drill.Config     `json:"config"`
	UserName  string           `json:"user_name"`
	Results   []QuestionResult `json:"results"`
}

// Correct returns the number of correctly answered questions.
func (h HistoryItem) Correct() int {
	n := 0
	for _, r := range h.Results {
		if r.Correct {
			n++
		}
	}
	return n
}

// Percent is the score as a share of the maximum possible, 0-100.
func (h HistoryItem) Percent() float64 {
	if h.Questions == 0 {
		return 0
	}
	return float64(h.Score) / float64(h.Questions*PointsPerCorrect) * 100
}

// Rank returns the achievement title earned by the session.
func (h HistoryItem) Rank() Rank {
	return RankFor(h.Score, h.Questions)
}
