package drill

import (
	"encoding/json"
	"fmt"
)

// Record is the flat, serialisable form of a Question.
type Record struct {
	Kind      Kind      `json:"kind"`
	Op        Operation `json:"op"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Result    int       `json:"result"`
	Hidden    Side      `json:"hidden,omitempty"`
	CompareTo int       `json:"compare_to,omitempty"`
	Shown     int       `json:"shown,omitempty"`
	Text      string    `json:"text,omitempty"`
	Answer    string    `json:"answer"`
}

// ToRecord flattens q.
func ToRecord(q Question) Record {
	f := q.Operands()
	r := Record{
		Kind:   q.Kind(),
		Op:     f.Op,
		Left:   f.Left,
		Right:  f.Right,
		Result: f.Result,
		Answer: q.CorrectAnswer(),
	}
	switch v := q.(type) {
	case MissingOperand:
		r.Hidden = v.Hidden
	case Comparison:
		r.CompareTo = v.CompareTo
	case TrueFalse:
		r.Shown = v.Shown
	case WordProblem:
		r.Text = v.Text
	}
	return r
}

// Question rebuilds the question. Derived answers are recomputed from the
// fact and checked against the stored canonical answer.
func (r Record) Question() (Question, error) {
	f := Fact{Op: r.Op, Left: r.Left, Right: r.Right, Result: r.Result}
	if !f.Holds() {
		return nil, fmt.Errorf("decode %s question: fact %d %s %d = %d does not hold",
			r.Kind, r.Left, r.Op.Symbol(), r.Right, r.Result)
	}

	var q Question
	switch r.Kind {
	case KindCalculation:
		q = Calculation{Fact: f}
	case KindMissing:
		if r.Hidden != SideLeft && r.Hidden != SideRight {
			return nil, fmt.Errorf("decode missing question: unknown hidden side %q", r.Hidden)
		}
		q = MissingOperand{Fact: f, Hidden: r.Hidden}
	case KindCompare:
		q = Comparison{Fact: f, CompareTo: r.CompareTo, Answer: relationOf(f.Result, r.CompareTo)}
	case KindTrueFalse:
		q = TrueFalse{Fact: f, Shown: r.Shown, Answer: r.Shown == f.Result}
	case KindSign:
		q = OperatorSign{Fact: f}
	case KindWord:
		q = WordProblem{Fact: f, Text: r.Text}
	default:
		return nil, fmt.Errorf("decode question: unknown kind %q", r.Kind)
	}

	if r.Answer != "" && r.Answer != q.CorrectAnswer() {
		return nil, fmt.Errorf("decode %s question: stored answer %q, expected %q",
			r.Kind, r.Answer, q.CorrectAnswer())
	}
	return q, nil
}

// MarshalQuestion encodes q as JSON.
func MarshalQuestion(q Question) ([]byte, error) {
	return json.Marshal(ToRecord(q))
}

// UnmarshalQuestion decodes a question written by MarshalQuestion.
func UnmarshalQuestion(data []byte) (Question, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode question: %w", err)
	}
	return r.Question()
}
