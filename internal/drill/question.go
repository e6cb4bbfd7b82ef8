package drill

import (
	"fmt"
	"strconv"
)

// Fact is the arithmetic identity a question is built from:
// Left Op Right = Result.
type Fact struct {
	Op     Operation
	Left   int
	Right  int
	Result int
}

// NewFact builds the fact for a table and multiplier. Division facts are
// formed from the matching product so the quotient is always whole.
func NewFact(op Operation, table, multiplier int) Fact {
	if op == Divide {
		return Fact{Op: Divide, Left: table * multiplier, Right: table, Result: multiplier}
	}
	return Fact{Op: Multiply, Left: table, Right: multiplier, Result: table * multiplier}
}

// Operands returns the underlying fact.
func (f Fact) Operands() Fact { return f }

// Equation renders the fact, e.g. "3 × 4 = 12".
func (f Fact) Equation() string {
	return fmt.Sprintf("%d %s %d = %d", f.Left, f.Op.Symbol(), f.Right, f.Result)
}

// Holds reports whether the fact is arithmetically true.
func (f Fact) Holds() bool {
	if !f.Op.Valid() {
		return false
	}
	if f.Op == Divide && (f.Right == 0 || f.Left%f.Right != 0) {
		return false
	}
	return f.Op.apply(f.Left, f.Right) == f.Result
}

// Question is a single generated practice question. The set of
// implementations is closed: Calculation, MissingOperand, Comparison,
// TrueFalse, OperatorSign and WordProblem.
type Question interface {
	// Kind returns the archetype.
	Kind() Kind

	// Operands returns the fact the question is built from.
	Operands() Fact

	// Prompt is the text shown to the learner.
	Prompt() string

	// CorrectAnswer is the canonical answer in text form.
	CorrectAnswer() string

	// Choices is the closed answer set for choice-style archetypes,
	// nil when the answer is typed.
	Choices() []string

	isCorrect(submitted string) bool
}

// Calculation asks for the result of the fact.
type Calculation struct {
	Fact
}

func (Calculation) Kind() Kind { return KindCalculation }

func (q Calculation) Prompt() string {
	return fmt.Sprintf("%d %s %d = ?", q.Left, q.Op.Symbol(), q.Right)
}

func (q Calculation) CorrectAnswer() string { return strconv.Itoa(q.Result) }
func (Calculation) Choices() []string { return nil }
func (q Calculation) isCorrect(s string) bool { return matchInt(s, q.Result) }

// MissingOperand hides one operand and asks for it.
type MissingOperand struct {
	Fact
	Hidden Side
}

func (MissingOperand) Kind() Kind { return KindMissing }

func (q MissingOperand) Prompt() string {
	if q.Hidden == SideLeft {
		return fmt.Sprintf("? %s %d = %d", q.Op.Symbol(), q.Right, q.Result)
	}
	return fmt.Sprintf("%d %s ? = %d", q.Left, q.Op.Symbol(), q.Result)
}

// HiddenValue returns the operand the learner must find.
func (q MissingOperand) HiddenValue() int {
	if q.Hidden == SideLeft {
		return q.Left
	}
	return q.Right
}

func (q MissingOperand) CorrectAnswer() string { return strconv.Itoa(q.HiddenValue()) }
func (MissingOperand) Choices() []string { return nil }
func (q MissingOperand) isCorrect(s string) bool { return matchInt(s, q.HiddenValue()) }

// Comparison asks how the result of the fact relates to another number.
type Comparison struct {
	Fact
	CompareTo int
	Answer    Relation
}

func (Comparison) Kind() Kind { return KindCompare }

func (q Comparison) Prompt() string {
	return fmt.Sprintf("%d %s %d  ?  %d", q.Left, q.Op.Symbol(), q.Right, q.CompareTo)
}

func (q Comparison) CorrectAnswer() string { return string(q.Answer) }

func (Comparison) Choices() []string {
	out := make([]string, len(Relations))
	for i, r := range Relations {
		out[i] = string(r)
	}
	return out
}

func (q Comparison) isCorrect(s string) bool { return s == string(q.Answer) }

// TrueFalse shows an equation that may be wrong and asks whether it holds.
type TrueFalse struct {
	Fact
	Shown  int
	Answer bool
}

func (TrueFalse) Kind() Kind { return KindTrueFalse }

func (q TrueFalse) Prompt() string {
	return fmt.Sprintf("%d %s %d = %d", q.Left, q.Op.Symbol(), q.Right, q.Shown)
}

func (q TrueFalse) CorrectAnswer() string { return strconv.FormatBool(q.Answer) }
func (TrueFalse) Choices() []string { return []string{"true", "false"} }

func (q TrueFalse) isCorrect(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b == q.Answer
}

// OperatorSign hides the operator and asks for it.
type OperatorSign struct {
	Fact
}

func (OperatorSign) Kind() Kind { return KindSign }

func (q OperatorSign) Prompt() string {
	return fmt.Sprintf("%d ? %d = %d", q.Left, q.Right, q.Result)
}

func (q OperatorSign) CorrectAnswer() string { return q.Op.Symbol() }

func (OperatorSign) Choices() []string {
	return []string{Multiply.Symbol(), Divide.Symbol()}
}

func (q OperatorSign) isCorrect(s string) bool { return s == q.Op.Symbol() }

// WordProblem wraps the fact in a short story.
type WordProblem struct {
	Fact
	Text string
}

func (WordProblem) Kind() Kind { return KindWord }

func (q WordProblem) Prompt() string { return q.Text }
func (q WordProblem) CorrectAnswer() string { return strconv.Itoa(q.Result) }
func (WordProblem) Choices() []string { return nil }
func (q WordProblem) isCorrect(s string) bool { return matchInt(s, q.Result) }

func matchInt(s string, want int) bool {
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n == want
}
