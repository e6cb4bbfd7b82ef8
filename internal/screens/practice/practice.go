// Package practice is the screen that runs a practice round.
package practice

import (
	"context"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/router"
	"github.com/abhisek/tablestar/internal/screen"
	"github.com/abhisek/tablestar/internal/screens/summary"
	"github.com/abhisek/tablestar/internal/session"
	"github.com/abhisek/tablestar/internal/ui/components"
	"github.com/abhisek/tablestar/internal/ui/layout"
)

const (
	sparkleFrames   = 12
	sparkleInterval = 80 * time.Millisecond
)

// PracticeScreen asks the questions of one round and scores the answers.
type PracticeScreen struct {
	sess *session.Session
	cfg  drill.Config
	name string
	opts []session.Option

	input      components.TextInput
	choices    components.MultiChoice
	choiceMode bool

	feedback    *session.QuestionResult // set while the result is shown
	confirmQuit bool
	finishing   bool
	final       layout.Status // status bar while the round is being saved
	sparkle     int // celebration frames left
	frame       int
	errMsg      string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)
var _ screen.InputCapturer = (*PracticeScreen)(nil)

// New creates a practice screen for cfg. The round starts when the screen
// is pushed. opts are passed to the session; they normally include the
// recorder.
func New(cfg drill.Config, name string, opts ...session.Option) *PracticeScreen {
	p := &PracticeScreen{cfg: cfg, name: name, opts: opts}
	all := append(slices.Clone(opts), session.WithCelebration(func(session.QuestionResult) {
		p.sparkle = sparkleFrames
	}))
	p.sess = session.New(cfg, all...)
	return p
}

// Session exposes the running session.
func (p *PracticeScreen) Session() *session.Session { return p.sess }

func (p *PracticeScreen) Init() tea.Cmd {
	q, err := p.sess.Start(p.name)
	if err != nil {
		p.errMsg = err.Error()
		return nil
	}
	return tea.Batch(p.ask(q), tickCmd())
}

func (p *PracticeScreen) Title() string {
	return "Practice"
}

func (p *PracticeScreen) CapturesInput() bool {
	return true
}

func (p *PracticeScreen) Status() layout.Status {
	if p.finishing {
		return p.final
	}
	if p.sess.Phase() == session.PhaseNotStarted {
		return layout.Status{}
	}
	n := p.sess.Count()
	if p.feedback == nil {
		n++
	}
	return layout.Status{
		Player: p.sess.UserName(),
		Score:  p.sess.Score(),
		Round:  fmtRound(min(n, p.sess.Target()), p.sess.Target()),
	}
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	switch {
	case p.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case p.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End round"},
			{Key: "N", Description: "Keep going"},
		}
	case p.feedback != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case p.choiceMode:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "1-3", Description: "Pick"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "End round"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "End round"},
		}
	}
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if p.sess.Phase() == session.PhaseNotStarted || p.finishing {
			return p, nil
		}
		return p, tickCmd()

	case sparkleTickMsg:
		if p.sparkle > 0 {
			p.sparkle--
			p.frame++
			return p, sparkleCmd()
		}
		return p, nil

	case roundFinishedMsg:
		return p, p.handleFinished(msg)

	case tea.KeyPressMsg:
		return p, p.handleKey(msg)
	}

	if !p.choiceMode && p.feedback == nil && !p.confirmQuit {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PracticeScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if p.errMsg != "" {
		return router.Pop()
	}
	if p.finishing {
		return nil
	}

	if p.confirmQuit {
		switch key {
		case "y", "Y":
			p.confirmQuit = false
			return p.finish()
		case "n", "N", "esc":
			p.confirmQuit = false
		}
		return nil
	}

	if p.feedback != nil {
		return p.advance()
	}

	if key == "esc" {
		p.confirmQuit = true
		return nil
	}

	if p.choiceMode {
		if i := shortcutIndex(p.sess.Current(), key); i >= 0 {
			p.choices.Choose(i)
		} else {
			p.choices, _ = p.choices.Update(msg)
		}
		if p.choices.Submitted {
			return p.submit(p.choices.Chosen())
		}
		return nil
	}

	if key == "enter" {
		if strings.TrimSpace(p.input.Value()) == "" {
			return nil
		}
		return p.submit(p.input.Value())
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// ask prepares the input widgets for q.
func (p *PracticeScreen) ask(q drill.Question) tea.Cmd {
	p.feedback = nil
	if q == nil {
		return nil
	}
	if opts := q.Choices(); len(opts) > 0 {
		p.choiceMode = true
		labels := make([]string, len(opts))
		for i, o := range opts {
			labels[i] = DisplayAnswer(q, o)
		}
		p.choices = components.NewChoiceRow(opts, labels, -1)
		return nil
	}
	p.choiceMode = false
	p.input = components.NewTextInput("?", true, 4)
	return p.input.Init()
}

func (p *PracticeScreen) submit(answer string) tea.Cmd {
	q := p.sess.Current()
	res, ok := p.sess.Submit(answer)
	if !ok {
		return nil
	}
	p.feedback = &res
	if p.choiceMode {
		p.choices.CorrectIndex = slices.Index(q.Choices(), q.CorrectAnswer())
	}
	if p.sparkle > 0 {
		return sparkleCmd()
	}
	return nil
}

// advance leaves the feedback view: next question, or the end of the round.
func (p *PracticeScreen) advance() tea.Cmd {
	if p.sess.Phase() == session.PhaseCompleted {
		return p.finish()
	}
	return p.ask(p.sess.Next())
}

// finish ends the round on the update loop and records it off the loop.
// The command only touches the recorder.
func (p *PracticeScreen) finish() tea.Cmd {
	p.final = p.Status()
	p.finishing = true
	item := p.sess.End()
	if item == nil {
		return router.Pop()
	}
	s := p.sess
	return func() tea.Msg {
		return roundFinishedMsg{Item: item, Err: s.Record(context.Background(), *item)}
	}
}

func (p *PracticeScreen) handleFinished(msg roundFinishedMsg) tea.Cmd {
	if msg.Item == nil {
		return router.Pop()
	}
	again := func() screen.Screen { return New(p.cfg, p.name, p.opts...) }
	return router.Replace(summary.New(msg.Item, msg.Err, again))
}

// shortcutIndex maps symbol and letter keys to choice positions so
// "<", "t" or "x" answer directly. It returns -1 for other keys.
func shortcutIndex(q drill.Question, key string) int {
	if q == nil {
		return -1
	}
	var want string
	switch q.Kind() {
	case drill.KindCompare:
		want = key
	case drill.KindTrueFalse:
		switch key {
		case "t", "y":
			want = "true"
		case "f", "n":
			want = "false"
		}
	case drill.KindSign:
		if op, err := drill.ParseOperation(key); err == nil {
			want = op.Symbol()
		}
	}
	if want == "" {
		return -1
	}
	return slices.Index(q.Choices(), want)
}

// DisplayAnswer renders an answer value for the learner; true/false values
// are capitalised.
func DisplayAnswer(q drill.Question, answer string) string {
	if q == nil || q.Kind() != drill.KindTrueFalse {
		return answer
	}
	switch answer {
	case "true":
		return "True"
	case "false":
		return "False"
	}
	return answer
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func sparkleCmd() tea.Cmd {
	return tea.Tick(sparkleInterval, func(t time.Time) tea.Msg {
		return sparkleTickMsg(t)
	})
}
