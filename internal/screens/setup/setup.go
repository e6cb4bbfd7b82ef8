// Package setup is the screen where a round is configured before it starts.
package setup

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/router"
	"github.com/abhisek/tablestar/internal/screen"
	"github.com/abhisek/tablestar/internal/screens/practice"
	"github.com/abhisek/tablestar/internal/session"
	"github.com/abhisek/tablestar/internal/ui/components"
	"github.com/abhisek/tablestar/internal/ui/layout"
	"github.com/abhisek/tablestar/internal/ui/theme"
)

type rowKind int

const (
	rowName rowKind = iota
	rowFrom
	rowTo
	rowCount
	rowDifficulty
	rowOp
	rowType
	rowStart
)

type row struct {
	kind rowKind
	op   drill.Operation
	qk   drill.Kind
}

var difficulties = []drill.Difficulty{drill.DifficultyEasy, drill.DifficultyMedium, drill.DifficultyHard}

// SetupScreen edits a drill.Config and starts a practice round with it.
type SetupScreen struct {
	cfg      drill.Config
	recorder session.Recorder
	opts     []session.Option
	name     components.TextInput
	rows     []row
	cursor   int
	notice   string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates a setup screen starting from cfg. Extra session options are
// passed to every round started from here.
func New(recorder session.Recorder, cfg drill.Config, name string, opts ...session.Option) *SetupScreen {
	cfg.Operations = slices.Clone(cfg.Operations)
	cfg.Kinds = slices.Clone(cfg.Kinds)
	if cfg.Validate() != nil {
		cfg = drill.DefaultConfig()
	}

	rows := []row{{kind: rowName}, {kind: rowFrom}, {kind: rowTo}, {kind: rowCount}, {kind: rowDifficulty}}
	for _, op := range drill.AllOperations {
		rows = append(rows, row{kind: rowOp, op: op})
	}
	for _, k := range drill.AllKinds {
		rows = append(rows, row{kind: rowType, qk: k})
	}
	rows = append(rows, row{kind: rowStart})

	input := components.NewTextInput("Your name", false, 20)
	input.SetValue(name)

	s := &SetupScreen{
		cfg:      cfg,
		recorder: recorder,
		opts:     opts,
		name:     input,
		rows:     rows,
	}
	if strings.TrimSpace(name) != "" {
		s.cursor = len(rows) - 1
	}
	return s
}

// Config returns the configuration being edited.
func (s *SetupScreen) Config() drill.Config { return s.cfg }

func (s *SetupScreen) Init() tea.Cmd {
	return s.name.Init()
}

func (s *SetupScreen) Title() string {
	return "New Round"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "←→", Description: "Change"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.current().kind == rowName {
			var cmd tea.Cmd
			s.name, cmd = s.name.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	s.notice = ""
	switch kmsg.String() {
	case "up", "shift+tab":
		s.cursor = max(s.cursor-1, 0)
		return s, nil
	case "down", "tab":
		s.cursor = min(s.cursor+1, len(s.rows)-1)
		return s, nil
	case "enter":
		return s, s.start()
	}

	r := s.current()
	if r.kind == rowName {
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "left", "h", "-":
		s.adjust(r, -1)
	case "right", "l", "+", "=":
		s.adjust(r, 1)
	case "space", " ", "x":
		s.toggle(r)
	}
	return s, nil
}

func (s *SetupScreen) current() row {
	return s.rows[s.cursor]
}

func (s *SetupScreen) adjust(r row, delta int) {
	switch r.kind {
	case rowFrom:
		s.cfg.StartTable = clamp(s.cfg.StartTable+delta, drill.MinTable, drill.MaxTable)
		s.cfg.EndTable = max(s.cfg.EndTable, s.cfg.StartTable)
	case rowTo:
		s.cfg.EndTable = clamp(s.cfg.EndTable+delta, drill.MinTable, drill.MaxTable)
		s.cfg.StartTable = min(s.cfg.StartTable, s.cfg.EndTable)
	case rowCount:
		s.cfg.QuestionCount = step(drill.QuestionCounts, s.cfg.QuestionCount, delta)
	case rowDifficulty:
		i := slices.Index(difficulties, s.cfg.Difficulty)
		if i < 0 {
			i = 1
		}
		s.cfg.Difficulty = difficulties[clamp(i+delta, 0, len(difficulties)-1)]
	case rowOp, rowType:
		s.toggle(r)
	}
}

func (s *SetupScreen) toggle(r row) {
	var ok bool
	switch r.kind {
	case rowOp:
		ok = s.cfg.ToggleOperation(r.op)
	case rowType:
		ok = s.cfg.ToggleKind(r.qk)
	default:
		return
	}
	if !ok {
		s.notice = "Keep at least one switched on!"
	}
}

func (s *SetupScreen) start() tea.Cmd {
	if err := s.cfg.Validate(); err != nil {
		s.notice = err.Error()
		return nil
	}
	opts := append([]session.Option{session.WithRecorder(s.recorder)}, s.opts...)
	return router.Push(practice.New(s.cfg, s.name.Value(), opts...))
}

func (s *SetupScreen) View(width, height int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(16)
	var lines []string

	for i, r := range s.rows {
		selected := i == s.cursor
		pointer := "  "
		if selected {
			pointer = theme.Selected.Render("▸ ")
		}

		var line string
		switch r.kind {
		case rowName:
			line = label.Render("Name") + s.name.View()
		case rowFrom:
			line = label.Render("From table") + spinner(fmt.Sprint(s.cfg.StartTable), selected)
		case rowTo:
			line = label.Render("To table") + spinner(fmt.Sprint(s.cfg.EndTable), selected)
		case rowCount:
			line = label.Render("Questions") + spinner(fmt.Sprint(s.cfg.QuestionCount), selected)
		case rowDifficulty:
			line = label.Render("Difficulty") + spinner(string(s.cfg.Difficulty), selected)
		case rowOp:
			line = label.Render(sectionLabel(i, s.rows, "Operations")) +
				checkbox(s.cfg.HasOperation(r.op), r.op.Symbol()+" "+r.op.Label(), selected)
		case rowType:
			line = label.Render(sectionLabel(i, s.rows, "Question types")) +
				checkbox(s.cfg.HasKind(r.qk), r.qk.Label(), selected)
		case rowStart:
			lines = append(lines, "")
			line = components.Button{Label: "START", Active: selected}.View()
		}
		lines = append(lines, pointer+line)
	}

	if s.notice != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice))
	}

	block := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// sectionLabel returns title on the first row of a group and blanks after.
func sectionLabel(i int, rows []row, title string) string {
	if i > 0 && rows[i-1].kind == rows[i].kind {
		return ""
	}
	return title
}

func spinner(value string, selected bool) string {
	if selected {
		return theme.Selected.Render("◀ " + value + " ▶")
	}
	return theme.Unselected.Render("  " + value)
}

func checkbox(on bool, text string, selected bool) string {
	box := "[ ] "
	if on {
		box = "[✓] "
	}
	if selected {
		return theme.Selected.Render(box + text)
	}
	if on {
		return theme.Unselected.Render(box + text)
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(box + text)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// step moves from cur to the neighbouring value of choices in direction
// delta. A cur not in choices snaps to the nearest choice on that side.
func step(choices []int, cur, delta int) int {
	if delta > 0 {
		for _, c := range choices {
			if c > cur {
				return c
			}
		}
		return choices[len(choices)-1]
	}
	for i := len(choices) - 1; i >= 0; i-- {
		if choices[i] < cur {
			return choices[i]
		}
	}
	return choices[0]
}
