package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/llm"
	"github.com/abhisek/tablestar/internal/router"
	"github.com/abhisek/tablestar/internal/screen"
	"github.com/abhisek/tablestar/internal/screens/home"
	"github.com/abhisek/tablestar/internal/screens/practice"
	"github.com/abhisek/tablestar/internal/screens/welcome"
	"github.com/abhisek/tablestar/internal/session"
	"github.com/abhisek/tablestar/internal/ui/layout"
)

// Options are the collaborators the screens share.
type Options struct {
	// Recorder stores finished rounds. Required.
	Recorder session.Recorder

	// Practice is the starting configuration of the setup screen.
	Practice drill.Config

	// UserName pre-fills the setup screen.
	UserName string

	// Provider powers the AI quiz and tutor. Nil disables them.
	Provider llm.Provider

	// SkipWelcome starts on the home screen.
	SkipWelcome bool

	// StartRound opens a practice round with Practice straight away.
	// Leaving the round lands on the home screen.
	StartRound bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	first  screen.Screen // pushed over the root on start
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	deps := home.Deps{
		Recorder: opts.Recorder,
		Practice: opts.Practice,
		UserName: opts.UserName,
		Provider: opts.Provider,
	}
	if opts.StartRound {
		return AppModel{
			router: router.New(home.New(deps)),
			first:  practice.New(opts.Practice, opts.UserName, session.WithRecorder(opts.Recorder)),
		}
	}
	var root screen.Screen
	if opts.SkipWelcome {
		root = home.New(deps)
	} else {
		root = welcome.New(func() screen.Screen { return home.New(deps) })
	}
	return AppModel{router: router.New(root)}
}

func (m AppModel) Init() tea.Cmd {
	cmd := m.router.Active().Init()
	if m.first != nil {
		return tea.Batch(cmd, router.Push(m.first))
	}
	return cmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if ic, ok := m.router.Active().(screen.InputCapturer); ok && ic.CapturesInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var status layout.Status
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(active.Title(), status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		if hints := kp.KeyHints(); hints != nil {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the terminal app and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
