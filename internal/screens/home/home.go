package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/drill"
	"github.com/abhisek/tablestar/internal/llm"
	"github.com/abhisek/tablestar/internal/router"
	"github.com/abhisek/tablestar/internal/screen"
	"github.com/abhisek/tablestar/internal/screens/chat"
	"github.com/abhisek/tablestar/internal/screens/history"
	"github.com/abhisek/tablestar/internal/screens/quiz"
	"github.com/abhisek/tablestar/internal/screens/setup"
	"github.com/abhisek/tablestar/internal/screens/tables"
	"github.com/abhisek/tablestar/internal/session"
	"github.com/abhisek/tablestar/internal/tutor"
	"github.com/abhisek/tablestar/internal/ui/components"
	"github.com/abhisek/tablestar/internal/ui/theme"
)

// Deps are what the screens reachable from home need.
type Deps struct {
	Recorder session.Recorder
	Practice drill.Config
	UserName string
	Provider llm.Provider // nil disables the AI entries
}

type statsLoadedMsg struct {
	stats stats
	last  *session.HistoryItem
	err   error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	stats  stats
	mascot MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ router.Refresher = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	noAI := deps.Provider == nil

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "PRACTICE", Action: func() tea.Cmd {
			return router.Push(setup.New(deps.Recorder, deps.Practice, deps.UserName))
		}},
		{Label: "TIMES TABLES", Action: func() tea.Cmd {
			return router.Push(tables.New())
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return router.Push(history.New(deps.Recorder))
		}},
		{Label: "AI QUIZ", Disabled: noAI, Action: func() tea.Cmd {
			return router.Push(quiz.New(tutor.NewQuizMaster(deps.Provider, tutor.DefaultQuizMasterConfig())))
		}},
		{Label: "ASK THE TUTOR", Disabled: noAI, Action: func() tea.Cmd {
			return router.Push(chat.New(tutor.NewTutor(deps.Provider)))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Refresh reloads the dashboard after a round or a history change.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	rec := h.deps.Recorder
	if rec == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := rec.LoadAll(context.Background())
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		msg := statsLoadedMsg{stats: stats{rounds: len(items)}}
		for _, item := range items {
			msg.stats.best = max(msg.stats.best, item.Score)
		}
		if len(items) > 0 {
			msg.last = &items[0]
			msg.stats.last = items[0].Rank().String()
		}
		return msg
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		// A failed load leaves the previous numbers in place.
		if msg.err == nil {
			h.stats = msg.stats
			h.mascot = mascotFor(msg.last)
		}
		return h, nil
	case tea.KeyPressMsg:
		if msg.String() == "q" {
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; header and footer take about eight rows
	compact := height+8 < 34 || width < 90
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, theme.Centered(lipgloss.NewStyle(), cw, RenderMascot(h.mascot)))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))
	if compact {
		sections = append(sections, theme.Centered(lipgloss.NewStyle(), cw, h.menu.CompactView()))
	} else {
		sections = append(sections, theme.Centered(lipgloss.NewStyle(), cw, h.menu.View(buttonWidth)))
	}
	if h.deps.Provider == nil {
		sections = append(sections, renderAIBanner(cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
