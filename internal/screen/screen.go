package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tablestar/internal/ui/layout"
)

// Screen is one page of the terminal app. Screens are stacked by the
// router; only the top one receives messages.
type Screen interface {
	// Init returns the command to run when the screen is pushed.
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep on the stack.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, without header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens that want their own footer
// hints instead of the defaults.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show player status in the
// header, such as a running practice round.
type StatusProvider interface {
	Status() layout.Status
}

// InputCapturer is implemented by screens with a text field. While it
// reports true the app does not treat esc or q as navigation.
type InputCapturer interface {
	CapturesInput() bool
}
