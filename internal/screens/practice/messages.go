package practice

import (
	"time"

	"github.com/abhisek/tablestar/internal/session"
)

// timerTickMsg is sent every second to update the clock.
type timerTickMsg time.Time

// sparkleTickMsg advances the celebration animation.
type sparkleTickMsg time.Time

// roundFinishedMsg carries the result of Session.Finish.
type roundFinishedMsg struct {
	Item *session.HistoryItem
	Err  error
}
