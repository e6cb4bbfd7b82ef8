package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tablestar/internal/session"
	"github.com/abhisek/tablestar/internal/ui/theme"
)

// MascotVariant selects which star art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // No rounds yet or a middling last round
	MascotCelebrating                      // Last round ranked Champion or better
	MascotEncouraging                      // Last round ranked Sprout
)

const mascotIdle = `    ╱╲
 ╱──╯╰──╲
 ╲ ◉  ◉ ╱
 ╱  ‿   ╲
 ╲╱╲  ╱╲╱`

const mascotCelebrating = ` ✦  ╱╲  ✦
 ╱──╯╰──╲
 ╲ ★  ★ ╱
 ╱  ▽   ╲
 ╲╱╲  ╱╲╱`

const mascotEncouraging = `    ╱╲
 ╱──╯╰──╲
 ╲ ◠  ◠ ╱  you've
 ╱  ‿   ╲  got this!
 ╲╱╲  ╱╲╱`

// mascotFor picks the variant for the most recent round.
func mascotFor(last *session.HistoryItem) MascotVariant {
	if last == nil {
		return MascotIdle
	}
	switch last.Rank() {
	case session.RankProdigy, session.RankChampion:
		return MascotCelebrating
	case session.RankSprout:
		return MascotEncouraging
	default:
		return MascotIdle
	}
}

// RenderMascot returns the star art for variant.
func RenderMascot(variant MascotVariant) string {
	art, fg := mascotIdle, theme.StarGold
	switch variant {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Accent
	case MascotEncouraging:
		art, fg = mascotEncouraging, theme.Secondary
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
