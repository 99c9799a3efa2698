package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathexplorer/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // default purple
	MascotCelebrating                      // gold with star eyes, daily challenge done
	MascotAlert                            // orange with a "!", daily challenge waiting
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│+−×÷ │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│+−×÷ │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│+−×÷ │
└─────┘`

// mascotFor picks the variant for the player's daily challenge.
func mascotFor(challengeDone, challengePending bool) MascotVariant {
	switch {
	case challengeDone:
		return MascotCelebrating
	case challengePending:
		return MascotAlert
	}
	return MascotIdle
}

// RenderMascot returns the mascot art for variant.
func RenderMascot(variant MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch variant {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
