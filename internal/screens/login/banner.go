package login

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathexplorer/internal/ui/theme"
)

const bannerArt = `█   █  ███  █████ █   █    █████ █   █ ████  █      ███  ████  █████ ████
██ ██ █   █   █   █   █    █      █ █  █   █ █     █   █ █   █ █     █   █
█ █ █ █████   █   █████    ████    █   ████  █     █   █ ████  ████  ████
█   █ █   █   █   █   █    █      █ █  █     █     █   █ █  █  █     █  █
█   █ █   █   █   █   █    █████ █   █ █     █████  ███  █   █ █████ █   █`

const bannerCompact = "M A T H · E X P L O R E R"

// bannerWidth is the width of bannerArt plus a small margin.
const bannerWidth = 78

// RenderBanner returns the game banner in the highlight color. Terminals
// narrower than the block letters get a spaced-out fallback.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
