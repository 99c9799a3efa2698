package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/player"
	"github.com/abhisek/mathexplorer/internal/progression"
	"github.com/abhisek/mathexplorer/internal/ui/components"
	"github.com/abhisek/mathexplorer/internal/ui/theme"
)

const arcadeTitle = "M · A · T · H   E · X · P · L · O · R · E · R"

// renderTitle returns the styled title line.
func renderTitle(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(arcadeTitle)
}

// renderStatsBar renders level, points and badges in a double-bordered box.
func renderStatsBar(p player.State, cw int, compact bool) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	pointsStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	badges := fmt.Sprintf("%d/%d", p.Achievements.UnlockedCount(), len(achievements.AllIDs()))

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			levelStyle.Render(fmt.Sprintf("★Nv%d", p.Level)),
			pointsStyle.Render(fmt.Sprintf("◆%d", p.Points)),
			badgeStyle.Render("🏆"+badges),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			levelStyle.Render(fmt.Sprintf("★ NIVEL %d", p.Level)),
			pointsStyle.Render(fmt.Sprintf("◆ %d PUNTOS", p.Points)),
			badgeStyle.Render("🏆 "+badges+" LOGROS"),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderLevelBar shows the progress towards the next level.
func renderLevelBar(p player.State, cw int) string {
	label := fmt.Sprintf("Nivel %d → %d", p.Level, p.Level+1)
	bar := components.NewProgressBar(label, float64(p.Progress)/player.PointsPerLevel, true, cw)
	return bar.View()
}

// renderChallenge describes today's challenge. The compact form is a single
// line, the full form a card.
func renderChallenge(kind game.Kind, pending, done bool, cw int, compact bool) string {
	var text string
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch {
	case done:
		text = "✓ ¡Reto diario completado! Vuelve mañana."
		style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	case pending:
		text = fmt.Sprintf("⚡ RETO DIARIO: gana en %s %s y llévate +%d puntos",
			kind.Icon(), kind.DisplayName(), progression.DailyChallengeBonus)
		style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	default:
		text = "Sin reto diario por ahora."
	}

	if compact {
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(text))
	}
	return components.ArcadeCard(style.Render(text), cw)
}

// renderArcadeMenu renders the menu as text lines with the selection
// highlighted.
func renderArcadeMenu(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label + " ")
		}
		lines = append(lines, line)
	}

	block := lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
