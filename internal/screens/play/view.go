package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/round"
	"github.com/abhisek/mathexplorer/internal/ui/components"
	"github.com/abhisek/mathexplorer/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "\n\n  Preparando el juego...")
	case phaseError:
		return centered(width, lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("\n\n  Error: %s\n\n  Pulsa cualquier tecla para volver.", s.errMsg))
	case phaseResume:
		return s.renderResume(width, height)
	case phaseDifficulty:
		return s.renderDifficulty(width, height)
	case phaseQuitConfirm:
		return s.renderQuitConfirm(width)
	}
	return s.renderRound(width)
}

func centered(width int, style lipgloss.Style, text string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(style.Render(text))
}

func (s *PlayScreen) renderResume(width, height int) string {
	sr := s.saved
	body := strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("¡Tienes una partida a medias!"),
		"",
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("Puntos: %d   Racha: %d   Dificultad: %s", sr.Score, sr.Streak, sr.Difficulty)),
		"",
		lipgloss.NewStyle().Foreground(theme.Success).Render("[C] Continuar partida"),
		lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] Empezar de nuevo"),
	}, "\n")
	cw := components.ContentWidth(width)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.ArcadeCard(body, cw))
}

func (s *PlayScreen) renderDifficulty(width, height int) string {
	title := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("%s %s", s.kind.Icon(), strings.ToUpper(s.kind.DisplayName())))
	sub := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Consigue %d puntos para ganar. Elige la dificultad:", round.WinScore))

	var challenge string
	if s.sess.ChallengePending() && s.sess.Player.ChallengeGame == s.kind {
		challenge = "\n" + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render("⚡ ¡Este es tu reto diario!")
	}

	content := title + "\n" + sub + challenge + "\n\n" + s.difficulties.View()
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *PlayScreen) renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "¿Terminar la partida?"))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Tus %d puntos se sumarán a tu perfil.", s.round.Score)))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Success), "[S] Sí, terminar"))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, seguir jugando"))
	return b.String()
}

func (s *PlayScreen) renderRound(width int) string {
	r := s.round
	cw := components.ContentWidth(width)

	var b strings.Builder

	// Info line.
	infoLeft := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s · %s", r.Kind.DisplayName(), r.Difficulty))
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%s %d/%d  %s %d",
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render("★"), r.Score, round.WinScore,
		lipgloss.NewStyle().Foreground(theme.Accent).Render("🔥"), r.Streak))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// Timer.
	timer := components.NewProgressBar(fmt.Sprintf("⏱ %2ds", r.TimeLeft),
		float64(r.TimeLeft)/float64(max(r.TimeLimit(), 1)), false, cw)
	if r.TimeLeft <= 5 {
		timer.Fill = lipgloss.NewStyle().Background(theme.Error)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, timer.View()))
	b.WriteString("\n\n")

	// Question.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ArcadeCard(s.questionText(), cw)))
	b.WriteString("\n\n")

	// Options.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.grid.View()))
	b.WriteString("\n\n")

	// Feedback.
	if fb := s.feedback(width); fb != "" {
		b.WriteString(fb)
		b.WriteString("\n")
	}
	for _, id := range s.unlocked {
		if def, ok := achievements.Lookup(id); ok {
			b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Gold).Bold(true),
				fmt.Sprintf("%s ¡Logro desbloqueado: %s!", def.Icon, def.Name)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *PlayScreen) questionText() string {
	r := s.round
	q := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(r.Problem.Question)
	switch r.Kind {
	case game.KindSubtraction:
		return lipgloss.NewStyle().Foreground(theme.Error).Render(r.Monster+" ¡Derrota al monstruo!") + "\n\n" + q
	case game.KindSequences:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("¿Qué número sigue?") + "\n\n" + q
	}
	return q + " = ?"
}

func (s *PlayScreen) feedback(width int) string {
	r := s.round
	switch {
	case r.Phase == round.PhaseWon:
		return centered(width, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true),
			fmt.Sprintf("🏆 ¡VICTORIA! Llegaste a %d puntos", r.Score))
	case r.Phase != round.PhaseFeedback:
		return ""
	case r.LastCorrect:
		return centered(width, theme.Correct, fmt.Sprintf("¡Correcto! +%d", round.PointsPerCorrect))
	case r.Selected < 0:
		return centered(width, theme.Incorrect, fmt.Sprintf("⏰ ¡Se acabó el tiempo! Era %d", r.Problem.Answer))
	default:
		return centered(width, theme.Incorrect, fmt.Sprintf("¡Oh no! La respuesta era %d", r.Problem.Answer))
	}
}
