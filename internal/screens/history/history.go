// Package history lists the logged-in player's finished rounds.
package history

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/router"
	"github.com/abhisek/mathexplorer/internal/screen"
	"github.com/abhisek/mathexplorer/internal/session"
	"github.com/abhisek/mathexplorer/internal/store"
	"github.com/abhisek/mathexplorer/internal/ui/layout"
	"github.com/abhisek/mathexplorer/internal/ui/theme"
)

// Limit caps the rounds shown.
const Limit = 50

type historyLoadedMsg struct {
	Rounds []store.RoundEvent
	Err    error
}

// HistoryScreen displays past rounds and the achievements they unlocked.
type HistoryScreen struct {
	sess     *session.Session
	rounds   []store.RoundEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(sess *session.Session) *HistoryScreen {
	return &HistoryScreen{
		sess:     sess,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	hist, ctx, name := s.sess.History, s.sess.Context(), s.sess.Player.Name
	return func() tea.Msg {
		if hist == nil {
			return historyLoadedMsg{}
		}
		rounds, err := hist.QueryRounds(ctx, name, store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Rounds: rounds, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Historial"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Detalles"},
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.rounds = msg.Rounds
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.rounds)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Cargando historial...")
	}
	if len(s.rounds) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Aún no has jugado ninguna partida. ¡A jugar!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, r := range s.rounds {
		kind := game.Kind(r.GameKind)
		result := "derrota"
		if r.Win {
			result = "victoria"
		}
		bonus := ""
		if r.ChallengeBonus > 0 {
			bonus = "  ⚡"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s %-24s %-8s %3d pts  %s%s",
			prefix, r.Timestamp.Local().Format("02/01 15:04"), kind.Icon(), kind.DisplayName(),
			r.Difficulty, r.FinalScore, result, bonus)

		style := lipgloss.NewStyle().Foreground(resultColor(r.Win))
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, detail := range details(r) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func details(r store.RoundEvent) []string {
	lines := []string{fmt.Sprintf("    +%d puntos al perfil, nivel %d", r.PointsEarned, r.NewLevel)}
	if r.ChallengeBonus > 0 {
		lines = append(lines, fmt.Sprintf("    Reto diario: +%d", r.ChallengeBonus))
	}
	if len(r.Unlocked) == 0 {
		return append(lines, "    Sin logros nuevos")
	}
	for _, id := range r.Unlocked {
		if def, ok := achievements.Lookup(achievements.ID(id)); ok {
			lines = append(lines, fmt.Sprintf("    %s %s", def.Icon, def.Name))
		}
	}
	return lines
}

func resultColor(win bool) color.Color {
	if win {
		return theme.Success
	}
	return theme.Text
}
