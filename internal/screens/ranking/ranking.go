// Package ranking shows the global leaderboard.
package ranking

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathexplorer/internal/leaderboard"
	"github.com/abhisek/mathexplorer/internal/router"
	"github.com/abhisek/mathexplorer/internal/screen"
	"github.com/abhisek/mathexplorer/internal/session"
	"github.com/abhisek/mathexplorer/internal/ui/layout"
	"github.com/abhisek/mathexplorer/internal/ui/theme"
)

type tableLoadedMsg struct {
	Entries []leaderboard.Entry
	Err     error
}

// RankingScreen lists the top scores and the player's position.
type RankingScreen struct {
	sess    *session.Session
	entries []leaderboard.Entry
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*RankingScreen)(nil)
var _ screen.KeyHintProvider = (*RankingScreen)(nil)

// New creates a new RankingScreen.
func New(sess *session.Session) *RankingScreen {
	return &RankingScreen{sess: sess}
}

func (s *RankingScreen) Init() tea.Cmd {
	board, ctx := s.sess.Board, s.sess.Context()
	return func() tea.Msg {
		entries, err := board.Top(ctx, leaderboard.MaxEntries)
		return tableLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *RankingScreen) Title() string {
	return "Ranking"
}

func (s *RankingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *RankingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tableLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.loaded = true

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *RankingScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Cargando ranking...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  El ranking está vacío. ¡Sé el primero!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Gold).Bold(true).
		Render("🏆 MEJORES PUNTUACIONES 🏆"))
	b.WriteString("\n\n")

	name := s.sess.Player.Name
	rank := leaderboard.Rank(s.entries, name)
	maxVisible := max(height-8, 3)

	for i, e := range s.entries {
		if i >= maxVisible {
			break
		}
		line := fmt.Sprintf("%s %-12s %5d", place(i+1), e.PlayerName, e.Score)
		style := lipgloss.NewStyle().Foreground(placeColor(i + 1))
		if i+1 == rank {
			style = style.Foreground(theme.ArcadeCyan).Bold(true)
			line = "▸ " + line + " ◂"
		} else {
			line = "  " + line + "  "
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	var footer string
	switch {
	case name == "":
	case rank > 0:
		footer = fmt.Sprintf("Estás en el puesto %d de %d", rank, len(s.entries))
	default:
		footer = "Aún no estás en el ranking. ¡Juega para entrar!"
	}
	if footer != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(footer))
	}

	return b.String()
}

func place(n int) string {
	switch n {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return fmt.Sprintf("%2d", n)
}

func placeColor(n int) color.Color {
	if n <= 3 {
		return theme.Gold
	}
	return theme.Text
}
