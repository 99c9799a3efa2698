// Package trophies shows the player's achievements with their progress.
package trophies

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/router"
	"github.com/abhisek/mathexplorer/internal/screen"
	"github.com/abhisek/mathexplorer/internal/session"
	"github.com/abhisek/mathexplorer/internal/ui/components"
	"github.com/abhisek/mathexplorer/internal/ui/layout"
	"github.com/abhisek/mathexplorer/internal/ui/theme"
)

// Filter selects which achievements are listed.
type Filter int

const (
	FilterAll Filter = iota
	FilterUnlocked
	FilterLocked
)

var filters = []Filter{FilterAll, FilterUnlocked, FilterLocked}

func (f Filter) label() string {
	switch f {
	case FilterUnlocked:
		return "Desbloqueados"
	case FilterLocked:
		return "Pendientes"
	}
	return "Todos"
}

// TrophiesScreen lists achievement definitions against the player's progress.
type TrophiesScreen struct {
	sess         *session.Session
	filter       Filter
	scrollOffset int
}

var _ screen.Screen = (*TrophiesScreen)(nil)
var _ screen.KeyHintProvider = (*TrophiesScreen)(nil)

// New creates a new TrophiesScreen.
func New(sess *session.Session) *TrophiesScreen {
	return &TrophiesScreen{sess: sess}
}

func (s *TrophiesScreen) Init() tea.Cmd {
	return nil
}

func (s *TrophiesScreen) Title() string {
	return "Logros"
}

func (s *TrophiesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Filtrar"},
		{Key: "↑↓", Description: "Desplazar"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *TrophiesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab":
		s.filter = filters[(int(s.filter)+1)%len(filters)]
		s.scrollOffset = 0
	case "shift+tab":
		s.filter = filters[(int(s.filter)-1+len(filters))%len(filters)]
		s.scrollOffset = 0
	case "up", "k":
		if s.scrollOffset > 0 {
			s.scrollOffset--
		}
	case "down", "j":
		if s.scrollOffset < len(s.filtered())-1 {
			s.scrollOffset++
		}
	}
	return s, nil
}

func (s *TrophiesScreen) filtered() []achievements.Definition {
	var out []achievements.Definition
	for _, d := range achievements.Definitions() {
		unlocked := s.sess.Player.Achievements[d.ID].Unlocked
		switch {
		case s.filter == FilterUnlocked && !unlocked:
		case s.filter == FilterLocked && unlocked:
		default:
			out = append(out, d)
		}
	}
	return out
}

func (s *TrophiesScreen) View(width, height int) string {
	var b strings.Builder
	state := s.sess.Player.Achievements

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Gold).Bold(true).
		Render(fmt.Sprintf("\n🏆 %d de %d logros\n", state.UnlockedCount(), len(achievements.AllIDs()))))
	b.WriteString("\n")

	var tabs []string
	for _, f := range filters {
		if f == s.filter {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(f.label()))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(f.label()))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	list := s.filtered()
	if len(list) == 0 {
		msg := "Todavía no tienes logros. ¡Sigue jugando!"
		if s.filter == FilterLocked {
			msg = "¡Los tienes todos!"
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render(msg))
		return b.String()
	}

	// Each achievement takes two lines.
	maxVisible := max((height-10)/2, 2)
	start := s.scrollOffset
	end := min(start+maxVisible, len(list))
	cw := components.ContentWidth(width)

	for _, d := range list[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderTrophy(d, state[d.ID], cw)))
		b.WriteString("\n")
	}

	if end < len(list) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d más", len(list)-end)))
	}

	return b.String()
}

func renderTrophy(d achievements.Definition, p achievements.Progress, cw int) string {
	current := min(p.Current, d.Target)

	var title, mark string
	if p.Unlocked {
		title = lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(d.Icon + " " + d.Name)
		mark = lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	} else {
		title = lipgloss.NewStyle().Foreground(theme.TextDim).Render("🔒 " + d.Name)
		mark = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%d/%d", current, d.Target))
	}
	top := title
	if pad := cw - lipgloss.Width(title) - lipgloss.Width(mark); pad > 0 {
		top += strings.Repeat(" ", pad) + mark
	} else {
		top += " " + mark
	}

	bar := components.NewProgressBar("", float64(current)/float64(d.Target), false, 12)
	if p.Unlocked {
		bar.Fill = lipgloss.NewStyle().Background(theme.Gold)
	}
	desc := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(d.Description)
	bottom := desc
	if pad := cw - lipgloss.Width(desc) - 12; pad > 0 {
		bottom += strings.Repeat(" ", pad) + bar.View()
	}

	return top + "\n" + bottom
}
