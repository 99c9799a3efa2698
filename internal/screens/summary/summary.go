package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/progression"
	"github.com/abhisek/mathexplorer/internal/router"
	"github.com/abhisek/mathexplorer/internal/screen"
	"github.com/abhisek/mathexplorer/internal/ui/layout"
	"github.com/abhisek/mathexplorer/internal/ui/theme"
)

// Result describes a finished round.
type Result struct {
	Kind       game.Kind
	Difficulty game.Difficulty
	Score      int
	Answered   int
	Correct    int
	BestStreak int
	Win        bool

	// Progress is what the round did to the profile. It is zero when Err is
	// set.
	Progress progression.RoundResult
	Err      error
}

// SummaryScreen displays the result of a round.
type SummaryScreen struct {
	result Result
	again  func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. again, when non-nil, builds the screen for
// another round of the same game.
func New(result Result, again func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{result: result, again: again}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Resultado"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Inicio"}}
	if s.again != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Jugar otra vez"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r", "R":
			if s.again != nil {
				next := s.again()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	center := func(style lipgloss.Style, text string) string {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(style.Render(text))
	}

	var lines []string

	if r.Win {
		lines = append(lines, center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true), "🏆 ¡VICTORIA! 🏆"))
	} else {
		lines = append(lines, center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "¡Buen intento!"))
	}
	lines = append(lines,
		center(lipgloss.NewStyle().Foreground(theme.TextDim),
			fmt.Sprintf("%s %s · %s", r.Kind.Icon(), r.Kind.DisplayName(), r.Difficulty)),
		"",
		center(lipgloss.NewStyle().Foreground(theme.Text),
			fmt.Sprintf("Puntuación: %d     Aciertos: %d/%d     Mejor racha: %d",
				r.Score, r.Correct, r.Answered, r.BestStreak)),
		"",
	)

	if r.Err != nil {
		lines = append(lines, center(lipgloss.NewStyle().Foreground(theme.Error),
			"No pudimos guardar tu progreso: "+r.Err.Error()))
		return strings.Join(lines, "\n")
	}

	p := r.Progress
	lines = append(lines, center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		fmt.Sprintf("◆ +%d puntos", p.PointsEarned)))
	if p.ChallengeBonus > 0 {
		lines = append(lines, center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow),
			fmt.Sprintf("⚡ ¡Reto diario superado! (+%d)", p.ChallengeBonus)))
	}
	if p.LeveledUp {
		lines = append(lines, center(lipgloss.NewStyle().Foreground(theme.Success).Bold(true),
			fmt.Sprintf("⬆ ¡Subiste al nivel %d!", p.NewLevel)))
	}
	if p.LeaderboardSubmitted {
		lines = append(lines, center(lipgloss.NewStyle().Foreground(theme.ArcadeCyan),
			"📊 Tu puntuación entró en el ranking"))
	}

	if len(p.Unlocked) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 50)))
		lines = append(lines, "",
			center(lipgloss.NewStyle().Foreground(theme.TextDim), "Logros nuevos"),
			lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		for _, id := range p.Unlocked {
			lines = append(lines, center(lipgloss.NewStyle().Foreground(theme.Gold), achievementLine(id)))
		}
	}

	return strings.Join(lines, "\n")
}

func achievementLine(id achievements.ID) string {
	def, ok := achievements.Lookup(id)
	if !ok {
		return string(id)
	}
	return fmt.Sprintf("%s %s: %s", def.Icon, def.Name, def.Description)
}
