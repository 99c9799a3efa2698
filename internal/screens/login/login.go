package login

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathexplorer/internal/player"
	"github.com/abhisek/mathexplorer/internal/router"
	"github.com/abhisek/mathexplorer/internal/screen"
	"github.com/abhisek/mathexplorer/internal/session"
	"github.com/abhisek/mathexplorer/internal/ui/components"
	"github.com/abhisek/mathexplorer/internal/ui/layout"
	"github.com/abhisek/mathexplorer/internal/ui/theme"
)

const tickInterval = 400 * time.Millisecond

const mascotArt = `  ╭───────────╮
  │  ┌─────┐  │
  │  │ ◉ ◉ │  │
  │  │  ▽  │  │
  │  ├─────┤  │
  │  │ +−×÷│  │
  │  └─────┘  │
  ╰───────────╯`

// sparkle frames cycle around the mascot
var sparkleFrames = []string{"★", "✦", "✧"}

type tickMsg time.Time

// LoginScreen asks for the player's name and logs them in.
type LoginScreen struct {
	sess         *session.Session
	homeFactory  func() screen.Screen
	input        components.TextInput
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen that replaces itself with the screen produced by
// homeFactory once a player is logged in.
func New(sess *session.Session, homeFactory func() screen.Screen) *LoginScreen {
	return &LoginScreen{
		sess:        sess,
		homeFactory: homeFactory,
		input:       components.NewTextInput("Tu nombre", player.MaxNameLength),
	}
}

func (l *LoginScreen) Title() string {
	return "¡Bienvenido!"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Empezar"},
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return tea.Batch(l.input.Init(), tick())
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if l.transitioned {
			return l, nil
		}
		l.tickCount++
		return l, tick()

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return l, l.submit()
		}
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LoginScreen) submit() tea.Cmd {
	if l.transitioned {
		return nil
	}
	name := l.input.Value()
	if _, err := l.sess.Login(name); err != nil {
		l.input.SetError(loginError(name, err))
		return nil
	}
	l.transitioned = true
	home := l.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func loginError(name string, err error) string {
	if !errors.Is(err, player.ErrInvalidName) {
		fmt.Fprintf(os.Stderr, "warning: login failed: %v\n", err)
		return "No pudimos abrir tu perfil. Inténtalo otra vez."
	}
	if strings.TrimSpace(name) == "" {
		return "Escribe tu nombre para empezar."
	}
	return fmt.Sprintf("Tu nombre puede tener hasta %d letras.", player.MaxNameLength)
}

func (l *LoginScreen) View(width, height int) string {
	var sections []string

	if height >= 22 {
		sections = append(sections, l.renderMascot(), "")
	}

	sections = append(sections,
		RenderBanner(width),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
			Render("¡Aprende matemáticas jugando!"),
		"",
		lipgloss.NewStyle().Foreground(theme.ArcadeCyan).
			Render("¿Cómo te llamas?"),
		l.input.View(),
	)

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (l *LoginScreen) renderMascot() string {
	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt)

	sparkle := sparkleFrames[l.tickCount%len(sparkleFrames)]
	s1 := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(sparkle)
	s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

	lines := strings.Split(rendered, "\n")
	for i, pair := range [][2]string{{s1, s2}, {s2, s1}, {s1, s2}} {
		row := i * 3
		if row < len(lines) {
			lines[row] = pair[0] + "  " + lines[row] + "  " + pair[1]
		}
	}
	return strings.Join(lines, "\n")
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
