// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/router"
	"github.com/abhisek/mathexplorer/internal/screen"
	"github.com/abhisek/mathexplorer/internal/screens/home"
	"github.com/abhisek/mathexplorer/internal/screens/login"
	"github.com/abhisek/mathexplorer/internal/screens/play"
	"github.com/abhisek/mathexplorer/internal/session"
	"github.com/abhisek/mathexplorer/internal/ui/layout"
)

// Options selects where the app starts.
type Options struct {
	// Name logs the player in and skips the login screen.
	Name string

	// Play opens this game over the home screen. It requires Name.
	Play       game.Kind
	Difficulty game.Difficulty
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	sess   *session.Session
	router *router.Router
	start  tea.Cmd
	width  int
	height int
}

// newAppModel builds the initial screen stack for opts.
func newAppModel(sess *session.Session, opts Options) (AppModel, error) {
	var loginScreen, homeScreen func() screen.Screen
	homeScreen = func() screen.Screen { return home.New(sess, loginScreen) }
	loginScreen = func() screen.Screen { return login.New(sess, homeScreen) }

	m := AppModel{sess: sess}
	if opts.Name == "" {
		if opts.Play != "" {
			return AppModel{}, fmt.Errorf("playing %s needs a player name", opts.Play)
		}
		m.router = router.New(loginScreen())
		m.start = m.router.Active().Init()
		return m, nil
	}

	if _, err := sess.Login(opts.Name); err != nil {
		return AppModel{}, err
	}
	m.router = router.New(homeScreen())
	m.start = m.router.Active().Init()
	if opts.Play != "" {
		p := play.New(sess, opts.Play)
		if opts.Difficulty != "" {
			p = p.WithDifficulty(opts.Difficulty)
		}
		m.start = tea.Batch(m.start, m.router.Push(p))
	}
	return m, nil
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.sess.Status(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Salir"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Volver"},
			{Key: "Ctrl+C", Description: "Salir"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Elegir"},
		{Key: "Enter", Description: "Aceptar"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

// Run starts the Bubble Tea program.
func Run(sess *session.Session, opts Options) error {
	m, err := newAppModel(sess, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
