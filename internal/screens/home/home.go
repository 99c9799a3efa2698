package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/router"
	"github.com/abhisek/mathexplorer/internal/screen"
	"github.com/abhisek/mathexplorer/internal/screens/history"
	"github.com/abhisek/mathexplorer/internal/screens/learn"
	"github.com/abhisek/mathexplorer/internal/screens/play"
	"github.com/abhisek/mathexplorer/internal/screens/ranking"
	"github.com/abhisek/mathexplorer/internal/screens/trophies"
	"github.com/abhisek/mathexplorer/internal/session"
	"github.com/abhisek/mathexplorer/internal/ui/components"
	"github.com/abhisek/mathexplorer/internal/ui/layout"
)

// HomeScreen is the player dashboard: level, daily challenge and the menu
// of games and activities.
type HomeScreen struct {
	sess         *session.Session
	loginFactory func() screen.Screen
	menu         components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen for the logged-in player. Leaving the dashboard
// logs out and resets the app to the screen produced by loginFactory.
func New(sess *session.Session, loginFactory func() screen.Screen) *HomeScreen {
	h := &HomeScreen{sess: sess, loginFactory: loginFactory}

	var items []components.MenuItem
	for _, kind := range game.AllKinds() {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%s %s", kind.Icon(), strings.ToUpper(kind.DisplayName())),
			Action: push(func() screen.Screen { return play.New(sess, kind) }),
		})
	}
	items = append(items,
		components.MenuItem{Label: "📖 APRENDER", Action: push(func() screen.Screen { return learn.New(sess) })},
		components.MenuItem{Label: "🏆 LOGROS", Action: push(func() screen.Screen { return trophies.New(sess) })},
		components.MenuItem{Label: "📊 RANKING", Action: push(func() screen.Screen { return ranking.New(sess) })},
		components.MenuItem{Label: "📜 HISTORIAL", Action: push(func() screen.Screen { return history.New(sess) })},
		components.MenuItem{Label: "🚪 SALIR", Action: h.logout},
	)
	h.menu = components.NewMenu(items)
	return h
}

func push(factory func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := factory()
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: s}
		}
	}
}

func (h *HomeScreen) logout() tea.Cmd {
	h.sess.Logout()
	login := h.loginFactory()
	return func() tea.Msg {
		return router.ResetScreenMsg{Screen: login}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Inicio"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Elegir"},
		{Key: "Enter", Description: "Entrar"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 32 || width < 90
	cw := components.ContentWidth(width)
	p := h.sess.Player

	pending := h.sess.ChallengePending()
	done := p.ChallengeCompleted && p.LastChallengeDate == h.sess.Profile.Today()

	var sections []string
	sections = append(sections, renderTitle(cw))
	if !compact {
		sections = append(sections, renderMascotBox(mascotFor(done, pending), cw))
	}
	sections = append(sections, renderStatsBar(p, cw, compact))
	if !compact {
		sections = append(sections, renderLevelBar(p, cw))
	}
	sections = append(sections, renderChallenge(p.ChallengeGame, pending, done, cw, compact))

	labels := make([]string, len(h.menu.Items))
	for i, item := range h.menu.Items {
		labels[i] = item.Label
		if pending && i < len(game.AllKinds()) && game.AllKinds()[i] == p.ChallengeGame {
			labels[i] += " ⚡"
		}
	}
	sections = append(sections, renderArcadeMenu(labels, h.menu.Selected, cw))

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, sep), width, height)
}
