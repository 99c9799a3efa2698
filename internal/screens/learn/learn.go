// Package learn is the lesson screen: pick a topic, read the generated
// explanation, then jump into practice.
package learn

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathexplorer/internal/learning"
	"github.com/abhisek/mathexplorer/internal/router"
	"github.com/abhisek/mathexplorer/internal/screen"
	"github.com/abhisek/mathexplorer/internal/screens/play"
	"github.com/abhisek/mathexplorer/internal/session"
	"github.com/abhisek/mathexplorer/internal/ui/components"
	"github.com/abhisek/mathexplorer/internal/ui/layout"
	"github.com/abhisek/mathexplorer/internal/ui/theme"
)

// loadingRotate is how long each loading message stays up.
const loadingRotate = 2 * time.Second

type phase int

const (
	phaseTopics phase = iota
	phaseLoading
	phaseLesson
)

type explanationMsg struct {
	Fetch  int
	Result learning.Result
}

type loadingTickMsg struct {
	Fetch int
}

// LearnScreen shows AI-generated lessons.
type LearnScreen struct {
	sess   *session.Session
	phase  phase
	topics components.Menu

	topic    learning.Topic
	result   learning.Result
	practice components.Button

	// fetch tags explanation and loading messages so a topic left early
	// does not overwrite the next one.
	fetch   int
	loading int
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)
var _ screen.EscapeHandler = (*LearnScreen)(nil)

// New creates a LearnScreen at the topic list.
func New(sess *session.Session) *LearnScreen {
	s := &LearnScreen{sess: sess}
	var items []components.MenuItem
	for _, t := range learning.AllTopics() {
		items = append(items, components.MenuItem{
			Label:  t.Game().Icon() + " " + t.Title(),
			Action: func() tea.Cmd { return s.open(t) },
		})
	}
	s.topics = components.NewMenu(items)
	return s
}

func (s *LearnScreen) Init() tea.Cmd {
	return nil
}

func (s *LearnScreen) Title() string {
	if s.phase == phaseTopics {
		return "Aprender"
	}
	return s.topic.Title()
}

// HandlesEscape returns to the topic list from a lesson.
func (s *LearnScreen) HandlesEscape() bool {
	return s.phase != phaseTopics
}

func (s *LearnScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseLoading:
		return []layout.KeyHint{{Key: "Esc", Description: "Temas"}}
	case phaseLesson:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Practicar"}}
		if s.result.Err != learning.ErrNone {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Reintentar"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Temas"})
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Elegir"},
		{Key: "Enter", Description: "Aprender"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explanationMsg:
		if msg.Fetch != s.fetch || s.phase != phaseLoading {
			return s, nil
		}
		s.result = msg.Result
		s.phase = phaseLesson
		return s, nil

	case loadingTickMsg:
		if msg.Fetch != s.fetch || s.phase != phaseLoading {
			return s, nil
		}
		s.loading++
		return s, loadingTick(s.fetch)

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *LearnScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "esc" && s.phase != phaseTopics {
		s.phase = phaseTopics
		s.fetch++
		return nil
	}

	switch s.phase {
	case phaseTopics:
		var cmd tea.Cmd
		s.topics, cmd = s.topics.Update(msg)
		return cmd
	case phaseLesson:
		if key == "r" || key == "R" {
			if s.result.Err != learning.ErrNone {
				return s.open(s.topic)
			}
			return nil
		}
		var cmd tea.Cmd
		s.practice, cmd = s.practice.Update(msg)
		return cmd
	}
	return nil
}

// open starts fetching the lesson for t.
func (s *LearnScreen) open(t learning.Topic) tea.Cmd {
	s.topic = t
	s.phase = phaseLoading
	s.result = learning.Result{}
	s.loading = 0
	s.fetch++

	sess := s.sess
	s.practice = components.NewButton("¡Practicar Ahora!", true, func() tea.Cmd {
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: play.New(sess, t.Game())}
		}
	})

	svc, ctx, fetch := s.sess.Learning, s.sess.Context(), s.fetch
	return tea.Batch(
		func() tea.Msg {
			return explanationMsg{Fetch: fetch, Result: svc.FetchExplanation(ctx, t)}
		},
		loadingTick(fetch),
	)
}

func loadingTick(fetch int) tea.Cmd {
	return tea.Tick(loadingRotate, func(time.Time) tea.Msg {
		return loadingTickMsg{Fetch: fetch}
	})
}

func (s *LearnScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		msgs := learning.LoadingMessages
		text := msgs[s.loading%len(msgs)]
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render("🤖 "+text))
	case phaseLesson:
		return s.renderLesson(width, height)
	}

	title := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("📖 ¿Qué quieres aprender hoy?")
	sub := lipgloss.NewStyle().Foreground(theme.TextDim).Render("El robot profesor te lo explica con ejemplos.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		title+"\n"+sub+"\n\n"+s.topics.View())
}

func (s *LearnScreen) renderLesson(width, height int) string {
	cw := components.ContentWidth(width)

	title := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("%s %s", s.topic.Game().Icon(), s.topic.Title()))

	body := RenderExplanation(s.result.TextOr(learning.Fallback), cw-6)
	if s.result.Err != learning.ErrNone {
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("Pulsa R para intentarlo de nuevo.")
	}

	content := strings.Join([]string{
		title,
		"",
		components.ArcadeCard(body, cw),
		"",
		s.practice.View(),
	}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// RenderExplanation styles **bold** runs of text and wraps it to width.
func RenderExplanation(text string, width int) string {
	plain := lipgloss.NewStyle().Foreground(theme.Text)
	bold := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)

	var b strings.Builder
	for _, seg := range learning.Segments(text) {
		if seg.Bold {
			b.WriteString(bold.Render(seg.Text))
		} else {
			b.WriteString(plain.Render(seg.Text))
		}
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}
