package learn

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/learning"
	"github.com/abhisek/mathexplorer/internal/llm"
	"github.com/abhisek/mathexplorer/internal/router"
	"github.com/abhisek/mathexplorer/internal/screens/play"
	"github.com/abhisek/mathexplorer/internal/session/sessiontest"
)

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

// fetched runs the explanation command of an open topic.
func fetched(t *testing.T, s *LearnScreen) {
	t.Helper()
	msg := s.sess.Learning.FetchExplanation(s.sess.Context(), s.topic)
	s.Update(explanationMsg{Fetch: s.fetch, Result: msg})
}

func TestLearnScreen_Lesson(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	env.LLM.AddResponse(llm.MockResponse{
		Content: json.RawMessage(`{"explanation":"Si tienes **3** caramelos y te dan **2**, tienes **5**."}`),
	})

	s := New(env.Session)
	if s.HandlesEscape() {
		t.Error("topic list should let esc go back")
	}
	if cmd := s.topics.Items[0].Action(); cmd == nil {
		t.Fatal("expected fetch command")
	}
	if s.phase != phaseLoading || s.topic != learning.TopicAddition {
		t.Fatalf("phase = %d topic = %q", s.phase, s.topic)
	}
	if !strings.Contains(s.View(100, 30), learning.LoadingMessages[0]) {
		t.Error("expected the first loading message")
	}
	s.Update(loadingTickMsg{Fetch: s.fetch})
	if !strings.Contains(s.View(100, 30), learning.LoadingMessages[1]) {
		t.Error("loading message should rotate")
	}

	fetched(t, s)
	if s.phase != phaseLesson {
		t.Fatalf("phase = %d, want lesson", s.phase)
	}
	view := s.View(100, 30)
	for _, want := range []string{"Aprendiendo a Sumar", "caramelos", "¡Practicar Ahora!"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "**") {
		t.Error("markup should not be shown")
	}

	_, cmd := s.Update(enter())
	if cmd == nil {
		t.Fatal("expected practice navigation")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	p, ok := msg.Screen.(*play.PlayScreen)
	if !ok || p.Title() != game.KindAddition.Icon()+" "+game.KindAddition.DisplayName() {
		t.Fatalf("expected the addition game, got %T", msg.Screen)
	}
}

func TestLearnScreen_FallbackAndRetry(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	env.LLM.AddResponse(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	env.LLM.AddResponse(llm.MockResponse{Content: json.RawMessage(`{"explanation":"El monstruo se come **2** galletas."}`)})

	s := New(env.Session)
	s.topics.Items[1].Action()
	fetched(t, s)

	if s.result.Err != learning.ErrUnavailable {
		t.Fatalf("Err = %v", s.result.Err)
	}
	if !strings.Contains(s.View(100, 30), "cortocircuito") {
		t.Error("expected the fallback text")
	}

	s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if s.phase != phaseLoading {
		t.Fatalf("phase = %d, want loading", s.phase)
	}
	fetched(t, s)
	if s.result.Err != learning.ErrNone || !strings.Contains(s.View(100, 30), "galletas") {
		t.Fatalf("retry failed: %+v", s.result)
	}
}

func TestLearnScreen_StaleResultDropped(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	s := New(env.Session)
	s.topics.Items[0].Action()
	stale := s.fetch

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.phase != phaseTopics {
		t.Fatalf("phase = %d, want topics", s.phase)
	}

	s.Update(explanationMsg{Fetch: stale, Result: learning.Result{Text: "tarde"}})
	if s.phase != phaseTopics {
		t.Fatal("stale explanation reopened the lesson")
	}
	if _, cmd := s.Update(loadingTickMsg{Fetch: stale}); cmd != nil {
		t.Fatal("stale loading tick kept ticking")
	}
}

func TestRenderExplanation(t *testing.T) {
	out := RenderExplanation("Tienes **5** caramelos", 40)
	if strings.Contains(out, "**") || !strings.Contains(out, "5") || !strings.Contains(out, "caramelos") {
		t.Fatalf("out = %q", out)
	}
}
