package trophies

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/profile"
	"github.com/abhisek/mathexplorer/internal/progression"
	"github.com/abhisek/mathexplorer/internal/router"
	"github.com/abhisek/mathexplorer/internal/session/sessiontest"
)

func TestTrophiesScreen_Filters(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	if _, err := env.Session.FinishRound(profile.RoundInfo{
		Outcome: progression.RoundOutcome{Kind: game.KindAddition, FinalScore: 50, Win: true},
	}); err != nil {
		t.Fatal(err)
	}

	s := New(env.Session)
	if got := len(s.filtered()); got != len(achievements.AllIDs()) {
		t.Fatalf("all = %d", got)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.filter != FilterUnlocked {
		t.Fatalf("filter = %d, want unlocked", s.filter)
	}
	unlocked := s.filtered()
	if len(unlocked) != 1 || unlocked[0].ID != achievements.SumaWins1 {
		t.Fatalf("unlocked = %+v", unlocked)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if got := len(s.filtered()); got != len(achievements.AllIDs())-1 {
		t.Fatalf("locked = %d", got)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.filter != FilterAll {
		t.Fatal("tab should wrap around")
	}
}

func TestTrophiesScreen_View(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	if _, err := env.Session.FinishRound(profile.RoundInfo{
		Outcome: progression.RoundOutcome{Kind: game.KindAddition, FinalScore: 50, Win: true},
	}); err != nil {
		t.Fatal(err)
	}

	view := New(env.Session).View(100, 40)
	for _, want := range []string{"1 de 10 logros", "Aprendiz de Suma", "✓", "🔒 Campeón de Suma", "1/5"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestTrophiesScreen_EmptyUnlocked(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	s := New(env.Session)
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if !strings.Contains(s.View(100, 30), "Todavía no tienes logros") {
		t.Error("expected empty message")
	}
}

func TestTrophiesScreen_Scroll(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	s := New(env.Session)

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.scrollOffset != 0 {
		t.Fatal("scroll went negative")
	}
	for range 20 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.scrollOffset != len(achievements.AllIDs())-1 {
		t.Fatalf("scrollOffset = %d", s.scrollOffset)
	}
}

func TestTrophiesScreen_Back(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	_, cmd := New(env.Session).Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}
