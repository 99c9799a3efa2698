package history

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/profile"
	"github.com/abhisek/mathexplorer/internal/progression"
	"github.com/abhisek/mathexplorer/internal/router"
	"github.com/abhisek/mathexplorer/internal/session/sessiontest"
)

func finish(t *testing.T, env *sessiontest.Env, kind game.Kind, score int, win bool) {
	t.Helper()
	_, err := env.Session.FinishRound(profile.RoundInfo{
		Difficulty: game.DifficultyEasy,
		Outcome:    progression.RoundOutcome{Kind: kind, FinalScore: score, Win: win},
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	s := New(env.Session)
	s.Update(s.Init()())

	if !strings.Contains(s.View(100, 30), "Aún no has jugado") {
		t.Error("expected empty state")
	}
}

func TestHistoryScreen_ListsPlayerRounds(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	finish(t, env, game.KindAddition, 50, true)
	finish(t, env, game.KindSequences, 20, false)

	s := New(env.Session)
	s.Update(s.Init()())

	if len(s.rounds) != 2 {
		t.Fatalf("rounds = %d, want 2", len(s.rounds))
	}
	if s.rounds[0].GameKind != string(game.KindSequences) {
		t.Errorf("newest first: got %q", s.rounds[0].GameKind)
	}
	view := s.View(120, 30)
	for _, want := range []string{"Secuencias Secretas", "Suma Veloz", "victoria", "derrota"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryScreen_Expand(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	finish(t, env, game.KindAddition, 50, true)

	s := New(env.Session)
	s.Update(s.Init()())
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	view := s.View(120, 30)
	if !strings.Contains(view, "Aprendiz de Suma") || !strings.Contains(view, "Reto diario") {
		t.Errorf("expanded view missing details:\n%s", view)
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	env.History.Err = errors.New("db locked")

	s := New(env.Session)
	s.Update(s.Init()())
	if !strings.Contains(s.View(100, 30), "db locked") {
		t.Error("expected error message")
	}
}

func TestHistoryScreen_Back(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	s := New(env.Session)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
}
