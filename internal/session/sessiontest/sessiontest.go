// Package sessiontest builds in-memory sessions for screen tests.
package sessiontest

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/leaderboard"
	"github.com/abhisek/mathexplorer/internal/learning"
	"github.com/abhisek/mathexplorer/internal/llm"
	"github.com/abhisek/mathexplorer/internal/profile"
	"github.com/abhisek/mathexplorer/internal/session"
	"github.com/abhisek/mathexplorer/internal/store"
)

// Now is the fixed clock of test sessions.
var Now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// Source returns the same value for every draw, modulo n.
type Source int

func (s Source) IntN(n int) int { return int(s) % n }

// Env is a session over a MemoryKV with handles on its parts.
type Env struct {
	Session *session.Session
	KV      *store.MemoryKV
	Rounds  store.RoundRepo
	Board   *leaderboard.Service
	LLM     *llm.MockProvider
	History *History
}

// History is an in-memory round log. It records rounds finished through the
// session and serves them newest first.
type History struct {
	Rounds []store.RoundEvent
	Err    error
}

func (h *History) AppendRound(_ context.Context, d store.RoundEventData) error {
	h.Rounds = append(h.Rounds, store.RoundEvent{
		ID:             len(h.Rounds) + 1,
		Sequence:       int64(len(h.Rounds) + 1),
		Timestamp:      Now,
		RoundEventData: d,
	})
	return nil
}

func (h *History) QueryRounds(_ context.Context, player string, opts store.QueryOpts) ([]store.RoundEvent, error) {
	if h.Err != nil {
		return nil, h.Err
	}
	var out []store.RoundEvent
	for i := len(h.Rounds) - 1; i >= 0; i-- {
		if player != "" && h.Rounds[i].Player != player {
			continue
		}
		out = append(out, h.Rounds[i])
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

// New returns a session with no player logged in. Problems and the daily
// challenge draw from Source(0).
func New(t *testing.T) *Env {
	t.Helper()
	kv := store.NewMemoryKV()
	board := leaderboard.NewService(kv)
	mock := llm.NewMockProvider()
	env := &Env{
		KV:      kv,
		Rounds:  store.NewRoundRepo(kv),
		Board:   board,
		LLM:     mock,
		History: &History{},
	}
	env.Session = session.New(context.Background(), session.Services{
		Profile: profile.NewService(profile.Deps{
			Players: store.NewPlayerRepo(kv),
			Board:   board,
			Events:  env.History,
			Now:     func() time.Time { return Now },
			Source:  Source(0),
		}),
		Board:     board,
		Rounds:    env.Rounds,
		History:   env.History,
		Learning:  learning.NewService(mock, learning.DefaultConfig()),
		Generator: game.NewGenerator(Source(0)),
	})
	return env
}

// LoggedIn returns a session with name logged in.
func LoggedIn(t *testing.T, name string) *Env {
	t.Helper()
	env := New(t)
	if _, err := env.Session.Login(name); err != nil {
		t.Fatalf("login %q: %v", name, err)
	}
	return env
}
