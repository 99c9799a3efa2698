// Package session holds the logged-in player and the services every screen
// shares.
package session

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/leaderboard"
	"github.com/abhisek/mathexplorer/internal/learning"
	"github.com/abhisek/mathexplorer/internal/player"
	"github.com/abhisek/mathexplorer/internal/profile"
	"github.com/abhisek/mathexplorer/internal/progression"
	"github.com/abhisek/mathexplorer/internal/store"
	"github.com/abhisek/mathexplorer/internal/ui/layout"
)

// RoundHistory lists finished rounds from the event log.
type RoundHistory interface {
	QueryRounds(ctx context.Context, player string, opts store.QueryOpts) ([]store.RoundEvent, error)
}

// Services are the long-lived dependencies of the TUI. History is optional.
type Services struct {
	Profile   *profile.Service
	Board     *leaderboard.Service
	Rounds    store.RoundRepo
	History   RoundHistory
	Learning  *learning.Service
	Generator *game.Generator
}

// Session is the state shared by the screens of one program run. Screens
// run on the Bubble Tea goroutine, so no locking is needed.
type Session struct {
	Services

	// Player is the logged-in profile, zero before login.
	Player player.State

	// Streak is the live streak of the round in progress.
	Streak int

	ctx context.Context
}

// New creates a Session. A nil ctx uses context.Background.
func New(ctx context.Context, svc Services) *Session {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Session{Services: svc, ctx: ctx}
}

// Context returns the context for store and provider calls.
func (s *Session) Context() context.Context {
	return s.ctx
}

// LoggedIn reports whether a player is logged in.
func (s *Session) LoggedIn() bool {
	return s.Player.Name != ""
}

// Login logs name in and makes it the current player.
func (s *Session) Login(name string) (profile.LoginResult, error) {
	res, err := s.Profile.Login(s.ctx, name)
	if err != nil {
		return profile.LoginResult{}, err
	}
	s.Player = res.State
	s.Streak = 0
	return res, nil
}

// Logout forgets the current player.
func (s *Session) Logout() {
	s.Player = player.State{}
	s.Streak = 0
}

// RecordStreak pushes the live streak to the profile. Store failures are
// reported as warnings so play is never interrupted.
func (s *Session) RecordStreak(streak int) []achievements.ID {
	s.Streak = streak
	next, unlocked, err := s.Profile.RecordStreak(s.ctx, s.Player.Name, streak)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record streak: %v\n", err)
		return nil
	}
	s.Player = next
	return unlocked
}

// FinishRound applies a finished round to the current player.
func (s *Session) FinishRound(info profile.RoundInfo) (progression.RoundResult, error) {
	next, res, err := s.Profile.FinishRound(s.ctx, s.Player.Name, info)
	s.Streak = 0
	if err != nil {
		return progression.RoundResult{}, err
	}
	s.Player = next
	return res, nil
}

// Status returns the header summary for the current player.
func (s *Session) Status() layout.Status {
	if !s.LoggedIn() {
		return layout.Status{}
	}
	return layout.Status{
		Player: s.Player.Name,
		Level:  s.Player.Level,
		Points: s.Player.Points,
		Streak: s.Streak,
	}
}

// ChallengePending reports whether the daily challenge is still open.
func (s *Session) ChallengePending() bool {
	return s.Player.ChallengeGame != "" && !s.Player.ChallengeCompleted &&
		s.Player.LastChallengeDate == s.Profile.Today()
}
