package session_test

import (
	"errors"
	"testing"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/player"
	"github.com/abhisek/mathexplorer/internal/profile"
	"github.com/abhisek/mathexplorer/internal/progression"
	"github.com/abhisek/mathexplorer/internal/session/sessiontest"
	"github.com/abhisek/mathexplorer/internal/ui/layout"
)

func TestSession_LoginLogout(t *testing.T) {
	env := sessiontest.New(t)
	s := env.Session

	if s.LoggedIn() || s.Status() != (layout.Status{}) {
		t.Fatal("new session should be logged out")
	}
	if _, err := s.Login("  "); !errors.Is(err, player.ErrInvalidName) {
		t.Fatalf("err = %v, want ErrInvalidName", err)
	}

	res, err := s.Login("Ana")
	if err != nil {
		t.Fatal(err)
	}
	if !res.NewChallenge || !s.ChallengePending() {
		t.Error("expected a pending challenge after the first login")
	}
	if got := s.Status(); got != (layout.Status{Player: "Ana", Level: 1}) {
		t.Errorf("Status = %+v", got)
	}

	s.Streak = 3
	s.Logout()
	if s.LoggedIn() || s.Streak != 0 {
		t.Fatal("logout should clear the player and streak")
	}
}

func TestSession_RecordStreak(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	s := env.Session

	for i := 1; i < 5; i++ {
		if unlocked := s.RecordStreak(i); len(unlocked) != 0 {
			t.Fatalf("streak %d unlocked %v", i, unlocked)
		}
	}
	unlocked := s.RecordStreak(5)
	if len(unlocked) != 1 || unlocked[0] != achievements.PerfectStreak5 {
		t.Fatalf("unlocked = %v", unlocked)
	}
	if s.Status().Streak != 5 || !s.Player.Achievements[achievements.PerfectStreak5].Unlocked {
		t.Fatalf("session not updated: %+v", s.Player.Achievements[achievements.PerfectStreak5])
	}
}

func TestSession_FinishRound(t *testing.T) {
	env := sessiontest.LoggedIn(t, "Ana")
	s := env.Session
	s.Streak = 4

	res, err := s.FinishRound(profile.RoundInfo{
		Difficulty: game.DifficultyEasy,
		Outcome:    progression.RoundOutcome{Kind: game.KindAddition, FinalScore: 50, Win: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.ChallengeBonus != progression.DailyChallengeBonus {
		t.Errorf("bonus = %d", res.ChallengeBonus)
	}
	if s.Streak != 0 || s.Player.Points != 75 || s.ChallengePending() {
		t.Fatalf("session after round: streak=%d player=%+v", s.Streak, s.Player)
	}
	if len(env.History.Rounds) != 1 {
		t.Fatalf("history = %d rounds", len(env.History.Rounds))
	}

	if _, err := s.FinishRound(profile.RoundInfo{
		Outcome: progression.RoundOutcome{Kind: game.KindAddition, FinalScore: -1},
	}); err == nil {
		t.Fatal("expected an error for a negative score")
	}
	if s.Player.Points != 75 {
		t.Fatal("failed round changed the session player")
	}
}
