// Package profile coordinates a player's session: login with the daily
// challenge, streak and round updates through the progression engine, and
// the leaderboard submission that follows a scoring round.
package profile

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/leaderboard"
	"github.com/abhisek/mathexplorer/internal/player"
	"github.com/abhisek/mathexplorer/internal/progression"
	"github.com/abhisek/mathexplorer/internal/store"
)

// DateLayout formats LastChallengeDate.
const DateLayout = "2006-01-02"

// ScoreSubmitter records a final score on the leaderboard.
type ScoreSubmitter interface {
	Submit(ctx context.Context, name string, score int) ([]leaderboard.Entry, error)
}

// RoundRecorder appends finished rounds to the event log.
type RoundRecorder interface {
	AppendRound(ctx context.Context, data store.RoundEventData) error
}

// Deps wires a Service. Events, Now and Source are optional.
type Deps struct {
	Players store.PlayerRepo
	Board   ScoreSubmitter
	Events  RoundRecorder
	Engine  *progression.Engine
	Now     func() time.Time
	Source  game.Source
}

// Service applies progression rules to stored profiles.
type Service struct {
	players store.PlayerRepo
	board   ScoreSubmitter
	events  RoundRecorder
	engine  *progression.Engine
	now     func() time.Time
	src     game.Source
}

// NewService creates a Service from d.
func NewService(d Deps) *Service {
	s := &Service{
		players: d.Players,
		board:   d.Board,
		events:  d.Events,
		engine:  d.Engine,
		now:     d.Now,
		src:     d.Source,
	}
	if s.engine == nil {
		s.engine = progression.NewEngine()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.src == nil {
		s.src = game.DefaultSource()
	}
	return s
}

// Today returns the challenge date for the current instant.
func (s *Service) Today() string {
	return s.now().UTC().Format(DateLayout)
}

// LoginResult is the profile after login.
type LoginResult struct {
	State player.State

	// Returning is true when a stored profile was found.
	Returning bool

	// NewChallenge is true when a daily challenge was assigned by this login.
	NewChallenge bool
}

// Login loads (or creates) name's profile and assigns the day's challenge
// when the last one is from another day.
func (s *Service) Login(ctx context.Context, name string) (LoginResult, error) {
	name, err := player.CleanName(name)
	if err != nil {
		return LoginResult{}, err
	}

	_, found, err := s.players.Load(ctx, name)
	if err != nil {
		return LoginResult{}, err
	}

	today := s.Today()
	res := LoginResult{Returning: found}
	res.State, err = s.players.Update(ctx, name, func(cur player.State) (player.State, error) {
		if cur.LastChallengeDate != today {
			kinds := game.AllKinds()
			cur.LastChallengeDate = today
			cur.ChallengeGame = kinds[s.src.IntN(len(kinds))]
			cur.ChallengeCompleted = false
			res.NewChallenge = true
		}
		return cur, nil
	})
	if err != nil {
		return LoginResult{}, fmt.Errorf("login: %w", err)
	}
	return res, nil
}

// Load returns name's profile without modifying it.
func (s *Service) Load(ctx context.Context, name string) (player.State, bool, error) {
	return s.players.Load(ctx, name)
}

// RecordStreak applies an in-round streak to the stored profile and returns
// the achievements it unlocked.
func (s *Service) RecordStreak(ctx context.Context, name string, streak int) (player.State, []achievements.ID, error) {
	var unlocked []achievements.ID
	next, err := s.players.Update(ctx, name, func(cur player.State) (player.State, error) {
		var err error
		cur, unlocked, err = s.engine.OnStreakUpdate(cur, streak)
		return cur, err
	})
	if err != nil {
		return player.State{}, nil, err
	}
	return next, unlocked, nil
}

// FinishRound applies a finished round to the stored profile. A scoring
// round is submitted to the leaderboard and every round is appended to the
// event log; failures of either are reported as warnings so the profile
// update stands.
func (s *Service) FinishRound(ctx context.Context, name string, round RoundInfo) (player.State, progression.RoundResult, error) {
	var res progression.RoundResult
	next, err := s.players.Update(ctx, name, func(cur player.State) (player.State, error) {
		var err error
		cur, res, err = s.engine.OnRoundEnd(cur, round.Outcome)
		return cur, err
	})
	if err != nil {
		return player.State{}, progression.RoundResult{}, err
	}

	if res.LeaderboardSubmitted && s.board != nil {
		if _, err := s.board.Submit(ctx, name, round.Outcome.FinalScore); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to submit score for %q: %v\n", name, err)
			res.LeaderboardSubmitted = false
		}
	}

	if s.events != nil {
		if err := s.events.AppendRound(ctx, roundEvent(name, round, res)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log round for %q: %v\n", name, err)
		}
	}

	return next, res, nil
}

// Reset replaces name's profile with a fresh one.
func (s *Service) Reset(ctx context.Context, name string) (player.State, error) {
	fresh := player.New(name)
	if err := s.players.Save(ctx, fresh); err != nil {
		return player.State{}, err
	}
	return fresh, nil
}

// RoundInfo identifies a finished round.
type RoundInfo struct {
	// ID is the round's unique id. Empty ids get a fresh one.
	ID         string
	Difficulty game.Difficulty
	Outcome    progression.RoundOutcome
}

func roundEvent(name string, round RoundInfo, res progression.RoundResult) store.RoundEventData {
	id := round.ID
	if id == "" {
		id = uuid.NewString()
	}
	unlocked := make([]string, len(res.Unlocked))
	for i, a := range res.Unlocked {
		unlocked[i] = string(a)
	}
	return store.RoundEventData{
		RoundID:        id,
		Player:         name,
		GameKind:       string(round.Outcome.Kind),
		Difficulty:     string(round.Difficulty),
		FinalScore:     round.Outcome.FinalScore,
		Win:            round.Outcome.Win,
		PointsEarned:   res.PointsEarned,
		ChallengeBonus: res.ChallengeBonus,
		NewLevel:       res.NewLevel,
		Unlocked:       unlocked,
	}
}
