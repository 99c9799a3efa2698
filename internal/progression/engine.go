// Package progression applies round outcomes and streak updates to a
// player's profile. All operations are pure: the input state is never
// mutated and a new state is returned.
package progression

import (
	"errors"
	"fmt"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/player"
)

// DailyChallengeBonus is added to the round total when the player wins the
// day's challenge game for the first time.
const DailyChallengeBonus = 25

var (
	ErrNegativeScore  = errors.New("negative final score")
	ErrNegativeStreak = errors.New("negative streak")
)

// RoundOutcome is what a finished round reports to the engine.
type RoundOutcome struct {
	Kind       game.Kind `json:"gameKind"`
	FinalScore int       `json:"finalScore"`
	Win        bool      `json:"win"`
}

// RoundResult summarizes the effects of OnRoundEnd.
type RoundResult struct {
	// LeaderboardSubmitted is true when the score should be (and, through
	// the profile service, was) submitted to the leaderboard.
	LeaderboardSubmitted bool

	// ChallengeBonus is the daily bonus awarded this round, 0 or
	// DailyChallengeBonus.
	ChallengeBonus int

	PointsEarned int
	LeveledUp    bool
	OldLevel     int
	NewLevel     int

	// Unlocked lists every achievement unlocked by this call in evaluation
	// order.
	Unlocked []achievements.ID
}

// LastUnlocked returns the final achievement unlocked this round.
func (r RoundResult) LastUnlocked() (achievements.ID, bool) {
	if len(r.Unlocked) == 0 {
		return "", false
	}
	return r.Unlocked[len(r.Unlocked)-1], true
}

// Engine applies the progression rules.
type Engine struct{}

// NewEngine creates an Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// OnStreakUpdate records the current in-round streak against the streak
// achievement. It returns the ids unlocked by this call.
func (e *Engine) OnStreakUpdate(s player.State, streak int) (player.State, []achievements.ID, error) {
	if streak < 0 {
		return s, nil, fmt.Errorf("streak update: %w: %d", ErrNegativeStreak, streak)
	}
	if err := s.Validate(); err != nil {
		return s, nil, fmt.Errorf("streak update: %w", err)
	}

	next := s.Clone()
	if next.Achievements[achievements.PerfectStreak5].Unlocked {
		return next, nil, nil
	}

	var unlocked []achievements.ID
	if next.Achievements.Advance(achievements.PerfectStreak5, streak) {
		unlocked = append(unlocked, achievements.PerfectStreak5)
	}
	return next, unlocked, nil
}

// OnRoundEnd applies a finished round: points, daily bonus, level, win/loss
// stats and achievements, in that order.
func (e *Engine) OnRoundEnd(s player.State, o RoundOutcome) (player.State, RoundResult, error) {
	if o.FinalScore < 0 {
		return s, RoundResult{}, fmt.Errorf("round end: %w: %d", ErrNegativeScore, o.FinalScore)
	}
	if !o.Kind.Valid() {
		return s, RoundResult{}, fmt.Errorf("round end: %w: %q", game.ErrUnknownGameKind, o.Kind)
	}
	if err := s.Validate(); err != nil {
		return s, RoundResult{}, fmt.Errorf("round end: %w", err)
	}

	next := s.Clone()
	res := RoundResult{
		LeaderboardSubmitted: o.FinalScore > 0,
		OldLevel:             s.Level,
	}

	total := s.Points + o.FinalScore
	if o.Win && o.Kind == s.ChallengeGame && !s.ChallengeCompleted {
		total += DailyChallengeBonus
		next.ChallengeCompleted = true
		res.ChallengeBonus = DailyChallengeBonus
	}
	res.PointsEarned = total - s.Points

	next.Points = total
	next.Level = player.LevelFor(total)
	next.Progress = player.ProgressFor(total)
	res.NewLevel = next.Level
	res.LeveledUp = next.Level > s.Level

	next.GamesPlayed++
	if o.Win {
		next.Wins++
	} else {
		next.Losses++
	}

	if next.Achievements.Advance(achievements.HighScore100, next.Points) {
		res.Unlocked = append(res.Unlocked, achievements.HighScore100)
	}
	if o.Win {
		for _, id := range achievements.WinAchievements(o.Kind) {
			if next.Achievements.Increment(id) {
				res.Unlocked = append(res.Unlocked, id)
			}
		}
	}

	return next, res, nil
}
