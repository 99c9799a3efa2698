// Package player defines the persisted player profile.
package player

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
)

// PointsPerLevel is the number of points between consecutive levels.
const PointsPerLevel = 100

// MaxNameLength is the longest accepted player name, in runes.
const MaxNameLength = 15

var (
	// ErrInvalidState is returned when a profile violates its invariants.
	ErrInvalidState = errors.New("invalid player state")

	ErrInvalidName = errors.New("invalid player name")
)

// CleanName trims name and checks it is non-empty and at most
// MaxNameLength runes.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return "", fmt.Errorf("%w: %d characters, at most %d allowed", ErrInvalidName, n, MaxNameLength)
	}
	return name, nil
}

// State is a player's persisted profile.
type State struct {
	Name string `json:"name"`

	// AvatarSeed drives the generated avatar. It defaults to Name.
	AvatarSeed string `json:"avatarSeed,omitempty"`

	Level    int `json:"level"`
	Progress int `json:"progress"`
	Points   int `json:"points"`

	Achievements achievements.State `json:"achievements"`

	// LastChallengeDate is the UTC date (YYYY-MM-DD) the current daily
	// challenge was assigned, or empty.
	LastChallengeDate  string    `json:"lastChallengeDate"`
	ChallengeGame      game.Kind `json:"challengeGame,omitempty"`
	ChallengeCompleted bool      `json:"challengeCompleted"`

	GamesPlayed int `json:"gamesPlayed"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
}

// New returns a fresh level-1 profile for name.
func New(name string) State {
	return State{
		Name:         name,
		AvatarSeed:   name,
		Level:        1,
		Achievements: achievements.NewState(),
	}
}

// LevelFor returns the level reached with points.
func LevelFor(points int) int {
	return points/PointsPerLevel + 1
}

// ProgressFor returns the progress towards the next level, 0-99.
func ProgressFor(points int) int {
	return points % PointsPerLevel
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	if s.Achievements == nil {
		out.Achievements = achievements.NewState()
	} else {
		out.Achievements = s.Achievements.Clone()
	}
	return out
}

// Validate checks the profile invariants.
func (s State) Validate() error {
	switch {
	case s.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidState)
	case s.Points < 0:
		return fmt.Errorf("%w: negative points %d", ErrInvalidState, s.Points)
	case s.Wins < 0 || s.Losses < 0:
		return fmt.Errorf("%w: negative win/loss counters %d/%d", ErrInvalidState, s.Wins, s.Losses)
	case s.GamesPlayed != s.Wins+s.Losses:
		return fmt.Errorf("%w: gamesPlayed %d != wins %d + losses %d",
			ErrInvalidState, s.GamesPlayed, s.Wins, s.Losses)
	case s.Level != LevelFor(s.Points):
		return fmt.Errorf("%w: level %d does not match %d points", ErrInvalidState, s.Level, s.Points)
	case s.Progress != ProgressFor(s.Points):
		return fmt.Errorf("%w: progress %d does not match %d points", ErrInvalidState, s.Progress, s.Points)
	}
	return nil
}

// Normalize repairs a loaded profile so that it satisfies Validate. It
// reports whether anything changed.
func (s *State) Normalize() bool {
	before := fmt.Sprintf("%+v", *s)

	if s.AvatarSeed == "" {
		s.AvatarSeed = s.Name
	}
	s.Points = max(s.Points, 0)
	s.Wins = max(s.Wins, 0)
	s.Losses = max(s.Losses, 0)
	s.GamesPlayed = s.Wins + s.Losses
	s.Level = LevelFor(s.Points)
	s.Progress = ProgressFor(s.Points)
	if s.ChallengeGame != "" && !s.ChallengeGame.Valid() {
		s.ChallengeGame = ""
		s.LastChallengeDate = ""
		s.ChallengeCompleted = false
	}
	s.Achievements = s.Achievements.Normalize()

	return before != fmt.Sprintf("%+v", *s)
}

// WinRate returns wins/gamesPlayed as a percentage, or 0 with no games.
func (s State) WinRate() int {
	if s.GamesPlayed == 0 {
		return 0
	}
	return s.Wins * 100 / s.GamesPlayed
}
