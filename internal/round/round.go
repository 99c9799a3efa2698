// Package round implements the state machine of a single game round:
// problems, answers, the per-problem timer, score and streak.
package round

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/progression"
	"github.com/abhisek/mathexplorer/internal/store"
)

const (
	// WinScore ends the round as a win once reached.
	WinScore = 50

	// PointsPerCorrect is awarded for each correct answer.
	PointsPerCorrect = 10
)

var (
	ErrRoundOver  = errors.New("round is over")
	ErrNotWaiting = errors.New("not waiting for an answer")
)

// Monsters are the foes shown in the subtraction game.
var Monsters = []string{"👾", "👹", "👻", "👽", "💀", "👺", "🤖", "🤡"}

// Phase is the current phase of a round.
type Phase int

const (
	PhaseAnswering Phase = iota // waiting for the player's choice
	PhaseFeedback               // showing the result of the last answer or timeout
	PhaseWon                    // WinScore reached
	PhaseEnded                  // player left the round
)

// State is a round in progress.
type State struct {
	ID         string
	Kind       game.Kind
	Difficulty game.Difficulty

	Score      int
	Streak     int
	BestStreak int
	Answered   int
	Correct    int

	// TimeLeft is the remaining time for the current problem in seconds.
	TimeLeft int

	Problem game.Problem
	Options []int

	Phase Phase

	// LastCorrect and Selected describe the last answer while in
	// PhaseFeedback. Selected is -1 after a timeout.
	LastCorrect bool
	Selected    int

	// Monster is the current foe in the subtraction game.
	Monster string

	settings game.Settings
}

// AnswerResult reports the effect of an answer.
type AnswerResult struct {
	Correct bool
	Answer  int
	Streak  int
	Won     bool
}

// Start begins a round and serves its first problem.
func Start(kind game.Kind, d game.Difficulty, gen *game.Generator) (*State, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("start round: %w: %q", game.ErrUnknownGameKind, kind)
	}
	settings, err := game.SettingsFor(d)
	if err != nil {
		return nil, fmt.Errorf("start round: %w", err)
	}

	s := &State{
		ID:         uuid.New().String(),
		Kind:       kind,
		Difficulty: d,
		Selected:   -1,
		settings:   settings,
	}
	if err := s.NextProblem(gen); err != nil {
		return nil, err
	}
	return s, nil
}

// TimeLimit returns the full per-problem budget in seconds.
func (s *State) TimeLimit() int {
	return int(s.settings.TimeLimit.Seconds())
}

// Over reports whether the round has been won or left.
func (s *State) Over() bool {
	return s.Phase == PhaseWon || s.Phase == PhaseEnded
}

// NextProblem serves a fresh problem and resets the timer.
func (s *State) NextProblem(gen *game.Generator) error {
	if s.Over() {
		return ErrRoundOver
	}
	p, err := gen.Problem(s.Kind, s.Difficulty)
	if err != nil {
		return fmt.Errorf("next problem: %w", err)
	}
	opts, err := gen.Options(p.Answer, s.Difficulty, s.Kind)
	if err != nil {
		return fmt.Errorf("next problem options: %w", err)
	}

	s.Problem = p
	s.Options = opts
	s.TimeLeft = s.TimeLimit()
	s.Phase = PhaseAnswering
	s.LastCorrect = false
	s.Selected = -1
	if s.Kind == game.KindSubtraction {
		s.Monster = Monsters[gen.Choose(len(Monsters))]
	}
	return nil
}

// Answer submits the player's choice for the current problem.
func (s *State) Answer(choice int) (AnswerResult, error) {
	if s.Over() {
		return AnswerResult{}, ErrRoundOver
	}
	if s.Phase != PhaseAnswering {
		return AnswerResult{}, ErrNotWaiting
	}

	s.Answered++
	s.Selected = choice
	res := AnswerResult{Answer: s.Problem.Answer}

	if choice == s.Problem.Answer {
		s.Score += PointsPerCorrect
		s.Streak++
		s.Correct++
		s.BestStreak = max(s.BestStreak, s.Streak)
		s.LastCorrect = true
		res.Correct = true
	} else {
		s.Streak = 0
		s.LastCorrect = false
	}
	res.Streak = s.Streak

	if s.Score >= WinScore {
		s.Phase = PhaseWon
		res.Won = true
	} else {
		s.Phase = PhaseFeedback
	}
	return res, nil
}

// Tick advances the timer by one second. It reports true when the problem
// timed out on this tick, which counts as a miss.
func (s *State) Tick() bool {
	if s.Phase != PhaseAnswering {
		return false
	}
	if s.TimeLeft > 0 {
		s.TimeLeft--
	}
	if s.TimeLeft > 0 {
		return false
	}
	s.Answered++
	s.Streak = 0
	s.LastCorrect = false
	s.Selected = -1
	s.Phase = PhaseFeedback
	return true
}

// End marks the round as left by the player. A won round stays won.
func (s *State) End() progression.RoundOutcome {
	if s.Phase != PhaseWon {
		s.Phase = PhaseEnded
	}
	return s.Outcome()
}

// Outcome returns the round's outcome as it stands.
func (s *State) Outcome() progression.RoundOutcome {
	return progression.RoundOutcome{
		Kind:       s.Kind,
		FinalScore: s.Score,
		Win:        s.Score >= WinScore,
	}
}

// Snapshot captures the round for resuming later.
func (s *State) Snapshot() store.SavedRound {
	return store.SavedRound{
		ID:         s.ID,
		Kind:       s.Kind,
		Difficulty: s.Difficulty,
		Score:      s.Score,
		Streak:     s.Streak,
		TimeLeft:   s.TimeLeft,
		Problem:    s.Problem,
		Options:    append([]int(nil), s.Options...),
	}
}

// Restore rebuilds a round from a snapshot. The restored round waits for an
// answer to the saved problem.
func Restore(sr store.SavedRound) (*State, error) {
	if !sr.Kind.Valid() {
		return nil, fmt.Errorf("restore round: %w: %q", game.ErrUnknownGameKind, sr.Kind)
	}
	settings, err := game.SettingsFor(sr.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("restore round: %w", err)
	}
	if game.IndexOf(sr.Options, sr.Problem.Answer) < 0 {
		return nil, fmt.Errorf("restore round: answer %d missing from options", sr.Problem.Answer)
	}

	id := sr.ID
	if id == "" {
		id = uuid.New().String()
	}
	s := &State{
		ID:         id,
		Kind:       sr.Kind,
		Difficulty: sr.Difficulty,
		Score:      sr.Score,
		Streak:     sr.Streak,
		BestStreak: sr.Streak,
		TimeLeft:   sr.TimeLeft,
		Problem:    sr.Problem,
		Options:    append([]int(nil), sr.Options...),
		Phase:      PhaseAnswering,
		Selected:   -1,
		settings:   settings,
	}
	if s.TimeLeft <= 0 || s.TimeLeft > s.TimeLimit() {
		s.TimeLeft = s.TimeLimit()
	}
	if s.Kind == game.KindSubtraction {
		s.Monster = Monsters[0]
	}
	return s, nil
}
