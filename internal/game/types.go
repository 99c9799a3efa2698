package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownGameKind   = errors.New("unknown game kind")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Kind identifies one of the five mini-games.
type Kind string

const (
	KindAddition       Kind = "SUMA"
	KindSubtraction    Kind = "RESTA"
	KindDivision       Kind = "DIVISION"
	KindMultiplication Kind = "MULTIPLICACION"
	KindSequences      Kind = "SECUENCIAS"
)

// AllKinds returns all game kinds in menu order.
func AllKinds() []Kind {
	return []Kind{KindAddition, KindSubtraction, KindDivision, KindMultiplication, KindSequences}
}

// Valid reports whether k is one of the known game kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindAddition, KindSubtraction, KindDivision, KindMultiplication, KindSequences:
		return true
	}
	return false
}

// DisplayName returns the title shown to players.
func (k Kind) DisplayName() string {
	switch k {
	case KindAddition:
		return "Suma Veloz"
	case KindSubtraction:
		return "Resta el Monstruo"
	case KindDivision:
		return "División Galáctica"
	case KindMultiplication:
		return "Tablas Mágicas"
	case KindSequences:
		return "Secuencias Secretas"
	default:
		return string(k)
	}
}

// Icon returns the display icon for the game kind.
func (k Kind) Icon() string {
	switch k {
	case KindAddition:
		return "☀"
	case KindSubtraction:
		return "👾"
	case KindDivision:
		return "🪐"
	case KindMultiplication:
		return "🔮"
	case KindSequences:
		return "🔢"
	default:
		return "✦"
	}
}

// ParseKind accepts a stable id ("SUMA") or a lowercase alias ("suma",
// "addition").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "suma", "addition", "add":
		return KindAddition, nil
	case "resta", "subtraction", "sub":
		return KindSubtraction, nil
	case "division", "división", "div":
		return KindDivision, nil
	case "multiplicacion", "multiplicación", "multiplication", "mul":
		return KindMultiplication, nil
	case "secuencias", "sequences", "seq":
		return KindSequences, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGameKind, s)
}

// Difficulty is one of the three tiers controlling operand ranges and the
// per-problem time budget. Values are persisted as-is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "fácil"
	DifficultyMedium Difficulty = "medio"
	DifficultyHard   Difficulty = "difícil"
)

// AllDifficulties returns the tiers from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty accepts the persisted values plus ASCII and English aliases.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fácil", "facil", "easy":
		return DifficultyEasy, nil
	case "medio", "medium":
		return DifficultyMedium, nil
	case "difícil", "dificil", "hard":
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Settings holds the numeric parameters for a difficulty tier.
type Settings struct {
	// Range bounds operand magnitudes.
	Range int

	// TimeLimit is the per-problem time budget. Only the presentation layer
	// consumes it.
	TimeLimit time.Duration

	// MultiplyCeiling is the largest factor used by the multiplication game.
	MultiplyCeiling int
}

var difficultySettings = map[Difficulty]Settings{
	DifficultyEasy:   {Range: 10, TimeLimit: 20 * time.Second, MultiplyCeiling: 5},
	DifficultyMedium: {Range: 25, TimeLimit: 15 * time.Second, MultiplyCeiling: 10},
	DifficultyHard:   {Range: 50, TimeLimit: 10 * time.Second, MultiplyCeiling: 12},
}

// SettingsFor returns the parameters for d.
func SettingsFor(d Difficulty) (Settings, error) {
	s, ok := difficultySettings[d]
	if !ok {
		return Settings{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	return s, nil
}

// Problem is one generated question with its correct answer.
type Problem struct {
	// Question is the text shown to the player, e.g. "7 + 5" or "3, 5, 7, __?".
	Question string `json:"question"`

	// Answer is the correct integer answer.
	Answer int `json:"answer"`

	// Operands holds the numbers the question was built from, in display
	// order. For sequences these are the three shown terms.
	Operands []int `json:"operands,omitempty"`
}
