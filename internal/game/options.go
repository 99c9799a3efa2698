package game

import (
	"errors"
	"fmt"
)

// ErrNegativeAnswer is returned when options are requested for a negative
// correct answer; every game produces non-negative answers.
var ErrNegativeAnswer = errors.New("correct answer must be non-negative")

const (
	// OptionCount is the number of choices shown per problem.
	OptionCount = 4

	// StallLimit is the number of consecutive rejected draws after which the
	// candidate window is widened.
	StallLimit = 32

	// MaxDraws bounds the total number of random draws per call.
	MaxDraws = 4096

	// MaxWidenings bounds how many times the candidate window doubles.
	MaxWidenings = 16

	// sequenceSpan is the width of the sequence distractor window,
	// giving offsets in [-5, 4].
	sequenceSpan = 10
)

// Options returns OptionCount distinct non-negative integers, one of which
// is correct, in shuffled order.
func (g *Generator) Options(correct int, d Difficulty, kind Kind) ([]int, error) {
	if correct < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeAnswer, correct)
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGameKind, kind)
	}
	s, err := SettingsFor(d)
	if err != nil {
		return nil, err
	}

	seen := map[int]bool{correct: true}
	opts := make([]int, 0, OptionCount)
	opts = append(opts, correct)

	maxVal := optionCeiling(correct, s, kind)
	span := sequenceSpan
	stalled, widened := 0, 0

	for draws := 0; len(opts) < OptionCount && draws < MaxDraws; draws++ {
		var candidate int
		if kind == KindSequences {
			candidate = correct - span/2 + g.src.IntN(span)
		} else {
			candidate = g.src.IntN(maxVal + 5)
		}

		if candidate < 0 || seen[candidate] {
			stalled++
			if stalled >= StallLimit {
				stalled = 0
				if widened < MaxWidenings {
					widened++
					span *= 2
					maxVal *= 2
				}
			}
			continue
		}

		seen[candidate] = true
		opts = append(opts, candidate)
		stalled = 0
	}

	// Only reachable with a degenerate source.
	for n := 0; len(opts) < OptionCount; n++ {
		if !seen[n] {
			seen[n] = true
			opts = append(opts, n)
		}
	}

	g.shuffle(opts)
	return opts, nil
}

// optionCeiling returns the largest plausible distractor magnitude.
func optionCeiling(correct int, s Settings, kind Kind) int {
	var maxVal int
	switch kind {
	case KindAddition:
		maxVal = 2 * s.Range
	case KindMultiplication:
		maxVal = s.MultiplyCeiling * s.MultiplyCeiling
	default:
		maxVal = correct + s.Range
	}
	if maxVal < 1 {
		maxVal = 1
	}
	return maxVal
}

// shuffle is a Fisher-Yates shuffle driven by the generator's source.
func (g *Generator) shuffle(xs []int) {
	for i := len(xs) - 1; i > 0; i-- {
		j := g.src.IntN(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// IndexOf returns the position of answer in options, or -1.
func IndexOf(options []int, answer int) int {
	for i, o := range options {
		if o == answer {
			return i
		}
	}
	return -1
}
