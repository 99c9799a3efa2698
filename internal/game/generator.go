package game

import (
	"fmt"
	"math/rand/v2"
)

// SequencePlaceholder marks the missing term in a sequence question.
const SequencePlaceholder = "__?"

// Source is a uniform integer source. IntN returns a value in [0, n) and
// panics if n <= 0, matching *rand.Rand from math/rand/v2.
type Source interface {
	IntN(n int) int
}

// globalSource draws from the math/rand/v2 top-level generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource returns a process-wide random source.
func DefaultSource() Source {
	return globalSource{}
}

// Generator produces problems and answer options. It holds no state other
// than its random source.
type Generator struct {
	src Source
}

// NewGenerator creates a Generator. A nil src uses DefaultSource.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = DefaultSource()
	}
	return &Generator{src: src}
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.src.IntN(hi-lo+1)
}

// Problem generates a question for kind at difficulty d.
func (g *Generator) Problem(kind Kind, d Difficulty) (Problem, error) {
	s, err := SettingsFor(d)
	if err != nil {
		return Problem{}, err
	}
	r := s.Range

	switch kind {
	case KindAddition:
		a := g.between(1, r)
		b := g.between(1, r)
		return Problem{
			Question: fmt.Sprintf("%d + %d", a, b),
			Answer:   a + b,
			Operands: []int{a, b},
		}, nil

	case KindSubtraction:
		// a in [5, r+5) and b in [1, a-1] keep the result positive.
		a := 5 + g.src.IntN(r)
		b := g.between(1, a-1)
		return Problem{
			Question: fmt.Sprintf("%d - %d", a, b),
			Answer:   a - b,
			Operands: []int{a, b},
		}, nil

	case KindDivision:
		// Pick the quotient first so the division is always exact.
		hi := divisionCeiling(r)
		quotient := g.between(2, hi)
		divisor := g.between(2, hi)
		dividend := quotient * divisor
		return Problem{
			Question: fmt.Sprintf("%d ÷ %d", dividend, divisor),
			Answer:   quotient,
			Operands: []int{dividend, divisor},
		}, nil

	case KindMultiplication:
		a := g.between(1, s.MultiplyCeiling)
		b := g.between(1, s.MultiplyCeiling)
		return Problem{
			Question: fmt.Sprintf("%d × %d", a, b),
			Answer:   a * b,
			Operands: []int{a, b},
		}, nil

	case KindSequences:
		return g.sequence(d, r), nil
	}

	return Problem{}, fmt.Errorf("%w: %q", ErrUnknownGameKind, kind)
}

func (g *Generator) sequence(d Difficulty, r int) Problem {
	var terms []int
	var answer int

	if d == DifficultyHard && g.src.IntN(2) == 1 {
		step := g.between(2, 6)
		start := g.src.IntN(halfRange(r)) + step*3
		terms = []int{start, start - step, start - 2*step}
		answer = start - 3*step
	} else {
		var step int
		if d == DifficultyEasy {
			step = g.between(1, 3)
		} else {
			step = g.between(2, 6)
		}
		start := g.between(1, halfRange(r))
		terms = []int{start, start + step, start + 2*step}
		answer = start + 3*step
	}

	return Problem{
		Question: fmt.Sprintf("%d, %d, %d, %s", terms[0], terms[1], terms[2], SequencePlaceholder),
		Answer:   answer,
		Operands: terms,
	}
}

// divisionCeiling is the largest quotient and divisor for range r,
// ceil(r/4) + 1.
func divisionCeiling(r int) int {
	return (r+3)/4 + 1
}

// halfRange is r/2 rounded up, so odd ranges keep their top start value.
func halfRange(r int) int {
	return (r + 1) / 2
}

// Choose returns a uniform index in [0, n). n must be positive.
func (g *Generator) Choose(n int) int {
	return g.src.IntN(n)
}
