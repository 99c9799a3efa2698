package game

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

// scriptedSource returns preset values in order, clamped to [0, n).
type scriptedSource struct {
	vals []int
	i    int
}

func (s *scriptedSource) IntN(n int) int {
	if s.i >= len(s.vals) {
		return 0
	}
	v := s.vals[s.i]
	s.i++
	if v >= n {
		v = n - 1
	}
	return v
}

// zeroSource always returns 0 and, like *rand.Rand, panics on n <= 0.
type zeroSource struct{}

func (zeroSource) IntN(n int) int {
	if n <= 0 {
		panic("invalid argument to IntN")
	}
	return 0
}

func seeded(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func TestProblem_Addition(t *testing.T) {
	g := seeded(1)
	for _, d := range AllDifficulties() {
		s, _ := SettingsFor(d)
		for i := 0; i < 500; i++ {
			p, err := g.Problem(KindAddition, d)
			if err != nil {
				t.Fatalf("Problem: %v", err)
			}
			a, b := p.Operands[0], p.Operands[1]
			if a < 1 || a > s.Range || b < 1 || b > s.Range {
				t.Fatalf("operands %d, %d out of [1, %d]", a, b, s.Range)
			}
			if p.Answer != a+b {
				t.Fatalf("answer = %d, want %d", p.Answer, a+b)
			}
			if !strings.Contains(p.Question, "+") {
				t.Fatalf("question %q missing +", p.Question)
			}
		}
	}
}

func TestProblem_SubtractionPositive(t *testing.T) {
	g := seeded(2)
	for _, d := range AllDifficulties() {
		s, _ := SettingsFor(d)
		for i := 0; i < 500; i++ {
			p, _ := g.Problem(KindSubtraction, d)
			a, b := p.Operands[0], p.Operands[1]
			if a < 5 || a >= s.Range+5 {
				t.Fatalf("minuend %d out of [5, %d)", a, s.Range+5)
			}
			if b < 1 || b >= a {
				t.Fatalf("subtrahend %d not in [1, %d)", b, a)
			}
			if p.Answer < 1 {
				t.Fatalf("answer %d not positive", p.Answer)
			}
		}
	}
}

func TestProblem_DivisionExact(t *testing.T) {
	g := seeded(3)
	for _, d := range AllDifficulties() {
		s, _ := SettingsFor(d)
		for i := 0; i < 500; i++ {
			p, _ := g.Problem(KindDivision, d)
			dividend, divisor := p.Operands[0], p.Operands[1]
			if divisor < 2 || divisor > (s.Range+3)/4+1 {
				t.Fatalf("divisor %d out of range", divisor)
			}
			if dividend%divisor != 0 {
				t.Fatalf("%d ÷ %d is not exact", dividend, divisor)
			}
			if p.Answer != dividend/divisor || p.Answer < 2 {
				t.Fatalf("answer %d for %s", p.Answer, p.Question)
			}
		}
	}
}

func TestProblem_RangeCeilings(t *testing.T) {
	tests := []struct {
		r        int
		division int
		half     int
	}{
		{10, 4, 5},
		{25, 8, 13},
		{50, 14, 25},
		{20, 6, 10},
	}
	for _, tt := range tests {
		if got := divisionCeiling(tt.r); got != tt.division {
			t.Errorf("divisionCeiling(%d) = %d, want %d", tt.r, got, tt.division)
		}
		if got := halfRange(tt.r); got != tt.half {
			t.Errorf("halfRange(%d) = %d, want %d", tt.r, got, tt.half)
		}
	}
}

func TestProblem_DivisionReachesCeiling(t *testing.T) {
	// between(2, 4) at fácil: a value past the top clamps to 4.
	g := NewGenerator(&scriptedSource{vals: []int{9, 9}})
	p, err := g.Problem(KindDivision, DifficultyEasy)
	if err != nil {
		t.Fatal(err)
	}
	if p.Question != "16 ÷ 4" || p.Answer != 4 {
		t.Errorf("got %q = %d, want \"16 ÷ 4\" = 4", p.Question, p.Answer)
	}
}

func TestProblem_SequenceStartReachesHalfRange(t *testing.T) {
	// medio: step between(2, 6) takes 0 -> 2, start between(1, 13) clamps to 13.
	g := NewGenerator(&scriptedSource{vals: []int{0, 99}})
	p, err := g.Problem(KindSequences, DifficultyMedium)
	if err != nil {
		t.Fatal(err)
	}
	if p.Operands[0] != 13 || p.Answer != 19 {
		t.Errorf("got %v -> %d, want start 13 and answer 19", p.Operands, p.Answer)
	}
}

func TestProblem_MultiplicationCeiling(t *testing.T) {
	g := seeded(4)
	for _, d := range AllDifficulties() {
		s, _ := SettingsFor(d)
		for i := 0; i < 500; i++ {
			p, _ := g.Problem(KindMultiplication, d)
			a, b := p.Operands[0], p.Operands[1]
			if a < 1 || a > s.MultiplyCeiling || b < 1 || b > s.MultiplyCeiling {
				t.Fatalf("factors %d, %d exceed %d", a, b, s.MultiplyCeiling)
			}
			if p.Answer != a*b {
				t.Fatalf("answer = %d, want %d", p.Answer, a*b)
			}
		}
	}
}

func TestProblem_SequencesArithmetic(t *testing.T) {
	g := seeded(5)
	sawDescending := false
	for _, d := range AllDifficulties() {
		for i := 0; i < 500; i++ {
			p, _ := g.Problem(KindSequences, d)
			if !strings.HasSuffix(p.Question, SequencePlaceholder) {
				t.Fatalf("question %q missing placeholder", p.Question)
			}
			t0, t1, t2 := p.Operands[0], p.Operands[1], p.Operands[2]
			step := t1 - t0
			if t2-t1 != step || p.Answer-t2 != step {
				t.Fatalf("not arithmetic: %v -> %d", p.Operands, p.Answer)
			}
			if step < 0 {
				sawDescending = true
				if d != DifficultyHard {
					t.Fatalf("descending sequence on %s", d)
				}
			}
			if step == 0 {
				t.Fatalf("zero step in %v", p.Operands)
			}
			if p.Answer < 0 {
				t.Fatalf("negative answer %d", p.Answer)
			}
		}
	}
	if !sawDescending {
		t.Error("expected at least one descending sequence on hard")
	}
}

func TestProblem_SequenceEasyStep(t *testing.T) {
	g := seeded(6)
	for i := 0; i < 300; i++ {
		p, _ := g.Problem(KindSequences, DifficultyEasy)
		step := p.Operands[1] - p.Operands[0]
		if step < 1 || step > 3 {
			t.Fatalf("easy step %d out of [1, 3]", step)
		}
	}
}

func TestProblem_Scripted(t *testing.T) {
	// between(1,10) twice: 1+2, 1+4.
	g := NewGenerator(&scriptedSource{vals: []int{2, 4}})
	p, err := g.Problem(KindAddition, DifficultyEasy)
	if err != nil {
		t.Fatal(err)
	}
	if p.Question != "3 + 5" || p.Answer != 8 {
		t.Errorf("got %q = %d, want \"3 + 5\" = 8", p.Question, p.Answer)
	}
}

func TestProblem_UnknownKind(t *testing.T) {
	g := seeded(7)
	_, err := g.Problem(Kind("POTENCIAS"), DifficultyEasy)
	if !errors.Is(err, ErrUnknownGameKind) {
		t.Errorf("err = %v, want ErrUnknownGameKind", err)
	}
}

func TestProblem_UnknownDifficulty(t *testing.T) {
	g := seeded(8)
	_, err := g.Problem(KindAddition, Difficulty("imposible"))
	if !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("err = %v, want ErrUnknownDifficulty", err)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"SUMA", KindAddition},
		{"resta", KindSubtraction},
		{"división", KindDivision},
		{"mul", KindMultiplication},
		{" sequences ", KindSequences},
	}
	for _, tc := range tests {
		got, err := ParseKind(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseKind(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseKind("potencias"); !errors.Is(err, ErrUnknownGameKind) {
		t.Errorf("expected ErrUnknownGameKind, got %v", err)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
	}{
		{"fácil", DifficultyEasy},
		{"facil", DifficultyEasy},
		{"MEDIUM", DifficultyMedium},
		{"dificil", DifficultyHard},
	}
	for _, tc := range tests {
		got, err := ParseDifficulty(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseDifficulty(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestSettingsFor(t *testing.T) {
	s, err := SettingsFor(DifficultyMedium)
	if err != nil {
		t.Fatal(err)
	}
	if s.Range != 25 || s.MultiplyCeiling != 10 || s.TimeLimit.Seconds() != 15 {
		t.Errorf("medium settings = %+v", s)
	}
}
