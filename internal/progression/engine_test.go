package progression

import (
	"errors"
	"testing"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/player"
)

func withPoints(name string, points int) player.State {
	s := player.New(name)
	s.Points = points
	s.Level = player.LevelFor(points)
	s.Progress = player.ProgressFor(points)
	return s
}

func TestOnRoundEnd_FirstWinWithChallenge(t *testing.T) {
	e := NewEngine()
	s := player.New("Ana")
	s.ChallengeGame = game.KindAddition
	s.LastChallengeDate = "2024-03-01"

	next, res, err := e.OnRoundEnd(s, RoundOutcome{Kind: game.KindAddition, FinalScore: 60, Win: true})
	if err != nil {
		t.Fatalf("OnRoundEnd: %v", err)
	}
	if next.Points != 85 || next.Level != 1 || next.Progress != 85 {
		t.Errorf("points/level/progress = %d/%d/%d, want 85/1/85", next.Points, next.Level, next.Progress)
	}
	if !next.ChallengeCompleted {
		t.Error("challenge not completed")
	}
	if res.ChallengeBonus != DailyChallengeBonus {
		t.Errorf("ChallengeBonus = %d", res.ChallengeBonus)
	}
	if !next.Achievements[achievements.SumaWins1].Unlocked {
		t.Error("SUMA_WINS_1 not unlocked")
	}
	if got := next.Achievements[achievements.SumaWins5].Current; got != 1 {
		t.Errorf("SUMA_WINS_5 current = %d, want 1", got)
	}
	if !res.LeaderboardSubmitted {
		t.Error("expected leaderboard submission")
	}
	if len(res.Unlocked) != 1 || res.Unlocked[0] != achievements.SumaWins1 {
		t.Errorf("Unlocked = %v", res.Unlocked)
	}
	if next.GamesPlayed != 1 || next.Wins != 1 || next.Losses != 0 {
		t.Errorf("stats = %d/%d/%d", next.GamesPlayed, next.Wins, next.Losses)
	}
}

func TestOnRoundEnd_LevelUp(t *testing.T) {
	e := NewEngine()
	s := withPoints("Leo", 95)
	s.ChallengeGame = game.KindDivision

	next, res, err := e.OnRoundEnd(s, RoundOutcome{Kind: game.KindAddition, FinalScore: 10, Win: false})
	if err != nil {
		t.Fatal(err)
	}
	if next.Points != 105 || next.Level != 2 || next.Progress != 5 {
		t.Errorf("points/level/progress = %d/%d/%d, want 105/2/5", next.Points, next.Level, next.Progress)
	}
	if !res.LeveledUp || res.OldLevel != 1 || res.NewLevel != 2 {
		t.Errorf("level result = %+v", res)
	}
	if res.ChallengeBonus != 0 || next.ChallengeCompleted {
		t.Error("bonus awarded without a challenge match")
	}
	if !next.Achievements[achievements.HighScore100].Unlocked {
		t.Error("HIGH_SCORE_100 not unlocked at 105 points")
	}
	if next.Losses != 1 {
		t.Errorf("losses = %d", next.Losses)
	}
}

func TestOnRoundEnd_BonusOncePerDay(t *testing.T) {
	e := NewEngine()
	s := player.New("Ana")
	s.ChallengeGame = game.KindSequences

	win := RoundOutcome{Kind: game.KindSequences, FinalScore: 50, Win: true}
	s1, r1, err := e.OnRoundEnd(s, win)
	if err != nil {
		t.Fatal(err)
	}
	s2, r2, err := e.OnRoundEnd(s1, win)
	if err != nil {
		t.Fatal(err)
	}
	if r1.ChallengeBonus != DailyChallengeBonus || r2.ChallengeBonus != 0 {
		t.Errorf("bonuses = %d, %d", r1.ChallengeBonus, r2.ChallengeBonus)
	}
	if s2.Points != 125 {
		t.Errorf("points = %d, want 125", s2.Points)
	}
}

func TestOnRoundEnd_LossNoChallengeBonus(t *testing.T) {
	e := NewEngine()
	s := player.New("Ana")
	s.ChallengeGame = game.KindAddition

	next, res, _ := e.OnRoundEnd(s, RoundOutcome{Kind: game.KindAddition, FinalScore: 40, Win: false})
	if res.ChallengeBonus != 0 || next.ChallengeCompleted {
		t.Error("bonus awarded for a loss")
	}
}

func TestOnRoundEnd_ZeroScoreNotSubmitted(t *testing.T) {
	e := NewEngine()
	_, res, err := e.OnRoundEnd(player.New("Ana"), RoundOutcome{Kind: game.KindDivision, FinalScore: 0})
	if err != nil {
		t.Fatal(err)
	}
	if res.LeaderboardSubmitted {
		t.Error("zero score submitted")
	}
}

func TestOnRoundEnd_MultipleUnlocks(t *testing.T) {
	e := NewEngine()
	s := withPoints("Ana", 90)
	s.Wins, s.GamesPlayed = 4, 4
	s.Achievements[achievements.RestaWins1] = achievements.Progress{Current: 1, Unlocked: true}
	s.Achievements[achievements.RestaWins5] = achievements.Progress{Current: 4}

	next, res, err := e.OnRoundEnd(s, RoundOutcome{Kind: game.KindSubtraction, FinalScore: 50, Win: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []achievements.ID{achievements.HighScore100, achievements.RestaWins5}
	if len(res.Unlocked) != len(want) {
		t.Fatalf("Unlocked = %v, want %v", res.Unlocked, want)
	}
	for i := range want {
		if res.Unlocked[i] != want[i] {
			t.Errorf("Unlocked[%d] = %s, want %s", i, res.Unlocked[i], want[i])
		}
	}
	if last, _ := res.LastUnlocked(); last != achievements.RestaWins5 {
		t.Errorf("LastUnlocked = %s", last)
	}
	if got := next.Achievements[achievements.RestaWins1].Current; got != 1 {
		t.Errorf("unlocked counter advanced to %d", got)
	}
}

func TestOnRoundEnd_DivisionHasNoWinAchievements(t *testing.T) {
	e := NewEngine()
	next, res, err := e.OnRoundEnd(player.New("Ana"), RoundOutcome{Kind: game.KindDivision, FinalScore: 50, Win: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Unlocked) != 0 {
		t.Errorf("Unlocked = %v", res.Unlocked)
	}
	if next.Achievements.UnlockedCount() != 0 {
		t.Error("division unlocked something")
	}
}

func TestOnRoundEnd_DoesNotMutateInput(t *testing.T) {
	e := NewEngine()
	s := player.New("Ana")
	s.ChallengeGame = game.KindAddition

	_, _, err := e.OnRoundEnd(s, RoundOutcome{Kind: game.KindAddition, FinalScore: 100, Win: true})
	if err != nil {
		t.Fatal(err)
	}
	if s.Points != 0 || s.ChallengeCompleted || s.GamesPlayed != 0 {
		t.Errorf("input mutated: %+v", s)
	}
	for id, p := range s.Achievements {
		if p.Current != 0 || p.Unlocked {
			t.Errorf("input achievement %s mutated: %+v", id, p)
		}
	}
}

func TestOnRoundEnd_PointsMonotone(t *testing.T) {
	e := NewEngine()
	s := player.New("Ana")
	outcomes := []RoundOutcome{
		{game.KindAddition, 30, false},
		{game.KindSubtraction, 0, false},
		{game.KindMultiplication, 70, true},
		{game.KindSequences, 50, true},
	}
	prev := 0
	for _, o := range outcomes {
		var err error
		s, _, err = e.OnRoundEnd(s, o)
		if err != nil {
			t.Fatal(err)
		}
		if s.Points < prev {
			t.Fatalf("points decreased: %d -> %d", prev, s.Points)
		}
		if err := s.Validate(); err != nil {
			t.Fatalf("invariant broken: %v", err)
		}
		prev = s.Points
	}
}

func TestOnRoundEnd_Errors(t *testing.T) {
	e := NewEngine()

	_, _, err := e.OnRoundEnd(player.New("Ana"), RoundOutcome{Kind: game.KindAddition, FinalScore: -10})
	if !errors.Is(err, ErrNegativeScore) {
		t.Errorf("negative score: %v", err)
	}

	_, _, err = e.OnRoundEnd(player.New("Ana"), RoundOutcome{Kind: game.Kind("X"), FinalScore: 10})
	if !errors.Is(err, game.ErrUnknownGameKind) {
		t.Errorf("unknown kind: %v", err)
	}

	bad := player.New("Ana")
	bad.GamesPlayed = 7
	_, _, err = e.OnRoundEnd(bad, RoundOutcome{Kind: game.KindAddition, FinalScore: 10})
	if !errors.Is(err, player.ErrInvalidState) {
		t.Errorf("invalid state: %v", err)
	}
}

func TestOnStreakUpdate_Unlocks(t *testing.T) {
	e := NewEngine()
	s := player.New("Ana")
	s.Achievements[achievements.PerfectStreak5] = achievements.Progress{Current: 3}

	next, unlocked, err := e.OnStreakUpdate(s, 5)
	if err != nil {
		t.Fatal(err)
	}
	p := next.Achievements[achievements.PerfectStreak5]
	if p.Current != 5 || !p.Unlocked {
		t.Errorf("progress = %+v", p)
	}
	if len(unlocked) != 1 || unlocked[0] != achievements.PerfectStreak5 {
		t.Errorf("unlocked = %v", unlocked)
	}
	if s.Achievements[achievements.PerfectStreak5].Current != 3 {
		t.Error("input mutated")
	}
}

func TestOnStreakUpdate_Monotone(t *testing.T) {
	e := NewEngine()
	s := player.New("Ana")
	s, _, _ = e.OnStreakUpdate(s, 4)
	s, unlocked, _ := e.OnStreakUpdate(s, 1)
	if got := s.Achievements[achievements.PerfectStreak5].Current; got != 4 {
		t.Errorf("current = %d, want 4", got)
	}
	if len(unlocked) != 0 {
		t.Errorf("unlocked = %v", unlocked)
	}
}

func TestOnStreakUpdate_AlreadyUnlocked(t *testing.T) {
	e := NewEngine()
	s := player.New("Ana")
	s.Achievements[achievements.PerfectStreak5] = achievements.Progress{Current: 5, Unlocked: true}

	next, unlocked, err := e.OnStreakUpdate(s, 12)
	if err != nil {
		t.Fatal(err)
	}
	if len(unlocked) != 0 {
		t.Errorf("unlocked twice: %v", unlocked)
	}
	if got := next.Achievements[achievements.PerfectStreak5].Current; got != 5 {
		t.Errorf("current = %d after unlock", got)
	}
}

func TestOnStreakUpdate_Negative(t *testing.T) {
	e := NewEngine()
	if _, _, err := e.OnStreakUpdate(player.New("Ana"), -1); !errors.Is(err, ErrNegativeStreak) {
		t.Errorf("err = %v", err)
	}
}
