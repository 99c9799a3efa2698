package profile

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/abhisek/mathexplorer/internal/achievements"
	"github.com/abhisek/mathexplorer/internal/game"
	"github.com/abhisek/mathexplorer/internal/leaderboard"
	"github.com/abhisek/mathexplorer/internal/player"
	"github.com/abhisek/mathexplorer/internal/progression"
	"github.com/abhisek/mathexplorer/internal/store"
)

type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

type recordedRounds struct {
	rounds []store.RoundEventData
	err    error
}

func (r *recordedRounds) AppendRound(_ context.Context, d store.RoundEventData) error {
	if r.err != nil {
		return r.err
	}
	r.rounds = append(r.rounds, d)
	return nil
}

type failingBoard struct{}

func (failingBoard) Submit(context.Context, string, int) ([]leaderboard.Entry, error) {
	return nil, errors.New("disk full")
}

type harness struct {
	svc    *Service
	kv     *store.MemoryKV
	board  *leaderboard.Service
	events *recordedRounds
	now    time.Time
}

func newHarness(t *testing.T, src game.Source) *harness {
	t.Helper()
	h := &harness{
		kv:     store.NewMemoryKV(),
		events: &recordedRounds{},
		now:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
	h.board = leaderboard.NewService(h.kv)
	h.svc = NewService(Deps{
		Players: store.NewPlayerRepo(h.kv),
		Board:   h.board,
		Events:  h.events,
		Now:     func() time.Time { return h.now },
		Source:  src,
	})
	return h
}

func TestLogin_NewPlayerGetsChallenge(t *testing.T) {
	h := newHarness(t, fixedSource(3))
	ctx := context.Background()

	res, err := h.svc.Login(ctx, "  Ana ")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Returning {
		t.Error("first login reported a returning player")
	}
	if !res.NewChallenge {
		t.Error("expected a challenge to be assigned")
	}
	s := res.State
	if s.Name != "Ana" || s.Level != 1 || s.Points != 0 {
		t.Fatalf("unexpected profile: %+v", s)
	}
	if s.LastChallengeDate != "2026-03-14" || s.ChallengeGame != game.KindMultiplication || s.ChallengeCompleted {
		t.Fatalf("challenge = %q %q %v", s.LastChallengeDate, s.ChallengeGame, s.ChallengeCompleted)
	}

	stored, found, err := h.svc.Load(ctx, "Ana")
	if err != nil || !found {
		t.Fatalf("Load: found=%v err=%v", found, err)
	}
	if stored.ChallengeGame != game.KindMultiplication {
		t.Fatalf("challenge not persisted: %+v", stored)
	}
}

func TestLogin_SameDayKeepsChallenge(t *testing.T) {
	h := newHarness(t, fixedSource(0))
	ctx := context.Background()

	if _, err := h.svc.Login(ctx, "Ana"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := h.svc.FinishRound(ctx, "Ana", RoundInfo{Outcome: progression.RoundOutcome{Kind: game.KindAddition, FinalScore: 60, Win: true}}); err != nil {
		t.Fatal(err)
	}

	h.svc.src = fixedSource(4)
	res, err := h.svc.Login(ctx, "Ana")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Returning || res.NewChallenge {
		t.Fatalf("returning=%v newChallenge=%v", res.Returning, res.NewChallenge)
	}
	if res.State.ChallengeGame != game.KindAddition || !res.State.ChallengeCompleted {
		t.Fatalf("same-day login changed the challenge: %+v", res.State)
	}

	h.now = h.now.Add(24 * time.Hour)
	res, err = h.svc.Login(ctx, "Ana")
	if err != nil {
		t.Fatal(err)
	}
	if !res.NewChallenge || res.State.ChallengeGame != game.KindSequences || res.State.ChallengeCompleted {
		t.Fatalf("next-day challenge = %+v", res.State)
	}
	if res.State.Points != 85 {
		t.Fatalf("points lost across login: %d", res.State.Points)
	}
}

func TestLogin_RejectsBadNames(t *testing.T) {
	h := newHarness(t, fixedSource(0))
	for _, name := range []string{"", "   ", "NombreDemasiadoLargo"} {
		if _, err := h.svc.Login(context.Background(), name); !errors.Is(err, player.ErrInvalidName) {
			t.Errorf("Login(%q) err = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestLogin_MalformedProfileStartsFresh(t *testing.T) {
	h := newHarness(t, fixedSource(0))
	ctx := context.Background()
	if err := h.kv.Set(ctx, store.PlayerKey("Ana"), []byte(`{"points":`)); err != nil {
		t.Fatal(err)
	}

	res, err := h.svc.Login(ctx, "Ana")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.State.Points != 0 || res.State.Level != 1 || len(res.State.Achievements) != len(achievements.AllIDs()) {
		t.Fatalf("expected a fresh profile, got %+v", res.State)
	}
}

func TestFinishRound_ChallengeWin(t *testing.T) {
	h := newHarness(t, fixedSource(0)) // challenge: SUMA
	ctx := context.Background()
	if _, err := h.svc.Login(ctx, "Ana"); err != nil {
		t.Fatal(err)
	}

	s, res, err := h.svc.FinishRound(ctx, "Ana", RoundInfo{
		ID:         "round-1",
		Difficulty: game.DifficultyEasy,
		Outcome:    progression.RoundOutcome{Kind: game.KindAddition, FinalScore: 60, Win: true},
	})
	if err != nil {
		t.Fatalf("FinishRound: %v", err)
	}

	if s.Points != 85 || s.Level != 1 || s.Progress != 85 || !s.ChallengeCompleted {
		t.Fatalf("state = %+v", s)
	}
	if res.ChallengeBonus != progression.DailyChallengeBonus || res.PointsEarned != 85 {
		t.Fatalf("result = %+v", res)
	}
	if !slices.Equal(res.Unlocked, []achievements.ID{achievements.SumaWins1}) {
		t.Fatalf("unlocked = %v", res.Unlocked)
	}

	table, err := h.board.Table(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 1 || table[0] != (leaderboard.Entry{PlayerName: "Ana", Score: 60}) {
		t.Fatalf("leaderboard = %+v", table)
	}

	if len(h.events.rounds) != 1 {
		t.Fatalf("expected one round event, got %d", len(h.events.rounds))
	}
	ev := h.events.rounds[0]
	if ev.RoundID != "round-1" || ev.Player != "Ana" || ev.GameKind != "SUMA" || ev.Difficulty != "fácil" ||
		ev.ChallengeBonus != 25 || ev.NewLevel != 1 || !slices.Equal(ev.Unlocked, []string{"SUMA_WINS_1"}) {
		t.Fatalf("round event = %+v", ev)
	}
}

func TestFinishRound_ZeroScoreSkipsLeaderboard(t *testing.T) {
	h := newHarness(t, fixedSource(1))
	ctx := context.Background()

	s, res, err := h.svc.FinishRound(ctx, "Ana", RoundInfo{Outcome: progression.RoundOutcome{Kind: game.KindSubtraction}})
	if err != nil {
		t.Fatal(err)
	}
	if res.LeaderboardSubmitted {
		t.Error("a zero score must not be submitted")
	}
	if s.Losses != 1 || s.GamesPlayed != 1 {
		t.Fatalf("state = %+v", s)
	}
	table, _ := h.board.Table(ctx)
	if len(table) != 0 {
		t.Fatalf("leaderboard = %+v", table)
	}
	if h.events.rounds[0].RoundID == "" {
		t.Error("expected a generated round id")
	}
}

func TestFinishRound_InvalidOutcomeLeavesProfile(t *testing.T) {
	h := newHarness(t, fixedSource(0))
	ctx := context.Background()
	if _, err := h.svc.Login(ctx, "Ana"); err != nil {
		t.Fatal(err)
	}

	_, _, err := h.svc.FinishRound(ctx, "Ana", RoundInfo{Outcome: progression.RoundOutcome{Kind: game.KindAddition, FinalScore: -5}})
	if !errors.Is(err, progression.ErrNegativeScore) {
		t.Fatalf("err = %v, want ErrNegativeScore", err)
	}
	s, _, _ := h.svc.Load(ctx, "Ana")
	if s.GamesPlayed != 0 || s.Points != 0 {
		t.Fatalf("profile changed by a rejected round: %+v", s)
	}
	if len(h.events.rounds) != 0 {
		t.Fatal("rejected round was logged")
	}
}

func TestFinishRound_SideEffectFailuresAreWarnings(t *testing.T) {
	h := newHarness(t, fixedSource(0))
	h.svc.board = failingBoard{}
	h.events.err = errors.New("log closed")

	s, res, err := h.svc.FinishRound(context.Background(), "Ana", RoundInfo{Outcome: progression.RoundOutcome{Kind: game.KindDivision, FinalScore: 30}})
	if err != nil {
		t.Fatalf("FinishRound: %v", err)
	}
	if res.LeaderboardSubmitted {
		t.Error("failed submission reported as submitted")
	}
	if s.Points != 30 {
		t.Fatalf("points = %d, want 30", s.Points)
	}
}

func TestRecordStreak(t *testing.T) {
	h := newHarness(t, fixedSource(0))
	ctx := context.Background()

	_, unlocked, err := h.svc.RecordStreak(ctx, "Ana", 3)
	if err != nil || len(unlocked) != 0 {
		t.Fatalf("streak 3: unlocked=%v err=%v", unlocked, err)
	}
	s, unlocked, err := h.svc.RecordStreak(ctx, "Ana", 5)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(unlocked, []achievements.ID{achievements.PerfectStreak5}) {
		t.Fatalf("unlocked = %v", unlocked)
	}
	if p := s.Achievements[achievements.PerfectStreak5]; !p.Unlocked || p.Current != 5 {
		t.Fatalf("progress = %+v", p)
	}

	_, unlocked, _ = h.svc.RecordStreak(ctx, "Ana", 7)
	if len(unlocked) != 0 {
		t.Fatalf("unlocked twice: %v", unlocked)
	}

	if _, _, err := h.svc.RecordStreak(ctx, "Ana", -1); !errors.Is(err, progression.ErrNegativeStreak) {
		t.Fatalf("err = %v, want ErrNegativeStreak", err)
	}
}

func TestReset(t *testing.T) {
	h := newHarness(t, fixedSource(0))
	ctx := context.Background()
	if _, _, err := h.svc.FinishRound(ctx, "Ana", RoundInfo{Outcome: progression.RoundOutcome{Kind: game.KindAddition, FinalScore: 120, Win: true}}); err != nil {
		t.Fatal(err)
	}

	fresh, err := h.svc.Reset(ctx, "Ana")
	if err != nil {
		t.Fatal(err)
	}
	stored, found, _ := h.svc.Load(ctx, "Ana")
	if !found || stored.Points != 0 || stored.Level != 1 || stored.Achievements.UnlockedCount() != 0 {
		t.Fatalf("stored after reset = %+v", stored)
	}
	if fresh.Name != "Ana" {
		t.Fatalf("fresh = %+v", fresh)
	}
}
