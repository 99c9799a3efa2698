package leaderboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/abhisek/mathexplorer/internal/store"
)

func TestSubmit_NewPlayer(t *testing.T) {
	table := Submit(nil, "Ana", 40)
	if len(table) != 1 || table[0] != (Entry{"Ana", 40}) {
		t.Errorf("table = %v", table)
	}
}

func TestSubmit_KeepsBest(t *testing.T) {
	table := []Entry{{"Ana", 70}, {"Leo", 50}}

	got := Submit(table, "Leo", 30)
	if got[1].Score != 50 {
		t.Errorf("lower score replaced best: %v", got)
	}

	got = Submit(table, "Leo", 90)
	want := []Entry{{"Leo", 90}, {"Ana", 70}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("table = %v, want %v", got, want)
		}
	}
	if table[1].Score != 50 {
		t.Error("input table mutated")
	}
}

func TestSubmit_Idempotent(t *testing.T) {
	table := Submit(Submit(nil, "Ana", 60), "Leo", 30)
	again := Submit(table, "Ana", 60)
	if len(again) != len(table) {
		t.Fatalf("len changed: %d -> %d", len(table), len(again))
	}
	for i := range table {
		if again[i] != table[i] {
			t.Errorf("entry %d changed: %v -> %v", i, table[i], again[i])
		}
	}
}

func TestSubmit_CapAndSort(t *testing.T) {
	var table []Entry
	for i := 0; i < 30; i++ {
		table = Submit(table, fmt.Sprintf("p%02d", i), (i%7)*10+i)
	}
	if len(table) != MaxEntries {
		t.Fatalf("len = %d, want %d", len(table), MaxEntries)
	}
	for i := 1; i < len(table); i++ {
		if table[i].Score > table[i-1].Score {
			t.Fatalf("not sorted at %d: %v", i, table)
		}
	}
	seen := map[string]bool{}
	for _, e := range table {
		if seen[e.PlayerName] {
			t.Errorf("duplicate entry for %s", e.PlayerName)
		}
		seen[e.PlayerName] = true
	}
}

func TestSubmit_StableTies(t *testing.T) {
	table := Submit(Submit(nil, "Ana", 50), "Leo", 50)
	if table[0].PlayerName != "Ana" || table[1].PlayerName != "Leo" {
		t.Errorf("ties reordered: %v", table)
	}
}

func TestSubmit_LowScoreOnFullTable(t *testing.T) {
	var table []Entry
	for i := 0; i < MaxEntries; i++ {
		table = Submit(table, fmt.Sprintf("p%02d", i), 100+i)
	}
	got := Submit(table, "late", 5)
	if Rank(got, "late") != 0 {
		t.Error("low score kept on a full table")
	}
}

func TestRank(t *testing.T) {
	table := []Entry{{"Ana", 70}, {"Leo", 50}}
	if Rank(table, "Leo") != 2 || Rank(table, "Zoe") != 0 {
		t.Errorf("Rank = %d, %d", Rank(table, "Leo"), Rank(table, "Zoe"))
	}
}

func TestService(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc := NewService(kv)

	if table, err := svc.Table(ctx); err != nil || len(table) != 0 {
		t.Fatalf("empty Table = %v, %v", table, err)
	}

	for _, s := range []struct {
		name  string
		score int
	}{{"Ana", 40}, {"Leo", 60}, {"Ana", 80}, {"Zoe", 10}} {
		if _, err := svc.Submit(ctx, s.name, s.score); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	top, err := svc.Top(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 || top[0] != (Entry{"Ana", 80}) || top[1] != (Entry{"Leo", 60}) {
		t.Errorf("Top(2) = %v", top)
	}

	rank, _ := svc.Rank(ctx, "Zoe")
	if rank != 3 {
		t.Errorf("Rank(Zoe) = %d, want 3", rank)
	}
}

func TestService_MalformedTable(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	kv.Set(ctx, store.LeaderboardKey, []byte("not json"))
	svc := NewService(kv)

	table, err := svc.Table(ctx)
	if err != nil || len(table) != 0 {
		t.Errorf("Table = %v, %v; want empty", table, err)
	}

	table, err = svc.Submit(ctx, "Ana", 20)
	if err != nil || len(table) != 1 {
		t.Errorf("Submit over malformed = %v, %v", table, err)
	}
}
