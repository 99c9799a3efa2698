package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/mathexplorer/internal/store"
)

// Service loads and updates the persisted table.
type Service struct {
	kv store.KV
}

// NewService creates a Service on kv.
func NewService(kv store.KV) *Service {
	return &Service{kv: kv}
}

// Submit records a score for name inside a single read-modify-write and
// returns the updated table.
func (s *Service) Submit(ctx context.Context, name string, score int) ([]Entry, error) {
	var table []Entry
	err := s.kv.Update(ctx, store.LeaderboardKey, func(old []byte, ok bool) ([]byte, error) {
		var current []Entry
		if ok {
			current = decode(old)
		}
		table = Submit(current, name, score)
		return json.Marshal(table)
	})
	if err != nil {
		return nil, fmt.Errorf("submit score: %w", err)
	}
	return table, nil
}

// Table returns the full stored table.
func (s *Service) Table(ctx context.Context) ([]Entry, error) {
	data, ok, err := s.kv.Get(ctx, store.LeaderboardKey)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return decode(data), nil
}

// Top returns at most n entries from the top of the table.
func (s *Service) Top(ctx context.Context, n int) ([]Entry, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(table) > n {
		table = table[:n]
	}
	return table, nil
}

// Rank returns name's 1-based position, or 0 when not on the table.
func (s *Service) Rank(ctx context.Context, name string) (int, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return 0, err
	}
	return Rank(table, name), nil
}

// decode parses a stored table. Unreadable data yields an empty table.
func decode(data []byte) []Entry {
	var table []Entry
	if err := json.Unmarshal(data, &table); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stored leaderboard is unreadable, starting empty: %v\n", err)
		return nil
	}
	return table
}
