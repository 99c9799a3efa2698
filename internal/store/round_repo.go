package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/mathexplorer/internal/game"
)

// SavedRound is an in-progress round persisted so it can be resumed.
type SavedRound struct {
	ID         string          `json:"id"`
	Kind       game.Kind       `json:"kind"`
	Difficulty game.Difficulty `json:"difficulty"`
	Score      int             `json:"score"`
	Streak     int             `json:"streak"`
	TimeLeft   int             `json:"timeLeft"` // seconds
	Problem    game.Problem    `json:"problem"`
	Options    []int           `json:"options"`
	SavedAt    time.Time       `json:"savedAt"`
}

// RoundRepo persists one saved round per game kind.
type RoundRepo interface {
	// Load returns the saved round for kind, or nil if there is none or it
	// is unreadable.
	Load(ctx context.Context, kind game.Kind) (*SavedRound, error)

	// Save stores r under its kind.
	Save(ctx context.Context, r SavedRound) error

	// Clear removes the saved round for kind.
	Clear(ctx context.Context, kind game.Kind) error
}

type roundRepo struct {
	kv KV
}

// NewRoundRepo returns a RoundRepo backed by kv.
func NewRoundRepo(kv KV) RoundRepo {
	return &roundRepo{kv: kv}
}

func (r *roundRepo) Load(ctx context.Context, kind game.Kind) (*SavedRound, error) {
	data, ok, err := r.kv.Get(ctx, RoundKey(string(kind)))
	if err != nil {
		return nil, fmt.Errorf("load round %s: %w", kind, err)
	}
	if !ok {
		return nil, nil
	}

	var sr SavedRound
	if err := json.Unmarshal(data, &sr); err != nil {
		fmt.Fprintf(os.Stderr, "warning: saved %s round is unreadable, discarding: %v\n", kind, err)
		return nil, nil
	}
	if _, err := game.SettingsFor(sr.Difficulty); err != nil || len(sr.Options) == 0 {
		fmt.Fprintf(os.Stderr, "warning: saved %s round is incomplete, discarding\n", kind)
		return nil, nil
	}
	sr.Kind = kind
	return &sr, nil
}

func (r *roundRepo) Save(ctx context.Context, sr SavedRound) error {
	if sr.SavedAt.IsZero() {
		sr.SavedAt = time.Now().UTC()
	}
	data, err := json.Marshal(sr)
	if err != nil {
		return fmt.Errorf("marshal round %s: %w", sr.Kind, err)
	}
	if err := r.kv.Set(ctx, RoundKey(string(sr.Kind)), data); err != nil {
		return fmt.Errorf("save round %s: %w", sr.Kind, err)
	}
	return nil
}

func (r *roundRepo) Clear(ctx context.Context, kind game.Kind) error {
	if err := r.kv.Delete(ctx, RoundKey(string(kind))); err != nil {
		return fmt.Errorf("clear round %s: %w", kind, err)
	}
	return nil
}
