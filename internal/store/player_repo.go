package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/mathexplorer/internal/player"
)

// PlayerRepo persists player profiles.
type PlayerRepo interface {
	// Load returns name's profile. found is false when no profile exists, in
	// which case a fresh profile is returned. Unreadable profiles are
	// replaced by a fresh one as well.
	Load(ctx context.Context, name string) (s player.State, found bool, err error)

	// Save stores the profile under its name.
	Save(ctx context.Context, s player.State) error

	// Update loads, transforms and stores a profile atomically.
	Update(ctx context.Context, name string, fn func(player.State) (player.State, error)) (player.State, error)

	// Delete removes name's profile.
	Delete(ctx context.Context, name string) error

	// List returns all stored player names.
	List(ctx context.Context) ([]string, error)
}

type playerRepo struct {
	kv KV
}

// NewPlayerRepo returns a PlayerRepo backed by kv.
func NewPlayerRepo(kv KV) PlayerRepo {
	return &playerRepo{kv: kv}
}

func (r *playerRepo) Load(ctx context.Context, name string) (player.State, bool, error) {
	data, ok, err := r.kv.Get(ctx, PlayerKey(name))
	if err != nil {
		return player.State{}, false, fmt.Errorf("load player %q: %w", name, err)
	}
	if !ok {
		return player.New(name), false, nil
	}
	return decodePlayer(name, data), true, nil
}

func (r *playerRepo) Save(ctx context.Context, s player.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal player %q: %w", s.Name, err)
	}
	if err := r.kv.Set(ctx, PlayerKey(s.Name), data); err != nil {
		return fmt.Errorf("save player %q: %w", s.Name, err)
	}
	return nil
}

func (r *playerRepo) Update(ctx context.Context, name string, fn func(player.State) (player.State, error)) (player.State, error) {
	var result player.State
	err := r.kv.Update(ctx, PlayerKey(name), func(old []byte, ok bool) ([]byte, error) {
		current := player.New(name)
		if ok {
			current = decodePlayer(name, old)
		}
		next, err := fn(current)
		if err != nil {
			return nil, err
		}
		result = next
		return json.Marshal(next)
	})
	if err != nil {
		return player.State{}, fmt.Errorf("update player %q: %w", name, err)
	}
	return result, nil
}

func (r *playerRepo) Delete(ctx context.Context, name string) error {
	if err := r.kv.Delete(ctx, PlayerKey(name)); err != nil {
		return fmt.Errorf("delete player %q: %w", name, err)
	}
	return nil
}

func (r *playerRepo) List(ctx context.Context) ([]string, error) {
	keys, err := r.kv.Keys(ctx, PlayerKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, PlayerKeyPrefix))
	}
	return names, nil
}

// decodePlayer parses a stored profile, falling back to a fresh profile when
// the blob is unreadable.
func decodePlayer(name string, data []byte) player.State {
	var s player.State
	if err := json.Unmarshal(data, &s); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stored profile for %q is unreadable, starting fresh: %v\n", name, err)
		return player.New(name)
	}
	s.Name = name
	s.Normalize()
	return s
}
