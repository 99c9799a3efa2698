package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Key prefixes shared by every KV adapter. The names match the keys the
// browser edition of the game used, so exported data stays recognizable.
const (
	PlayerKeyPrefix = "math_explorer_user_"
	LeaderboardKey  = "math_explorer_leaderboard"
	RoundKeyPrefix  = "math_explorer_game_session_"
)

// PlayerKey returns the key holding name's profile.
func PlayerKey(name string) string {
	return PlayerKeyPrefix + name
}

// RoundKey returns the key holding the saved round for a game kind.
func RoundKey(kind string) string {
	return RoundKeyPrefix + kind
}

// UpdateFunc receives the current value (ok is false when the key is
// absent) and returns the value to store.
type UpdateFunc func(old []byte, ok bool) ([]byte, error)

// KV is the storage port used by the game: opaque blobs addressed by key.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Update runs a read-modify-write of key atomically. If fn returns an
	// error nothing is written and the error is returned.
	Update(ctx context.Context, key string, fn UpdateFunc) error

	// Keys lists keys starting with prefix in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// sqliteKV implements KV on the kv table.
type sqliteKV struct {
	db *sql.DB
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func getValue(ctx context.Context, q querier, key string) ([]byte, bool, error) {
	var v []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return v, true, nil
}

func setValue(ctx context.Context, q querier, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *sqliteKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return getValue(ctx, s.db, key)
}

func (s *sqliteKV) Set(ctx context.Context, key string, value []byte) error {
	return setValue(ctx, s.db, key, value)
}

func (s *sqliteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *sqliteKV) Update(ctx context.Context, key string, fn UpdateFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update %q: %w", key, err)
	}
	defer tx.Rollback()

	old, ok, err := getValue(ctx, tx, key)
	if err != nil {
		return err
	}
	value, err := fn(old, ok)
	if err != nil {
		return err
	}
	if err := setValue(ctx, tx, key, value); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update %q: %w", key, err)
	}
	return nil
}

func (s *sqliteKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM kv WHERE substr(key, 1, length(?)) = ? ORDER BY key`, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("list keys %q: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// MemoryKV is an in-process KV used by tests and previews.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Update(_ context.Context, key string, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.data[key]
	if ok {
		old = append([]byte(nil), old...)
	}
	value, err := fn(old, ok)
	if err != nil {
		return err
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
