// Package leaderboard maintains the global top-score table.
package leaderboard

import (
	"slices"
)

// MaxEntries caps the table length.
const MaxEntries = 20

// Entry is one row of the table.
type Entry struct {
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
}

// Submit merges a score into table and returns the new table. A player keeps
// a single entry holding their best score; lower or equal resubmissions leave
// the table unchanged. The result is sorted by score, highest first, with
// ties kept in their previous order, and truncated to MaxEntries. table is
// not modified.
func Submit(table []Entry, name string, score int) []Entry {
	out := slices.Clone(table)

	i := slices.IndexFunc(out, func(e Entry) bool { return e.PlayerName == name })
	switch {
	case i < 0:
		out = append(out, Entry{PlayerName: name, Score: score})
	case score > out[i].Score:
		out[i].Score = score
	}

	slices.SortStableFunc(out, func(a, b Entry) int { return b.Score - a.Score })
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}

// Rank returns the 1-based position of name in table, or 0 if absent.
func Rank(table []Entry, name string) int {
	for i, e := range table {
		if e.PlayerName == name {
			return i + 1
		}
	}
	return 0
}
