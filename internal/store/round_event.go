package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (r *eventRepo) AppendRound(ctx context.Context, data RoundEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO round_events (
		sequence, timestamp, round_id, player, game_kind, difficulty, final_score,
		win, points_earned, challenge_bonus, new_level, unlocked
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC(), data.RoundID, data.Player, data.GameKind, data.Difficulty,
		data.FinalScore, data.Win, data.PointsEarned, data.ChallengeBonus, data.NewLevel,
		strings.Join(data.Unlocked, ","),
	)
	if err != nil {
		return fmt.Errorf("save round event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRounds(ctx context.Context, player string, opts QueryOpts) ([]RoundEvent, error) {
	where, args := "WHERE 1 = 1", []any{}
	if player != "" {
		where += " AND player = ?"
		args = append(args, player)
	}
	where, args = sequenceFilter(where, args, opts)

	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, timestamp, round_id, player,
		game_kind, difficulty, final_score, win, points_earned, challenge_bonus, new_level, unlocked
		FROM round_events `+where+` ORDER BY sequence DESC`+limitClause(opts), args...)
	if err != nil {
		return nil, fmt.Errorf("query round events: %w", err)
	}
	defer rows.Close()

	var out []RoundEvent
	for rows.Next() {
		var e RoundEvent
		var unlocked string
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.RoundID, &e.Player,
			&e.GameKind, &e.Difficulty, &e.FinalScore, &e.Win, &e.PointsEarned,
			&e.ChallengeBonus, &e.NewLevel, &unlocked); err != nil {
			return nil, fmt.Errorf("scan round event: %w", err)
		}
		if unlocked != "" {
			e.Unlocked = strings.Split(unlocked, ",")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
