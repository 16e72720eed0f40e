package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type RewardRepo struct {
	db *sql.DB
}

func NewRewardRepo(db *sql.DB) *RewardRepo {
	return &RewardRepo{db: db}
}

func (r *RewardRepo) Insert(ctx context.Context, rec RewardRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO rewards (source, xp, calm_points, level_after, granted_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.Source, rec.XP, rec.CalmPoints, rec.LevelAfter, rec.GrantedAt)
	if err != nil {
		return 0, fmt.Errorf("reward insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reward last insert id: %w", err)
	}
	return id, nil
}

// ListRecent returns up to limit grants, newest first.
func (r *RewardRepo) ListRecent(ctx context.Context, limit int) ([]RewardRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source, xp, calm_points, level_after, granted_at
		FROM rewards
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("reward list: %w", err)
	}
	defer rows.Close()

	var out []RewardRecord
	for rows.Next() {
		var rec RewardRecord
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.XP, &rec.CalmPoints, &rec.LevelAfter, &rec.GrantedAt); err != nil {
			return nil, fmt.Errorf("reward scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reward rows: %w", err)
	}
	return out, nil
}

func (r *RewardRepo) CountBySource(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT source, COUNT(*) FROM rewards GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("reward count: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			source string
			n      int
		)
		if err := rows.Scan(&source, &n); err != nil {
			return nil, fmt.Errorf("reward count scan: %w", err)
		}
		out[source] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reward count rows: %w", err)
	}
	return out, nil
}
