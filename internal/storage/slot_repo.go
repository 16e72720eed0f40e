package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type SlotRepo struct {
	db *sql.DB
}

func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

// Get returns the slot stored under key, or nil when the slot was never written.
func (r *SlotRepo) Get(ctx context.Context, key string) (*Slot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM slots WHERE key = ?`, key)

	var (
		s     Slot
		value string
	)
	if err := row.Scan(&s.Key, &value, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("slot get: %w", err)
	}
	s.Value = []byte(value)
	return &s, nil
}

// Put overwrites the slot. Last write wins.
func (r *SlotRepo) Put(ctx context.Context, key string, value []byte) error {
	return putSlot(ctx, r.db, key, value, time.Now().UTC())
}

// PutMany writes several slots in one transaction.
func (r *SlotRepo) PutMany(ctx context.Context, values map[string][]byte) error {
	now := time.Now().UTC()
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for key, value := range values {
			if err := putSlot(ctx, tx, key, value, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SlotRepo) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM slots ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("slot keys: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("slot keys scan: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("slot keys rows: %w", err)
	}
	return out, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func putSlot(ctx context.Context, db execer, key string, value []byte, at time.Time) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(value), at)
	if err != nil {
		return fmt.Errorf("slot put %s: %w", key, err)
	}
	return nil
}
