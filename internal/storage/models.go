package storage

import "time"

// Slot is one durable key-value cell holding a serialized value.
type Slot struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

type RewardRecord struct {
	ID         int64
	Source     string
	XP         int
	CalmPoints int
	LevelAfter int
	GrantedAt  time.Time
}
