package engine

import (
	"context"

	"go.uber.org/zap"

	"stressless/internal/storage"
)

type GrantResult struct {
	Reward      Reward
	XPBefore    int
	XPAfter     int
	LevelBefore int
	LevelAfter  int
	CalmPoints  int
	LevelUp     bool
}

// AwardXP adds a positive amount of XP and re-derives the level.
func (s *Service) AwardXP(ctx context.Context, amount int) (*GrantResult, error) {
	if amount <= 0 {
		return nil, invalid("amount", "must be positive (got %d)", amount)
	}
	return s.Grant(ctx, Reward{Source: SourceManual, XP: amount})
}

// AwardCalmPoints adds a positive amount of calm points. Levels are unaffected.
func (s *Service) AwardCalmPoints(ctx context.Context, amount int) (*GrantResult, error) {
	if amount <= 0 {
		return nil, invalid("amount", "must be positive (got %d)", amount)
	}
	return s.Grant(ctx, Reward{Source: SourceManual, CalmPoints: amount})
}

// Grant applies a reward from the reward table.
func (s *Service) Grant(ctx context.Context, r Reward) (*GrantResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grantLocked(ctx, r)
}

func (s *Service) grantLocked(ctx context.Context, r Reward) (*GrantResult, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	before := s.profile
	s.profile.XP += r.XP
	s.profile.Level = LevelForXP(s.profile.XP)
	s.profile.CalmPoints += r.CalmPoints
	s.saveLocked(ctx, SlotProfile, s.profile)

	res := &GrantResult{
		Reward:      r,
		XPBefore:    before.XP,
		XPAfter:     s.profile.XP,
		LevelBefore: before.Level,
		LevelAfter:  s.profile.Level,
		CalmPoints:  s.profile.CalmPoints,
		LevelUp:     s.profile.Level > before.Level,
	}

	if _, err := s.rewards.Insert(ctx, storage.RewardRecord{
		Source:     string(r.Source),
		XP:         r.XP,
		CalmPoints: r.CalmPoints,
		LevelAfter: s.profile.Level,
		GrantedAt:  s.now().UTC(),
	}); err != nil {
		s.log.Warn("record reward", zap.String("source", string(r.Source)), zap.Error(err))
	}

	if res.LevelUp {
		s.log.Info("level up",
			zap.Int("from", res.LevelBefore),
			zap.Int("to", res.LevelAfter),
			zap.Int("xp", res.XPAfter))
		s.sync.LevelUp(s.profile, res.LevelBefore, res.LevelAfter)
	}
	return res, nil
}
