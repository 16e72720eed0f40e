package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"stressless/internal/engine"
)

type ProfileStore interface {
	Fetch(ctx context.Context, id string) (*RemoteProfile, error)
	Create(ctx context.Context, p RemoteProfile) (*RemoteProfile, error)
	Update(ctx context.Context, id string, patch map[string]any) error
}

// LocalProfile is the part of engine.Service that sync reads and updates.
type LocalProfile interface {
	Profile() engine.UserProfile
	ApplySubscription(ctx context.Context, plan, status string) error
}

type SyncResult struct {
	Created            bool
	SubscriptionPlan   string
	SubscriptionStatus string
}

// Syncer reconciles the local profile with its hosted copy. Local fields win;
// only the subscription fields are taken from the server.
type Syncer struct {
	Store    ProfileStore
	Welcome  func(p engine.UserProfile) // optional, called after account creation
	Identity string
	Log      *zap.Logger
}

func (s *Syncer) Sync(ctx context.Context, local LocalProfile) (*SyncResult, error) {
	if s.Identity == "" {
		return nil, engine.InputError{Field: "identity", Reason: "no account identity configured"}
	}
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}
	p := local.Profile()

	row, err := s.Store.Fetch(ctx, s.Identity)
	if errors.Is(err, engine.ErrNotFound) {
		created, err := s.Store.Create(ctx, NewRemoteProfile(s.Identity, p))
		if err != nil {
			return nil, fmt.Errorf("create remote profile: %w", err)
		}
		log.Info("remote profile created", zap.String("identity", s.Identity))
		if s.Welcome != nil {
			s.Welcome(p)
		}
		return &SyncResult{
			Created:            true,
			SubscriptionPlan:   created.SubscriptionPlan,
			SubscriptionStatus: created.SubscriptionStatus,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch remote profile: %w", err)
	}

	if err := s.Store.Update(ctx, s.Identity, MirrorPatch(p, time.Now())); err != nil {
		return nil, fmt.Errorf("push profile: %w", err)
	}
	res := &SyncResult{SubscriptionPlan: row.SubscriptionPlan, SubscriptionStatus: row.SubscriptionStatus}
	if row.SubscriptionPlan == "" {
		return res, nil
	}
	if err := local.ApplySubscription(ctx, row.SubscriptionPlan, row.SubscriptionStatus); err != nil {
		log.Warn("ignoring remote subscription", zap.Error(err))
	}
	return res, nil
}
