// Package flow holds the guided, multi-step activities: the breathing timer,
// the music-preference test and the stress assessment. Each machine grants its
// completion reward through a Rewarder, normally *engine.Service.
package flow

import (
	"context"
	"time"

	"stressless/internal/engine"
)

type Rewarder interface {
	Grant(ctx context.Context, r engine.Reward) (*engine.GrantResult, error)
}

type PreferenceSetter interface {
	SetMusicPreference(ctx context.Context, pref engine.MusicPreference) error
}

// TickSource delivers timer ticks. Tests feed synthetic ticks.
type TickSource interface {
	Ticks() <-chan time.Time
	Stop()
}

type clockTicker struct {
	t *time.Ticker
}

// NewClockTicker ticks on the wall clock every interval.
func NewClockTicker(interval time.Duration) TickSource {
	return clockTicker{t: time.NewTicker(interval)}
}

func (c clockTicker) Ticks() <-chan time.Time { return c.t.C }
func (c clockTicker) Stop()                   { c.t.Stop() }
