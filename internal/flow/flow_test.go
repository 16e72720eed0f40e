package flow

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"stressless/internal/engine"
	"stressless/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeRewarder struct {
	grants []engine.Reward
	xp     int
}

func (f *fakeRewarder) Grant(_ context.Context, r engine.Reward) (*engine.GrantResult, error) {
	before := f.xp
	f.xp += r.XP
	f.grants = append(f.grants, r)
	return &engine.GrantResult{Reward: r, XPBefore: before, XPAfter: f.xp}, nil
}

type fakePrefs struct {
	pref engine.MusicPreference
	sets int
}

func (f *fakePrefs) SetMusicPreference(_ context.Context, p engine.MusicPreference) error {
	f.pref = p
	f.sets++
	return nil
}

type manualTicks struct {
	ch      chan time.Time
	stopped bool
}

func newManualTicks(n int) *manualTicks {
	ch := make(chan time.Time, n)
	for i := 0; i < n; i++ {
		ch <- time.Time{}
	}
	close(ch)
	return &manualTicks{ch: ch}
}

func (m *manualTicks) Ticks() <-chan time.Time { return m.ch }
func (m *manualTicks) Stop()                   { m.stopped = true }

func TestBreathingFinishesOnceAfter180Ticks(t *testing.T) {
	ctx := context.Background()
	r := &fakeRewarder{}
	b := NewBreathing(r, nil)

	require.NoError(t, b.Start("deep-breathing", 3))
	require.Equal(t, 180, b.Snapshot().TimeLeft)

	var snap BreathSnapshot
	for i := 0; i < 180; i++ {
		var err error
		snap, err = b.Tick(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, BreathFinished, snap.Status)
	require.Equal(t, 0, snap.TimeLeft)
	require.Equal(t, 180/CycleSeconds, snap.Cycles)
	require.NotNil(t, snap.Grant)

	for i := 0; i < 5; i++ {
		_, err := b.Tick(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, []engine.Reward{engine.RewardMeditation}, r.grants)
	require.Equal(t, 20, r.xp)
}

func TestBreathingPhases(t *testing.T) {
	ctx := context.Background()
	b := NewBreathing(&fakeRewarder{}, nil)
	require.NoError(t, b.Start("deep-breathing", 1))

	want := map[int]BreathPhase{
		1: PhaseInhale, 3: PhaseInhale, 4: PhaseHold, 10: PhaseHold,
		11: PhaseExhale, 18: PhaseExhale, 19: PhaseInhale, 23: PhaseHold,
	}
	for elapsed := 1; elapsed <= 23; elapsed++ {
		snap, err := b.Tick(ctx)
		require.NoError(t, err)
		if p, ok := want[elapsed]; ok {
			require.Equal(t, p, snap.Phase, "elapsed %d", elapsed)
		}
		if elapsed < CycleSeconds {
			require.Zero(t, snap.Cycles)
		} else {
			require.Equal(t, 1, snap.Cycles)
		}
	}
}

func TestBreathingPauseAndReset(t *testing.T) {
	ctx := context.Background()
	r := &fakeRewarder{}
	b := NewBreathing(r, nil)

	require.NoError(t, b.Start("mindfulness", 1))
	for i := 0; i < 10; i++ {
		_, err := b.Tick(ctx)
		require.NoError(t, err)
	}
	require.NoError(t, b.Pause())
	before := b.Snapshot()
	for i := 0; i < 100; i++ {
		_, err := b.Tick(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, before, b.Snapshot())

	require.NoError(t, b.Resume())
	for i := 0; i < 49; i++ {
		_, err := b.Tick(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, 1, b.Snapshot().TimeLeft)

	b.Reset()
	snap, err := b.Tick(ctx)
	require.NoError(t, err)
	require.Equal(t, BreathIdle, snap.Status)
	require.Zero(t, snap.TimeLeft)
	require.Zero(t, snap.Cycles)
	require.Empty(t, r.grants)

	require.ErrorIs(t, b.Pause(), engine.ErrInvalidInput)
	require.ErrorIs(t, b.Start("x", 0), engine.ErrInvalidInput)
}

func TestBreathingRunStopsWhenFinished(t *testing.T) {
	r := &fakeRewarder{}
	b := NewBreathing(r, nil)
	require.NoError(t, b.Start("energy-boost", 1))

	src := newManualTicks(75)
	seen := 0
	err := b.Run(context.Background(), src, func(BreathSnapshot) { seen++ })
	require.NoError(t, err)
	require.Equal(t, 60, seen)
	require.True(t, src.stopped)
	require.Len(t, r.grants, 1)
}

func TestBreathingRunHonoursContext(t *testing.T) {
	b := NewBreathing(&fakeRewarder{}, nil)
	require.NoError(t, b.Start("deep-breathing", 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &manualTicks{ch: make(chan time.Time)}
	err := b.Run(ctx, src, nil)
	require.True(t, errors.Is(err, context.Canceled))
	require.True(t, src.stopped)
}

func TestMusicTestPlurality(t *testing.T) {
	cases := []struct {
		choices []string
		want    engine.MusicPreference
	}{
		{[]string{"nature", "classical", "ambient"}, engine.MusicNature},
		{[]string{"neutral", "classical", "ambient"}, engine.MusicClassical},
		{[]string{"neutral", "neutral", "ambient"}, engine.MusicAmbient},
		{[]string{"neutral", "neutral", "neutral"}, engine.MusicNone},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Plurality(tc.choices), "%v", tc.choices)
	}
}

func TestMusicTestFlow(t *testing.T) {
	ctx := context.Background()
	r := &fakeRewarder{}
	prefs := &fakePrefs{}
	m := NewMusicTest(r, prefs)

	_, err := m.Choose(ctx, "ambient")
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	_, step, ok := m.Current()
	require.True(t, ok)
	require.Zero(t, step)

	res, err := m.Choose(ctx, "neutral")
	require.NoError(t, err)
	require.Nil(t, res)
	res, err = m.Choose(ctx, "classical")
	require.NoError(t, err)
	require.Nil(t, res)
	res, err = m.Choose(ctx, "neutral")
	require.NoError(t, err)
	require.Equal(t, engine.MusicClassical, res.Preference)
	require.Equal(t, engine.MusicClassical, prefs.pref)
	require.True(t, m.Done())

	_, err = m.Choose(ctx, "nature")
	require.ErrorIs(t, err, engine.ErrInvalidInput)

	m.Repeat()
	for _, c := range []string{"nature", "neutral", "neutral"} {
		_, err := m.Choose(ctx, c)
		require.NoError(t, err)
	}
	require.Equal(t, engine.MusicNature, prefs.pref)
	require.Equal(t, 2, prefs.sets)
	require.Len(t, r.grants, 2)
}

func TestAssessmentFlow(t *testing.T) {
	ctx := context.Background()
	r := &fakeRewarder{}
	a := NewAssessment(r)

	_, err := a.Answer(ctx, 6)
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	_, idx, _ := a.Current()
	require.Zero(t, idx)

	answers := []int{3, 1, 1, 1, 1, 1}
	var res *AssessmentResult
	for i, v := range answers {
		res, err = a.Answer(ctx, v)
		require.NoError(t, err)
		if i < len(answers)-1 {
			require.Nil(t, res)
		}
	}
	require.NotNil(t, res)
	require.Equal(t, engine.StressLow, res.Stress.Tier)
	require.Len(t, res.Recommendations, 1)
	require.Equal(t, 30, r.xp)

	_, _, ok := a.Current()
	require.False(t, ok)
	_, err = a.Answer(ctx, 1)
	require.ErrorIs(t, err, engine.ErrInvalidInput)
	require.Len(t, r.grants, 1)

	a.Restart()
	_, idx, ok = a.Current()
	require.True(t, ok)
	require.Zero(t, idx)
}

func TestQuestionsHaveFiveOptions(t *testing.T) {
	require.Len(t, Questions, 6)
	for _, q := range Questions {
		require.Len(t, q.Options, 5)
		for i, o := range q.Options {
			require.Equal(t, i+1, o.Value)
		}
	}
}

func TestNewProfileScenario(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "e2e.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc, err := engine.Open(ctx, db)
	require.NoError(t, err)

	a := NewAssessment(svc)
	for _, v := range []int{2, 3, 2, 4, 3, 2} {
		_, err := a.Answer(ctx, v)
		require.NoError(t, err)
	}

	b := NewBreathing(svc, nil)
	require.NoError(t, b.Start("deep-breathing", 1))
	for i := 0; i < 60; i++ {
		_, err := b.Tick(ctx)
		require.NoError(t, err)
	}

	task, _, err := svc.AddTask(ctx, engine.AddTaskInput{
		Title: "Resumen", Subject: "Biología", DueDate: "2025-04-01", EstimatedTime: 40,
	})
	require.NoError(t, err)
	_, err = svc.ToggleTask(ctx, task.ID)
	require.NoError(t, err)

	p := svc.Profile()
	require.Equal(t, 75, p.XP)
	require.Equal(t, 1, p.Level)
}
