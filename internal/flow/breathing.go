package flow

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"stressless/internal/engine"
)

type BreathStatus string

const (
	BreathIdle     BreathStatus = "idle"
	BreathRunning  BreathStatus = "running"
	BreathPaused   BreathStatus = "paused"
	BreathFinished BreathStatus = "finished"
)

type BreathPhase string

const (
	PhaseInhale BreathPhase = "inhale"
	PhaseHold   BreathPhase = "hold"
	PhaseExhale BreathPhase = "exhale"
)

// 4-7-8 breathing, in seconds.
const (
	InhaleSeconds = 4
	HoldSeconds   = 7
	ExhaleSeconds = 8
	CycleSeconds  = InhaleSeconds + HoldSeconds + ExhaleSeconds
)

func phaseAt(second int) BreathPhase {
	switch pos := second % CycleSeconds; {
	case pos < InhaleSeconds:
		return PhaseInhale
	case pos < InhaleSeconds+HoldSeconds:
		return PhaseHold
	default:
		return PhaseExhale
	}
}

// BreathSnapshot is a copy of the timer state for rendering.
type BreathSnapshot struct {
	Exercise string
	Status   BreathStatus
	Phase    BreathPhase
	TimeLeft int
	Elapsed  int
	Cycles   int
	Grant    *engine.GrantResult // set once the session has been rewarded
}

// Breathing is a countdown driven by one-second ticks. Completion grants the
// meditation reward once per started session.
type Breathing struct {
	mu       sync.Mutex
	rewarder Rewarder
	log      *zap.Logger

	exercise string
	status   BreathStatus
	phase    BreathPhase
	timeLeft int
	elapsed  int
	cycles   int
	rewarded bool
	grant    *engine.GrantResult
}

func NewBreathing(r Rewarder, log *zap.Logger) *Breathing {
	if log == nil {
		log = zap.NewNop()
	}
	return &Breathing{rewarder: r, log: log, status: BreathIdle, phase: PhaseInhale}
}

// Start begins a session of the given length, replacing any session in progress.
func (b *Breathing) Start(exerciseID string, minutes int) error {
	if minutes <= 0 {
		return engine.InputError{Field: "minutes", Reason: fmt.Sprintf("must be positive (got %d)", minutes)}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exercise = exerciseID
	b.status = BreathRunning
	b.phase = PhaseInhale
	b.timeLeft = minutes * 60
	b.elapsed = 0
	b.cycles = 0
	b.rewarded = false
	b.grant = nil
	return nil
}

func (b *Breathing) Pause() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status != BreathRunning {
		return engine.InputError{Field: "status", Reason: fmt.Sprintf("cannot pause while %s", b.status)}
	}
	b.status = BreathPaused
	return nil
}

func (b *Breathing) Resume() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status != BreathPaused {
		return engine.InputError{Field: "status", Reason: fmt.Sprintf("cannot resume while %s", b.status)}
	}
	b.status = BreathRunning
	return nil
}

// Reset abandons the session. No reward is granted even if it was about to finish.
func (b *Breathing) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exercise = ""
	b.status = BreathIdle
	b.phase = PhaseInhale
	b.timeLeft = 0
	b.elapsed = 0
	b.cycles = 0
	b.rewarded = false
	b.grant = nil
}

// Tick advances the timer by one second. Ticks outside the running state are
// ignored.
func (b *Breathing) Tick(ctx context.Context) (BreathSnapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status != BreathRunning {
		return b.snapshotLocked(), nil
	}

	b.timeLeft--
	b.elapsed++
	if b.elapsed%CycleSeconds == 0 {
		b.cycles++
	}
	b.phase = phaseAt(b.elapsed)

	if b.timeLeft > 0 {
		return b.snapshotLocked(), nil
	}

	b.status = BreathFinished
	if b.rewarded {
		return b.snapshotLocked(), nil
	}
	b.rewarded = true
	grant, err := b.rewarder.Grant(ctx, engine.RewardMeditation)
	if err != nil {
		return b.snapshotLocked(), err
	}
	b.grant = grant
	b.log.Info("breathing session finished",
		zap.String("exercise", b.exercise),
		zap.Int("cycles", b.cycles))
	return b.snapshotLocked(), nil
}

func (b *Breathing) Snapshot() BreathSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Breathing) snapshotLocked() BreathSnapshot {
	return BreathSnapshot{
		Exercise: b.exercise,
		Status:   b.status,
		Phase:    b.phase,
		TimeLeft: b.timeLeft,
		Elapsed:  b.elapsed,
		Cycles:   b.cycles,
		Grant:    b.grant,
	}
}

// Run feeds ticks from src until the session finishes, is reset, or ctx ends.
// onTick, when set, observes every snapshot.
func (b *Breathing) Run(ctx context.Context, src TickSource, onTick func(BreathSnapshot)) error {
	defer src.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-src.Ticks():
			if !ok {
				return nil
			}
			snap, err := b.Tick(ctx)
			if onTick != nil {
				onTick(snap)
			}
			if err != nil {
				return err
			}
			if snap.Status == BreathFinished || snap.Status == BreathIdle {
				return nil
			}
		}
	}
}
