package remote

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"stressless/internal/engine"
)

// ProfileMirror is the part of ProfileClient the dispatcher needs.
type ProfileMirror interface {
	Update(ctx context.Context, id string, patch map[string]any) error
}

type Mailer interface {
	Send(ctx context.Context, to, subject, html string) (string, error)
}

type DispatcherConfig struct {
	Identity  string
	AppURL    string
	Timeout   time.Duration
	QueueSize int
}

type job struct {
	name string
	run  func(ctx context.Context) error
}

// Dispatcher runs remote side effects on a single background worker so local
// operations never wait on the network. Jobs are best effort: failures are
// logged, never retried, and never reach the caller. It implements
// engine.ProfileSync.
type Dispatcher struct {
	profiles ProfileMirror // nil disables the mirror
	mail     Mailer        // nil disables email
	cfg      DispatcherConfig
	log      *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	closed bool
	queue  chan job
	done   chan struct{}
}

func NewDispatcher(profiles ProfileMirror, mail Mailer, cfg DispatcherConfig, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 32
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	d := &Dispatcher{
		profiles: profiles,
		mail:     mail,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		queue:    make(chan job, cfg.QueueSize),
		done:     make(chan struct{}),
	}
	go d.loop()
	return d
}

func (d *Dispatcher) loop() {
	defer close(d.done)
	for j := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout)
		start := time.Now()
		err := j.run(ctx)
		cancel()
		if err != nil {
			d.log.Warn("remote job failed", zap.String("job", j.name), zap.Error(err))
			continue
		}
		d.log.Debug("remote job done", zap.String("job", j.name), zap.Duration("took", time.Since(start)))
	}
}

func (d *Dispatcher) enqueue(name string, run func(ctx context.Context) error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.log.Debug("dispatcher closed, dropping job", zap.String("job", name))
		return
	}
	select {
	case d.queue <- job{name: name, run: run}:
	default:
		d.log.Warn("remote queue full, dropping job", zap.String("job", name))
	}
}

// Close stops accepting jobs and waits for queued ones to finish or ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) ProfileChanged(p engine.UserProfile) {
	d.mirror(p)
}

func (d *Dispatcher) LevelUp(p engine.UserProfile, from, to int) {
	d.mirror(p)
	if d.mail == nil || p.Email == "" {
		return
	}
	d.enqueue("level-up email", func(ctx context.Context) error {
		msg, err := LevelUpEmail(p.Name, to, d.cfg.AppURL)
		if err != nil {
			return err
		}
		id, err := d.mail.Send(ctx, p.Email, msg.Subject, msg.HTML)
		if err != nil {
			return err
		}
		d.log.Info("level-up email sent", zap.Int("from", from), zap.Int("to", to), zap.String("id", id))
		return nil
	})
}

// SendWelcome queues the welcome email for a newly created account.
func (d *Dispatcher) SendWelcome(p engine.UserProfile) {
	if d.mail == nil || p.Email == "" {
		return
	}
	d.enqueue("welcome email", func(ctx context.Context) error {
		msg, err := WelcomeEmail(p.Name, d.cfg.AppURL)
		if err != nil {
			return err
		}
		_, err = d.mail.Send(ctx, p.Email, msg.Subject, msg.HTML)
		return err
	})
}

func (d *Dispatcher) mirror(p engine.UserProfile) {
	if d.profiles == nil || d.cfg.Identity == "" {
		return
	}
	patch := MirrorPatch(p, d.now())
	d.enqueue("profile mirror", func(ctx context.Context) error {
		return d.profiles.Update(ctx, d.cfg.Identity, patch)
	})
}
