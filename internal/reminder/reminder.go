// Package reminder emails the pending-task list on a cron schedule.
package reminder

import (
	"context"
	"fmt"
	"time"

	rcron "github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"stressless/internal/engine"
	"stressless/internal/remote"
)

// State is the part of engine.Service a reminder reads.
type State interface {
	Profile() engine.UserProfile
	Tasks() []engine.Task
}

type Reminder struct {
	state   State
	mail    remote.Mailer
	appURL  string
	timeout time.Duration
	log     *zap.Logger
}

func New(state State, mail remote.Mailer, appURL string, timeout time.Duration, log *zap.Logger) *Reminder {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Reminder{state: state, mail: mail, appURL: appURL, timeout: timeout, log: log}
}

// Lines formats pending tasks for the reminder body, soonest first.
func Lines(tasks []engine.Task) []string {
	pending := engine.PendingTasks(tasks)
	out := make([]string, len(pending))
	for i, t := range pending {
		out[i] = fmt.Sprintf("%s (%s) · %s", t.Title, t.Subject, t.DueDate)
	}
	return out
}

// SendOnce emails the pending tasks. It reports false when nothing is pending.
func (r *Reminder) SendOnce(ctx context.Context) (bool, error) {
	lines := Lines(r.state.Tasks())
	if len(lines) == 0 {
		return false, nil
	}
	p := r.state.Profile()
	if p.Email == "" {
		return false, engine.InputError{Field: "email", Reason: "set an email address on the profile to receive reminders"}
	}
	msg, err := remote.TaskReminderEmail(p.Name, lines, r.appURL)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	id, err := r.mail.Send(ctx, p.Email, msg.Subject, msg.HTML)
	if err != nil {
		return false, err
	}
	r.log.Info("task reminder sent", zap.Int("tasks", len(lines)), zap.String("id", id))
	return true, nil
}

// Run schedules SendOnce with a seconds-precision cron expression and blocks
// until ctx ends. Failed runs are logged and retried at the next slot.
func (r *Reminder) Run(ctx context.Context, schedule string) error {
	c := rcron.New(rcron.WithSeconds())
	_, err := c.AddFunc(schedule, func() {
		if _, err := r.SendOnce(ctx); err != nil {
			r.log.Warn("task reminder failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", schedule, err)
	}

	c.Start()
	r.log.Info("task reminders scheduled", zap.String("schedule", schedule))
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
