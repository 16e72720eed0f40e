package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"stressless/internal/engine"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeState struct {
	profile engine.UserProfile
	tasks   []engine.Task
}

func (f fakeState) Profile() engine.UserProfile { return f.profile }
func (f fakeState) Tasks() []engine.Task        { return f.tasks }

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	ch   chan struct{}
}

func (f *fakeMailer) Send(_ context.Context, to, subject, html string) (string, error) {
	f.mu.Lock()
	f.sent = append(f.sent, subject)
	f.mu.Unlock()
	if f.ch != nil {
		select {
		case f.ch <- struct{}{}:
		default:
		}
	}
	return "id", nil
}

func withEmail() engine.UserProfile {
	p := engine.DefaultProfile()
	p.Name = "Ana"
	p.Email = "ana@example.com"
	return p
}

func TestLinesSkipsCompletedAndSortsByDue(t *testing.T) {
	lines := Lines([]engine.Task{
		{Title: "B", Subject: "Arte", DueDate: "2025-05-02"},
		{Title: "Hecha", Subject: "X", DueDate: "2025-01-01", Completed: true},
		{Title: "A", Subject: "Mates", DueDate: "2025-05-01"},
	})
	require.Equal(t, []string{"A (Mates) · 2025-05-01", "B (Arte) · 2025-05-02"}, lines)
}

func TestSendOnce(t *testing.T) {
	mail := &fakeMailer{}
	r := New(fakeState{profile: withEmail()}, mail, "", time.Second, nil)

	sent, err := r.SendOnce(context.Background())
	require.NoError(t, err)
	require.False(t, sent)
	require.Empty(t, mail.sent)

	r = New(fakeState{profile: withEmail(), tasks: []engine.Task{{Title: "Ensayo", Subject: "Historia", DueDate: "2025-05-01"}}}, mail, "", time.Second, nil)
	sent, err = r.SendOnce(context.Background())
	require.NoError(t, err)
	require.True(t, sent)
	require.Equal(t, []string{"Ana, tienes tareas pendientes 📋"}, mail.sent)

	r = New(fakeState{profile: engine.DefaultProfile(), tasks: []engine.Task{{Title: "x"}}}, mail, "", time.Second, nil)
	_, err = r.SendOnce(context.Background())
	require.ErrorIs(t, err, engine.ErrInvalidInput)
}

func TestRunFiresOnSchedule(t *testing.T) {
	mail := &fakeMailer{ch: make(chan struct{}, 1)}
	r := New(fakeState{profile: withEmail(), tasks: []engine.Task{{Title: "Lab", Subject: "Química", DueDate: "2025-05-01"}}}, mail, "", time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, "* * * * * *") }()

	select {
	case <-mail.ch:
	case <-time.After(3 * time.Second):
		t.Fatal("reminder did not fire")
	}
	cancel()
	require.NoError(t, <-done)
}

func TestRunRejectsBadSchedule(t *testing.T) {
	r := New(fakeState{}, &fakeMailer{}, "", time.Second, nil)
	require.Error(t, r.Run(context.Background(), "whenever"))
}
