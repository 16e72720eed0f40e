package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"stressless/internal/engine"
	"stressless/internal/flow"
	"stressless/internal/ui"
)

var phaseText = map[flow.BreathPhase]string{
	flow.PhaseInhale: "Inhala… 🌬️",
	flow.PhaseHold:   "Mantén… 🫁",
	flow.PhaseExhale: "Exhala… 🍃",
}

type tickMsg time.Time

type breathingModel struct {
	ctx      context.Context
	session  *flow.Breathing
	exercise engine.Exercise
	total    int

	bar  progress.Model
	snap flow.BreathSnapshot
	err  error
}

func newBreathingModel(ctx context.Context, session *flow.Breathing, ex engine.Exercise) (breathingModel, error) {
	if err := session.Start(ex.ID, ex.Minutes); err != nil {
		return breathingModel{}, err
	}
	return breathingModel{
		ctx:      ctx,
		session:  session,
		exercise: ex,
		total:    ex.Minutes * 60,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		snap:     session.Snapshot(),
	}, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m breathingModel) Init() tea.Cmd {
	return tick()
}

func (m breathingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-10, 10), 60)
		return m, nil
	case tickMsg:
		snap, err := m.session.Tick(m.ctx)
		m.snap = snap
		if err != nil {
			m.err = err
			return m, nil
		}
		if snap.Status == flow.BreathFinished {
			return m, nil
		}
		return m, tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.snap.Status != flow.BreathFinished {
				m.session.Reset()
			}
			return m, tea.Quit
		case "p":
			if err := m.session.Pause(); err == nil {
				m.snap = m.session.Snapshot()
			}
			return m, nil
		case "r":
			if err := m.session.Resume(); err == nil {
				m.snap = m.session.Snapshot()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m breathingModel) percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.total-m.snap.TimeLeft) / float64(m.total)
}

func (m breathingModel) View() string {
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconWind, m.exercise.Title))
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render(m.exercise.Instruction))
	b.WriteString("\n\n")

	switch m.snap.Status {
	case flow.BreathFinished:
		b.WriteString(ui.Good.Render("¡Sesión completada! 🎉"))
		b.WriteString("\n")
		if m.snap.Grant != nil {
			b.WriteString(ui.GrantLine(m.snap.Grant))
			b.WriteString("\n")
		}
		b.WriteString(ui.Muted.Render("q: salir"))
		return b.String()
	case flow.BreathPaused:
		b.WriteString(ui.Warn.Render("En pausa"))
	default:
		b.WriteString(ui.H2.Render(phaseText[m.snap.Phase]))
	}
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.percent()))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%02d:%02d restantes · ciclos %d\n", m.snap.TimeLeft/60, m.snap.TimeLeft%60, m.snap.Cycles))
	if m.err != nil {
		b.WriteString(ui.Bad.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(ui.Muted.Render("p: pausa · r: reanudar · q: salir"))
	return b.String()
}
