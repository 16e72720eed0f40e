package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"stressless/internal/engine"
	"stressless/internal/flow"
)

func run(m tea.Model, out io.Writer) error {
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}

func RunBoard(ctx context.Context, svc *engine.Service, out io.Writer) error {
	return run(newBoardModel(ctx, svc, engine.DefaultRand), out)
}

// RunBreathing runs a timed session of ex. Quitting early abandons it unrewarded.
func RunBreathing(ctx context.Context, svc *engine.Service, ex engine.Exercise, out io.Writer) error {
	m, err := newBreathingModel(ctx, flow.NewBreathing(svc, svc.Logger()), ex)
	if err != nil {
		return err
	}
	return run(m, out)
}

func RunAssessment(ctx context.Context, svc *engine.Service, out io.Writer) error {
	return run(newAssessmentModel(ctx, flow.NewAssessment(svc)), out)
}

func RunMusicTest(ctx context.Context, svc *engine.Service, out io.Writer) error {
	return run(newMusicTestModel(ctx, flow.NewMusicTest(svc, svc)), out)
}
