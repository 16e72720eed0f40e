package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"stressless/internal/flow"
	"stressless/internal/ui"
)

type musicTestModel struct {
	ctx  context.Context
	test *flow.MusicTest
	err  error
}

func newMusicTestModel(ctx context.Context, test *flow.MusicTest) musicTestModel {
	return musicTestModel{ctx: ctx, test: test}
}

func (m musicTestModel) Init() tea.Cmd { return nil }

func (m musicTestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		if m.test.Done() {
			m.test.Repeat()
			m.err = nil
		}
	case "y", "s":
		if sample, _, ok := m.test.Current(); ok {
			_, m.err = m.test.Choose(m.ctx, string(sample.Category))
		}
	case "n":
		if _, _, ok := m.test.Current(); ok {
			_, m.err = m.test.Choose(m.ctx, flow.Neutral)
		}
	}
	return m, nil
}

func (m musicTestModel) View() string {
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconMusic, "Test musical"))
	b.WriteString("\n\n")

	if res := m.test.Result(); res != nil {
		b.WriteString(ui.LabelValue("Tu preferencia", res.Preference))
		b.WriteString("\n")
		if line := ui.GrantLine(res.Grant); line != "" {
			b.WriteString(line + "\n")
		}
		b.WriteString("\n" + ui.Muted.Render("r: repetir · q: salir"))
		return b.String()
	}

	sample, step, _ := m.test.Current()
	b.WriteString(ui.Muted.Render(fmt.Sprintf("Muestra %d de %d · %s", step+1, len(flow.MusicSamples), sample.Name)))
	b.WriteString("\n")
	b.WriteString(ui.H2.Render(sample.Prompt))
	b.WriteString("\n\n¿Te relaja este sonido?\n")
	if m.err != nil {
		b.WriteString(ui.Bad.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + ui.Muted.Render("s: me gusta · n: neutral · q: salir"))
	return b.String()
}
