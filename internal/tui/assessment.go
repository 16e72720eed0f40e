package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"stressless/internal/flow"
	"stressless/internal/ui"
)

type assessmentModel struct {
	ctx  context.Context
	test *flow.Assessment
	err  error
}

func newAssessmentModel(ctx context.Context, test *flow.Assessment) assessmentModel {
	return assessmentModel{ctx: ctx, test: test}
}

func (m assessmentModel) Init() tea.Cmd { return nil }

func (m assessmentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k := key.String(); k {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		if m.test.Result() != nil {
			m.test.Restart()
			m.err = nil
		}
		return m, nil
	case "1", "2", "3", "4", "5":
		if m.test.Result() != nil {
			return m, nil
		}
		v, _ := strconv.Atoi(k)
		_, err := m.test.Answer(m.ctx, v)
		m.err = err
	}
	return m, nil
}

func (m assessmentModel) View() string {
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconCat, "Test de estrés académico"))
	b.WriteString("\n\n")

	if res := m.test.Result(); res != nil {
		b.WriteString(ui.LabelValue("Nivel de estrés", ui.StressText(res.Stress.Tier)))
		b.WriteString(fmt.Sprintf(" %s\n", ui.Muted.Render(fmt.Sprintf("(media %.2f)", res.Stress.Average))))
		b.WriteString(res.Stress.Description)
		b.WriteString("\n\n")
		b.WriteString(ui.H2.Render("Recomendaciones"))
		b.WriteString("\n")
		for _, r := range res.Recommendations {
			b.WriteString("- " + r + "\n")
		}
		if line := ui.GrantLine(res.Grant); line != "" {
			b.WriteString("\n" + line + "\n")
		}
		b.WriteString("\n" + ui.Muted.Render("r: repetir · q: salir"))
		return b.String()
	}

	q, i, _ := m.test.Current()
	b.WriteString(ui.Muted.Render(fmt.Sprintf("Pregunta %d de %d · %s", i+1, len(flow.Questions), q.Category)))
	b.WriteString("\n")
	b.WriteString(ui.H2.Render(q.Text))
	b.WriteString("\n\n")
	for _, o := range q.Options {
		b.WriteString(fmt.Sprintf("  %s %s\n", ui.Key.Render(strconv.Itoa(o.Value)), o.Text))
	}
	if m.err != nil {
		b.WriteString("\n" + ui.Bad.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + ui.Muted.Render("1-5: responder · q: salir"))
	return b.String()
}
