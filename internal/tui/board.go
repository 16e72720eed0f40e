package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stressless/internal/engine"
	"stressless/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service
	rng engine.RandSource

	width  int
	height int

	profile    engine.UserProfile
	tasks      []engine.Task
	motivation string

	selected int

	lastLog string
	loading bool
}

type loadedMsg struct {
	profile engine.UserProfile
	tasks   []engine.Task
}

type toggledMsg struct {
	res *engine.ToggleResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service, rng engine.RandSource) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		rng:     rng,
		loading: true,
		lastLog: "Listo.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{profile: m.svc.Profile(), tasks: m.svc.Tasks()}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleTask(m.ctx, id)
		return toggledMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.profile = msg.profile
		m.tasks = msg.tasks
		if m.motivation == "" {
			if text, err := engine.MotivationalMessage(m.profile, m.rng); err == nil {
				m.motivation = text
			}
		}
		if m.selected >= len(m.tasks) {
			m.selected = max(len(m.tasks)-1, 0)
		}
		m.lastLog = fmt.Sprintf("Actualizado a las %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "No se pudo actualizar: " + msg.err.Error()
			return m, nil
		}
		t := msg.res.Task
		switch {
		case msg.res.Grant != nil:
			m.lastLog = fmt.Sprintf("%s %s %s", ui.IconDone, t.Title, ui.GrantLine(msg.res.Grant))
		case t.Completed:
			m.lastLog = t.Title + " completada."
		default:
			m.lastLog = t.Title + " vuelve a estar pendiente."
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Actualizando…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			if m.selected < 0 || m.selected >= len(m.tasks) {
				m.lastLog = "No hay tareas."
				return m, nil
			}
			return m, m.toggleCmd(m.tasks[m.selected].ID)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		leftW = min(leftW, m.width/2)
		leftW = max(leftW, 20)
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.loading && m.profile.Level == 0 {
		return "StressLess · cargando…"
	}
	p := m.profile
	name := p.Name
	if name == "" {
		name = "estudiante"
	}
	head := fmt.Sprintf("%s StressLess | %s %s | Nivel %d | XP %d %s", ui.IconCat, p.Avatar, name, p.Level, p.XP, ui.XPBar(p.XP, 30))
	if m.motivation != "" {
		head += "\n" + ui.Muted.Render(m.motivation)
	}
	return head
}

func (m boardModel) renderSidebar() string {
	p := m.profile
	lines := []string{
		"Bienestar",
		fmt.Sprintf("- Puntos de calma: %d", p.CalmPoints),
		fmt.Sprintf("- Racha: %d días", p.StreakDays),
		fmt.Sprintf("- Ánimo: %s", p.Mood),
		fmt.Sprintf("- Estrés: %s", p.StressType),
		fmt.Sprintf("- Completadas: %d%%", engine.CompletionRate(m.tasks)),
		"",
		"Teclas",
		"- ↑/↓ o j/k: mover",
		"- c/espacio: completar",
		"- r: actualizar",
		"- q: salir",
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Cargando…"
	}
	out := []string{"Tareas"}
	if len(m.tasks) == 0 {
		out = append(out, "(sin tareas: añade una con `sl task add`)")
		return strings.Join(out, "\n")
	}
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s%s %s · %s · %s", cursor, check, t.Title, t.Subject, t.DueDate)
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
