package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stressless/internal/engine"
)

// StressLess theme shared by the CLI and the TUI screens.

const (
	IconCat     = "🐱"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconLeaf    = "🌿"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconNote    = "📝"
	IconMusic   = "🎵"
	IconWind    = "🌬️"
	IconHeart   = "💜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("135") // lavender
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("¡SUBISTE DE NIVEL!")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// PriorityText colours a task priority.
func PriorityText(p engine.Priority) string {
	switch p {
	case engine.PriorityHigh:
		return Bad.Render(string(p))
	case engine.PriorityMedium:
		return Warn.Render(string(p))
	case engine.PriorityLow:
		return Good.Render(string(p))
	default:
		return Muted.Render(string(p))
	}
}

// StressText colours a stress classification by severity.
func StressText(tier engine.StressTier) string {
	switch tier {
	case engine.StressLow:
		return Good.Render(string(tier))
	case engine.StressModerate:
		return Warn.Render(string(tier))
	case engine.StressHigh, engine.StressVeryHigh:
		return Bad.Render(string(tier))
	default:
		return Muted.Render(string(tier))
	}
}

// GrantLine summarises a reward grant in one line.
func GrantLine(g *engine.GrantResult) string {
	if g == nil {
		return ""
	}
	var parts []string
	if g.Reward.XP > 0 {
		parts = append(parts, Good.Render(fmt.Sprintf("+%d XP", g.Reward.XP)))
	}
	if g.Reward.CalmPoints > 0 {
		parts = append(parts, Gold.Render(fmt.Sprintf("+%d calma", g.Reward.CalmPoints)))
	}
	line := IconSparkle + " " + strings.Join(parts, " ")
	if g.LevelUp {
		line += " " + BadgeLevelUp + " " + Muted.Render(fmt.Sprintf("(%d → %d)", g.LevelBefore, g.LevelAfter))
	}
	return line
}

// XPBar renders progress through the current level.
func XPBar(xp int, width int) string {
	into, span := engine.LevelProgress(xp)
	return ProgressBar(into, span, width)
}

func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := int(float64(value) / float64(total) * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
