package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stressless/internal/engine"
	"stressless/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, wellbeing stats, achievements and tips",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				p := a.svc.Profile()
				tasks := a.svc.Tasks()

				nextReq := engine.XPRequiredForLevel(p.Level + 1)
				fmt.Fprintln(out, ui.Heading(ui.IconCat, "Tu progreso"))
				if msg, err := engine.MotivationalMessage(p, engine.DefaultRand); err == nil {
					fmt.Fprintln(out, ui.Muted.Render(msg))
				}
				fmt.Fprintln(out, ui.LabelValue("Nivel", p.Level))
				fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d %s (siguiente en %d)", p.XP, ui.XPBar(p.XP, 20), nextReq)))
				fmt.Fprintln(out, ui.LabelValue("Puntos de calma", p.CalmPoints))
				fmt.Fprintln(out, ui.LabelValue("Racha", fmt.Sprintf("%d días", p.StreakDays)))
				fmt.Fprintln(out, "")

				avg := engine.RollingAverages(a.svc.MoodEntries())
				fmt.Fprintln(out, ui.H2.Render("📊 Bienestar"))
				if avg.Samples == 0 {
					fmt.Fprintln(out, ui.Muted.Render("- Sin registros de ánimo todavía (sl checkin)"))
				} else {
					fmt.Fprintf(out, "- Ánimo medio: %d/10 · Estrés medio: %d/10 %s\n", avg.Mood, avg.Stress, ui.Muted.Render(fmt.Sprintf("(%d registros)", avg.Samples)))
				}
				fmt.Fprintf(out, "- Tareas completadas: %d%% de %d\n", engine.CompletionRate(tasks), len(tasks))
				fmt.Fprintln(out, "")

				achievements, err := a.svc.Achievements(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Logros %d/%d", ui.IconTrophy, engine.EarnedCount(achievements), len(achievements))))
				for _, ach := range achievements {
					mark := ui.Muted.Render("🔒")
					if ach.Earned {
						mark = ach.Icon
					}
					fmt.Fprintf(out, "- %s %s %s\n", mark, ach.Name, ui.Muted.Render(ach.Description))
				}
				fmt.Fprintln(out, "")

				now := time.Now()
				fmt.Fprintln(out, ui.H2.Render("💡 Consejos"))
				for _, tip := range engine.StudyTips(now.Hour(), p, tasks) {
					fmt.Fprintln(out, "- "+tip)
				}
				rec := engine.RecommendForHour(now.Hour())
				fmt.Fprintf(out, "\n%s %s %s\n", rec.Icon, ui.Key.Render(rec.Title), ui.Muted.Render(rec.Description))
				return nil
			})
		},
	}
	return cmd
}
