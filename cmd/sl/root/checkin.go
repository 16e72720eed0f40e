package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stressless/internal/engine"
	"stressless/internal/ui"
)

func newCheckInCmd() *cobra.Command {
	var in engine.CheckInInput

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record today's mood and stress (1-10, +15 XP)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				e, grant, err := a.svc.RecordCheckIn(ctx, in)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s %s ánimo %d/10 · estrés %d/10\n", ui.IconHeart, e.Date, e.Mood, e.StressLevel)
				printGrant(out, grant)
				fmt.Fprintln(out, ui.LabelValue("Racha", fmt.Sprintf("%d días", a.svc.Profile().StreakDays)))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&in.Mood, "mood", 5, "Mood from 1 (bad) to 10 (great)")
	f.IntVar(&in.StressLevel, "stress", 5, "Stress from 1 (calm) to 10 (overwhelmed)")
	f.StringVar(&in.Notes, "notes", "", "Optional notes")
	f.StringVar(&in.Date, "date", "", "Date (YYYY-MM-DD, default today)")
	return cmd
}
