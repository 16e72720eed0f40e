package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stressless/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent rewards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				recs, err := a.svc.RewardRepo().ListRecent(ctx, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Recompensas"))
				if len(recs) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(vacío)"))
				}
				for _, r := range recs {
					fmt.Fprintf(out, "%s %-18s +%d XP +%d calma %s\n",
						ui.Muted.Render(r.GrantedAt.Local().Format("2006-01-02 15:04")), r.Source, r.XP, r.CalmPoints,
						ui.Muted.Render(fmt.Sprintf("(nivel %d)", r.LevelAfter)))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of rewards to show")
	return cmd
}
