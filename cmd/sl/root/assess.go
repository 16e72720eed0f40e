package root

import (
	"context"

	"github.com/spf13/cobra"

	"stressless/internal/tui"
)

func newAssessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assess",
		Short: "Take the academic stress test (+30 XP)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				return tui.RunAssessment(ctx, a.svc, cmd.OutOrStdout())
			})
		},
	}
}
