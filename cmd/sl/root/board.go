package root

import (
	"context"

	"github.com/spf13/cobra"

	"stressless/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				return tui.RunBoard(ctx, a.svc, cmd.OutOrStdout())
			})
		},
	}
	return cmd
}
