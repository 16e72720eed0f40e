package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stressless/internal/ui"
)

func newSoundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sound",
		Short: "Show or toggle sound",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Sonido", onOff(a.svc.SoundEnabled())))
				return nil
			})
		},
	}
	cmd.AddCommand(soundSetCmd("on", true), soundSetCmd("off", false))
	return cmd
}

func soundSetCmd(use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: "Turn sound " + use,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				a.svc.SetSoundEnabled(ctx, enabled)
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Sonido", onOff(enabled)))
				return nil
			})
		},
	}
}

func onOff(ok bool) string {
	if ok {
		return ui.Good.Render("on")
	}
	return ui.Muted.Render("off")
}
