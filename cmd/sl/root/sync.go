package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"stressless/internal/remote"
	"stressless/internal/ui"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync the profile with your online account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				if a.profiles == nil {
					return errors.New("profile sync is not configured (remote.profile_url, remote.anon_key)")
				}
				s := &remote.Syncer{
					Store:    a.profiles,
					Welcome:  a.disp.SendWelcome,
					Identity: a.cfg.Remote.IdentityID,
					Log:      a.log,
				}
				res, err := s.Sync(ctx, a.svc)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if res.Created {
					fmt.Fprintln(out, ui.Good.Render(ui.IconSparkle+" Cuenta creada"))
				} else {
					fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Perfil sincronizado"))
				}
				fmt.Fprintln(out, ui.LabelValue("Plan", fmt.Sprintf("%s (%s)", res.SubscriptionPlan, res.SubscriptionStatus)))
				return nil
			})
		},
	}
}
