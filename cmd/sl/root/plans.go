package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stressless/internal/engine"
	"stressless/internal/remote"
	"stressless/internal/ui"
)

func newPlansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List subscription plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				current := a.svc.Profile().SubscriptionPlan
				for _, p := range engine.Plans {
					title := p.Name
					if p.Paid() {
						title += fmt.Sprintf(" · %.2f €/mes", p.PriceEUR)
					}
					if p.ID == current {
						title += " " + ui.Gold.Render("(actual)")
					}
					fmt.Fprintln(out, ui.H2.Render(title))
					for _, f := range p.Features {
						fmt.Fprintln(out, "- "+f)
					}
				}
				return nil
			})
		},
	}
}

func newSubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <plan>",
		Short: "Get a checkout link for a paid plan",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("plan is required (premium|pro)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, ok := engine.FindPlan(strings.ToLower(args[0]))
			if !ok {
				return fmt.Errorf("plan %q: %w", args[0], engine.ErrNotFound)
			}
			return withApp(func(ctx context.Context, a *app) error {
				if !a.cfg.CheckoutEnabled() {
					return errors.New("checkout is not configured (remote.checkout_url)")
				}
				client := remote.NewCheckoutClient(a.cfg.Remote.CheckoutURL, a.cfg.RemoteTimeout())
				url, err := client.CreateSession(ctx, plan, a.cfg.Remote.IdentityID, a.cfg.Remote.AppURL)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Completa el pago en", url))
				return nil
			})
		},
	}
}
