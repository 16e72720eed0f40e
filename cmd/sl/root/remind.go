package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"stressless/internal/reminder"
	"stressless/internal/ui"
)

func newRemindCmd() *cobra.Command {
	var daemon bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Email the pending-task reminder now, or on the configured schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				if a.mailer == nil {
					return errors.New("email is not configured (remote.email_api_key)")
				}
				r := reminder.New(a.svc, a.mailer, a.cfg.Remote.AppURL, a.cfg.RemoteTimeout(), a.log)
				out := cmd.OutOrStdout()

				if daemon {
					if !a.cfg.Reminder.Enabled {
						return errors.New("reminders are disabled (reminder.enabled)")
					}
					ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
					defer stop()
					fmt.Fprintln(out, ui.LabelValue("Recordatorios programados", a.cfg.Reminder.Schedule))
					return r.Run(ctx, a.cfg.Reminder.Schedule)
				}

				sent, err := r.SendOnce(ctx)
				if err != nil {
					return err
				}
				if !sent {
					fmt.Fprintln(out, ui.Muted.Render("No hay tareas pendientes."))
					return nil
				}
				fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Recordatorio enviado"))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&daemon, "daemon", false, "Keep running and send on reminder.schedule")
	return cmd
}
