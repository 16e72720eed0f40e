package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"stressless/internal/engine"
	"stressless/internal/flow"
	"stressless/internal/tui"
	"stressless/internal/ui"
)

func newBreatheCmd() *cobra.Command {
	var plain bool
	var minutes int

	cmd := &cobra.Command{
		Use:   "breathe [exercise]",
		Short: "Run a guided breathing session (+20 XP), or list exercises",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				st := a.svc.Profile().StressType
				if len(args) == 0 {
					fmt.Fprintln(out, ui.Heading(ui.IconWind, "Ejercicios"))
					fmt.Fprintln(out, ui.Muted.Render(engine.Encouragement(st)))
					for _, ex := range engine.ExercisesFor(st) {
						fmt.Fprintf(out, "- %s %s %s\n  %s\n", ui.Key.Render(ex.ID), ex.Title, ui.Muted.Render(fmt.Sprintf("(%d min)", ex.Minutes)), ex.Description)
					}
					return nil
				}

				ex, err := engine.FindExercise(args[0], st)
				if err != nil {
					return err
				}
				if minutes > 0 {
					ex.Minutes = minutes
				}
				if !plain {
					return tui.RunBreathing(ctx, a.svc, ex, out)
				}
				return breathePlain(ctx, a, ex, cmd)
			})
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print phase changes instead of opening the TUI")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Override the session length")
	return cmd
}

func breathePlain(ctx context.Context, a *app, ex engine.Exercise, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	session := flow.NewBreathing(a.svc, a.log)
	if err := session.Start(ex.ID, ex.Minutes); err != nil {
		return err
	}
	fmt.Fprintln(out, ui.Heading(ui.IconWind, ex.Title))
	fmt.Fprintln(out, ui.Muted.Render(ex.Instruction))

	var last flow.BreathPhase
	err := session.Run(ctx, flow.NewClockTicker(time.Second), func(s flow.BreathSnapshot) {
		if s.Phase != last && s.Status == flow.BreathRunning {
			last = s.Phase
			fmt.Fprintf(out, "%02d:%02d %s\n", s.TimeLeft/60, s.TimeLeft%60, s.Phase)
		}
	})
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, ui.Warn.Render("Sesión interrumpida"))
		return nil
	}
	if err != nil {
		return err
	}
	snap := session.Snapshot()
	fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("¡Sesión completada! %d ciclos", snap.Cycles)))
	printGrant(out, snap.Grant)
	return nil
}
