package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stressless/internal/engine"
	"stressless/internal/tui"
	"stressless/internal/ui"
)

func newMusicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "music",
		Short: "Relaxing music catalog",
	}
	cmd.AddCommand(newMusicListCmd(), newMusicPlayCmd(), newMusicTestCmd())
	return cmd
}

func newMusicListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracks and the recommendation for this hour",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				pref := a.svc.Profile().MusicPreference
				for _, c := range engine.MusicCatalog {
					title := c.Icon + " " + c.Name
					if c.ID == pref {
						title += " " + ui.Gold.Render("★")
					}
					fmt.Fprintln(out, ui.H2.Render(title))
					for _, t := range c.Tracks {
						fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render(t.ID), t.Name, ui.Muted.Render(t.Duration+" · "+t.Feeling))
					}
				}
				rec := engine.RecommendForHour(time.Now().Hour())
				fmt.Fprintf(out, "\n%s %s: %v\n", rec.Icon, rec.Title, rec.TrackIDs)
				if !a.svc.SoundEnabled() {
					fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Sonido desactivado (sl sound on)"))
				}
				return nil
			})
		},
	}
}

func newMusicPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <track>",
		Short: "Play a track (+5 XP with sound on)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("track id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				res, err := a.svc.PlayTrack(ctx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !res.Played {
					fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Sonido desactivado: "+res.Track.Name+" no se reprodujo"))
					return nil
				}
				fmt.Fprintf(out, "%s %s %s\n", ui.IconMusic, res.Track.Name, ui.Muted.Render(res.Track.Duration))
				printGrant(out, res.Grant)
				return nil
			})
		},
	}
}

func newMusicTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Find your music preference (+25 XP)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				return tui.RunMusicTest(ctx, a.svc, cmd.OutOrStdout())
			})
		},
	}
}
