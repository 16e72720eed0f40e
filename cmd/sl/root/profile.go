package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"stressless/internal/engine"
	"stressless/internal/ui"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}
	cmd.AddCommand(newProfileShowCmd(), newProfileSetCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				printProfile(cmd.OutOrStdout(), a.svc.Profile())
				return nil
			})
		},
	}
}

func printProfile(out io.Writer, p engine.UserProfile) {
	fmt.Fprintln(out, ui.Heading(p.Avatar, "Perfil"))
	fmt.Fprintln(out, ui.LabelValue("Nombre", orDash(p.Name)))
	fmt.Fprintln(out, ui.LabelValue("Seudónimo", orDash(p.Pseudonym)))
	fmt.Fprintln(out, ui.LabelValue("Email", orDash(p.Email)))
	fmt.Fprintln(out, ui.LabelValue("Ánimo", p.Mood))
	fmt.Fprintln(out, ui.LabelValue("Tipo de estrés", p.StressType))
	fmt.Fprintln(out, ui.LabelValue("Música", p.MusicPreference))
	fmt.Fprintln(out, ui.LabelValue("Plan", fmt.Sprintf("%s (%s)", p.SubscriptionPlan, p.SubscriptionStatus)))
}

func orDash(s string) string {
	if s == "" {
		return ui.Muted.Render("-")
	}
	return s
}

func newProfileSetCmd() *cobra.Command {
	var name, pseudonym, email, avatar, mood, stress, music string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Edit profile fields",
		Long:  "Edit profile fields. Avatars: " + strings.Join(engine.Avatars, " "),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch engine.ProfilePatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("pseudonym") {
				patch.Pseudonym = &pseudonym
			}
			if flags.Changed("email") {
				patch.Email = &email
			}
			if flags.Changed("avatar") {
				patch.Avatar = &avatar
			}
			if flags.Changed("mood") {
				m, err := engine.ParseMood(mood)
				if err != nil {
					return err
				}
				patch.Mood = &m
			}
			if flags.Changed("stress") {
				s, err := engine.ParseStressType(stress)
				if err != nil {
					return err
				}
				patch.StressType = &s
			}
			if flags.Changed("music") {
				m, err := engine.ParseMusicPreference(music)
				if err != nil {
					return err
				}
				patch.MusicPreference = &m
			}
			if patch == (engine.ProfilePatch{}) {
				return errors.New("nothing to change: pass at least one flag")
			}

			return withApp(func(ctx context.Context, a *app) error {
				p, grant, err := a.svc.UpdateProfile(ctx, patch)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Perfil actualizado"))
				printGrant(out, grant)
				printProfile(out, p)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Display name")
	f.StringVar(&pseudonym, "pseudonym", "", "Pseudonym")
	f.StringVar(&email, "email", "", "Email for reminders and notifications")
	f.StringVar(&avatar, "avatar", "", "Avatar glyph")
	f.StringVar(&mood, "mood", "", "Mood (positive|neutral|negative)")
	f.StringVar(&stress, "stress", "", "Stress type (fatigue|anxiety|overwhelm|general)")
	f.StringVar(&music, "music", "", "Music preference (nature|classical|ambient|none)")
	return cmd
}
