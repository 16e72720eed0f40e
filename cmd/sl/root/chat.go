package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stressless/internal/engine"
	"stressless/internal/ui"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Talk to Lessy (+5 XP)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("message is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				reply, err := a.svc.SendChatMessage(ctx, strings.Join(args, " "), engine.DefaultRand)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s %s\n", ui.IconCat, reply.Text)
				printGrant(out, reply.Grant)
				return nil
			})
		},
	}
	return cmd
}
