package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stressless/internal/ui"
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal [text]",
		Short: "Write a journal entry (+20 XP), or list entries with no text",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				if len(args) == 0 {
					fmt.Fprintln(out, ui.Heading(ui.IconNote, "Diario"))
					entries := a.svc.Journal()
					if len(entries) == 0 {
						fmt.Fprintln(out, ui.Muted.Render("(vacío)"))
					}
					for _, e := range entries {
						fmt.Fprintf(out, "%s %s\n", ui.Muted.Render(e.Date.Local().Format("2006-01-02 15:04")), e.Text)
					}
					return nil
				}
				_, grant, err := a.svc.AddJournalEntry(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" Entrada guardada"))
				printGrant(out, grant)
				return nil
			})
		},
	}
	return cmd
}
