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

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "The calm wall: short positive notes",
	}
	cmd.AddCommand(newNoteAddCmd(), newNoteListCmd())
	return cmd
}

func newNoteAddCmd() *cobra.Command {
	var color, category string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Pin a note on the calm wall (+10 calm points)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := engine.ParseNoteColor(color)
			if err != nil {
				return err
			}
			cat, err := engine.ParseNoteCategory(category)
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, a *app) error {
				n, grant, err := a.svc.AddNote(ctx, engine.AddNoteInput{Text: strings.Join(args, " "), Color: c, Category: cat})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s %s\n", n.Category.Emoji(), n.Text)
				printGrant(out, grant)
				if comment, err := engine.WallComment(n.Category, engine.DefaultRand); err == nil {
					fmt.Fprintln(out, ui.Muted.Render(ui.IconCat+" "+comment))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&color, "color", string(engine.ColorYellow), "Color (blue|green|yellow|purple|pink)")
	cmd.Flags().StringVar(&category, "category", string(engine.CategoryLibre), "Category (gratitud|logro|soltar|positivo|libre)")
	return cmd
}

func newNoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the calm wall",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconLeaf, "Muro de la calma"))
				notes := a.svc.Notes()
				if len(notes) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("(vacío)"))
				}
				for _, n := range notes {
					fmt.Fprintf(out, "%s %s %s\n", n.Category.Emoji(), n.Text, ui.Muted.Render(n.Date.Local().Format("2006-01-02")))
				}
				return nil
			})
		},
	}
}
