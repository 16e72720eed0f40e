package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"stressless/internal/engine"
	"stressless/internal/ui"
)

func newGardenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "garden",
		Short: "The calm garden and its relaxation games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				printGarden(cmd.OutOrStdout(), a.svc.Profile().Garden)
				return nil
			})
		},
	}
	cmd.AddCommand(
		newGardenWaterCmd(),
		gardenGameCmd("bubble", "Pop a bubble (+2 calm, +10 XP per cleared round)", (*engine.Service).PopBubble),
		gardenGameCmd("mandala", "Colour a mandala (+20 XP, +15 calm)", (*engine.Service).CompleteMandala),
		gardenGameCmd("puzzle", "Place a puzzle piece (+2 calm, bonus at 100%)", (*engine.Service).AdvancePuzzle),
	)
	return cmd
}

func printGarden(out io.Writer, g engine.GardenState) {
	fmt.Fprintln(out, ui.Heading(ui.IconLeaf, "Jardín de la calma"))
	for _, p := range g.Plants {
		fmt.Fprintf(out, "%d %s %s %s\n", p.ID, p.Emoji(), p.Name, ui.ProgressBar(p.Progress, p.MaxProgress, p.MaxProgress))
	}
	fmt.Fprintln(out, ui.LabelValue("Burbujas restantes", g.BubblesLeft))
	fmt.Fprintln(out, ui.LabelValue("Puzzle", fmt.Sprintf("%d%%", g.PuzzleProgress)))
}

func newGardenWaterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "water <plant>",
		Short: "Water a plant (+5 calm, growth bonus when fully grown)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("plant number is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("plant must be a number")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := strconv.Atoi(args[0])
			return withApp(func(ctx context.Context, a *app) error {
				res, err := a.svc.WaterPlant(ctx, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				printGrants(out, res.Grants)
				printGarden(out, res.Garden)
				return nil
			})
		},
	}
}

func gardenGameCmd(use, short string, play func(*engine.Service, context.Context) (*engine.GardenResult, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				res, err := play(a.svc, ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				printGrants(out, res.Grants)
				printGarden(out, res.Garden)
				return nil
			})
		},
	}
}
