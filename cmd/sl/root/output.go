package root

import (
	"fmt"
	"io"

	"stressless/internal/engine"
	"stressless/internal/ui"
)

func printGrant(w io.Writer, g *engine.GrantResult) {
	if line := ui.GrantLine(g); line != "" {
		fmt.Fprintln(w, line)
	}
}

func printGrants(w io.Writer, gs []*engine.GrantResult) {
	for _, g := range gs {
		printGrant(w, g)
	}
}
