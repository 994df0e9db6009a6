// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/mavi-puzzle/puzzle"
	"github.com/danielhkuo/mavi-puzzle/scoring"
)

func newGridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid <difficulty>",
		Short: "Print the piece rectangles for a difficulty",
		Long: `Print the grid and every piece rectangle on the 1260px canonical
image for one difficulty.

Examples:
  puzzlectl grid beginner
  puzzlectl grid master`,
		Args: cobra.ExactArgs(1),
		RunE: runGrid,
	}
}

func runGrid(cmd *cobra.Command, args []string) error {
	d, err := puzzle.ParseDifficulty(args[0])
	if err != nil {
		return err
	}
	g, err := puzzle.GridFor(d)
	if err != nil {
		return err
	}
	rects, err := puzzle.PieceRects(d)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %dx%d grid, %d pieces of %dx%d px, multiplier %.1f\n",
		d, g.Rows, g.Cols, g.Pieces(), g.PieceWidth(), g.PieceHeight(), scoring.Multiplier(string(d)))
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  %-5s  %-3s  %-3s  %-5s  %-5s  %-5s  %-5s\n", "Index", "Row", "Col", "X", "Y", "W", "H")
	fmt.Fprintf(out, "  %-5s  %-3s  %-3s  %-5s  %-5s  %-5s  %-5s\n", "-----", "---", "---", "-", "-", "-", "-")
	for _, r := range rects {
		fmt.Fprintf(out, "  %-5d  %-3d  %-3d  %-5d  %-5d  %-5d  %-5d\n", r.Index, r.Row, r.Col, r.X, r.Y, r.Width, r.Height)
	}
	return nil
}
