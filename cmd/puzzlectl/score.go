// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/mavi-puzzle/puzzle"
	"github.com/danielhkuo/mavi-puzzle/scoring"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <difficulty> <time_ms> <moves>",
		Short: "Score a completion and list the achievements it earns",
		Long: `Apply the scoring formula to a finished puzzle.

Examples:
  puzzlectl score easy 25000 9
  puzzlectl score master 600000 400`,
		Args: cobra.ExactArgs(3),
		RunE: runScore,
	}
}

func runScore(cmd *cobra.Command, args []string) error {
	if _, err := puzzle.ParseDifficulty(args[0]); err != nil {
		return err
	}
	ms, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || ms < 0 {
		return fmt.Errorf("invalid completion time %q", args[1])
	}
	moves, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil || moves < 0 {
		return fmt.Errorf("invalid move count %q", args[2])
	}

	score := scoring.Compute(args[0], ms, moves)
	earned := scoring.Award(args[0], ms, moves, score)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Score: %s (%s, %s, %s moves)\n",
		humanize.Comma(score), args[0], formatDuration(ms), humanize.Comma(moves))

	if len(earned) == 0 {
		fmt.Fprintln(out, "No achievements earned.")
		return nil
	}
	fmt.Fprintln(out)
	for _, a := range earned {
		fmt.Fprintf(out, "  %s %-16s +%d\n", a.Icon, a.Name, a.Points)
	}
	fmt.Fprintf(out, "Achievement points: %d\n", scoring.Points(earned))
	return nil
}

// formatDuration renders milliseconds to the second, e.g. "1m35s"
func formatDuration(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Truncate(time.Second).String()
}
