// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// puzzlectl is the operator tool for the MAVI Puzzle server.
//
// Usage:
//
//	puzzlectl grid <difficulty>                    - Print the piece rectangles
//	puzzlectl score <difficulty> <time_ms> <moves> - Score a completion
//	puzzlectl leaderboard                          - Print the top scores
//	puzzlectl keygen                               - Generate an ADMIN_KEY
//
// leaderboard reads the same database as the server:
//
//	--db <url>       - Database URL (default: DATABASE_URL)
//	--db-type <type> - sqlite or postgres (default: DATABASE_TYPE or sqlite)
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "puzzlectl",
		Short: "MAVI Puzzle operator tool",
		Long: `puzzlectl inspects the puzzle grids and scoring rules, prints
leaderboards straight from the database and generates admin keys.

Examples:
  puzzlectl grid medium
  puzzlectl score hard 95000 60
  puzzlectl leaderboard --difficulty expert --limit 20
  puzzlectl keygen`,
		SilenceUsage: true,
	}

	root.AddCommand(newGridCmd())
	root.AddCommand(newScoreCmd())
	root.AddCommand(newLeaderboardCmd())
	root.AddCommand(newKeygenCmd())
	return root
}
