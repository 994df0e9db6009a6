// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/mavi-puzzle/db"
	"github.com/danielhkuo/mavi-puzzle/handlers"
)

type leaderboardFlags struct {
	dbURL      string
	dbType     string
	puzzleID   string
	difficulty string
	timeframe  string
	limit      int
}

func newLeaderboardCmd() *cobra.Command {
	var f leaderboardFlags

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the top scores from the database",
		Long: `Print the ranked scores the /api/scores/leaderboard endpoint returns.

Examples:
  puzzlectl leaderboard --db mavi.db
  puzzlectl leaderboard --difficulty hard --timeframe weekly
  puzzlectl leaderboard --db-type postgres --db "postgres://..." --limit 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeaderboard(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.dbURL, "db", "", "Database URL (default: DATABASE_URL)")
	cmd.Flags().StringVar(&f.dbType, "db-type", "", "Database type, sqlite or postgres (default: DATABASE_TYPE or sqlite)")
	cmd.Flags().StringVar(&f.puzzleID, "puzzle", "", "Only scores for this puzzle ID")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", "", "Only scores at this difficulty")
	cmd.Flags().StringVar(&f.timeframe, "timeframe", "all-time", "all-time, daily, weekly or monthly")
	cmd.Flags().IntVar(&f.limit, "limit", 10, "Number of entries")
	return cmd
}

func runLeaderboard(cmd *cobra.Command, f leaderboardFlags) error {
	if f.dbURL == "" {
		f.dbURL = os.Getenv("DATABASE_URL")
	}
	if f.dbURL == "" {
		return errors.New("database URL required (use --db or DATABASE_URL env)")
	}
	if f.dbType == "" {
		f.dbType = os.Getenv("DATABASE_TYPE")
	}
	if f.dbType == "" {
		f.dbType = string(db.SQLite)
	}
	if f.limit <= 0 {
		return fmt.Errorf("invalid limit %d", f.limit)
	}

	dialect, err := db.ParseDialect(f.dbType)
	if err != nil {
		return err
	}
	conn, err := db.Open(dialect, f.dbURL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer conn.Close()

	var where []string
	var args []any
	if f.puzzleID != "" {
		where = append(where, "s.puzzle_id = ?")
		args = append(args, f.puzzleID)
	}
	if f.difficulty != "" {
		where = append(where, "s.difficulty = ?")
		args = append(args, f.difficulty)
	}
	if since, ok := handlers.TimeframeStart(f.timeframe, time.Now().UTC()); ok {
		where = append(where, "s.completed_at >= ?")
		args = append(args, since)
	}

	entries, err := handlers.QueryLeaderboard(conn, where, args, f.limit, true)
	if err != nil {
		return fmt.Errorf("reading scores: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-5s  %-20s  %-24s  %-10s  %8s  %-8s  %6s  %s\n",
		"Rank", "Player", "Puzzle", "Difficulty", "Score", "Time", "Moves", "When")
	fmt.Fprintf(out, "  %-5s  %-20s  %-24s  %-10s  %8s  %-8s  %6s  %s\n",
		"----", "------", "------", "----------", "-----", "----", "-----", "----")
	for _, e := range entries {
		title := ""
		if e.Puzzle != nil {
			title = e.Puzzle.Title
		}
		fmt.Fprintf(out, "  %-5s  %-20s  %-24s  %-10s  %8s  %-8s  %6d  %s\n",
			humanize.Ordinal(e.Rank), truncate(e.User.Username, 20), truncate(title, 24), e.Difficulty,
			humanize.Comma(e.Score), formatDuration(e.CompletionTime), e.Moves, humanize.Time(e.CompletedAt))
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
