// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring computes puzzle scores and evaluates achievement badges.

# Score Formula

	raw   = floor(10000 × multiplier) − 2 × floor(timeMs / 1000) − 10 × moves
	score = max(0, raw)

Multipliers: beginner 0.5, easy 1.0, medium 1.5, hard 2.0, expert 2.5,
master 3.0. Any other label scores with 1.0; it is never an error, so
scores recorded under legacy labels keep their values.

	scoring.Compute("easy", 30000, 9)    // 9850
	scoring.Compute("master", 0, 0)      // 30000
	scoring.Compute("bogus", 1000, 1)    // 9988

# Achievements

AchievementsFor returns the badge IDs earned by a finished game. Rules run
as ordered chains where the first match wins:

  - speed: speed_demon (< 30 s), else quick_solver (< 60 s)
  - efficiency: perfect_easy (easy, ≤ 9 moves), else perfect_medium
    (medium, ≤ 16), else perfect_hard (hard, ≤ 25)
  - tier: expert_solver, else master_solver
  - score: high_scorer (≥ 10000) and score_master (≥ 15000), independent

Catalog and Lookup expose the static badge metadata; Award resolves the
earned IDs to catalog entries.

All functions are pure and safe for concurrent use.
*/
package scoring
