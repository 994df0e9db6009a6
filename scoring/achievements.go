// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

// Achievement IDs
const (
	SpeedDemon    = "speed_demon"
	QuickSolver   = "quick_solver"
	PerfectEasy   = "perfect_easy"
	PerfectMedium = "perfect_medium"
	PerfectHard   = "perfect_hard"
	ExpertSolver  = "expert_solver"
	MasterSolver  = "master_solver"
	HighScorer    = "high_scorer"
	ScoreMaster   = "score_master"
)

// Achievement is a badge with static metadata
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
}

var catalog = []Achievement{
	{SpeedDemon, "Speed Demon", "Complete a puzzle in under 30 seconds", "⚡", 100},
	{QuickSolver, "Quick Solver", "Complete a puzzle in under 1 minute", "⏱️", 50},
	{PerfectEasy, "Perfect Easy", "Complete Easy puzzle with minimum moves", "🎯", 50},
	{PerfectMedium, "Perfect Medium", "Complete Medium puzzle with minimum moves", "🎯", 100},
	{PerfectHard, "Perfect Hard", "Complete Hard puzzle with minimum moves", "🎯", 150},
	{ExpertSolver, "Expert Solver", "Complete an Expert puzzle", "💎", 200},
	{MasterSolver, "Master Solver", "Complete a Master puzzle", "👑", 300},
	{HighScorer, "High Scorer", "Achieve 10,000+ points", "🏆", 100},
	{ScoreMaster, "Score Master", "Achieve 15,000+ points", "⭐", 200},
}

var catalogByID = func() map[string]Achievement {
	m := make(map[string]Achievement, len(catalog))
	for _, a := range catalog {
		m[a.ID] = a
	}
	return m
}()

// Catalog returns a copy of every achievement in display order.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (Achievement, bool) {
	a, ok := catalogByID[id]
	return a, ok
}

// AchievementsFor returns the IDs earned by a finished game, in rule order.
// Each chain stops at its first match, so at most one speed, one
// efficiency and one tier badge is returned.
func AchievementsFor(difficulty string, completionTimeMs, moves, score int64) []string {
	earned := []string{}

	seconds := float64(completionTimeMs) / millisecondsPerSecond

	if seconds < 30 {
		earned = append(earned, SpeedDemon)
	} else if seconds < 60 {
		earned = append(earned, QuickSolver)
	}

	if difficulty == "easy" && moves <= 9 {
		earned = append(earned, PerfectEasy)
	} else if difficulty == "medium" && moves <= 16 {
		earned = append(earned, PerfectMedium)
	} else if difficulty == "hard" && moves <= 25 {
		earned = append(earned, PerfectHard)
	}

	if difficulty == "expert" {
		earned = append(earned, ExpertSolver)
	} else if difficulty == "master" {
		earned = append(earned, MasterSolver)
	}

	if score >= 10000 {
		earned = append(earned, HighScorer)
	}
	if score >= 15000 {
		earned = append(earned, ScoreMaster)
	}

	return earned
}

// Award resolves the achievements earned by a game to catalog entries.
func Award(difficulty string, completionTimeMs, moves, score int64) []Achievement {
	ids := AchievementsFor(difficulty, completionTimeMs, moves, score)
	out := make([]Achievement, 0, len(ids))
	for _, id := range ids {
		if a, ok := Lookup(id); ok {
			out = append(out, a)
		}
	}
	return out
}

// Points sums the point values of achievements.
func Points(achievements []Achievement) int {
	total := 0
	for _, a := range achievements {
		total += a.Points
	}
	return total
}
