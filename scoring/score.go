// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import "math"

const (
	BaseScore             = 10000
	TimePenaltyPerSecond  = 2
	MovePenaltyPerMove    = 10
	DefaultMultiplier     = 1.0
	millisecondsPerSecond = 1000
)

var multipliers = map[string]float64{
	"beginner": 0.5,
	"easy":     1.0,
	"medium":   1.5,
	"hard":     2.0,
	"expert":   2.5,
	"master":   3.0,
}

// Multiplier returns the score multiplier for a difficulty label.
// Unrecognized labels get DefaultMultiplier.
func Multiplier(difficulty string) float64 {
	if m, ok := multipliers[difficulty]; ok {
		return m
	}
	return DefaultMultiplier
}

// Compute returns the score for a finished puzzle. The result is never
// negative. Negative time or move counts are treated as zero.
func Compute(difficulty string, completionTimeMs, moves int64) int64 {
	if completionTimeMs < 0 {
		completionTimeMs = 0
	}
	if moves < 0 {
		moves = 0
	}

	base := int64(math.Floor(BaseScore * Multiplier(difficulty)))

	// Stop before a penalty product can overflow
	seconds := completionTimeMs / millisecondsPerSecond
	if seconds > base/TimePenaltyPerSecond {
		return 0
	}
	remaining := base - seconds*TimePenaltyPerSecond
	if moves > remaining/MovePenaltyPerMove {
		return 0
	}
	return remaining - moves*MovePenaltyPerMove
}
