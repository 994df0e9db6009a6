// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package puzzle

import (
	"errors"
	"fmt"
)

// CanonicalSize is the side length, in pixels, of the square frame every
// puzzle image is normalized to before cutting.
const CanonicalSize = 1260

var (
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrIndivisibleGrid   = errors.New("grid does not divide canonical size")
)

// Difficulty is a named tier controlling grid size
type Difficulty string

const (
	Beginner Difficulty = "beginner"
	Easy     Difficulty = "easy"
	Medium   Difficulty = "medium"
	Hard     Difficulty = "hard"
	Expert   Difficulty = "expert"
	Master   Difficulty = "master"
)

// Difficulties lists every supported level from smallest to largest grid.
var Difficulties = []Difficulty{Beginner, Easy, Medium, Hard, Expert, Master}

// Grid is a rows × cols layout
type Grid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

var grids = map[Difficulty]Grid{
	Beginner: {Rows: 2, Cols: 2},
	Easy:     {Rows: 3, Cols: 3},
	Medium:   {Rows: 4, Cols: 4},
	Hard:     {Rows: 5, Cols: 5},
	Expert:   {Rows: 6, Cols: 6},
	Master:   {Rows: 7, Cols: 7},
}

func init() {
	for d, g := range grids {
		if err := g.validate(); err != nil {
			panic(fmt.Sprintf("puzzle: grid for %s: %v", d, err))
		}
	}
}

// ParseDifficulty returns the Difficulty for a label, or ErrInvalidDifficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if _, ok := grids[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	return d, nil
}

// GridFor looks up the grid for d
func GridFor(d Difficulty) (Grid, error) {
	g, ok := grids[d]
	if !ok {
		return Grid{}, fmt.Errorf("%w: %q", ErrInvalidDifficulty, string(d))
	}
	if err := g.validate(); err != nil {
		return Grid{}, err
	}
	return g, nil
}

func (g Grid) validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrIndivisibleGrid, g.Rows, g.Cols)
	}
	if CanonicalSize%g.Rows != 0 || CanonicalSize%g.Cols != 0 {
		return fmt.Errorf("%w: %dx%d", ErrIndivisibleGrid, g.Rows, g.Cols)
	}
	return nil
}

// PieceWidth is CanonicalSize / Cols.
func (g Grid) PieceWidth() int { return CanonicalSize / g.Cols }

// PieceHeight is CanonicalSize / Rows.
func (g Grid) PieceHeight() int { return CanonicalSize / g.Rows }

// Pieces is the number of cells in the grid.
func (g Grid) Pieces() int { return g.Rows * g.Cols }
