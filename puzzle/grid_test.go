// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package puzzle

import (
	"errors"
	"testing"
)

func TestGridFor(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		rows, cols int
		pieceSize  int
	}{
		{Beginner, 2, 2, 630},
		{Easy, 3, 3, 420},
		{Medium, 4, 4, 315},
		{Hard, 5, 5, 252},
		{Expert, 6, 6, 210},
		{Master, 7, 7, 180},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			g, err := GridFor(tt.difficulty)
			if err != nil {
				t.Fatalf("GridFor(%s) failed: %v", tt.difficulty, err)
			}
			if g.Rows != tt.rows || g.Cols != tt.cols {
				t.Errorf("Expected %dx%d, got %dx%d", tt.rows, tt.cols, g.Rows, g.Cols)
			}
			if g.PieceWidth() != tt.pieceSize || g.PieceHeight() != tt.pieceSize {
				t.Errorf("Expected %dpx pieces, got %dx%d", tt.pieceSize, g.PieceWidth(), g.PieceHeight())
			}
			if g.PieceWidth()*g.Cols != CanonicalSize {
				t.Errorf("pieceWidth*cols = %d, want %d", g.PieceWidth()*g.Cols, CanonicalSize)
			}
			if g.PieceHeight()*g.Rows != CanonicalSize {
				t.Errorf("pieceHeight*rows = %d, want %d", g.PieceHeight()*g.Rows, CanonicalSize)
			}
		})
	}
}

func TestGridForUnknown(t *testing.T) {
	_, err := GridFor("impossible")
	if !errors.Is(err, ErrInvalidDifficulty) {
		t.Errorf("Expected ErrInvalidDifficulty, got %v", err)
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range Difficulties {
		got, err := ParseDifficulty(string(d))
		if err != nil {
			t.Errorf("ParseDifficulty(%q) failed: %v", d, err)
		}
		if got != d {
			t.Errorf("ParseDifficulty(%q) = %q", d, got)
		}
	}

	for _, bad := range []string{"", "EASY", "unknown", "medium "} {
		if _, err := ParseDifficulty(bad); !errors.Is(err, ErrInvalidDifficulty) {
			t.Errorf("ParseDifficulty(%q): expected ErrInvalidDifficulty, got %v", bad, err)
		}
	}
}

func TestGridValidateRejectsIndivisible(t *testing.T) {
	// 1260 % 8 == 4
	for _, g := range []Grid{{Rows: 8, Cols: 8}, {Rows: 4, Cols: 11}, {Rows: 0, Cols: 3}} {
		if err := g.validate(); !errors.Is(err, ErrIndivisibleGrid) {
			t.Errorf("validate(%dx%d): expected ErrIndivisibleGrid, got %v", g.Rows, g.Cols, err)
		}
	}
}

func TestDifficultiesOrderedAndComplete(t *testing.T) {
	if len(Difficulties) != len(grids) {
		t.Fatalf("Difficulties has %d entries, grid table has %d", len(Difficulties), len(grids))
	}
	prev := 0
	for _, d := range Difficulties {
		g, err := GridFor(d)
		if err != nil {
			t.Fatalf("GridFor(%s) failed: %v", d, err)
		}
		if g.Pieces() <= prev {
			t.Errorf("Difficulties not ordered by grid size at %s", d)
		}
		prev = g.Pieces()
	}
}
