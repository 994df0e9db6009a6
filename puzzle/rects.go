// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package puzzle

// PieceRect is one grid cell of the canonical image.
// Index is the row-major position, which is also the piece's correct slot.
type PieceRect struct {
	Index  int `json:"index"`
	Row    int `json:"row"`
	Col    int `json:"col"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area returns Width * Height
func (p PieceRect) Area() int { return p.Width * p.Height }

// PieceSet holds the rects of every difficulty for a single image.
type PieceSet struct {
	ImageID string
	Rects   map[Difficulty][]PieceRect
}

// PieceRects returns the rects for d in row-major order (row 0 col 0,
// row 0 col 1, ...). The rects tile the canonical square exactly.
func PieceRects(d Difficulty) ([]PieceRect, error) {
	g, err := GridFor(d)
	if err != nil {
		return nil, err
	}

	w, h := g.PieceWidth(), g.PieceHeight()
	rects := make([]PieceRect, 0, g.Pieces())
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			rects = append(rects, PieceRect{
				Index:  row*g.Cols + col,
				Row:    row,
				Col:    col,
				X:      col * w,
				Y:      row * h,
				Width:  w,
				Height: h,
			})
		}
	}
	return rects, nil
}

// AllDifficultyPieceRects computes the rects of every supported difficulty
// for imageID. The ID is carried through untouched.
func AllDifficultyPieceRects(imageID string) PieceSet {
	set := PieceSet{
		ImageID: imageID,
		Rects:   make(map[Difficulty][]PieceRect, len(Difficulties)),
	}
	for _, d := range Difficulties {
		// Difficulties only holds validated table entries
		rects, _ := PieceRects(d)
		set.Rects[d] = rects
	}
	return set
}
