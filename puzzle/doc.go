// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package puzzle defines difficulty levels and the grid geometry used to cut
a puzzle image into pieces.

# Difficulties

Six labels map to square grids:

	beginner 2×2   easy 3×3   medium 4×4
	hard     5×5   expert 6×6 master 7×7

Unknown labels are rejected:

	d, err := puzzle.ParseDifficulty("bogus") // errors.Is(err, puzzle.ErrInvalidDifficulty)

# Canonical Size

Every image is first filled to CanonicalSize × CanonicalSize (1260 px).
1260 = lcm(2..7) × 3, so every supported grid divides it exactly:

	beginner 630px  easy 420px  medium 315px
	hard     252px  expert 210px master 180px

Grid entries that do not divide the canonical size are rejected at load
time and on lookup with ErrIndivisibleGrid.

# Piece Rects

PieceRects returns the cells of a grid in row-major order:

	rects, err := puzzle.PieceRects(puzzle.Medium) // 16 rects, 315×315

AllDifficultyPieceRects bundles every difficulty for one image ID. The
package has no knowledge of URLs or the image service; see imagecdn.
*/
package puzzle
