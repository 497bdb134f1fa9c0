package tictactoe

import "github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"

// GeneratePatterns lists every straight line of winLen cells on a rows x cols grid:
// horizontals first, then verticals, then down-right and down-left diagonals.
// Indices are row-major. The order is stable but carries no meaning for scoring.
func GeneratePatterns(rows, cols, winLen int) []entity.Pattern {
	if rows <= 0 || cols <= 0 || winLen <= 0 {
		return nil
	}

	var patterns []entity.Pattern

	line := func(r, c, dr, dc int) entity.Pattern {
		pattern := make(entity.Pattern, winLen)
		for k := 0; k < winLen; k++ {
			pattern[k] = (r+k*dr)*cols + (c + k*dc)
		}
		return pattern
	}

	for r := 0; r < rows; r++ {
		for c := 0; c <= cols-winLen; c++ {
			patterns = append(patterns, line(r, c, 0, 1))
		}
	}

	for c := 0; c < cols; c++ {
		for r := 0; r <= rows-winLen; r++ {
			patterns = append(patterns, line(r, c, 1, 0))
		}
	}

	for r := 0; r <= rows-winLen; r++ {
		for c := 0; c <= cols-winLen; c++ {
			patterns = append(patterns, line(r, c, 1, 1))
		}
	}

	for r := 0; r <= rows-winLen; r++ {
		for c := winLen - 1; c < cols; c++ {
			patterns = append(patterns, line(r, c, 1, -1))
		}
	}

	return patterns
}

// PatternsForShape generates the winning lines for a session grid.
func PatternsForShape(shape entity.GridShape) []entity.Pattern {
	return GeneratePatterns(shape.Rows, shape.Cols, entity.WinLength)
}
