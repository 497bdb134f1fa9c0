package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePatterns(t *testing.T) {
	t.Run("Classic 3x3 board", func(t *testing.T) {
		// When: generating winning lines for a 3x3 grid
		patterns := GeneratePatterns(3, 3, 3)

		// Then: the eight classic lines come out in generation order
		expected := []entity.Pattern{
			{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
			{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
			{0, 4, 8},
			{2, 4, 6},
		}
		require.Equal(t, expected, patterns)
	})

	t.Run("Wide 3x4 board", func(t *testing.T) {
		// When: generating winning lines for a 3x4 grid
		patterns := GeneratePatterns(3, 4, 3)

		// Then: 6 horizontal, 4 vertical and 2+2 diagonal lines exist
		expected := []entity.Pattern{
			{0, 1, 2}, {1, 2, 3}, {4, 5, 6}, {5, 6, 7}, {8, 9, 10}, {9, 10, 11},
			{0, 4, 8}, {1, 5, 9}, {2, 6, 10}, {3, 7, 11},
			{0, 5, 10}, {1, 6, 11},
			{2, 5, 8}, {3, 6, 9},
		}
		require.Equal(t, expected, patterns)
	})

	t.Run("Lines are in range and collinear", func(t *testing.T) {
		for _, shape := range [][2]int{{3, 3}, {3, 4}, {4, 4}, {5, 3}} {
			rows, cols := shape[0], shape[1]
			for _, pattern := range GeneratePatterns(rows, cols, 3) {
				require.Len(t, pattern, 3)
				assert.True(t, pattern.Contains(rows*cols), "pattern %v out of range", pattern)

				r0, c0 := pattern[0]/cols, pattern[0]%cols
				r1, c1 := pattern[1]/cols, pattern[1]%cols
				r2, c2 := pattern[2]/cols, pattern[2]%cols
				assert.Equal(t, r1-r0, r2-r1, "pattern %v is not a straight line", pattern)
				assert.Equal(t, c1-c0, c2-c1, "pattern %v is not a straight line", pattern)
				assert.LessOrEqual(t, abs(r1-r0), 1)
				assert.LessOrEqual(t, abs(c1-c0), 1)
			}
		}
	})

	t.Run("Grid smaller than the line yields nothing", func(t *testing.T) {
		assert.Empty(t, GeneratePatterns(2, 2, 3))
		assert.Empty(t, GeneratePatterns(0, 3, 3))
	})

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, GeneratePatterns(3, 4, 3), GeneratePatterns(3, 4, 3))
	})
}

func TestPatternsForShape(t *testing.T) {
	shape, err := entity.ShapeForCellCount(12)
	require.NoError(t, err)

	assert.Len(t, PatternsForShape(shape), 14)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
