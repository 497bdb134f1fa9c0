package entity

import (
	"fmt"
	"math"
	"slices"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

const (
	WinLength = 3
	MaxCells  = 64
)

// GridShape describes how a flat board of Cells is laid out in rows and columns.
// Rows*Cols may exceed Cells when the count is not a rectangle.
type GridShape struct {
	Rows  int `json:"rows"`
	Cols  int `json:"cols"`
	Cells int `json:"cells"`
}

// Pattern is an ordered line of board indices.
type Pattern []int

// ShapeForCellCount derives the grid layout from the number of cells on the board.
func ShapeForCellCount(count int) (GridShape, error) {
	if count <= 0 || count > MaxCells {
		return GridShape{}, fmt.Errorf("%w: %d cells", apperror.ErrInvalidGridSize, count)
	}

	switch count {
	case 12:
		return GridShape{Rows: 3, Cols: 4, Cells: count}, nil
	case 9:
		return GridShape{Rows: 3, Cols: 3, Cells: count}, nil
	}

	rows := int(math.Ceil(math.Sqrt(float64(count))))
	cols := (count + rows - 1) / rows

	return GridShape{Rows: rows, Cols: cols, Cells: count}, nil
}

// Contains reports whether every index of the pattern addresses a real cell.
func (that Pattern) Contains(cells int) bool {
	for _, idx := range that {
		if idx < 0 || idx >= cells {
			return false
		}
	}
	return len(that) > 0
}

func (that Pattern) Includes(index int) bool {
	return slices.Contains(that, index)
}
