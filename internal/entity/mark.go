package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

// Mark is the content of a board cell. The zero value is an empty cell.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// ParseMark converts "x"/"o" (any case) into a Mark.
func ParseMark(raw string) (Mark, error) {
	switch Mark(strings.ToUpper(strings.TrimSpace(raw))) {
	case X:
		return X, nil
	case O:
		return O, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, raw)
	}
}

func (that Mark) IsPlayer() bool {
	return that == X || that == O
}

// Opponent returns the other player's mark. Empty stays Empty.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Mark) String() string {
	if that == Empty {
		return " "
	}
	return string(that)
}
