package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type actionKind int

const (
	actionNone actionKind = iota
	actionMove
	actionSelect
	actionPlaySelected
	actionRestart
	actionChooseMark
	actionQuit
)

type action struct {
	kind actionKind
	cell int
	dRow int
	dCol int
	mark entity.Mark
}

// keyAction maps a key press to a board action. Digits 1-9 play that cell directly.
func keyAction(event *tcell.EventKey) action {
	switch event.Key() {
	case tcell.KeyUp:
		return action{kind: actionMove, dRow: -1}
	case tcell.KeyDown:
		return action{kind: actionMove, dRow: 1}
	case tcell.KeyLeft:
		return action{kind: actionMove, dCol: -1}
	case tcell.KeyRight:
		return action{kind: actionMove, dCol: 1}
	case tcell.KeyEnter:
		return action{kind: actionPlaySelected}
	case tcell.KeyEscape:
		return action{kind: actionQuit}
	case tcell.KeyRune:
	default:
		return action{kind: actionNone}
	}

	r := event.Rune()
	switch {
	case r >= '1' && r <= '9':
		return action{kind: actionSelect, cell: int(r - '1')}
	case r == 'r' || r == 'R':
		return action{kind: actionRestart}
	case r == 'x' || r == 'X':
		return action{kind: actionChooseMark, mark: entity.X}
	case r == 'o' || r == 'O':
		return action{kind: actionChooseMark, mark: entity.O}
	case r == 'q' || r == 'Q':
		return action{kind: actionQuit}
	}

	return action{kind: actionNone}
}

// cursor is the highlighted cell, kept inside a rows x cols grid.
type cursor struct {
	rows, cols int
	row, col   int
}

func (that *cursor) move(dRow, dCol int) {
	if row := that.row + dRow; row >= 0 && row < that.rows {
		that.row = row
	}
	if col := that.col + dCol; col >= 0 && col < that.cols {
		that.col = col
	}
}

func (that *cursor) index() int {
	return that.row*that.cols + that.col
}

func (that *cursor) set(index int) {
	if index < 0 || index >= that.rows*that.cols {
		return
	}
	that.row = index / that.cols
	that.col = index % that.cols
}
