package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestKeyAction(t *testing.T) {
	runeKey := func(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }
	key := func(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

	assert.Equal(t, action{kind: actionSelect, cell: 0}, keyAction(runeKey('1')))
	assert.Equal(t, action{kind: actionSelect, cell: 8}, keyAction(runeKey('9')))
	assert.Equal(t, action{kind: actionNone}, keyAction(runeKey('0')))

	assert.Equal(t, action{kind: actionMove, dRow: -1}, keyAction(key(tcell.KeyUp)))
	assert.Equal(t, action{kind: actionMove, dCol: 1}, keyAction(key(tcell.KeyRight)))
	assert.Equal(t, action{kind: actionPlaySelected}, keyAction(key(tcell.KeyEnter)))

	assert.Equal(t, action{kind: actionRestart}, keyAction(runeKey('r')))
	assert.Equal(t, action{kind: actionChooseMark, mark: entity.X}, keyAction(runeKey('x')))
	assert.Equal(t, action{kind: actionChooseMark, mark: entity.O}, keyAction(runeKey('O')))
	assert.Equal(t, action{kind: actionQuit}, keyAction(runeKey('q')))
	assert.Equal(t, action{kind: actionQuit}, keyAction(key(tcell.KeyEscape)))
	assert.Equal(t, action{kind: actionNone}, keyAction(key(tcell.KeyTab)))
}

func TestCursor(t *testing.T) {
	t.Run("Stays inside the grid", func(t *testing.T) {
		c := cursor{rows: 3, cols: 4}

		c.move(-1, -1)
		assert.Equal(t, 0, c.index())

		c.move(5, 0)
		assert.Equal(t, 0, c.index())

		c.move(2, 3)
		assert.Equal(t, 11, c.index())
	})

	t.Run("Set follows row-major order", func(t *testing.T) {
		c := cursor{rows: 3, cols: 4}

		c.set(6)
		assert.Equal(t, 1, c.row)
		assert.Equal(t, 2, c.col)

		c.set(12)
		assert.Equal(t, 6, c.index())
	})
}
