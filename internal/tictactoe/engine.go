package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// Engine owns the cells, the turn and the state of a single game.
// A new Engine is created for every game; it is not safe for concurrent use.
type Engine struct {
	board    []entity.Mark
	turn     entity.Mark
	state    entity.GameState
	patterns []entity.Pattern
}

func NewEngine(cells int, patterns []entity.Pattern, starting entity.Mark) *Engine {
	if !starting.IsPlayer() {
		starting = entity.X
	}

	return &Engine{
		board:    make([]entity.Mark, cells),
		turn:     starting,
		state:    entity.StateInProgress,
		patterns: patterns,
	}
}

// ApplyMove places the current mark at index. A rejected move leaves the engine untouched.
func (that *Engine) ApplyMove(index int) (entity.MatchResult, error) {
	if err := that.validateMove(index); err != nil {
		return entity.MatchResult{}, err
	}

	that.board[index] = that.turn

	result := that.Evaluate()
	if result.IsOver() {
		that.state = result.State()
		return result, nil
	}

	that.turn = that.turn.Opponent()

	return result, nil
}

// validateMove - checks if the move is valid.
func (that *Engine) validateMove(index int) error {
	if that.state.IsTerminal() {
		return apperror.ErrGameFinished
	}

	if index < 0 || index >= len(that.board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	if that.board[index] != entity.Empty {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	return nil
}

// Evaluate reports the first completed pattern in generation order, a draw on a full board,
// or continue. Patterns reaching past the board never match.
func (that *Engine) Evaluate() entity.MatchResult {
	for _, pattern := range that.patterns {
		if !pattern.Contains(len(that.board)) {
			continue
		}

		first := that.board[pattern[0]]
		if first == entity.Empty {
			continue
		}

		if that.lineOf(pattern, first) {
			return entity.WinResult(first, pattern)
		}
	}

	// the game will continue until all the cells are full
	for _, cell := range that.board {
		if cell == entity.Empty {
			return entity.ContinueResult()
		}
	}

	return entity.DrawResult()
}

func (that *Engine) lineOf(pattern entity.Pattern, mark entity.Mark) bool {
	for _, idx := range pattern[1:] {
		if that.board[idx] != mark {
			return false
		}
	}
	return true
}

// Cells returns a copy of the board.
func (that *Engine) Cells() []entity.Mark {
	cells := make([]entity.Mark, len(that.board))
	copy(cells, that.board)
	return cells
}

func (that *Engine) Turn() entity.Mark {
	return that.turn
}

func (that *Engine) State() entity.GameState {
	return that.state
}

func (that *Engine) IsOver() bool {
	return that.state.IsTerminal()
}

func (that *Engine) Len() int {
	return len(that.board)
}
