package entity

import "fmt"

// Session is a read-only view of a hotseat session.
type Session struct {
	ID             string      `json:"id"`
	Rows           int         `json:"rows"`
	Cols           int         `json:"cols"`
	Board          []Mark      `json:"board"`
	Turn           Mark        `json:"turn"`
	State          GameState   `json:"state"`
	Over           bool        `json:"over"`
	HumanMark      Mark        `json:"human_mark"`
	StartingPlayer Mark        `json:"starting_player"`
	Result         MatchResult `json:"result"`
}

func (that Session) IsFinished() bool {
	return that.State.IsTerminal()
}

func (that Session) IsOngoing() bool {
	return that.State == StateInProgress
}

// FreeCells returns the indices of the empty cells in board order.
func (that Session) FreeCells() []int {
	free := make([]int, 0, len(that.Board))
	for i, cell := range that.Board {
		if cell == Empty {
			free = append(free, i)
		}
	}
	return free
}

// TurnLabel is the status line shown above the board.
func (that Session) TurnLabel() string {
	if that.Over {
		return "Game over"
	}

	if that.Turn == that.HumanMark {
		return fmt.Sprintf("Turn: %s — Your move", that.Turn)
	}
	return fmt.Sprintf("Turn: %s — Other player", that.Turn)
}

func (that Session) StatusLabel() string {
	return fmt.Sprintf("You are %s", that.HumanMark)
}

// Apply replays a session event onto the view. Events of other sessions and
// cells outside the board are ignored.
func (that *Session) Apply(event Event) {
	if event.SessionID != that.ID {
		return
	}

	switch event.Type {
	case EventCellUpdated:
		if event.Cell != nil && *event.Cell >= 0 && *event.Cell < len(that.Board) {
			that.Board[*event.Cell] = event.Mark
		}
	case EventTurnChanged:
		that.Turn = event.Mark
	case EventGameOver:
		that.Over = true
		if event.Result != nil {
			that.Result = *event.Result
			that.State = event.Result.State()
		}
	case EventGameReset:
		for i := range that.Board {
			that.Board[i] = Empty
		}
		that.Turn = event.Mark
		that.StartingPlayer = event.Mark
		if event.HumanMark.IsPlayer() {
			that.HumanMark = event.HumanMark
		}
		that.State = StateInProgress
		that.Over = false
		that.Result = ContinueResult()
	}
}
