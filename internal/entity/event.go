package entity

const (
	EventCellUpdated = "cell:updated"
	EventTurnChanged = "turn:changed"
	EventGameOver    = "game:over"
	EventGameReset   = "game:reset"
)

// Event is a notification sent from a session to its presentation collaborators.
type Event struct {
	Type      string       `json:"type"`
	SessionID string       `json:"session_id"`
	Cell      *int         `json:"cell,omitempty"`
	Mark      Mark         `json:"mark,omitempty"`
	HumanMark Mark         `json:"human_mark,omitempty"`
	Result    *MatchResult `json:"result,omitempty"`
	Message   string       `json:"message,omitempty"`
}

func CellUpdated(sessionID string, index int, mark Mark) Event {
	return Event{Type: EventCellUpdated, SessionID: sessionID, Cell: &index, Mark: mark}
}

func TurnChanged(sessionID string, mark Mark) Event {
	return Event{Type: EventTurnChanged, SessionID: sessionID, Mark: mark}
}

func GameOver(sessionID string, result MatchResult) Event {
	return Event{Type: EventGameOver, SessionID: sessionID, Mark: result.Winner, Result: &result, Message: result.Message()}
}

// GameReset tells collaborators to clear the board, highlights and animations.
// Mark is the player to move first, HumanMark the mark the primary player goes by.
func GameReset(sessionID string, starting, human Mark) Event {
	return Event{Type: EventGameReset, SessionID: sessionID, Mark: starting, HumanMark: human}
}
