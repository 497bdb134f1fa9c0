package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	actionSessionState = "session:state"
	actionError        = "error"

	actionGameTurn    = "game:turn"
	actionGameReset   = "game:reset"
	actionGameRestart = "game:restart"
	actionGameReplay  = "game:replay"
	actionGameMark    = "game:mark"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Cell *int   `json:"cell,omitempty"`
	Mark string `json:"mark,omitempty"`
}

type ResponsePayload struct {
	Session *entity.Session `json:"session,omitempty"`
	Event   *entity.Event   `json:"event,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func newMessage(action string, payload ResponsePayload) ([]byte, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	messageJSON, err := json.Marshal(Message{Action: action, Payload: payloadJSON})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return messageJSON, nil
}
