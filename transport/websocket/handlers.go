package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

var ErrMissingCell = errors.New("cell is required")

func (that *Server) handleGameTurn(ctx context.Context, session *usecase.Session, payload RequestPayload) error {
	if payload.Cell == nil {
		return ErrMissingCell
	}

	if _, err := session.SelectCell(ctx, *payload.Cell); err != nil {
		return fmt.Errorf("turn rejected: %w", err)
	}

	return nil
}

func (that *Server) handleGameReset(ctx context.Context, session *usecase.Session, _ RequestPayload) error {
	session.Reset(ctx)
	return nil
}

func (that *Server) handleGameRestart(ctx context.Context, session *usecase.Session, _ RequestPayload) error {
	session.Restart(ctx)
	return nil
}

func (that *Server) handleGameReplay(ctx context.Context, session *usecase.Session, _ RequestPayload) error {
	session.Replay(ctx)
	return nil
}

func (that *Server) handleGameMark(ctx context.Context, session *usecase.Session, payload RequestPayload) error {
	mark, err := entity.ParseMark(payload.Mark)
	if err != nil {
		return fmt.Errorf("mark rejected: %w", err)
	}

	if err = session.ChooseMark(ctx, mark); err != nil {
		return fmt.Errorf("mark rejected: %w", err)
	}

	return nil
}

// handleMessage runs one client command against the session. The resulting state
// reaches the client through the session's event stream.
func (that *Server) handleMessage(ctx context.Context, session *usecase.Session, data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	handler, ok := that.handlers[msg.Action]
	if !ok {
		return fmt.Errorf("unknown action %q", msg.Action)
	}

	var payload RequestPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("invalid payload: %w", err)
		}
	}

	return handler(ctx, session, payload)
}
