package websocket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-hotseat/pkg/handlers"
	"nhooyr.io/websocket"
)

const writeTimeout = 5 * time.Second

type sessionLookup interface {
	Get(id string) (*usecase.Session, error)
}

type eventSource interface {
	Subscribe(ctx context.Context, sessionID string) (<-chan entity.Event, func())
}

type commandHandler func(ctx context.Context, session *usecase.Session, payload RequestPayload) error

// Server streams the events of a session to websocket clients and accepts the
// same commands as the REST API.
type Server struct {
	logger   *slog.Logger
	sessions sessionLookup
	events   eventSource

	handlers map[string]commandHandler
}

func New(logger *slog.Logger, sessions sessionLookup, events eventSource) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		events:   events,

		handlers: make(map[string]commandHandler),
	}

	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameReset] = server.handleGameReset
	server.handlers[actionGameRestart] = server.handleGameRestart
	server.handlers[actionGameReplay] = server.handleGameReplay
	server.handlers[actionGameMark] = server.handleGameMark

	return server
}

// Routes mounts the event stream under a router already scoped to /sessions/{id}.
func (that *Server) Routes(r chi.Router) {
	r.Get("/events", that.ServeEvents)
}

func (that *Server) ServeEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	log := that.logger.With("method", "ServeEvents", "sessionID", sessionID)

	session, err := that.sessions.Get(sessionID)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		handlers.WriteError(w, http.StatusNotFound, apperror.ErrSessionNotFound.Error())
		return
	}
	if err != nil {
		log.Error("failed to get session", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // allow any origin
	})
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// subscribe before the snapshot so no event between the two is lost
	events, unsubscribe := that.events.Subscribe(ctx, sessionID)
	defer unsubscribe()

	snapshot := session.Snapshot()
	if err = that.send(ctx, conn, actionSessionState, ResponsePayload{Session: &snapshot}); err != nil {
		log.Debug("client went away", "error", err)
		return
	}

	go func() {
		defer cancel()
		that.readCommands(ctx, conn, session)
	}()

	log.Info("client connected")

	for {
		select {
		case <-ctx.Done():
			log.Info("client disconnected")
			return
		case event, ok := <-events:
			if !ok {
				log.Info("event stream closed")
				conn.Close(websocket.StatusGoingAway, "session closed")
				return
			}

			if err = that.send(ctx, conn, event.Type, ResponsePayload{Event: &event}); err != nil {
				log.Debug("failed to send event", "error", err)
				return
			}
		}
	}
}

func (that *Server) readCommands(ctx context.Context, conn *websocket.Conn, session *usecase.Session) {
	log := that.logger.With("method", "readCommands", "sessionID", session.ID())

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}

		if err = that.handleMessage(ctx, session, data); err != nil {
			log.Debug("command rejected", "error", err)

			if err = that.send(ctx, conn, actionError, ResponsePayload{Error: err.Error()}); err != nil {
				return
			}
		}
	}
}

func (that *Server) send(ctx context.Context, conn *websocket.Conn, action string, payload ResponsePayload) error {
	message, err := newMessage(action, payload)
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return conn.Write(writeCtx, websocket.MessageText, message)
}
