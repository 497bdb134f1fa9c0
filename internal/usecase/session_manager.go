package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// SessionManager keeps the live sessions of this process. Nothing outlives the process.
type SessionManager struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	sessions map[string]*Session
	notifier notifier

	onDelete []func(id string)
}

func NewSessionManager(logger *slog.Logger, notifier notifier) *SessionManager {
	return &SessionManager{
		logger:   logger,
		sessions: make(map[string]*Session),
		notifier: notifier,
	}
}

// Create opens a session for a board of the given number of cells.
func (that *SessionManager) Create(ctx context.Context, cells int) (*Session, error) {
	shape, err := entity.ShapeForCellCount(cells)
	if err != nil {
		return nil, fmt.Errorf("could not create session: %w", err)
	}

	id := uuid.NewString()
	session := NewSession(that.logger, id, shape, that.notifier)

	that.mu.Lock()
	that.sessions[id] = session
	that.mu.Unlock()

	that.logger.InfoContext(ctx, "session created", "sessionID", id, "rows", shape.Rows, "cols", shape.Cols)

	return session, nil
}

func (that *SessionManager) Get(id string) (*Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	return session, nil
}

// OnDelete registers fn to run after a session is deleted.
func (that *SessionManager) OnDelete(fn func(id string)) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.onDelete = append(that.onDelete, fn)
}

func (that *SessionManager) Delete(id string) error {
	that.mu.Lock()
	if _, ok := that.sessions[id]; !ok {
		that.mu.Unlock()
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}
	delete(that.sessions, id)
	hooks := slices.Clone(that.onDelete)
	that.mu.Unlock()

	that.logger.Info("session deleted", "sessionID", id)

	for _, fn := range hooks {
		fn(id)
	}

	return nil
}

// List returns snapshots of all sessions ordered by ID.
func (that *SessionManager) List() []entity.Session {
	that.mu.RLock()
	sessions := make([]*Session, 0, len(that.sessions))
	for _, session := range that.sessions {
		sessions = append(sessions, session)
	}
	that.mu.RUnlock()

	snapshots := make([]entity.Session, 0, len(sessions))
	for _, session := range sessions {
		snapshots = append(snapshots, session.Snapshot())
	}

	slices.SortFunc(snapshots, func(a, b entity.Session) int {
		return strings.Compare(a.ID, b.ID)
	})

	return snapshots
}
