package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type notifier interface {
	Notify(ctx context.Context, event entity.Event) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, entity.Event) error { return nil }

// Session is one hotseat table: two players sharing a device, playing game after game
// on the same grid. All methods are safe for concurrent use; each command runs to
// completion, notifications included, before the next one starts.
type Session struct {
	mu     sync.Mutex
	logger *slog.Logger

	id       string
	shape    entity.GridShape
	patterns []entity.Pattern
	engine   *tictactoe.Engine

	humanMark      entity.Mark
	startingPlayer entity.Mark

	notifier notifier
}

func NewSession(logger *slog.Logger, id string, shape entity.GridShape, notifier notifier) *Session {
	if notifier == nil {
		notifier = nopNotifier{}
	}

	session := &Session{
		logger:         logger.With("component", "session", "sessionID", id),
		id:             id,
		shape:          shape,
		patterns:       tictactoe.PatternsForShape(shape),
		humanMark:      entity.X,
		startingPlayer: entity.X,
		notifier:       notifier,
	}
	session.engine = tictactoe.NewEngine(shape.Cells, session.patterns, session.startingPlayer)

	return session
}

func (that *Session) ID() string {
	return that.id
}

func (that *Session) Shape() entity.GridShape {
	return that.shape
}

// SelectCell plays the current turn's mark at index.
// Rejected moves return an error and change nothing; no events are sent for them.
func (that *Session) SelectCell(ctx context.Context, index int) (entity.MatchResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "SelectCell", "cell", index)

	mark := that.engine.Turn()

	result, err := that.engine.ApplyMove(index)
	if err != nil {
		log.Debug("move rejected", "error", err)
		return result, fmt.Errorf("failed to select cell: %w", err)
	}

	log.Debug("move accepted", "mark", mark)
	that.notify(ctx, entity.CellUpdated(that.id, index, mark))

	if result.IsOver() {
		log.Info("game over", "outcome", result.Outcome, "winner", result.Winner, "pattern", result.Pattern)
		that.notify(ctx, entity.GameOver(that.id, result))
		return result, nil
	}

	that.notify(ctx, entity.TurnChanged(that.id, that.engine.Turn()))

	return result, nil
}

// Reset starts a fresh game with the current starting player.
func (that *Session) Reset(ctx context.Context) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.reset(ctx)
}

// Restart is a reset that keeps the starting player of the game just played.
func (that *Session) Restart(ctx context.Context) {
	that.Reset(ctx)
}

// Replay hands the first move to the other player and starts a fresh game.
func (that *Session) Replay(ctx context.Context) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.startingPlayer = that.startingPlayer.Opponent()
	that.reset(ctx)
}

// ChooseMark sets which mark the primary player goes by. Choosing a mark also makes it move first.
func (that *Session) ChooseMark(ctx context.Context, mark entity.Mark) error {
	if !mark.IsPlayer() {
		return fmt.Errorf("failed to choose mark: %w: %q", apperror.ErrInvalidMark, mark)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.humanMark = mark
	that.startingPlayer = mark
	that.reset(ctx)

	return nil
}

func (that *Session) reset(ctx context.Context) {
	that.engine = tictactoe.NewEngine(that.shape.Cells, that.patterns, that.startingPlayer)

	that.logger.Debug("game reset", "startingPlayer", that.startingPlayer, "humanMark", that.humanMark)
	that.notify(ctx, entity.GameReset(that.id, that.startingPlayer, that.humanMark))
}

func (that *Session) notify(ctx context.Context, event entity.Event) {
	if err := that.notifier.Notify(ctx, event); err != nil {
		that.logger.Error("failed to deliver event", "event", event.Type, "error", err)
	}
}

// Snapshot returns a copy of the whole session state.
func (that *Session) Snapshot() entity.Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	return entity.Session{
		ID:             that.id,
		Rows:           that.shape.Rows,
		Cols:           that.shape.Cols,
		Board:          that.engine.Cells(),
		Turn:           that.engine.Turn(),
		State:          that.engine.State(),
		Over:           that.engine.IsOver(),
		HumanMark:      that.humanMark,
		StartingPlayer: that.startingPlayer,
		Result:         that.engine.Evaluate(),
	}
}

func (that *Session) Board() []entity.Mark {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.engine.Cells()
}

func (that *Session) Turn() entity.Mark {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.engine.Turn()
}

func (that *Session) IsOver() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.engine.IsOver()
}

func (that *Session) HumanMark() entity.Mark {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.humanMark
}

func (that *Session) StartingPlayer() entity.Mark {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.startingPlayer
}

func (that *Session) Result() entity.MatchResult {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.engine.Evaluate()
}

// TurnLabel is the status line shown above the board.
func (that *Session) TurnLabel() string {
	snapshot := that.Snapshot()
	return snapshot.TurnLabel()
}

func (that *Session) StatusLabel() string {
	snapshot := that.Snapshot()
	return snapshot.StatusLabel()
}
