package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/stretchr/testify/mock"
)

type mockNotifier struct {
	mock.Mock
}

func (that *mockNotifier) Notify(ctx context.Context, event entity.Event) error {
	args := that.Called(ctx, event)
	return args.Error(0)
}

// recordingNotifier keeps every event it receives in order.
type recordingNotifier struct {
	mu     sync.Mutex
	events []entity.Event
}

func (that *recordingNotifier) Notify(_ context.Context, event entity.Event) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.events = append(that.events, event)
	return nil
}

func (that *recordingNotifier) Events() []entity.Event {
	that.mu.Lock()
	defer that.mu.Unlock()

	return append([]entity.Event(nil), that.events...)
}

func (that *recordingNotifier) Clear() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.events = nil
}

func (that *recordingNotifier) Types() []string {
	types := make([]string, 0)
	for _, event := range that.Events() {
		types = append(types, event.Type)
	}
	return types
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
