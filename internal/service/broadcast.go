package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const defaultSubscriberBuffer = 16

type subscriber struct {
	ch        chan entity.Event
	done      chan struct{}
	closeOnce sync.Once
}

func (that *subscriber) close() {
	that.closeOnce.Do(func() {
		close(that.ch)
		close(that.done)
	})
}

// Broadcaster fans session events out to subscribers, keyed by session id.
// A subscriber that cannot keep up is dropped and its channel closed.
type Broadcaster struct {
	mu     sync.Mutex
	logger *slog.Logger
	subs   map[string]map[*subscriber]struct{}
	buffer int
}

func NewBroadcaster(logger *slog.Logger, buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}

	return &Broadcaster{
		logger: logger.With("component", "broadcaster"),
		subs:   make(map[string]map[*subscriber]struct{}),
		buffer: buffer,
	}
}

// Notify never blocks on a subscriber.
func (that *Broadcaster) Notify(_ context.Context, event entity.Event) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	for sub := range that.subs[event.SessionID] {
		select {
		case sub.ch <- event:
		default:
			that.logger.Warn("dropping slow subscriber", "sessionID", event.SessionID, "event", event.Type)
			sub.close()
			delete(that.subs[event.SessionID], sub)
		}
	}

	return nil
}

// Subscribe registers for the events of one session until ctx ends or the returned func is called.
func (that *Broadcaster) Subscribe(ctx context.Context, sessionID string) (<-chan entity.Event, func()) {
	sub := &subscriber{ch: make(chan entity.Event, that.buffer), done: make(chan struct{})}

	that.mu.Lock()
	set := that.subs[sessionID]
	if set == nil {
		set = make(map[*subscriber]struct{})
		that.subs[sessionID] = set
	}
	set[sub] = struct{}{}
	that.mu.Unlock()

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			that.mu.Lock()
			if set, ok := that.subs[sessionID]; ok {
				delete(set, sub)
				if len(set) == 0 {
					delete(that.subs, sessionID)
				}
			}
			that.mu.Unlock()
			sub.close()
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			unsub()
		case <-sub.done:
		}
	}()

	return sub.ch, unsub
}

// CloseSession drops every subscriber of a session.
func (that *Broadcaster) CloseSession(sessionID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for sub := range that.subs[sessionID] {
		sub.close()
	}
	delete(that.subs, sessionID)
}

func (that *Broadcaster) Subscribers(sessionID string) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.subs[sessionID])
}
