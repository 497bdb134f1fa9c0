package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const DefaultChannelPrefix = "tictactoe:events"

var ErrSubscriptionClosed = errors.New("event subscription closed")

// EventPublisher pushes session events to Redis Pub/Sub so that out-of-process
// renderers can follow a session. One channel per session: "<prefix>:<sessionID>".
type EventPublisher interface {
	Notify(ctx context.Context, event entity.Event) error
	Subscribe(ctx context.Context, sessionID string) (*EventSubscription, error)
}

type redisEvents struct {
	client *redis.Client
	prefix string
}

func NewEventPublisher(client *redis.Client, prefix string) EventPublisher {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}

	return &redisEvents{
		client: client,
		prefix: prefix,
	}
}

func (that *redisEvents) channel(sessionID string) string {
	return that.prefix + ":" + sessionID
}

func (that *redisEvents) Notify(ctx context.Context, event entity.Event) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel(event.SessionID), eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (that *redisEvents) Subscribe(ctx context.Context, sessionID string) (*EventSubscription, error) {
	pubsub := that.client.Subscribe(ctx, that.channel(sessionID))

	// wait for the subscription to be confirmed so no event published afterwards is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to events: %w", err)
	}

	return &EventSubscription{pubsub: pubsub}, nil
}

// EventSubscription reads the events of one session.
type EventSubscription struct {
	pubsub *redis.PubSub
}

func (that *EventSubscription) Next(ctx context.Context) (entity.Event, error) {
	msg, err := that.pubsub.ReceiveMessage(ctx)
	if errors.Is(err, redis.ErrClosed) {
		return entity.Event{}, ErrSubscriptionClosed
	}

	if err != nil {
		return entity.Event{}, fmt.Errorf("failed to receive event: %w", err)
	}

	var event entity.Event
	if err = json.Unmarshal([]byte(msg.Payload), &event); err != nil {
		return entity.Event{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return event, nil
}

func (that *EventSubscription) Close() error {
	if err := that.pubsub.Close(); err != nil {
		return fmt.Errorf("failed to close subscription: %w", err)
	}
	return nil
}
