package repository

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-hotseat/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPublisher_Notify(t *testing.T) {
	t.Run("Subscriber receives published events in order", func(t *testing.T) {
		ctx, st := suite.New(t)

		publisher := NewEventPublisher(st.Storage, "test:events")

		// Given: a subscription on session s1
		subscription, err := publisher.Subscribe(ctx, "s1")
		require.NoError(t, err)
		defer subscription.Close()

		// When: a move and its turn change are published
		cellUpdated := entity.CellUpdated("s1", 4, entity.X)
		turnChanged := entity.TurnChanged("s1", entity.O)
		require.NoError(t, publisher.Notify(ctx, cellUpdated))
		require.NoError(t, publisher.Notify(ctx, turnChanged))

		// Then: both arrive intact and in order
		first, err := subscription.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, cellUpdated, first)

		second, err := subscription.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, turnChanged, second)
	})

	t.Run("Game over carries the result", func(t *testing.T) {
		ctx, st := suite.New(t)

		publisher := NewEventPublisher(st.Storage, "")

		// Given: a subscription on session s2
		subscription, err := publisher.Subscribe(ctx, "s2")
		require.NoError(t, err)
		defer subscription.Close()

		// When: a win is published
		gameOver := entity.GameOver("s2", entity.WinResult(entity.O, entity.Pattern{2, 4, 6}))
		require.NoError(t, publisher.Notify(ctx, gameOver))

		// Then: message and pattern survive the round trip
		received, err := subscription.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Player O wins", received.Message)
		require.NotNil(t, received.Result)
		assert.Equal(t, entity.Pattern{2, 4, 6}, received.Result.Pattern)
	})

	t.Run("Events of other sessions are not received", func(t *testing.T) {
		ctx, st := suite.New(t)

		publisher := NewEventPublisher(st.Storage, "")

		subscription, err := publisher.Subscribe(ctx, "mine")
		require.NoError(t, err)
		defer subscription.Close()

		require.NoError(t, publisher.Notify(ctx, entity.GameReset("other", entity.X, entity.X)))
		require.NoError(t, publisher.Notify(ctx, entity.GameReset("mine", entity.O, entity.X)))

		received, err := subscription.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, "mine", received.SessionID)
		assert.Equal(t, entity.O, received.Mark)
	})

	t.Run("Next after Close", func(t *testing.T) {
		ctx, st := suite.New(t)

		publisher := NewEventPublisher(st.Storage, "")
		subscription, err := publisher.Subscribe(ctx, "s3")
		require.NoError(t, err)

		require.NoError(t, subscription.Close())

		_, err = subscription.Next(ctx)
		require.ErrorIs(t, err, ErrSubscriptionClosed)
	})
}

func TestNewRedisStorage(t *testing.T) {
	ctx, st := suite.New(t)

	// When: connecting to a running Redis
	redisStorage, err := storage.NewRedisStorage(ctx, st.RedisAddr)

	// Then: the connection is usable and closes cleanly
	require.NoError(t, err)
	require.NoError(t, redisStorage.Connection.Ping(ctx).Err())
	require.NoError(t, redisStorage.Close())
}
