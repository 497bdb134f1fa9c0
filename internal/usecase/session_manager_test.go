package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a session with a generated id", func(t *testing.T) {
		// Given: an empty manager
		manager := NewSessionManager(discardLogger(), nil)

		// When: a 12-cell session is created
		session, err := manager.Create(ctx, 12)

		// Then: it has a uuid and a 3x4 grid
		require.NoError(t, err)
		_, err = uuid.Parse(session.ID())
		require.NoError(t, err)
		assert.Equal(t, entity.GridShape{Rows: 3, Cols: 4, Cells: 12}, session.Shape())

		found, err := manager.Get(session.ID())
		require.NoError(t, err)
		assert.Same(t, session, found)
	})

	t.Run("Rejects an empty board", func(t *testing.T) {
		// Given: an empty manager
		manager := NewSessionManager(discardLogger(), nil)

		// When: a session with zero cells is requested
		session, err := manager.Create(ctx, 0)

		// Then: ErrInvalidGridSize is returned
		require.ErrorIs(t, err, apperror.ErrInvalidGridSize)
		assert.Nil(t, session)
		assert.Empty(t, manager.List())
	})

	t.Run("Rejects a board above the cell limit", func(t *testing.T) {
		manager := NewSessionManager(discardLogger(), nil)

		// When: an oversized board is requested
		session, err := manager.Create(ctx, 1<<40)

		// Then: it is refused before anything is allocated
		require.ErrorIs(t, err, apperror.ErrInvalidGridSize)
		assert.Nil(t, session)
		assert.Empty(t, manager.List())
	})

	t.Run("Sessions share the notifier", func(t *testing.T) {
		// Given: a manager with a recording notifier
		recorder := &recordingNotifier{}
		manager := NewSessionManager(discardLogger(), recorder)
		session, err := manager.Create(ctx, 9)
		require.NoError(t, err)

		// When: a move is played
		_, err = session.SelectCell(ctx, 0)
		require.NoError(t, err)

		// Then: the events carry the session id
		events := recorder.Events()
		require.NotEmpty(t, events)
		assert.Equal(t, session.ID(), events[0].SessionID)
	})
}

func TestSessionManager_GetAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown id", func(t *testing.T) {
		manager := NewSessionManager(discardLogger(), nil)

		_, err := manager.Get("missing")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		err = manager.Delete("missing")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Deleted sessions are gone", func(t *testing.T) {
		// Given: a created session
		manager := NewSessionManager(discardLogger(), nil)
		session, err := manager.Create(ctx, 9)
		require.NoError(t, err)

		// When: it is deleted
		require.NoError(t, manager.Delete(session.ID()))

		// Then: it can no longer be found
		_, err = manager.Get(session.ID())
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Delete hooks run with the session id", func(t *testing.T) {
		manager := NewSessionManager(discardLogger(), nil)
		session, err := manager.Create(ctx, 9)
		require.NoError(t, err)

		var deleted []string
		manager.OnDelete(func(id string) { deleted = append(deleted, id) })

		require.NoError(t, manager.Delete(session.ID()))
		require.Error(t, manager.Delete(session.ID()))

		assert.Equal(t, []string{session.ID()}, deleted)
	})
}

func TestSessionManager_List(t *testing.T) {
	ctx := context.Background()

	// Given: three sessions
	manager := NewSessionManager(discardLogger(), nil)
	for i := 0; i < 3; i++ {
		_, err := manager.Create(ctx, 9)
		require.NoError(t, err)
	}

	// When: listing them
	snapshots := manager.List()

	// Then: all are returned in id order
	require.Len(t, snapshots, 3)
	assert.Less(t, snapshots[0].ID, snapshots[1].ID)
	assert.Less(t, snapshots[1].ID, snapshots[2].ID)
}
