package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom_HostIsSeated(t *testing.T) {
	room := NewRoom("Friday Game", RoomPublic, "", "host1", 10, 5)

	assert.Equal(t, StatusWaiting, room.Status)
	assert.Equal(t, "host1", room.HostID)
	require.Len(t, room.Players, 1)
	assert.Equal(t, "host1", room.Players[0].UserID)
	assert.True(t, room.Players[0].IsReady)
}

func TestAddPlayer(t *testing.T) {
	t.Run("seats new players up to capacity", func(t *testing.T) {
		room := NewRoom("r", RoomPublic, "", "host1", 3, 5)

		require.NoError(t, room.AddPlayer("p2"))
		require.NoError(t, room.AddPlayer("p3"))
		assert.True(t, room.IsFull())
		assert.ErrorIs(t, room.AddPlayer("p4"), ErrRoomFull)
	})

	t.Run("rejects a duplicate seat", func(t *testing.T) {
		room := NewRoom("r", RoomPublic, "", "host1", 5, 5)
		require.NoError(t, room.AddPlayer("p2"))
		assert.ErrorIs(t, room.AddPlayer("p2"), ErrAlreadyInRoom)
		assert.ErrorIs(t, room.AddPlayer("host1"), ErrAlreadyInRoom)
	})
}

func TestRemovePlayer(t *testing.T) {
	t.Run("host leaving promotes the longest seated player", func(t *testing.T) {
		room := NewRoom("r", RoomPublic, "", "host1", 5, 5)
		require.NoError(t, room.AddPlayer("p2"))
		require.NoError(t, room.AddPlayer("p3"))

		hostChanged, empty, err := room.RemovePlayer("host1")
		require.NoError(t, err)
		assert.True(t, hostChanged)
		assert.False(t, empty)
		assert.Equal(t, "p2", room.HostID)
	})

	t.Run("non-host leaving keeps the host", func(t *testing.T) {
		room := NewRoom("r", RoomPublic, "", "host1", 5, 5)
		require.NoError(t, room.AddPlayer("p2"))

		hostChanged, empty, err := room.RemovePlayer("p2")
		require.NoError(t, err)
		assert.False(t, hostChanged)
		assert.False(t, empty)
		assert.Equal(t, "host1", room.HostID)
	})

	t.Run("last player leaving empties the room", func(t *testing.T) {
		room := NewRoom("r", RoomPublic, "", "host1", 5, 5)

		hostChanged, empty, err := room.RemovePlayer("host1")
		require.NoError(t, err)
		assert.False(t, hostChanged)
		assert.True(t, empty)
	})

	t.Run("unknown player is rejected", func(t *testing.T) {
		room := NewRoom("r", RoomPublic, "", "host1", 5, 5)
		_, _, err := room.RemovePlayer("stranger")
		assert.ErrorIs(t, err, ErrNotInRoom)
	})
}

func TestWinners(t *testing.T) {
	t.Run("single leader wins", func(t *testing.T) {
		room := NewRoom("r", RoomPublic, "", "host1", 5, 5)
		require.NoError(t, room.AddPlayer("p2"))
		room.Players[0].Points = 30
		room.Players[1].Points = 12

		winners := room.Winners()
		require.Len(t, winners, 1)
		assert.Equal(t, "host1", winners[0].UserID)
	})

	t.Run("ties are all reported", func(t *testing.T) {
		room := NewRoom("r", RoomPublic, "", "host1", 5, 5)
		require.NoError(t, room.AddPlayer("p2"))
		require.NoError(t, room.AddPlayer("p3"))
		room.Players[0].Points = 20
		room.Players[1].Points = 20
		room.Players[2].Points = 5

		winners := room.Winners()
		require.Len(t, winners, 2)
	})
}
