package server

import (
	"testing"
	"time"

	"github.com/fourline-io/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateRoom(t *testing.T) {
	reg := NewRegistry(nil)

	a := reg.CreateRoom()
	b := reg.CreateRoom()

	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotEqual(t, a.RoomID, b.RoomID)

	got, exists := reg.Get(a.RoomID)
	require.True(t, exists)
	assert.Same(t, a, got)
}

func TestRegistry_GetOrCreate(t *testing.T) {
	reg := NewRegistry(nil)

	// lazy creation on first reference
	room := reg.GetOrCreate("friends-room")
	require.NotNil(t, room)
	assert.Equal(t, models.StatusWaiting, room.Game.Status)

	// idempotent: the same id returns the same room
	again := reg.GetOrCreate("friends-room")
	assert.Same(t, room, again)
}

func TestRegistry_Remove(t *testing.T) {
	reg := NewRegistry(nil)
	room := reg.CreateRoom()
	reg.Bind("conn-1", room.RoomID)

	reg.Remove(room.RoomID)

	_, exists := reg.Get(room.RoomID)
	assert.False(t, exists)

	// removing a room drops its connection bindings too
	_, exists = reg.ResolveByConn("conn-1")
	assert.False(t, exists)

	// removing a non-existent id is a no-op
	reg.Remove("nope")
}

func TestRegistry_ResolveByConn(t *testing.T) {
	reg := NewRegistry(nil)
	room := reg.CreateRoom()

	_, exists := reg.ResolveByConn("conn-1")
	assert.False(t, exists)

	reg.Bind("conn-1", room.RoomID)

	got, exists := reg.ResolveByConn("conn-1")
	require.True(t, exists)
	assert.Same(t, room, got)

	reg.Unbind("conn-1")
	_, exists = reg.ResolveByConn("conn-1")
	assert.False(t, exists)
}

func TestRegistry_ListRooms(t *testing.T) {
	reg := NewRegistry(nil)
	conn := newFakeConn()

	empty := reg.CreateRoom()
	occupied := reg.CreateRoom()
	occupied.Join(participant("x", "Xenia"), conn)

	summaries := reg.ListRooms()

	require.Len(t, summaries, 1)
	assert.Equal(t, occupied.RoomID, summaries[0].RoomID)
	assert.Equal(t, []string{"Xenia"}, summaries[0].Players)
	assert.NotEqual(t, empty.RoomID, summaries[0].RoomID)
}

func TestRegistry_SweepFinished(t *testing.T) {
	reg := NewRegistry(nil)
	conn := newFakeConn()

	active := reg.CreateRoom()
	active.Join(participant("a", "Ann"), conn)

	stale := reg.CreateRoom()
	stale.Join(participant("x", "Xenia"), conn)
	stale.Join(participant("y", "Yuri"), conn)
	stale.Game.Abandon(models.Player1)
	stale.FinishedAt = time.Now().Add(-2 * time.Hour)

	closed := reg.SweepFinished(time.Hour, conn)
	assert.Equal(t, 1, closed)

	_, exists := reg.Get(stale.RoomID)
	assert.False(t, exists)
	_, exists = reg.Get(active.RoomID)
	assert.True(t, exists)

	// lingering participants were told the room closed
	var notified bool
	for _, msg := range conn.sent("x") {
		if _, ok := msg.(models.RoomClosed); ok {
			notified = true
		}
	}
	assert.True(t, notified)
}
