package server

import (
	"log"
	"sync"
	"time"

	"github.com/fourline-io/server/models"
	"github.com/fourline-io/server/pkg/uid"
)

// Registry is the process-wide map of room id to room, plus the
// connection -> room index used when an action omits an explicit room
// id. It is constructed once at startup and handed to every component;
// there is no package-level instance.
type Registry struct {
	rooms      map[string]*Room
	connToRoom map[string]string
	recorder   MatchRecorder
	mu         sync.Mutex
}

func NewRegistry(recorder MatchRecorder) *Registry {
	return &Registry{
		rooms:      make(map[string]*Room),
		connToRoom: make(map[string]string),
		recorder:   recorder,
	}
}

// CreateRoom makes a fresh empty room under a new random id.
func (reg *Registry) CreateRoom() *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	roomID := uid.GenerateRoomID()
	room := NewRoom(roomID, reg.recorder)
	reg.rooms[roomID] = room

	log.Printf("[REGISTRY] created room %s", roomID)
	return room
}

// GetOrCreate returns the room for an id, creating it lazily on first
// reference. Idempotent, never fails.
func (reg *Registry) GetOrCreate(roomID string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if room, exists := reg.rooms[roomID]; exists {
		return room
	}

	room := NewRoom(roomID, reg.recorder)
	reg.rooms[roomID] = room

	log.Printf("[REGISTRY] created room %s on first reference", roomID)
	return room
}

func (reg *Registry) Get(roomID string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, exists := reg.rooms[roomID]
	return room, exists
}

// Remove deletes a room; a no-op for an unknown id.
func (reg *Registry) Remove(roomID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.rooms[roomID]; !exists {
		return
	}

	delete(reg.rooms, roomID)
	for connID, id := range reg.connToRoom {
		if id == roomID {
			delete(reg.connToRoom, connID)
		}
	}

	log.Printf("[REGISTRY] removed room %s", roomID)
}

// Bind associates a connection with the one room it participates in.
func (reg *Registry) Bind(connID, roomID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.connToRoom[connID] = roomID
}

func (reg *Registry) Unbind(connID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.connToRoom, connID)
}

// ResolveByConn returns the room a connection is currently attached to.
func (reg *Registry) ResolveByConn(connID string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	roomID, exists := reg.connToRoom[connID]
	if !exists {
		return nil, false
	}

	room, exists := reg.rooms[roomID]
	return room, exists
}

// RoomSummary is the listing row returned by the live-rooms endpoint.
type RoomSummary struct {
	RoomID     string            `json:"roomId"`
	Status     models.GameStatus `json:"status"`
	Players    []string          `json:"players"`
	Spectators int               `json:"spectators"`
}

// ListRooms returns a summary of every occupied room, for spectators
// looking for a game to watch.
func (reg *Registry) ListRooms() []RoomSummary {
	reg.mu.Lock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.Unlock()

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		room.mu.Lock()
		occ := room.occupancy()
		status := room.Game.Status
		room.mu.Unlock()

		if occ.Seated == 0 && occ.Spectators == 0 {
			continue
		}
		summaries = append(summaries, RoomSummary{
			RoomID:     room.RoomID,
			Status:     status,
			Players:    occ.Players,
			Spectators: occ.Spectators,
		})
	}
	return summaries
}

// SweepFinished closes rooms that finished before the cutoff and still
// have participants lingering in them. Empty rooms are removed eagerly
// on disconnect, so this only catches finished rooms nobody restarted.
func (reg *Registry) SweepFinished(idleFor time.Duration, conn ConnectionManagerInterface) int {
	cutoff := time.Now().Add(-idleFor)

	reg.mu.Lock()
	stale := make([]*Room, 0)
	for _, room := range reg.rooms {
		stale = append(stale, room)
	}
	reg.mu.Unlock()

	closed := 0
	for _, room := range stale {
		if !room.finishedIdleSince(cutoff) {
			continue
		}

		message := models.RoomClosed{
			Type:   "room_closed",
			RoomID: room.RoomID,
			Reason: "idle_after_finish",
		}
		for _, connID := range room.participantConnIDs() {
			conn.SendMessage(connID, message)
		}

		reg.Remove(room.RoomID)
		closed++
	}
	return closed
}
