package server

import (
	"log"
	"sync"
	"time"

	"github.com/fourline-io/server/game"
	"github.com/fourline-io/server/models"
)

// ConnectionManagerInterface defines the interface for sending messages
type ConnectionManagerInterface interface {
	SendMessage(connID string, message any) error
}

// MatchRecorder persists finished games; nil-able (history is optional).
type MatchRecorder interface {
	RecordMatch(record models.MatchRecord) error
}

// Participant is one connection attached to a room, seated or watching.
type Participant struct {
	ConnID   string
	PlayerID string
	Name     string
}

// Room owns the authoritative state of one game: the grid, the two
// seats, the spectators and the turn. Every inbound action takes the
// room mutex, so actions against the same room never interleave.
type Room struct {
	RoomID     string
	Game       *game.Game
	seats      []*Participant           // join order, at most two
	roles      map[string]models.Player // connID -> seat
	spectators []*Participant
	CreatedAt  time.Time
	FinishedAt time.Time
	recorder   MatchRecorder
	mu         sync.Mutex
}

func NewRoom(roomID string, recorder MatchRecorder) *Room {
	return &Room{
		RoomID:    roomID,
		Game:      game.NewGame(),
		roles:     make(map[string]models.Player),
		CreatedAt: time.Now(),
		recorder:  recorder,
	}
}

// Join seats the participant if a seat is free, otherwise admits them as
// a spectator. Joining never fails: full, running and finished rooms all
// accept spectators. The joiner gets a role and a full state snapshot,
// everyone gets the new occupancy.
func (room *Room) Join(p *Participant, conn ConnectionManagerInterface) {
	room.mu.Lock()
	defer room.mu.Unlock()

	role := models.Empty
	if len(room.seats) < 2 {
		role = room.freeSeat()
		room.seats = append(room.seats, p)
		room.roles[p.ConnID] = role
	} else {
		room.spectators = append(room.spectators, p)
	}

	roleName := "spectator"
	if role != models.Empty {
		roleName = role.Role()
	}

	conn.SendMessage(p.ConnID, models.RoleAssigned{
		Type:     "role_assigned",
		RoomID:   room.RoomID,
		Role:     roleName,
		PlayerID: p.PlayerID,
	})
	conn.SendMessage(p.ConnID, room.snapshot())

	log.Printf("[ROOM] %s joined room %s as %s", p.Name, room.RoomID, roleName)

	room.broadcast(conn, room.occupancy())

	// second seat taken: the game can start
	if len(room.seats) == 2 && room.Game.Status == models.StatusWaiting {
		room.Game.Start()
		room.broadcast(conn, models.RoomReady{
			Type:   "room_ready",
			RoomID: room.RoomID,
			Turn:   room.Game.CurrentPlayer.Role(),
		})
	}
}

// freeSeat returns the seat role not currently assigned. Seat order
// normally gives player1 then player2, but after a mid-game departure
// the surviving role must not be handed out twice.
func (room *Room) freeSeat() models.Player {
	taken := models.Empty
	for _, role := range room.roles {
		taken = role
	}
	if taken == models.Player1 {
		return models.Player2
	}
	return models.Player1
}

// HandleMove validates and applies one move for the given connection.
// The first failing check is returned as the rejection; rejections are
// reported to the caller only and never mutate the grid.
func (room *Room) HandleMove(connID string, row, col int, conn ConnectionManagerInterface) error {
	room.mu.Lock()
	defer room.mu.Unlock()

	if room.Game.IsFinished() {
		return models.ErrGameOver
	}

	role, seated := room.roles[connID]
	if !seated {
		return models.ErrNotAPlayer
	}

	if err := room.Game.MakeMove(role, row, col); err != nil {
		return err
	}

	room.broadcast(conn, models.BoardUpdated{
		Type:   "board_updated",
		RoomID: room.RoomID,
		Row:    row,
		Col:    col,
		Role:   role.Role(),
	})

	if room.Game.IsFinished() {
		winner := "draw"
		reason := models.ReasonDraw
		if room.Game.Winner != models.Empty {
			winner = room.Game.Winner.Role()
			reason = models.ReasonFourInARow
		}
		room.finishGame(winner, reason, nil, models.Empty, conn)
		return nil
	}

	room.broadcast(conn, models.TurnChanged{
		Type:   "turn_changed",
		RoomID: room.RoomID,
		Turn:   room.Game.CurrentPlayer.Role(),
	})
	return nil
}

// Restart replaces the grid with a fresh one, hands the turn back to
// player1 and clears the finished latch. Seating and roles are kept.
// Spectators may not restart a game they are not playing.
func (room *Room) Restart(connID string, conn ConnectionManagerInterface) error {
	room.mu.Lock()
	defer room.mu.Unlock()

	if _, seated := room.roles[connID]; !seated {
		return models.ErrNotAPlayer
	}

	room.Game.Reset(len(room.seats) == 2)
	room.FinishedAt = time.Time{}

	log.Printf("[ROOM] room %s restarted", room.RoomID)

	room.broadcast(conn, models.RoomReset{
		Type:   "room_reset",
		RoomID: room.RoomID,
		Board:  game.CopyBoard(room.Game.Board),
		Turn:   room.Game.CurrentPlayer.Role(),
	})
	return nil
}

// HandleDisconnect removes the connection from the room. Policy is
// terminal-on-departure: a seated player leaving an unfinished game ends
// it immediately, with the remaining player winning by abandonment. The
// board is kept as a record until a restart. Returns true when no
// connection of any role remains, so the registry can drop the room.
func (room *Room) HandleDisconnect(connID string, conn ConnectionManagerInterface) bool {
	room.mu.Lock()
	defer room.mu.Unlock()

	role, wasSeated := room.roles[connID]

	var left *Participant
	if wasSeated {
		delete(room.roles, connID)
		for i, p := range room.seats {
			if p.ConnID == connID {
				left = p
				room.seats = append(room.seats[:i], room.seats[i+1:]...)
				break
			}
		}
	} else {
		for i, p := range room.spectators {
			if p.ConnID == connID {
				left = p
				room.spectators = append(room.spectators[:i], room.spectators[i+1:]...)
				break
			}
		}
	}

	if left == nil {
		return len(room.seats) == 0 && len(room.spectators) == 0
	}

	log.Printf("[DISCONNECT] %s left room %s", left.Name, room.RoomID)

	roleName := ""
	if wasSeated {
		roleName = role.Role()
	}
	room.broadcast(conn, models.PlayerLeft{
		Type:     "player_left",
		RoomID:   room.RoomID,
		PlayerID: left.PlayerID,
		Role:     roleName,
	})
	room.broadcast(conn, room.occupancy())

	if wasSeated && !room.Game.IsFinished() && room.Game.Status == models.StatusOngoing {
		room.Game.Abandon(role.Opponent())
		room.finishGame(role.Opponent().Role(), models.ReasonAbandonment, left, role, conn)
	}

	return len(room.seats) == 0 && len(room.spectators) == 0
}

// finishGame latches the end of a game, notifies everyone and records
// the match. departed names a seated player already removed from the
// room (the abandonment case). Caller holds the room mutex.
func (room *Room) finishGame(winner, reason string, departed *Participant, departedRole models.Player, conn ConnectionManagerInterface) {
	room.FinishedAt = time.Now()

	room.broadcast(conn, models.GameOver{
		Type:   "game_over",
		RoomID: room.RoomID,
		Winner: winner,
		Reason: reason,
	})

	if room.recorder == nil {
		return
	}

	record := models.MatchRecord{
		RoomID:     room.RoomID,
		Winner:     winner,
		Reason:     reason,
		MoveCount:  room.Game.MoveCount,
		StartedAt:  room.CreatedAt,
		FinishedAt: room.FinishedAt,
	}
	for connID, role := range room.roles {
		if p := room.seatByConn(connID); p != nil {
			if role == models.Player1 {
				record.Player1 = p.Name
			} else {
				record.Player2 = p.Name
			}
		}
	}
	if departed != nil {
		if departedRole == models.Player1 {
			record.Player1 = departed.Name
		} else {
			record.Player2 = departed.Name
		}
	}

	// fire-and-forget; history must never block or fail a game
	go func() {
		if err := room.recorder.RecordMatch(record); err != nil {
			log.Printf("[HISTORY] failed to record match for room %s: %v", record.RoomID, err)
		}
	}()
}

func (room *Room) seatByConn(connID string) *Participant {
	for _, p := range room.seats {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

// broadcast sends a message to every participant, seated or watching.
// Delivery is fire-and-forget, at most once per transition.
func (room *Room) broadcast(conn ConnectionManagerInterface, message any) {
	for _, p := range room.seats {
		if err := conn.SendMessage(p.ConnID, message); err != nil {
			log.Printf("[ROOM] failed to send to %s in room %s: %v", p.Name, room.RoomID, err)
		}
	}
	for _, p := range room.spectators {
		if err := conn.SendMessage(p.ConnID, message); err != nil {
			log.Printf("[ROOM] failed to send to spectator %s in room %s: %v", p.Name, room.RoomID, err)
		}
	}
}

func (room *Room) occupancy() models.Occupancy {
	players := make([]string, 0, len(room.seats))
	for _, p := range room.seats {
		players = append(players, p.Name)
	}
	return models.Occupancy{
		Type:       "occupancy",
		RoomID:     room.RoomID,
		Seated:     len(room.seats),
		Spectators: len(room.spectators),
		Players:    players,
	}
}

func (room *Room) snapshot() models.RoomState {
	state := models.RoomState{
		Type:   "room_state",
		RoomID: room.RoomID,
		Board:  game.CopyBoard(room.Game.Board),
		Turn:   room.Game.CurrentPlayer.Role(),
		Status: room.Game.Status,
	}
	if room.Game.Winner != models.Empty {
		state.Winner = room.Game.Winner.Role()
	}
	return state
}

// Snapshot returns a copy of the current state, for unicast on join.
func (room *Room) Snapshot() models.RoomState {
	room.mu.Lock()
	defer room.mu.Unlock()
	return room.snapshot()
}

// ParticipantCount reports how many connections are attached.
func (room *Room) ParticipantCount() int {
	room.mu.Lock()
	defer room.mu.Unlock()
	return len(room.seats) + len(room.spectators)
}

// SeatRole reports the seat held by a connection, if any.
func (room *Room) SeatRole(connID string) (models.Player, bool) {
	room.mu.Lock()
	defer room.mu.Unlock()
	role, ok := room.roles[connID]
	return role, ok
}

// finishedIdleSince reports whether the room finished before the cutoff,
// for the janitor sweep. Caller must not hold the room mutex.
func (room *Room) finishedIdleSince(cutoff time.Time) bool {
	room.mu.Lock()
	defer room.mu.Unlock()
	return room.Game.IsFinished() && !room.FinishedAt.IsZero() && room.FinishedAt.Before(cutoff)
}

// participantConnIDs returns every attached connection id.
func (room *Room) participantConnIDs() []string {
	room.mu.Lock()
	defer room.mu.Unlock()

	ids := make([]string, 0, len(room.seats)+len(room.spectators))
	for _, p := range room.seats {
		ids = append(ids, p.ConnID)
	}
	for _, p := range room.spectators {
		ids = append(ids, p.ConnID)
	}
	return ids
}
