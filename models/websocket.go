package models

import "time"

// ClientMessage is the envelope for every inbound WebSocket message.
// Each type uses a fixed subset of the fields; the handler validates
// that subset before anything reaches a room.
type ClientMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId,omitempty"`
	Row    *int   `json:"row,omitempty"`
	Col    *int   `json:"col,omitempty"`
}

// inbound message types
const (
	MsgCreateRoom = "create_room"
	MsgJoinRoom   = "join_room"
	MsgMove       = "move"
	MsgRestart    = "restart"
)

// Outbound events, one struct per tag so every payload has a fixed schema.

type RoleAssigned struct {
	Type     string `json:"type"` // "role_assigned"
	RoomID   string `json:"roomId"`
	Role     string `json:"role"` // "player1", "player2" or "spectator"
	PlayerID string `json:"playerId"`
}

type Occupancy struct {
	Type       string   `json:"type"` // "occupancy"
	RoomID     string   `json:"roomId"`
	Seated     int      `json:"seated"`
	Spectators int      `json:"spectators"`
	Players    []string `json:"players"`
}

type RoomState struct {
	Type   string     `json:"type"` // "room_state"
	RoomID string     `json:"roomId"`
	Board  [][]Player `json:"board"`
	Turn   string     `json:"turn"`
	Status GameStatus `json:"status"`
	Winner string     `json:"winner,omitempty"`
}

type RoomReady struct {
	Type   string `json:"type"` // "room_ready"
	RoomID string `json:"roomId"`
	Turn   string `json:"turn"`
}

type BoardUpdated struct {
	Type   string `json:"type"` // "board_updated"
	RoomID string `json:"roomId"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Role   string `json:"role"`
}

type TurnChanged struct {
	Type   string `json:"type"` // "turn_changed"
	RoomID string `json:"roomId"`
	Turn   string `json:"turn"`
}

type GameOver struct {
	Type   string `json:"type"` // "game_over"
	RoomID string `json:"roomId"`
	Winner string `json:"winner"` // role name, or "draw"
	Reason string `json:"reason"`
}

type MoveRejected struct {
	Type    string `json:"type"` // "move_rejected"
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type RoomReset struct {
	Type   string     `json:"type"` // "room_reset"
	RoomID string     `json:"roomId"`
	Board  [][]Player `json:"board"`
	Turn   string     `json:"turn"`
}

type PlayerLeft struct {
	Type     string `json:"type"` // "player_left"
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Role     string `json:"role,omitempty"`
}

type RoomClosed struct {
	Type   string `json:"type"` // "room_closed"
	RoomID string `json:"roomId"`
	Reason string `json:"reason"`
}

type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// MatchRecord is the row written to history when a game finishes.
type MatchRecord struct {
	RoomID     string
	Player1    string
	Player2    string
	Winner     string // role name, "draw" or ""
	Reason     string
	MoveCount  int
	StartedAt  time.Time
	FinishedAt time.Time
}
