package websocket

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fourline-io/server/db"
	"github.com/fourline-io/server/models"
	"github.com/fourline-io/server/server"
	"github.com/fourline-io/server/utils"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// HandleConnection manages a single WebSocket connection: it resolves
// the guest identity from the handshake token, registers the
// connection, then maps inbound messages to registry and room calls
// until the connection drops.
func HandleConnection(conn *websocket.Conn, token string, connManager *ConnectionManager, registry *server.Registry) {
	defer conn.Close()

	connID := uuid.NewString()
	participant := guestFromToken(token, connID)

	if err := connManager.AddConnection(connID, conn); err != nil {
		log.Printf("[WS] failed to register connection: %v", err)
		return
	}

	log.Printf("[WS] %s connected (conn %s)", participant.Name, connID)

	defer func() {
		HandleDisconnect(connID, connManager, registry)
		connManager.RemoveConnection(connID)
		log.Printf("[WS] %s disconnected (conn %s)", participant.Name, connID)
	}()

	for {
		var message models.ClientMessage
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] connection %s closed unexpectedly: %v", connID, err)
			}
			return
		}

		routeMessage(message, participant, connID, connManager, registry)
	}
}

// routeMessage routes one inbound message to the matching handler.
func routeMessage(message models.ClientMessage, p *server.Participant, connID string, connManager *ConnectionManager, registry *server.Registry) {
	switch message.Type {
	case models.MsgCreateRoom:
		HandleCreateRoom(p, connID, connManager, registry)
	case models.MsgJoinRoom:
		HandleJoinRoom(message, p, connID, connManager, registry)
	case models.MsgMove:
		HandleMove(message, connID, connManager, registry)
	case models.MsgRestart:
		HandleRestart(message, connID, connManager, registry)
	default:
		connManager.SendMessage(connID, models.ErrorMessage{
			Type:    "error",
			Reason:  "unknown_message_type",
			Message: fmt.Sprintf("unknown message type %q", message.Type),
		})
	}
}

// HandleCreateRoom creates a fresh room and seats the creator in it.
func HandleCreateRoom(p *server.Participant, connID string, connManager *ConnectionManager, registry *server.Registry) {
	leaveCurrentRoom(connID, connManager, registry)

	room := registry.CreateRoom()
	room.Join(p, connManager)
	registry.Bind(connID, room.RoomID)

	log.Printf("[ROOM] %s created room %s", p.Name, room.RoomID)
}

// HandleJoinRoom attaches the connection to the named room, creating it
// lazily on first reference. Joining never fails; latecomers spectate.
func HandleJoinRoom(message models.ClientMessage, p *server.Participant, connID string, connManager *ConnectionManager, registry *server.Registry) {
	if message.RoomID == "" {
		connManager.SendMessage(connID, models.ErrorMessage{
			Type:    "error",
			Reason:  models.RejectionReason(models.ErrMalformedPayload),
			Message: "roomId is required to join",
		})
		return
	}

	leaveCurrentRoom(connID, connManager, registry)

	room := registry.GetOrCreate(message.RoomID)
	room.Join(p, connManager)
	registry.Bind(connID, room.RoomID)
}

// HandleMove validates the payload, resolves the target room and hands
// the move to it. The row/col fields must both be present: a zero
// coordinate is valid, a missing one is not.
func HandleMove(message models.ClientMessage, connID string, connManager *ConnectionManager, registry *server.Registry) {
	if message.Row == nil || message.Col == nil {
		sendRejection(connID, connManager, models.ErrMalformedPayload)
		return
	}

	room, err := resolveRoom(message.RoomID, connID, registry)
	if err != nil {
		sendRejection(connID, connManager, err)
		return
	}

	if err := room.HandleMove(connID, *message.Row, *message.Col, connManager); err != nil {
		log.Printf("[MOVE] rejected move in room %s: %v", room.RoomID, err)
		sendRejection(connID, connManager, err)
	}
}

// HandleRestart resets the room the connection is seated in.
func HandleRestart(message models.ClientMessage, connID string, connManager *ConnectionManager, registry *server.Registry) {
	room, err := resolveRoom(message.RoomID, connID, registry)
	if err != nil {
		sendRejection(connID, connManager, err)
		return
	}

	if err := room.Restart(connID, connManager); err != nil {
		sendRejection(connID, connManager, err)
	}
}

// HandleDisconnect runs disconnect reconciliation for a dropped
// connection and removes the room once its last participant is gone.
func HandleDisconnect(connID string, connManager *ConnectionManager, registry *server.Registry) {
	room, exists := registry.ResolveByConn(connID)
	if !exists {
		return
	}

	empty := room.HandleDisconnect(connID, connManager)
	registry.Unbind(connID)

	if empty {
		registry.Remove(room.RoomID)
	}
}

// leaveCurrentRoom detaches a connection from its current room before it
// joins another one; a connection belongs to at most one room.
func leaveCurrentRoom(connID string, connManager *ConnectionManager, registry *server.Registry) {
	room, exists := registry.ResolveByConn(connID)
	if !exists {
		return
	}

	empty := room.HandleDisconnect(connID, connManager)
	registry.Unbind(connID)

	if empty {
		registry.Remove(room.RoomID)
	}
}

// resolveRoom finds the target room: an explicit id must name an
// existing room, otherwise the connection's own room is used.
func resolveRoom(roomID, connID string, registry *server.Registry) (*server.Room, error) {
	if roomID != "" {
		room, exists := registry.Get(roomID)
		if !exists {
			return nil, models.ErrRoomNotFound
		}
		return room, nil
	}

	room, exists := registry.ResolveByConn(connID)
	if !exists {
		return nil, models.ErrRoomNotFound
	}
	return room, nil
}

func sendRejection(connID string, connManager *ConnectionManager, err error) {
	connManager.SendMessage(connID, models.MoveRejected{
		Type:    "move_rejected",
		Reason:  models.RejectionReason(err),
		Message: err.Error(),
	})
}

// originAllowed checks an Origin header against a comma-separated list.
func originAllowed(origin, allowedOrigins string) bool {
	for _, allowed := range strings.Split(allowedOrigins, ",") {
		if strings.TrimSpace(allowed) == origin {
			return true
		}
	}
	return false
}

// guestFromToken validates a presented guest token and refreshes its
// cache entry; an invalid token falls back to a fresh anonymous guest.
func guestFromToken(token, connID string) *server.Participant {
	p := &server.Participant{ConnID: connID}

	if token != "" {
		if claims, err := utils.ValidateGuestToken(token); err == nil {
			p.PlayerID = claims.PlayerID
			p.Name = claims.Name

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			db.TouchGuestSession(ctx, claims.ID, 24*time.Hour)

			return p
		}
		log.Printf("[WS] invalid guest token presented, assigning anonymous identity")
	}

	p.PlayerID = uuid.NewString()
	p.Name = "guest-" + p.PlayerID[:8]
	return p
}
