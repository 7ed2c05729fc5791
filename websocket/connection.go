package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Connection holds a WebSocket connection with its write mutex
type Connection struct {
	Conn       *websocket.Conn
	WriteMutex *sync.Mutex
}

// ConnectionManager manages websocket connections by connection id
type ConnectionManager struct {
	connections map[string]*Connection
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*Connection),
	}
}

func (cm *ConnectionManager) AddConnection(connID string, conn *websocket.Conn) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, exists := cm.connections[connID]; exists {
		return fmt.Errorf("connection %s already registered", connID)
	}

	cm.connections[connID] = &Connection{
		Conn:       conn,
		WriteMutex: &sync.Mutex{},
	}
	return nil
}

func (cm *ConnectionManager) RemoveConnection(connID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.connections, connID)
}

// SendMessage marshals a message and writes it to one connection.
// Delivery is fire-and-forget; a dead connection only costs a log line.
func (cm *ConnectionManager) SendMessage(connID string, message any) error {
	cm.mu.RLock()
	connection, exists := cm.connections[connID]
	cm.mu.RUnlock()

	if !exists {
		return fmt.Errorf("connection %s does not exist", connID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	// per-connection write mutex to prevent concurrent writes
	connection.WriteMutex.Lock()
	defer connection.WriteMutex.Unlock()

	return connection.Conn.WriteMessage(websocket.TextMessage, data)
}

// CreateUpgrader creates a WebSocket upgrader. allowedOrigins is a
// comma-separated list; empty allows any origin.
func CreateUpgrader(allowedOrigins string) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigins == "" {
				return true
			}
			return originAllowed(r.Header.Get("Origin"), allowedOrigins)
		},
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}
