package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/pong-arena/backend/internal/domain"
)

// ConnectionManager handles active WebSocket connections thread-safely.
type ConnectionManager struct {
	connections map[int64]*websocket.Conn

	// writeMu ensures only one goroutine writes to a specific socket at a
	// time; conn.WriteJSON is not safe for concurrent use.
	writeMu map[int64]*sync.Mutex

	mu sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[int64]*websocket.Conn),
		writeMu:     make(map[int64]*sync.Mutex),
	}
}

// AddConnection registers a new connection and initializes its write lock.
// An existing connection for the same user is closed first.
func (cm *ConnectionManager) AddConnection(userID int64, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[userID]; exists {
		oldConn.Close()
	}

	cm.connections[userID] = conn
	cm.writeMu[userID] = &sync.Mutex{}
}

// RemoveConnectionIfMatching avoids the race where cleanup of an old
// connection would close a newer one for the same user.
func (cm *ConnectionManager) RemoveConnectionIfMatching(userID int64, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[userID]; exists && currentConn == conn {
		currentConn.Close()
		delete(cm.connections, userID)
		delete(cm.writeMu, userID)
	}
}

// IsCurrentConnection reports whether conn is still the user's registered
// connection.
func (cm *ConnectionManager) IsCurrentConnection(userID int64, conn *websocket.Conn) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	currentConn, exists := cm.connections[userID]
	return exists && currentConn == conn
}

// SendMessage sends one JSON frame to a specific user. Messages to users that
// are no longer connected are dropped silently.
func (cm *ConnectionManager) SendMessage(userID int64, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[userID]
	mu, muExists := cm.writeMu[userID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil // User disconnected, ignore
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(message)
}
