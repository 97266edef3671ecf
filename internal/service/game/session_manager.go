package game

import (
	"log"
	"sync"

	"github.com/iamasit07/pong-arena/backend/internal/metrics"
)

// SessionManager is the session registry: gameID → session plus userID →
// gameID for O(1) lookup from a connection. A session is present only while
// it is not finished.
type SessionManager struct {
	sessions   map[string]*GameSession
	userToGame map[int64]string
	mu         sync.RWMutex

	conn     ConnectionManagerInterface
	reporter OutcomeReporter
}

func NewSessionManager(conn ConnectionManagerInterface, reporter OutcomeReporter) *SessionManager {
	return &SessionManager{
		sessions:   make(map[string]*GameSession),
		userToGame: make(map[int64]string),
		conn:       conn,
		reporter:   reporter,
	}
}

// CreateSession starts a new match between the two participants and registers
// both connections. player1 must be the entrant that was waiting longer.
func (sm *SessionManager) CreateSession(player1, player2 Participant) *GameSession {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session := NewGameSession(player1, player2, sm.conn, sm.reporter, sm)
	sm.sessions[session.GameID] = session
	sm.userToGame[player1.UserID] = session.GameID
	sm.userToGame[player2.UserID] = session.GameID
	metrics.ActiveSessions.Set(float64(len(sm.sessions)))

	log.Printf("[SESSION] Created session %s: %s (ID: %d) vs %s (ID: %d)",
		session.GameID, player1.Username, player1.UserID, player2.Username, player2.UserID)
	return session
}

// GetSessionByUserID resolves the session a connection belongs to.
func (sm *SessionManager) GetSessionByUserID(userID int64) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	gameID, exists := sm.userToGame[userID]
	if !exists {
		return nil, false
	}
	session, exists := sm.sessions[gameID]
	return session, exists
}

// GetSessionByGameID looks a session up by its identifier.
func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[gameID]
	return session, exists
}

// RemoveSession drops the session and both user mappings from the registry.
func (sm *SessionManager) RemoveSession(gameID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[gameID]
	if !exists {
		return
	}

	log.Printf("[SESSION] Removing session %s", gameID)

	delete(sm.userToGame, session.Player1.UserID)
	delete(sm.userToGame, session.Player2.UserID)
	delete(sm.sessions, gameID)
	metrics.ActiveSessions.Set(float64(len(sm.sessions)))
}

// ActiveSessions returns how many matches are currently running.
func (sm *SessionManager) ActiveSessions() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
