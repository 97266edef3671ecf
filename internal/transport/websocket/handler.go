package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/pong-arena/backend/internal/config"
	"github.com/iamasit07/pong-arena/backend/internal/domain"
	"github.com/iamasit07/pong-arena/backend/internal/service/game"
	"github.com/iamasit07/pong-arena/backend/internal/service/matchmaking"
	"github.com/iamasit07/pong-arena/backend/internal/service/session"
)

// Gateway owns the WebSocket endpoint: it authenticates the connection,
// registers it, and routes client frames into matchmaking and the game engine.
type Gateway struct {
	upgrader websocket.Upgrader
	auth     *session.AuthService
	queue    *matchmaking.Queue
	sessions *game.SessionManager
	conn     *ConnectionManager
}

func NewGateway(auth *session.AuthService, queue *matchmaking.Queue, sessions *game.SessionManager, conn *ConnectionManager) *Gateway {
	return &Gateway{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range config.AppConfig.AllowedOrigins {
					if origin == allowed {
						return true
					}
				}
				return false
			},
		},
		auth:     auth,
		queue:    queue,
		sessions: sessions,
		conn:     conn,
	}
}

// HandleWS upgrades the connection and runs its read loop until the socket
// closes. One goroutine per connection.
func (g *Gateway) HandleWS(c *gin.Context) {
	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade failed: %v", err)
		return
	}

	claims, err := g.auth.ValidateToken(extractToken(c))
	if err != nil {
		// The handshake already succeeded, so the refusal goes over the
		// socket as a single error frame.
		conn.WriteJSON(domain.ErrorMessage{Type: domain.MsgError, Message: "Unauthorized"})
		conn.Close()
		return
	}

	userID := claims.UserID
	username := claims.Username

	identity, err := g.auth.GetIdentity(userID)
	if err != nil {
		log.Printf("[WS] Identity lookup failed for user %d: %v", userID, err)
		conn.WriteJSON(domain.ErrorMessage{Type: domain.MsgError, Message: "Unauthorized"})
		conn.Close()
		return
	}
	if identity.Username != "" {
		username = identity.Username
	}

	g.conn.AddConnection(userID, conn)
	log.Printf("[WS] %s (ID: %d) connected", username, userID)

	defer func() {
		// When a newer connection has replaced this one, its lifecycle owns
		// the queue and session cleanup now.
		if !g.conn.IsCurrentConnection(userID, conn) {
			return
		}
		g.queue.Remove(userID)
		if gs, ok := g.sessions.GetSessionByUserID(userID); ok {
			gs.HandleDisconnect(userID)
		}
		g.conn.RemoveConnectionIfMatching(userID, conn)
		log.Printf("[WS] %s (ID: %d) disconnected", username, userID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] Read error for user %d: %v", userID, err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			// Malformed frames are dropped; the connection stays open.
			log.Printf("[WS] Malformed frame from user %d: %v", userID, err)
			continue
		}

		g.route(userID, identity, msg)
	}
}

// route dispatches one decoded client frame. The client frame set is closed:
// anything else is logged and dropped.
func (g *Gateway) route(userID int64, identity *domain.Identity, msg domain.ClientMessage) {
	switch msg.Type {
	case domain.MsgJoin:
		g.handleJoin(userID, identity, msg)
	case domain.MsgMove:
		if gs, ok := g.sessions.GetSessionByUserID(userID); ok {
			gs.HandleMove(userID, msg.Position)
		}
	default:
		log.Printf("[WS] Dropping unknown frame type %q from user %d", msg.Type, userID)
	}
}

func (g *Gateway) handleJoin(userID int64, identity *domain.Identity, msg domain.ClientMessage) {
	// A join while already in a live match is ignored; the session keeps
	// running.
	if _, ok := g.sessions.GetSessionByUserID(userID); ok {
		return
	}

	// The server-side rating is authoritative; the client-supplied elo is
	// only a fallback for accounts that have none yet.
	rating := identity.Rating
	if rating <= 0 {
		rating = msg.Elo
	}

	waiting := g.queue.Join(matchmaking.Entrant{
		UserID:   userID,
		Username: identity.Username,
		Rating:   rating,
	})
	if waiting {
		g.conn.SendMessage(userID, domain.WaitingMessage{
			Type:    domain.MsgWaiting,
			Message: "Waiting for an opponent...",
		})
	}
}

// extractToken pulls the access token from the query string or the
// Authorization header. Browsers cannot set headers on WebSocket handshakes,
// so the query parameter is the primary channel.
func extractToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
