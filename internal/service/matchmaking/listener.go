package matchmaking

import (
	"log"

	"github.com/iamasit07/pong-arena/backend/internal/service/game"
)

// Listener consumes formed matches and turns each into a live session.
// CreateSession registers both connections and sends the matched frames.
func Listener(queue *Queue, sm *game.SessionManager) {
	for match := range queue.MatchChannel {
		log.Printf("[MATCHMAKING] Match found: %s (ID: %d, rating %d) vs %s (ID: %d, rating %d)",
			match.Player1.Username, match.Player1.UserID, match.Player1.Rating,
			match.Player2.Username, match.Player2.UserID, match.Player2.Rating)

		session := sm.CreateSession(
			game.Participant{UserID: match.Player1.UserID, Username: match.Player1.Username, Rating: match.Player1.Rating},
			game.Participant{UserID: match.Player2.UserID, Username: match.Player2.Username, Rating: match.Player2.Rating},
		)

		log.Printf("[MATCHMAKING] Session %s started for %s vs %s",
			session.GameID, match.Player1.Username, match.Player2.Username)
	}
}
