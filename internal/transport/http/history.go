package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/pong-arena/backend/internal/repository/postgres"
)

const defaultHistoryLimit = 20
const maxHistoryLimit = 100

// HistoryHandler serves a player's recent finished games.
type HistoryHandler struct {
	games *postgres.GameRepo
}

func NewHistoryHandler(games *postgres.GameRepo) *HistoryHandler {
	return &HistoryHandler{games: games}
}

type historyEntry struct {
	GameID          string `json:"gameId"`
	Player1ID       int64  `json:"player1Id"`
	Player1Username string `json:"player1Username"`
	Player2ID       int64  `json:"player2Id"`
	Player2Username string `json:"player2Username"`
	WinnerID        int64  `json:"winnerId"`
	WinnerUsername  string `json:"winnerUsername"`
	Player1Score    int    `json:"player1Score"`
	Player2Score    int    `json:"player2Score"`
	Reason          string `json:"reason"`
	StartedAt       string `json:"startedAt"`
	FinishedAt      string `json:"finishedAt"`
}

// GetHistory returns the authenticated user's most recent games, newest first.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		if parsed > maxHistoryLimit {
			parsed = maxHistoryLimit
		}
		limit = parsed
	}

	results, err := h.games.GetUserGameHistory(userID, limit)
	if err != nil {
		log.Printf("[HTTP] Failed to fetch history for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game history"})
		return
	}

	history := make([]historyEntry, 0, len(results))
	for _, g := range results {
		history = append(history, historyEntry{
			GameID:          g.GameID,
			Player1ID:       g.Player1ID,
			Player1Username: g.Player1Username,
			Player2ID:       g.Player2ID,
			Player2Username: g.Player2Username,
			WinnerID:        g.WinnerID,
			WinnerUsername:  g.WinnerUsername,
			Player1Score:    g.Player1Score,
			Player2Score:    g.Player2Score,
			Reason:          g.Reason,
			StartedAt:       g.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
			FinishedAt:      g.FinishedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"games": history})
}
