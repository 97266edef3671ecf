package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/pong-arena/backend/internal/repository/postgres"
)

// PlayerRepository looks player records up by name.
type PlayerRepository interface {
	GetUserByUsername(username string) (*postgres.User, error)
}

// PlayerHandler serves public player profiles: rating and win/loss record.
type PlayerHandler struct {
	players PlayerRepository
}

func NewPlayerHandler(players PlayerRepository) *PlayerHandler {
	return &PlayerHandler{players: players}
}

type playerProfile struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Rating      int    `json:"rating"`
	GamesPlayed int    `json:"gamesPlayed"`
	GamesWon    int    `json:"gamesWon"`
}

// GetPlayer returns one player's profile by username.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	username := c.Param("username")

	user, err := h.players.GetUserByUsername(username)
	if err != nil {
		log.Printf("[HTTP] Failed to look up player %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch player"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
		return
	}

	c.JSON(http.StatusOK, playerProfile{
		ID:          user.ID,
		Username:    user.Username,
		Rating:      user.Rating,
		GamesPlayed: user.GamesPlayed,
		GamesWon:    user.GamesWon,
	})
}
