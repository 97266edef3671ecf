package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/pong-arena/backend/internal/repository/postgres"
)

type fakePlayerRepo struct {
	users map[string]*postgres.User
	err   error
}

func (f *fakePlayerRepo) GetUserByUsername(username string) (*postgres.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[username], nil
}

func newPlayerRouter(repo PlayerRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/players/:username", NewPlayerHandler(repo).GetPlayer)
	return router
}

func TestGetPlayer(t *testing.T) {
	repo := &fakePlayerRepo{users: map[string]*postgres.User{
		"alice": {ID: 7, Username: "alice", Rating: 1250, GamesPlayed: 30, GamesWon: 18},
	}}
	router := newPlayerRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/players/alice", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var profile playerProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, int64(7), profile.ID)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, 1250, profile.Rating)
	assert.Equal(t, 30, profile.GamesPlayed)
	assert.Equal(t, 18, profile.GamesWon)
}

func TestGetPlayerNotFound(t *testing.T) {
	router := newPlayerRouter(&fakePlayerRepo{users: map[string]*postgres.User{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/players/nobody", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPlayerLookupError(t *testing.T) {
	router := newPlayerRouter(&fakePlayerRepo{err: errors.New("db down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/players/alice", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
