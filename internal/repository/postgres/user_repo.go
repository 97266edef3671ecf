package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/iamasit07/pong-arena/backend/internal/domain"
)

type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

type User struct {
	ID          int64
	Username    string
	Rating      int
	GamesPlayed int
	GamesWon    int
	CreatedAt   time.Time
}

// GetIdentityByID returns the verified identity record the gateway consumes.
func (r *UserRepo) GetIdentityByID(userID int64) (*domain.Identity, error) {
	query := `SELECT id, username, rating FROM players WHERE id = $1;`

	var identity domain.Identity
	err := r.DB.QueryRow(query, userID).Scan(&identity.UserID, &identity.Username, &identity.Rating)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d not found", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %d: %v", userID, err)
	}
	return &identity, nil
}

// GetRating returns a user's current rating.
func (r *UserRepo) GetRating(userID int64) (int, error) {
	var rating int
	err := r.DB.QueryRow(`SELECT rating FROM players WHERE id = $1;`, userID).Scan(&rating)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("user %d not found", userID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up rating for user %d: %v", userID, err)
	}
	return rating, nil
}

// GetUserByUsername fetches a full user row.
func (r *UserRepo) GetUserByUsername(username string) (*User, error) {
	query := `SELECT id, username, rating, games_played, games_won, created_at FROM players WHERE username = $1;`

	var u User
	err := r.DB.QueryRow(query, username).Scan(&u.ID, &u.Username, &u.Rating, &u.GamesPlayed, &u.GamesWon, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %v", username, err)
	}
	return &u, nil
}
