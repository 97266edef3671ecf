package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/iamasit07/pong-arena/backend/internal/domain"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// GameResult represents a finished game as stored.
type GameResult struct {
	GameID          string
	Player1ID       int64
	Player1Username string
	Player2ID       int64
	Player2Username string
	WinnerID        int64
	WinnerUsername  string
	Player1Score    int
	Player2Score    int
	Reason          string
	StartedAt       time.Time
	FinishedAt      time.Time
}

// SaveOutcome records a finished game and applies the new ratings and stats
// for both players transactionally.
func (r *GameRepo) SaveOutcome(o domain.Outcome, winnerNewRating, loserNewRating int) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	loserID := o.Player2ID
	if o.WinnerID == o.Player2ID {
		loserID = o.Player1ID
	}

	if err := r.updatePlayerTx(tx, o.WinnerID, winnerNewRating, true); err != nil {
		return err
	}
	if err := r.updatePlayerTx(tx, loserID, loserNewRating, false); err != nil {
		return err
	}

	// UPSERT so a retried report cannot duplicate the row.
	query := `
	INSERT INTO games (game_id, player1_id, player1_username, player2_id, player2_username, winner_id, winner_username, player1_score, player2_score, reason, started_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (game_id) DO UPDATE SET
		winner_id = EXCLUDED.winner_id,
		winner_username = EXCLUDED.winner_username,
		player1_score = EXCLUDED.player1_score,
		player2_score = EXCLUDED.player2_score,
		reason = EXCLUDED.reason,
		finished_at = EXCLUDED.finished_at;
	`

	_, err = tx.Exec(query, o.GameID, o.Player1ID, o.Player1Username, o.Player2ID, o.Player2Username,
		o.WinnerID, o.WinnerUsername, o.Scores.Player1, o.Scores.Player2, o.Reason, o.StartTime, o.EndTime)
	if err != nil {
		return fmt.Errorf("failed to upsert game record: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}
	return nil
}

// updatePlayerTx applies a player's new rating and stats within a transaction.
func (r *GameRepo) updatePlayerTx(tx *sql.Tx, userID int64, newRating int, won bool) error {
	query := `
	UPDATE players
	SET rating = $2,
	    games_played = games_played + 1,
	    games_won = games_won + CASE WHEN $3 THEN 1 ELSE 0 END
	WHERE id = $1;
	`
	if _, err := tx.Exec(query, userID, newRating, won); err != nil {
		return fmt.Errorf("failed to update player %d in transaction: %v", userID, err)
	}
	return nil
}

// GetUserGameHistory returns a user's most recent finished games.
func (r *GameRepo) GetUserGameHistory(userID int64, limit int) ([]GameResult, error) {
	query := `
	SELECT game_id, player1_id, player1_username, player2_id, player2_username, winner_id, winner_username, player1_score, player2_score, reason, started_at, finished_at
	FROM games
	WHERE player1_id = $1 OR player2_id = $1
	ORDER BY finished_at DESC
	LIMIT $2;
	`
	rows, err := r.DB.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %v", err)
	}
	defer rows.Close()

	var history []GameResult
	for rows.Next() {
		var g GameResult
		if err := rows.Scan(&g.GameID, &g.Player1ID, &g.Player1Username, &g.Player2ID, &g.Player2Username,
			&g.WinnerID, &g.WinnerUsername, &g.Player1Score, &g.Player2Score, &g.Reason, &g.StartedAt, &g.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %v", err)
		}
		history = append(history, g)
	}
	return history, rows.Err()
}
