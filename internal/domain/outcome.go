package domain

import "time"

// End-of-game reasons recorded with an outcome. A tick fault has no reason
// constant: it produces no winner, so no outcome is ever recorded for it.
const (
	ReasonScoreLimit = "score_limit"
	ReasonDisconnect = "disconnect"
)

// Outcome is the terminal event a session emits exactly once when it finishes.
// The outcome reporter consumes it to persist the game and adjust ratings; the
// session itself never touches storage.
type Outcome struct {
	GameID          string
	Player1ID       int64
	Player1Username string
	Player2ID       int64
	Player2Username string
	Winner          PlayerNumber
	WinnerID        int64
	WinnerUsername  string
	Scores          Scores
	Reason          string
	StartTime       time.Time
	EndTime         time.Time
}
