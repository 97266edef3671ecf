package domain

// Wire protocol. Frames are JSON objects tagged by a "type" field; both
// directions are closed sets so the gateway can switch exhaustively and log
// anything it does not recognize instead of mis-routing it.

// Client → server frame types.
const (
	MsgJoin = "join"
	MsgMove = "move"
)

// Server → client frame types.
const (
	MsgWaiting   = "waiting"
	MsgMatched   = "matched"
	MsgGameState = "gameState"
	MsgGameOver  = "gameOver"
	MsgError     = "error"
)

// ClientMessage is the decode envelope for client frames. Which fields are
// meaningful depends on Type: Elo for join, Position for move.
type ClientMessage struct {
	Type     string  `json:"type"`
	Elo      int     `json:"elo,omitempty"`
	Position float64 `json:"position"`
}

// ServerMessage is implemented by every server→client frame.
type ServerMessage interface {
	isServerMessage()
}

type WaitingMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type MatchedMessage struct {
	Type          string `json:"type"`
	Message       string `json:"message"`
	Opponent      string `json:"opponent"`
	GameSessionID string `json:"gameSessionId"`
	PlayerNumber  int    `json:"playerNumber"`
}

type BallPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type GameData struct {
	Player1Pos   float64 `json:"player1Pos"`
	Player2Pos   float64 `json:"player2Pos"`
	Player1Score int     `json:"player1Score"`
	Player2Score int     `json:"player2Score"`
}

// GameStateMessage is the per-tick snapshot. PlayerNumber tells the recipient
// which paddle is theirs.
type GameStateMessage struct {
	Type         string       `json:"type"`
	Ball         BallPosition `json:"ball"`
	GameData     GameData     `json:"gameData"`
	PlayerNumber int          `json:"playerNumber"`
}

type Scores struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

type GameOverMessage struct {
	Type           string `json:"type"`
	Winner         int    `json:"winner"`
	Player1        string `json:"player1,omitempty"`
	Player2        string `json:"player2,omitempty"`
	WinnerUsername string `json:"winnerUsername,omitempty"`
	Scores         Scores `json:"scores"`
	Reason         string `json:"reason,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (WaitingMessage) isServerMessage()   {}
func (MatchedMessage) isServerMessage()   {}
func (GameStateMessage) isServerMessage() {}
func (GameOverMessage) isServerMessage()  {}
func (ErrorMessage) isServerMessage()     {}
