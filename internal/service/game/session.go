package game

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/iamasit07/pong-arena/backend/internal/domain"
	"github.com/iamasit07/pong-arena/backend/pkg/uid"
)

const (
	// TickInterval is the fixed simulation rate (120 Hz).
	TickInterval = time.Second / 120
	// ServeDelay is how long the ball stays frozen at center after a point.
	ServeDelay = 2000 * time.Millisecond
)

// ConnectionManagerInterface is the seam the engine uses to talk to clients.
type ConnectionManagerInterface interface {
	SendMessage(userID int64, message domain.ServerMessage) error
}

// OutcomeReporter consumes the single terminal event of a session.
type OutcomeReporter interface {
	Report(outcome domain.Outcome)
}

// Participant is one side of a match.
type Participant struct {
	UserID   int64
	Username string
	Rating   int
	Number   domain.PlayerNumber
}

// GameSession owns the authoritative state of one match and its tick loop.
// The per-session mutex serializes ticks, moves, the serve timer and
// disconnects; nothing else touches the Game.
type GameSession struct {
	GameID    string
	Player1   Participant
	Player2   Participant
	CreatedAt time.Time

	mu         sync.Mutex
	game       *domain.Game
	finishedAt time.Time
	serveDelay time.Duration
	serveTimer *time.Timer

	done     chan struct{}
	stopOnce sync.Once

	conn           ConnectionManagerInterface
	reporter       OutcomeReporter
	sessionManager *SessionManager
}

// NewGameSession creates the session, tells both participants they are
// matched and starts the tick loop. The earlier-waiting entrant must be
// passed first; it becomes player 1.
func NewGameSession(player1, player2 Participant, conn ConnectionManagerInterface, reporter OutcomeReporter, sm *SessionManager) *GameSession {
	player1.Number = domain.Player1
	player2.Number = domain.Player2

	gs := &GameSession{
		GameID:         uid.GenerateGameID(),
		Player1:        player1,
		Player2:        player2,
		CreatedAt:      time.Now(),
		game:           domain.NewGame(),
		serveDelay:     ServeDelay,
		done:           make(chan struct{}),
		conn:           conn,
		reporter:       reporter,
		sessionManager: sm,
	}

	conn.SendMessage(player1.UserID, domain.MatchedMessage{
		Type:          domain.MsgMatched,
		Message:       "Opponent found!",
		Opponent:      player2.Username,
		GameSessionID: gs.GameID,
		PlayerNumber:  int(domain.Player1),
	})
	conn.SendMessage(player2.UserID, domain.MatchedMessage{
		Type:          domain.MsgMatched,
		Message:       "Opponent found!",
		Opponent:      player1.Username,
		GameSessionID: gs.GameID,
		PlayerNumber:  int(domain.Player2),
	})

	go gs.run()
	return gs
}

func (gs *GameSession) run() {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-gs.done:
			return
		case <-ticker.C:
			gs.tick()
		}
	}
}

// tick advances the simulation one step and broadcasts the snapshot. A panic
// inside one tick fail-stops only this session; other sessions keep running.
func (gs *GameSession) tick() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[GAME] Tick panic in session %s: %v", gs.GameID, r)
			gs.failStop()
		}
	}()

	state, broadcast, finished := gs.step()

	if finished {
		gs.sessionManager.RemoveSession(gs.GameID)
		return
	}
	if !broadcast {
		return
	}

	// Each side gets the same snapshot tagged with its own player number.
	state.PlayerNumber = int(domain.Player1)
	gs.conn.SendMessage(gs.Player1.UserID, state)
	state.PlayerNumber = int(domain.Player2)
	gs.conn.SendMessage(gs.Player2.UserID, state)
}

// step runs one simulation step under the session mutex. The mutex is released
// by defer on every path, including a panic, so the recover in tick never runs
// with the lock held.
func (gs *GameSession) step() (state domain.GameStateMessage, broadcast, finished bool) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.game.IsFinished() {
		return
	}

	res := gs.game.Advance()

	if res.Finished {
		gs.finishLocked(gs.game.Winner, domain.ReasonScoreLimit)
		finished = true
		return
	}

	if res.Scorer != domain.NoPlayer {
		log.Printf("[GAME] Session %s: player %d scored (%d - %d)",
			gs.GameID, res.Scorer, gs.game.Player1Score, gs.game.Player2Score)
		gs.scheduleServeLocked(res.Scorer)
	}

	state = domain.GameStateMessage{
		Type: domain.MsgGameState,
		Ball: domain.BallPosition{X: gs.game.Ball.X, Y: gs.game.Ball.Y},
		GameData: domain.GameData{
			Player1Pos:   gs.game.Player1Pos,
			Player2Pos:   gs.game.Player2Pos,
			Player1Score: gs.game.Player1Score,
			Player2Score: gs.game.Player2Score,
		},
	}
	broadcast = true
	return
}

// scheduleServeLocked arms the single serve timer for the frozen-ball delay.
// Caller holds the mutex; a point cannot be scored while already serving, so
// at most one timer is live at a time.
func (gs *GameSession) scheduleServeLocked(scorer domain.PlayerNumber) {
	gs.serveTimer = time.AfterFunc(gs.serveDelay, func() {
		gs.mu.Lock()
		defer gs.mu.Unlock()
		// Serve is a no-op unless the session is still in the serving phase.
		gs.game.Serve(scorer, (rand.Float64()-0.5)*10)
	})
}

// HandleMove writes a requested paddle offset for the given user. The offset
// is clamped; no other validation is done. Moves after the session finished
// are no-ops.
func (gs *GameSession) HandleMove(userID int64, position float64) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.game.IsFinished() {
		return
	}
	participant, ok := gs.participant(userID)
	if !ok {
		return
	}
	gs.game.SetPaddle(participant.Number, position)
}

// HandleDisconnect terminates the session because one participant's
// connection closed. The remaining participant is declared winner with the
// scores as they stood.
func (gs *GameSession) HandleDisconnect(userID int64) {
	gs.mu.Lock()

	if gs.game.IsFinished() {
		gameID := gs.GameID
		gs.mu.Unlock()
		gs.sessionManager.RemoveSession(gameID)
		return
	}

	leaver, ok := gs.participant(userID)
	if !ok {
		gs.mu.Unlock()
		return
	}
	survivor := gs.other(leaver.Number)

	log.Printf("[GAME] Session %s: %s (ID: %d) disconnected, %s wins",
		gs.GameID, leaver.Username, leaver.UserID, survivor.Username)

	gs.finishDisconnectLocked(survivor)
	gameID := gs.GameID
	gs.mu.Unlock()
	gs.sessionManager.RemoveSession(gameID)
}

// Phase returns the session's current phase.
func (gs *GameSession) Phase() domain.Phase {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.game.Phase
}

// Snapshot returns a copy of the simulation state, for tests and the live
// games listing.
func (gs *GameSession) Snapshot() domain.Game {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return *gs.game
}

func (gs *GameSession) participant(userID int64) (Participant, bool) {
	if userID == gs.Player1.UserID {
		return gs.Player1, true
	}
	if userID == gs.Player2.UserID {
		return gs.Player2, true
	}
	return Participant{}, false
}

func (gs *GameSession) other(num domain.PlayerNumber) Participant {
	if num == domain.Player1 {
		return gs.Player2
	}
	return gs.Player1
}

// finishLocked handles the score-limit termination path: gameOver to both
// sides and exactly one outcome event.
func (gs *GameSession) finishLocked(winner domain.PlayerNumber, reason string) {
	gs.game.Phase = domain.PhaseFinished
	gs.game.Winner = winner
	gs.stopLocked()

	winnerP := gs.Player1
	if winner == domain.Player2 {
		winnerP = gs.Player2
	}

	msg := domain.GameOverMessage{
		Type:           domain.MsgGameOver,
		Winner:         int(winner),
		Player1:        gs.Player1.Username,
		Player2:        gs.Player2.Username,
		WinnerUsername: winnerP.Username,
		Scores: domain.Scores{
			Player1: gs.game.Player1Score,
			Player2: gs.game.Player2Score,
		},
	}
	gs.conn.SendMessage(gs.Player1.UserID, msg)
	gs.conn.SendMessage(gs.Player2.UserID, msg)

	gs.reportLocked(winnerP, reason)
}

// finishDisconnectLocked handles the disconnect termination path: gameOver to
// the surviving side only, survivor recorded as winner.
func (gs *GameSession) finishDisconnectLocked(survivor Participant) {
	gs.game.Phase = domain.PhaseFinished
	gs.game.Winner = survivor.Number
	gs.stopLocked()

	gs.conn.SendMessage(survivor.UserID, domain.GameOverMessage{
		Type:           domain.MsgGameOver,
		Winner:         int(survivor.Number),
		Player1:        gs.Player1.Username,
		Player2:        gs.Player2.Username,
		WinnerUsername: survivor.Username,
		Scores: domain.Scores{
			Player1: gs.game.Player1Score,
			Player2: gs.game.Player2Score,
		},
		Reason: "Opponent disconnected",
	})

	gs.reportLocked(survivor, domain.ReasonDisconnect)
}

// failStop marks the session finished after a tick panic without notifying
// anyone; the fault is session-scoped. The game state that caused the panic is
// untrusted and is replaced with a terminal one rather than inspected.
func (gs *GameSession) failStop() {
	gs.mu.Lock()
	alreadyFinished := !gs.finishedAt.IsZero()
	if !alreadyFinished {
		gs.game = &domain.Game{Phase: domain.PhaseFinished}
		gs.stopLocked()
	}
	gameID := gs.GameID
	gs.mu.Unlock()
	if !alreadyFinished {
		gs.sessionManager.RemoveSession(gameID)
	}
}

// stopLocked cancels the tick loop and the serve timer. Safe to call more
// than once.
func (gs *GameSession) stopLocked() {
	gs.finishedAt = time.Now()
	if gs.serveTimer != nil {
		gs.serveTimer.Stop()
		gs.serveTimer = nil
	}
	gs.stopOnce.Do(func() { close(gs.done) })
}

// reportLocked hands the terminal event to the outcome reporter. The Finished
// transition happens exactly once under the mutex, so this runs exactly once
// per session.
func (gs *GameSession) reportLocked(winner Participant, reason string) {
	outcome := domain.Outcome{
		GameID:          gs.GameID,
		Player1ID:       gs.Player1.UserID,
		Player1Username: gs.Player1.Username,
		Player2ID:       gs.Player2.UserID,
		Player2Username: gs.Player2.Username,
		Winner:          winner.Number,
		WinnerID:        winner.UserID,
		WinnerUsername:  winner.Username,
		Scores: domain.Scores{
			Player1: gs.game.Player1Score,
			Player2: gs.game.Player2Score,
		},
		Reason:    reason,
		StartTime: gs.CreatedAt,
		EndTime:   gs.finishedAt,
	}

	// Persisting must not block the session teardown.
	go gs.reporter.Report(outcome)
}
