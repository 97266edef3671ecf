package domain

import "math"

// Ball is the authoritative ball state. Position is the center; velocity is in
// court units per tick.
type Ball struct {
	X  float64
	Y  float64
	DX float64
	DY float64
}

// Game holds the full simulation state for one match. It is a pure state
// machine: all methods are synchronous and the caller owns locking and timing.
type Game struct {
	Ball         Ball
	Player1Pos   float64
	Player2Pos   float64
	Player1Score int
	Player2Score int
	Phase        Phase
	Winner       PlayerNumber
}

// TickResult reports what happened during one Advance call.
type TickResult struct {
	// Scorer is set when a point was scored this tick. The game is then in
	// PhaseServing and the caller must schedule Serve after the serve delay.
	Scorer PlayerNumber
	// Finished is set when the win condition was reached this tick.
	Finished bool
}

func NewGame() *Game {
	return &Game{
		Ball: Ball{
			X:  CourtWidth / 2,
			Y:  CourtHeight / 2,
			DX: InitialBallSpeed,
			DY: InitialBallSpeed,
		},
		Player1Pos: InitialPaddleOffset,
		Player2Pos: InitialPaddleOffset,
		Phase:      PhaseRallying,
	}
}

// Advance runs one simulation tick: ball motion, wall and paddle reflection,
// miss detection and the win check. During PhaseServing the ball is frozen and
// scoring is suspended, but the win check still runs so a finish is never
// deferred past the tick its condition first holds on.
func (g *Game) Advance() TickResult {
	var res TickResult
	if g.Phase == PhaseFinished {
		return res
	}

	if g.Phase == PhaseRallying {
		ball := &g.Ball
		ball.X += ball.DX
		ball.Y += ball.DY

		// Top and bottom wall reflection.
		if ball.Y-BallRadius <= 0 || ball.Y+BallRadius >= CourtHeight {
			ball.DY = -ball.DY
		}

		// Left paddle: force the ball rightwards and speed it up.
		if ball.X-BallRadius <= LeftPaddleX && ball.Y >= g.Player1Pos && ball.Y <= g.Player1Pos+PaddleHeight {
			ball.DX = math.Abs(ball.DX)
			speedUp(ball)
		}

		// Right paddle: mirror, force the ball leftwards.
		if ball.X+BallRadius >= RightPaddleX && ball.Y >= g.Player2Pos && ball.Y <= g.Player2Pos+PaddleHeight {
			ball.DX = -math.Abs(ball.DX)
			speedUp(ball)
		}

		// A ball past either edge is a miss; the opposite side scores and the
		// ball is re-centered until the serve.
		if ball.X < 0 {
			g.Player2Score++
			res.Scorer = Player2
			g.recenter()
		} else if ball.X > CourtWidth {
			g.Player1Score++
			res.Scorer = Player1
			g.recenter()
		}
	}

	if winner := g.winner(); winner != NoPlayer {
		g.Phase = PhaseFinished
		g.Winner = winner
		res.Finished = true
	}

	return res
}

// Serve resumes play after the post-score delay. Points scored by Player1
// serve leftwards, points scored by Player2 serve rightwards. dy is the
// randomized vertical component chosen by the caller.
func (g *Game) Serve(scorer PlayerNumber, dy float64) {
	if g.Phase != PhaseServing {
		return
	}
	if scorer == Player1 {
		g.Ball.DX = -ServeSpeed
	} else {
		g.Ball.DX = ServeSpeed
	}
	g.Ball.DY = dy
	g.Phase = PhaseRallying
}

// SetPaddle writes a requested paddle offset, clamped into
// [0, MaxPaddleOffset]. Clamping happens on every write and never on read.
func (g *Game) SetPaddle(player PlayerNumber, offset float64) {
	clamped := math.Max(0, math.Min(MaxPaddleOffset, offset))
	if player == Player1 {
		g.Player1Pos = clamped
	} else if player == Player2 {
		g.Player2Pos = clamped
	}
}

// Score returns the score for the given side.
func (g *Game) Score(player PlayerNumber) int {
	if player == Player1 {
		return g.Player1Score
	}
	return g.Player2Score
}

func (g *Game) IsFinished() bool {
	return g.Phase == PhaseFinished
}

func (g *Game) recenter() {
	g.Ball.X = CourtWidth / 2
	g.Ball.Y = CourtHeight / 2
	g.Phase = PhaseServing
}

// winner reports which side, if any, satisfies the win condition: WinScore
// reached with a lead of at least WinLead.
func (g *Game) winner() PlayerNumber {
	if g.Player1Score >= WinScore && g.Player1Score-g.Player2Score >= WinLead {
		return Player1
	}
	if g.Player2Score >= WinScore && g.Player2Score-g.Player1Score >= WinLead {
		return Player2
	}
	return NoPlayer
}

func speedUp(ball *Ball) {
	if math.Abs(ball.DX) < MaxAxisSpeed {
		ball.DX *= SpeedUpFactor
	}
	if math.Abs(ball.DY) < MaxAxisSpeed {
		ball.DY *= SpeedUpFactor
	}
}
