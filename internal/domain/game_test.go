package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	g := NewGame()

	assert.Equal(t, CourtWidth/2, g.Ball.X)
	assert.Equal(t, CourtHeight/2, g.Ball.Y)
	assert.Equal(t, float64(InitialBallSpeed), g.Ball.DX)
	assert.Equal(t, float64(InitialBallSpeed), g.Ball.DY)
	assert.Equal(t, float64(InitialPaddleOffset), g.Player1Pos)
	assert.Equal(t, float64(InitialPaddleOffset), g.Player2Pos)
	assert.Equal(t, PhaseRallying, g.Phase)
	assert.Equal(t, NoPlayer, g.Winner)
}

func TestSetPaddleClamps(t *testing.T) {
	tests := []struct {
		name     string
		offset   float64
		expected float64
	}{
		{"negative clamps to zero", -50, 0},
		{"zero stays", 0, 0},
		{"mid court stays", 150, 150},
		{"exact max stays", 300, 300},
		{"beyond max clamps", 400, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame()
			g.SetPaddle(Player1, tt.offset)
			g.SetPaddle(Player2, tt.offset)
			assert.Equal(t, tt.expected, g.Player1Pos)
			assert.Equal(t, tt.expected, g.Player2Pos)
		})
	}
}

func TestSetPaddleIgnoresUnknownPlayer(t *testing.T) {
	g := NewGame()
	g.SetPaddle(NoPlayer, 42)
	assert.Equal(t, float64(InitialPaddleOffset), g.Player1Pos)
	assert.Equal(t, float64(InitialPaddleOffset), g.Player2Pos)
}

func TestAdvanceReflectsOffWalls(t *testing.T) {
	g := NewGame()
	g.Ball = Ball{X: 400, Y: 12, DX: 0, DY: -5}

	g.Advance()

	assert.Equal(t, 7.0, g.Ball.Y)
	assert.Equal(t, 5.0, g.Ball.DY, "vertical velocity should flip at the top wall")
}

func TestAdvancePaddleHitReflectsAndSpeedsUp(t *testing.T) {
	g := NewGame()
	g.Ball = Ball{X: 55, Y: 200, DX: -6, DY: 2}

	g.Advance()

	// 49 - radius 10 reaches the left paddle plane at x=40; the paddle covers
	// [150, 250] and the ball is at y=202.
	assert.InDelta(t, 6.6, g.Ball.DX, 1e-9, "ball should reflect rightwards and speed up")
	assert.InDelta(t, 2.2, g.Ball.DY, 1e-9)
}

func TestAdvanceSpeedUpCapsPerAxis(t *testing.T) {
	g := NewGame()
	g.Ball = Ball{X: 55, Y: 200, DX: -16, DY: 16}

	g.Advance()

	assert.Equal(t, 16.0, g.Ball.DX, "axis at or above the cap is not multiplied")
	// Wall check first: y=216 is inside the court, no flip.
	assert.Equal(t, 16.0, g.Ball.DY)
}

func TestAdvanceMissScoresAndRecenters(t *testing.T) {
	g := NewGame()
	g.SetPaddle(Player2, 0) // Move the right paddle out of the ball's path
	g.Ball = Ball{X: 795, Y: 200, DX: 6, DY: 0}

	res := g.Advance()

	require.Equal(t, Player1, res.Scorer)
	assert.False(t, res.Finished)
	assert.Equal(t, 1, g.Player1Score)
	assert.Equal(t, 0, g.Player2Score)
	assert.Equal(t, 400.0, g.Ball.X)
	assert.Equal(t, 200.0, g.Ball.Y)
	assert.Equal(t, PhaseServing, g.Phase)
}

func TestAdvanceFreezesBallWhileServing(t *testing.T) {
	g := NewGame()
	g.SetPaddle(Player2, 0)
	g.Ball = Ball{X: 795, Y: 200, DX: 6, DY: 0}
	g.Advance()
	require.Equal(t, PhaseServing, g.Phase)

	res := g.Advance()

	assert.Equal(t, NoPlayer, res.Scorer)
	assert.Equal(t, 400.0, g.Ball.X)
	assert.Equal(t, 200.0, g.Ball.Y)
	assert.Equal(t, 1, g.Player1Score, "no points can be scored during the serve freeze")
}

func TestServeDirectionFollowsScorer(t *testing.T) {
	g := NewGame()
	g.SetPaddle(Player2, 0)
	g.Ball = Ball{X: 795, Y: 200, DX: 6, DY: 0}
	g.Advance()
	require.Equal(t, PhaseServing, g.Phase)

	g.Serve(Player1, 3.3)

	assert.Equal(t, -float64(ServeSpeed), g.Ball.DX)
	assert.Equal(t, 3.3, g.Ball.DY)
	assert.Equal(t, PhaseRallying, g.Phase)

	// Serving while rallying is a no-op.
	g.Serve(Player2, -1)
	assert.Equal(t, -float64(ServeSpeed), g.Ball.DX)
	assert.Equal(t, 3.3, g.Ball.DY)
}

func TestServeRightwardsAfterPlayer2Point(t *testing.T) {
	g := NewGame()
	g.Ball = Ball{X: 5, Y: 300, DX: -6, DY: 0}

	res := g.Advance()
	require.Equal(t, Player2, res.Scorer)
	require.Equal(t, PhaseServing, g.Phase)

	g.Serve(Player2, 0)
	assert.Equal(t, float64(ServeSpeed), g.Ball.DX)
}

func TestBallNeverLeavesCourtAfterTick(t *testing.T) {
	g := NewGame()
	g.SetPaddle(Player1, 0)
	g.SetPaddle(Player2, 0)
	scoreEvents := 0

	// A miss is always resolved within the same tick: the side scores and the
	// ball is recentered, so the ball is never observable outside the court.
	for i := 0; i < 5000 && !g.IsFinished(); i++ {
		res := g.Advance()
		require.GreaterOrEqual(t, g.Ball.X, 0.0)
		require.LessOrEqual(t, g.Ball.X, float64(CourtWidth))
		if res.Scorer != NoPlayer {
			scoreEvents++
		}
		if g.Phase == PhaseServing {
			g.Serve(res.Scorer, float64(i%7)-3)
		}
	}
	assert.Positive(t, scoreEvents, "the rally should produce score events")
}

func TestWinRequiresScoreAndLead(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   int
		finished bool
		winner   PlayerNumber
	}{
		{"11-9 wins", 11, 9, true, Player1},
		{"10-8 not enough points", 10, 8, false, NoPlayer},
		{"11-10 not enough lead", 11, 10, false, NoPlayer},
		{"9-11 player2 wins", 9, 11, true, Player2},
		{"10-12 deuce resolved", 10, 12, true, Player2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame()
			g.Player1Score = tt.p1
			g.Player2Score = tt.p2

			res := g.Advance()

			assert.Equal(t, tt.finished, res.Finished)
			assert.Equal(t, tt.winner, g.Winner)
			if tt.finished {
				assert.Equal(t, PhaseFinished, g.Phase)
				assert.True(t, g.IsFinished())
			}
		})
	}
}

func TestWinCheckRunsDuringServe(t *testing.T) {
	g := NewGame()
	g.Phase = PhaseServing
	g.Player1Score = 11
	g.Player2Score = 9

	res := g.Advance()

	assert.True(t, res.Finished)
	assert.Equal(t, Player1, g.Winner)
}

func TestAdvanceIsNoOpWhenFinished(t *testing.T) {
	g := NewGame()
	g.Phase = PhaseFinished
	g.Winner = Player2
	before := g.Ball

	res := g.Advance()

	assert.Equal(t, TickResult{}, res)
	assert.Equal(t, before, g.Ball)
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, Player2, Player1.Opponent())
	assert.Equal(t, Player1, Player2.Opponent())
}
