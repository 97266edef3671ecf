package domain

// Court geometry and ball/paddle tuning. These are the authoritative gameplay
// constants; clients only render what the server sends.
const (
	CourtWidth  = 800.0
	CourtHeight = 400.0

	BallRadius = 10.0

	LeftPaddleX  = 40.0
	RightPaddleX = 760.0
	PaddleHeight = 100.0

	// Paddle offsets are clamped into [0, MaxPaddleOffset] on every write.
	MaxPaddleOffset = CourtHeight - PaddleHeight

	InitialPaddleOffset = 150.0
	InitialBallSpeed    = 5.0
	ServeSpeed          = 5.0

	// Paddle hits speed the ball up by SpeedUpFactor per axis until that axis
	// reaches MaxAxisSpeed.
	SpeedUpFactor = 1.1
	MaxAxisSpeed  = 15.0

	WinScore = 11
	WinLead  = 2
)

// PlayerNumber identifies a side of the court. Player1 defends the left
// paddle, Player2 the right one.
type PlayerNumber int

const (
	NoPlayer PlayerNumber = 0
	Player1  PlayerNumber = 1
	Player2  PlayerNumber = 2
)

// Opponent returns the other side.
func (p PlayerNumber) Opponent() PlayerNumber {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// Phase is the session state machine value.
type Phase string

const (
	PhaseRallying Phase = "rallying"
	PhaseServing  Phase = "serving"
	PhaseFinished Phase = "finished"
)
