package game

// Reason explains why a game ended.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonWall
	ReasonSelf
	// ReasonEnded is an end requested from outside, not a collision.
	ReasonEnded
	// ReasonBoardFull means the snake covers every cell. It counts as a win.
	ReasonBoardFull
)

func (r Reason) String() string {
	switch r {
	case ReasonWall:
		return "wall"
	case ReasonSelf:
		return "self"
	case ReasonEnded:
		return "ended"
	case ReasonBoardFull:
		return "board full"
	default:
		return "none"
	}
}

type Outcome int

const (
	OutcomeContinued Outcome = iota
	OutcomeAteFood
	OutcomeGameOver
	// OutcomeSuspended is returned when Advance runs on a paused state.
	OutcomeSuspended
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinued:
		return "continued"
	case OutcomeAteFood:
		return "ate food"
	case OutcomeGameOver:
		return "game over"
	case OutcomeSuspended:
		return "suspended"
	default:
		return "unknown"
	}
}

// Result is what a single Advance produced. Reason is only set for
// OutcomeGameOver.
type Result struct {
	Outcome Outcome
	Reason  Reason
}

// RenderSnapshot is a copy of everything a renderer needs. It shares no memory
// with the game state. Round identifies the game it was taken from.
type RenderSnapshot struct {
	GridSize  int
	Snake     []Position
	Food      Position
	Direction Direction
	Score     int
	Round     int
}

func (s RenderSnapshot) Head() Position {
	if len(s.Snake) == 0 {
		return Position{}
	}
	return s.Snake[0]
}

type GameOverEvent struct {
	FinalScore int
	Reason     Reason
	Length     int
	Round      int
}

// Won reports whether the game ended with the board filled.
func (e GameOverEvent) Won() bool {
	return e.Reason == ReasonBoardFull
}

// Listener receives the controller's output. Methods are called with the
// controller lock held: they must not block and must not call back into the
// Controller.
type Listener interface {
	OnTick(snapshot RenderSnapshot)
	OnScoreChanged(score int)
	OnGameOver(event GameOverEvent)
}

// NopListener discards every event.
type NopListener struct{}

func (NopListener) OnTick(RenderSnapshot)    {}
func (NopListener) OnScoreChanged(int)       {}
func (NopListener) OnGameOver(GameOverEvent) {}
