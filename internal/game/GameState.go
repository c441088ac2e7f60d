package game

import "math/rand"

// GameState owns one session of play: the snake body, food, heading, score and
// the paused / game over flags. It is not safe for concurrent use; the
// Controller serializes every call.
type GameState struct {
	gridSize  int
	rng       *rand.Rand
	snake     []Position
	food      Position
	direction Direction
	score     int
	gameOver  bool
	paused    bool
	reason    Reason
	// round counts resets, so listeners can tell one game's events from the next.
	round     int
}

func NewGameState(gridSize int, rng *rand.Rand) *GameState {
	if gridSize < 2 {
		gridSize = DefaultGridSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	gs := &GameState{gridSize: gridSize, rng: rng}
	gs.Reset()
	return gs
}

// Reset puts a single segment in the middle of the board heading right and
// places the first food.
func (gs *GameState) Reset() {
	gs.snake = []Position{{X: gs.gridSize / 2, Y: gs.gridSize / 2}}
	gs.direction = Right
	gs.score = 0
	gs.gameOver = false
	gs.paused = false
	gs.reason = ReasonNone
	gs.round++
	gs.placeFood()
}

// SetDirection stores d unless it reverses the current heading. Reversals and
// invalid values are dropped silently.
func (gs *GameState) SetDirection(d Direction) bool {
	if !d.Valid() || d == gs.direction.Opposite() {
		return false
	}
	gs.direction = d
	return true
}

// Advance moves the snake one cell.
func (gs *GameState) Advance() Result {
	if gs.gameOver {
		return Result{Outcome: OutcomeGameOver, Reason: gs.reason}
	}
	if gs.paused {
		return Result{Outcome: OutcomeSuspended}
	}

	next := gs.snake[0].Step(gs.direction)
	if !next.InBounds(gs.gridSize) {
		return gs.Finish(ReasonWall)
	}
	// The tail has not moved yet, so stepping into its cell counts.
	if gs.hitsBody(next) {
		return gs.Finish(ReasonSelf)
	}

	gs.snake = append(gs.snake, Position{})
	copy(gs.snake[1:], gs.snake)
	gs.snake[0] = next

	if next != gs.food {
		gs.snake = gs.snake[:len(gs.snake)-1]
		return Result{Outcome: OutcomeContinued}
	}

	gs.score++
	if len(gs.snake) >= gs.gridSize*gs.gridSize {
		return gs.Finish(ReasonBoardFull)
	}
	gs.placeFood()
	return Result{Outcome: OutcomeAteFood}
}

// Finish ends the session. Later Advance calls report the same reason and
// change nothing.
func (gs *GameState) Finish(reason Reason) Result {
	if !gs.gameOver {
		gs.gameOver = true
		gs.paused = true
		gs.reason = reason
	}
	return Result{Outcome: OutcomeGameOver, Reason: gs.reason}
}

func (gs *GameState) SetPaused(paused bool) {
	if gs.gameOver {
		return
	}
	gs.paused = paused
}

func (gs *GameState) Snapshot() RenderSnapshot {
	body := make([]Position, len(gs.snake))
	copy(body, gs.snake)
	return RenderSnapshot{
		GridSize:  gs.gridSize,
		Snake:     body,
		Food:      gs.food,
		Direction: gs.direction,
		Score:     gs.score,
		Round:     gs.round,
	}
}

func (gs *GameState) Score() int           { return gs.score }
func (gs *GameState) Round() int           { return gs.round }
func (gs *GameState) Direction() Direction { return gs.direction }
func (gs *GameState) Head() Position       { return gs.snake[0] }
func (gs *GameState) Len() int             { return len(gs.snake) }
func (gs *GameState) Food() Position       { return gs.food }
func (gs *GameState) GridSize() int        { return gs.gridSize }
func (gs *GameState) Over() bool           { return gs.gameOver }
func (gs *GameState) Paused() bool         { return gs.paused }
func (gs *GameState) Reason() Reason       { return gs.reason }

// hitsBody ignores the current head since it is the cell being left.
func (gs *GameState) hitsBody(p Position) bool {
	for i := 1; i < len(gs.snake); i++ {
		if gs.snake[i] == p {
			return true
		}
	}
	return false
}

// occupied checks the whole body, head included.
func (gs *GameState) occupied(p Position) bool {
	for _, segment := range gs.snake {
		if segment == p {
			return true
		}
	}
	return false
}

// placeFood retries random cells until one is free. The caller guarantees at
// least one free cell exists.
func (gs *GameState) placeFood() {
	if len(gs.snake) >= gs.gridSize*gs.gridSize {
		return
	}
	for {
		candidate := Position{X: gs.rng.Intn(gs.gridSize), Y: gs.rng.Intn(gs.gridSize)}
		if !gs.occupied(candidate) {
			gs.food = candidate
			return
		}
	}
}
