package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TestGridSize = 20
	TestSeed     = 12345
)

func newTestState(t *testing.T) *GameState {
	t.Helper()
	return NewGameState(TestGridSize, rand.New(rand.NewSource(TestSeed)))
}

func assertValidState(t *testing.T, gs *GameState) {
	t.Helper()
	seen := make(map[Position]bool, len(gs.snake))
	for _, segment := range gs.snake {
		require.Truef(t, segment.InBounds(gs.gridSize), "segment %v out of bounds", segment)
		require.Falsef(t, seen[segment], "segment %v appears twice", segment)
		seen[segment] = true
	}
	if !gs.Over() {
		require.Falsef(t, seen[gs.food], "food %v placed on the snake", gs.food)
		require.True(t, gs.food.InBounds(gs.gridSize))
	}
}

func TestResetYieldsValidState(t *testing.T) {
	gs := newTestState(t)
	for i := 0; i < 50; i++ {
		gs.Reset()
		assert.Equal(t, 1, gs.Len())
		assert.Equal(t, Position{X: 10, Y: 10}, gs.Head())
		assert.Equal(t, Right, gs.Direction())
		assert.Equal(t, 0, gs.Score())
		assert.False(t, gs.Over())
		assert.False(t, gs.Paused())
		assertValidState(t, gs)
	}
}

func TestAdvanceEatsFoodAfterFiveTicks(t *testing.T) {
	gs := newTestState(t)
	gs.food = Position{X: 15, Y: 10}

	for i := 1; i <= 4; i++ {
		result := gs.Advance()
		require.Equal(t, OutcomeContinued, result.Outcome, "tick %d", i)
		require.Equal(t, 1, gs.Len())
	}

	result := gs.Advance()
	require.Equal(t, OutcomeAteFood, result.Outcome)
	assert.Equal(t, Position{X: 15, Y: 10}, gs.Head())
	assert.Equal(t, 1, gs.Score())
	assert.Equal(t, 2, gs.Len())
	assert.Equal(t, []Position{{X: 15, Y: 10}, {X: 14, Y: 10}}, gs.snake)
	assertValidState(t, gs)
}

func TestSetDirectionIgnoresReversal(t *testing.T) {
	gs := newTestState(t)
	gs.snake = []Position{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}
	gs.direction = Up

	assert.False(t, gs.SetDirection(Down))
	assert.Equal(t, Up, gs.Direction())

	assert.True(t, gs.SetDirection(Left))
	assert.Equal(t, Left, gs.Direction())

	assert.False(t, gs.SetDirection(Direction(42)))
	assert.Equal(t, Left, gs.Direction())
}

func TestAdvanceIntoWall(t *testing.T) {
	gs := newTestState(t)
	gs.snake = []Position{{X: 0, Y: 5}}
	gs.direction = Left

	result := gs.Advance()
	assert.Equal(t, Result{Outcome: OutcomeGameOver, Reason: ReasonWall}, result)
	assert.True(t, gs.Over())
	assert.True(t, gs.Paused())
}

func TestAdvanceWallOnEveryEdge(t *testing.T) {
	last := TestGridSize - 1
	cases := []struct {
		name string
		head Position
		dir  Direction
	}{
		{"top", Position{X: 3, Y: 0}, Up},
		{"bottom", Position{X: 3, Y: last}, Down},
		{"left", Position{X: 0, Y: 3}, Left},
		{"right", Position{X: last, Y: 3}, Right},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gs := newTestState(t)
			gs.snake = []Position{tc.head}
			gs.direction = tc.dir
			assert.Equal(t, ReasonWall, gs.Advance().Reason)
		})
	}
}

func TestAdvanceIntoOwnBody(t *testing.T) {
	gs := newTestState(t)
	gs.snake = []Position{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}, {X: 4, Y: 6}}
	gs.direction = Down
	gs.food = Position{X: 0, Y: 0}

	result := gs.Advance()
	assert.Equal(t, Result{Outcome: OutcomeGameOver, Reason: ReasonSelf}, result)
}

func TestAdvanceIntoTailCellCollides(t *testing.T) {
	gs := newTestState(t)
	gs.snake = []Position{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}}
	gs.direction = Down
	gs.food = Position{X: 0, Y: 0}

	assert.Equal(t, ReasonSelf, gs.Advance().Reason)
}

func TestAdvanceAlongStraightBody(t *testing.T) {
	gs := newTestState(t)
	gs.snake = []Position{{X: 5, Y: 8}, {X: 5, Y: 7}, {X: 5, Y: 6}, {X: 5, Y: 5}}
	gs.direction = Down
	gs.food = Position{X: 0, Y: 0}

	result := gs.Advance()
	require.Equal(t, OutcomeContinued, result.Outcome)
	assert.Equal(t, []Position{{X: 5, Y: 9}, {X: 5, Y: 8}, {X: 5, Y: 7}, {X: 5, Y: 6}}, gs.snake)
}

func TestAdvanceAfterGameOverChangesNothing(t *testing.T) {
	gs := newTestState(t)
	gs.snake = []Position{{X: 0, Y: 5}}
	gs.direction = Left
	gs.Advance()

	before := gs.Snapshot()
	for i := 0; i < 5; i++ {
		gs.SetDirection(Up)
		result := gs.Advance()
		assert.Equal(t, Result{Outcome: OutcomeGameOver, Reason: ReasonWall}, result)
	}
	after := gs.Snapshot()
	assert.Equal(t, before.Snake, after.Snake)
	assert.Equal(t, before.Food, after.Food)
	assert.Equal(t, before.Score, after.Score)
}

func TestAdvanceWhilePausedIsSuspended(t *testing.T) {
	gs := newTestState(t)
	gs.SetPaused(true)

	before := gs.Snapshot()
	assert.Equal(t, OutcomeSuspended, gs.Advance().Outcome)
	assert.Equal(t, before, gs.Snapshot())
}

func TestAdvanceFillingBoardIsWin(t *testing.T) {
	gs := NewGameState(2, rand.New(rand.NewSource(TestSeed)))
	gs.snake = []Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	gs.direction = Down
	gs.food = Position{X: 0, Y: 1}

	result := gs.Advance()
	assert.Equal(t, Result{Outcome: OutcomeGameOver, Reason: ReasonBoardFull}, result)
	assert.Equal(t, 1, gs.Score())
	assert.Equal(t, 4, gs.Len())
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	gs := newTestState(t)
	snapshot := gs.Snapshot()
	snapshot.Snake[0] = Position{X: -1, Y: -1}

	assert.Equal(t, Position{X: 10, Y: 10}, gs.Head())
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	gs := NewGameState(8, rand.New(rand.NewSource(TestSeed)))
	directions := []Direction{Up, Down, Left, Right}
	games := 0

	for step := 0; step < 5000; step++ {
		previous := gs.Direction()
		gs.SetDirection(directions[rng.Intn(len(directions))])
		require.NotEqual(t, previous.Opposite(), gs.Direction())

		lenBefore, scoreBefore := gs.Len(), gs.Score()
		result := gs.Advance()

		switch result.Outcome {
		case OutcomeContinued:
			require.Equal(t, lenBefore, gs.Len())
			require.Equal(t, scoreBefore, gs.Score())
		case OutcomeAteFood:
			require.Equal(t, lenBefore+1, gs.Len())
			require.Equal(t, scoreBefore+1, gs.Score())
		case OutcomeGameOver:
			require.Contains(t, []Reason{ReasonWall, ReasonSelf, ReasonBoardFull}, result.Reason)
			games++
			gs.Reset()
		}
		assertValidState(t, gs)
	}
	assert.Positive(t, games)
}

func TestParseDirection(t *testing.T) {
	for token, want := range map[string]Direction{"up": Up, " Down ": Down, "a": Left, "RIGHT": Right} {
		got, err := ParseDirection(token)
		require.NoError(t, err, token)
		assert.Equal(t, want, got)
	}

	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrUnknownDirection)
}

func TestDirectionOpposites(t *testing.T) {
	for _, d := range []Direction{Up, Down, Left, Right} {
		assert.Equal(t, d, d.Opposite().Opposite())
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		assert.Equal(t, 0, dx+ox)
		assert.Equal(t, 0, dy+oy)
	}
}
