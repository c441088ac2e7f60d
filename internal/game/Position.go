package game

import (
	"errors"
	"fmt"
	"strings"
)

// Position is a single board cell. X grows to the right, Y grows downward.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the neighbouring cell in direction d.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) InBounds(gridSize int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < gridSize && p.Y < gridSize
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var ErrUnknownDirection = errors.New("unknown direction")

func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Delta returns the unit offset for one step in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps an input token to a Direction. Input collaborators use it
// to reject malformed tokens before they reach the game state.
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "up", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	case "left", "a":
		return Left, nil
	case "right", "d":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, token)
}
