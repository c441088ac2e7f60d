package ui

import (
	"errors"
	"sync"

	"github.com/Mshel/gridsnake/internal/autopilot"
	"github.com/Mshel/gridsnake/internal/game"
	"github.com/charmbracelet/log"
)

var errPilotClosed = errors.New("autopilot closed")

// Pilot picks directions on behalf of the player.
type Pilot interface {
	NextDirection(snapshot game.RenderSnapshot) (game.Direction, error)
	Close()
}

// LoadPilot returns nil when script is empty or cannot be loaded, which leaves
// the session on keyboard input only.
func LoadPilot(script string) Pilot {
	if script == "" {
		return nil
	}
	pilot, err := autopilot.LoadLuaPilot(script)
	if err != nil {
		log.Warn("Autopilot disabled.", "script", script, "error", err)
		return nil
	}
	return pilot
}

// guardedPilot serializes the bubbletea loop and session teardown, which may
// run on different goroutines.
type guardedPilot struct {
	mu     sync.Mutex
	pilot  Pilot
	closed bool
}

func (g *guardedPilot) NextDirection(snapshot game.RenderSnapshot) (game.Direction, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return 0, errPilotClosed
	}
	return g.pilot.NextDirection(snapshot)
}

func (g *guardedPilot) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.closed {
		g.closed = true
		g.pilot.Close()
	}
}
