package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Phase is the controller's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

type ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.Ticker.C }

func newTimeTicker(d time.Duration) ticker {
	return timeTicker{time.NewTicker(d)}
}

// Controller owns the tick driver for one player and mediates input into the
// GameState. Every method is safe to call from any goroutine.
type Controller struct {
	mu       sync.Mutex
	state    *GameState
	phase    Phase
	interval time.Duration
	listener Listener
	last     GameOverEvent

	newTicker func(time.Duration) ticker
	ticker    ticker
	// stop is closed to retire the running driver. A tick holding a stale
	// channel does nothing.
	stop chan struct{}
}

func NewController(settings Settings, listener Listener) *Controller {
	settings = settings.withDefaults()
	if listener == nil {
		listener = NopListener{}
	}
	rng := rand.New(rand.NewSource(settings.Seed))

	return &Controller{
		state:     NewGameState(settings.GridSize, rng),
		phase:     PhaseIdle,
		interval:  settings.TickInterval,
		listener:  listener,
		newTicker: newTimeTicker,
	}
}

// Start begins a fresh game. It only acts from Idle or GameOver.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseRunning || c.phase == PhasePaused {
		return
	}

	c.state.Reset()
	c.phase = PhaseRunning
	c.listener.OnScoreChanged(0)
	c.listener.OnTick(c.state.Snapshot())
	c.startDriver()
	log.Debug("Game started.", "grid", c.state.GridSize(), "interval", c.interval)
}

// Pause toggles between Running and Paused. In Idle and GameOver it does
// nothing.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseRunning:
		c.stopDriver()
		c.state.SetPaused(true)
		c.phase = PhasePaused
		log.Debug("Game paused.", "score", c.state.Score())
	case PhasePaused:
		c.state.SetPaused(false)
		c.phase = PhaseRunning
		c.startDriver()
		log.Debug("Game resumed.", "score", c.state.Score())
	}
}

// End finishes a running or paused game and reports the final score.
func (c *Controller) End() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseRunning && c.phase != PhasePaused {
		return
	}
	c.finish(ReasonEnded)
}

// RequestDirection forwards an input event. While paused or over the heading
// is stored and takes effect once the game runs again.
func (c *Controller) RequestDirection(d Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.SetDirection(d)
}

// Close stops the driver without emitting anything. Used on session teardown.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopDriver()
	if c.phase == PhaseRunning || c.phase == PhasePaused {
		c.state.Finish(ReasonEnded)
		c.phase = PhaseGameOver
		c.last = GameOverEvent{
			FinalScore: c.state.Score(),
			Reason:     ReasonEnded,
			Length:     c.state.Len(),
			Round:      c.state.Round(),
		}
	}
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.phase
}

func (c *Controller) Snapshot() RenderSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.Snapshot()
}

// LastGameOver returns the event emitted when the most recent game ended. It
// is the zero event until a game has finished.
func (c *Controller) LastGameOver() GameOverEvent {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.last
}

func (c *Controller) GridSize() int {
	return c.state.GridSize()
}

func (c *Controller) startDriver() {
	stop := make(chan struct{})
	t := c.newTicker(c.interval)
	c.stop = stop
	c.ticker = t

	go func() {
		for {
			select {
			case <-stop:
				return
			case <-t.C():
				c.tick(stop)
			}
		}
	}()
}

// stopDriver must be called with the lock held. Once it returns no tick from
// the retired driver can touch the state.
func (c *Controller) stopDriver() {
	if c.stop == nil {
		return
	}
	c.ticker.Stop()
	close(c.stop)
	c.stop = nil
	c.ticker = nil
}

func (c *Controller) tick(stop chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != stop || c.phase != PhaseRunning {
		return
	}

	result := c.state.Advance()
	switch result.Outcome {
	case OutcomeContinued:
		c.listener.OnTick(c.state.Snapshot())
	case OutcomeAteFood:
		c.listener.OnScoreChanged(c.state.Score())
		c.listener.OnTick(c.state.Snapshot())
	case OutcomeGameOver:
		if result.Reason == ReasonBoardFull {
			c.listener.OnScoreChanged(c.state.Score())
		}
		c.finish(result.Reason)
	}
}

func (c *Controller) finish(reason Reason) {
	c.stopDriver()
	c.state.Finish(reason)
	c.phase = PhaseGameOver

	event := GameOverEvent{
		FinalScore: c.state.Score(),
		Reason:     c.state.Reason(),
		Length:     c.state.Len(),
		Round:      c.state.Round(),
	}
	c.last = event
	log.Info("Game over.", "score", event.FinalScore, "reason", event.Reason, "length", event.Length)
	c.listener.OnGameOver(event)
}
