package game

import "time"

const (
	DefaultGridSize     = 20
	DefaultTickInterval = 200 * time.Millisecond
)

// Settings fixes the board and tick cadence for every game a Controller runs.
type Settings struct {
	GridSize     int
	TickInterval time.Duration
	// Seed for food placement. 0 picks a time based seed.
	Seed int64
}

func DefaultSettings() Settings {
	return Settings{
		GridSize:     DefaultGridSize,
		TickInterval: DefaultTickInterval,
	}
}

func (s Settings) withDefaults() Settings {
	if s.GridSize < 2 {
		s.GridSize = DefaultGridSize
	}
	if s.TickInterval <= 0 {
		s.TickInterval = DefaultTickInterval
	}
	if s.Seed == 0 {
		s.Seed = time.Now().UnixNano()
	}
	return s
}
