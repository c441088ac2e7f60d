package ui

import (
	"fmt"

	"github.com/Mshel/gridsnake/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

const updateBufferSize = 256

// Messages pushed from the game controller into the bubbletea loop.
type TickMsg struct {
	Snapshot game.RenderSnapshot
}

type ScoreChangedMsg struct {
	Score int
}

type GameOverMsg struct {
	Event game.GameOverEvent
}

// channelListener adapts controller callbacks to tea messages. Sends never
// block since the controller calls it with its lock held.
type channelListener struct {
	updates chan tea.Msg
}

func newChannelListener() channelListener {
	return channelListener{updates: make(chan tea.Msg, updateBufferSize)}
}

func (l channelListener) OnTick(snapshot game.RenderSnapshot) {
	l.send(TickMsg{Snapshot: snapshot})
}

func (l channelListener) OnScoreChanged(score int) {
	l.send(ScoreChangedMsg{Score: score})
}

// OnGameOver is never dropped. When the buffer is full the oldest pending
// message is evicted to make room.
func (l channelListener) OnGameOver(event game.GameOverEvent) {
	msg := GameOverMsg{Event: event}
	for {
		select {
		case l.updates <- msg:
			return
		default:
		}
		select {
		case evicted := <-l.updates:
			log.Warn("Update channel full, evicting message.", "type", fmt.Sprintf("%T", evicted))
		default:
		}
	}
}

func (l channelListener) send(msg tea.Msg) {
	select {
	case l.updates <- msg:
	default:
		log.Warn("Update channel full, dropping message.", "type", fmt.Sprintf("%T", msg))
	}
}
