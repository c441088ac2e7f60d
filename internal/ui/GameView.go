package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Mshel/gridsnake/internal/game"
	"github.com/Mshel/gridsnake/internal/telemetry"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/trace"
)

type viewState int

const (
	StatePlaying viewState = iota
	StateGameOver
)

var (
	voidColor    = "233"
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("172")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	voidStyle = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("235"))
	headStyle = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("46")).Bold(true)
	bodyStyle = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("34"))
	foodStyle = lipgloss.NewStyle().Background(lipgloss.Color(voidColor)).Foreground(lipgloss.Color("196"))

	headRunes = map[game.Direction]string{
		game.Up:    "▲",
		game.Down:  "▼",
		game.Left:  "◀",
		game.Right: "▶",
	}
)

const statusPanelWidth = 30

// Options configure one player's session.
type Options struct {
	Context   context.Context
	Settings  game.Settings
	SessionID string
	Pilot     Pilot
	Width     int
	Height    int
}

// gameTrace is shared by every copy of a GameModel. The previous game's span
// must be finished before begin opens the next one.
type gameTrace struct {
	mu   sync.Mutex
	span trace.Span
}

func (g *gameTrace) begin(ctx context.Context, sessionID string, gridSize int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, g.span = telemetry.StartGame(ctx, sessionID, gridSize)
}

func (g *gameTrace) finish(event game.GameOverEvent) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.end(event)
}

func (g *gameTrace) end(event game.GameOverEvent) {
	if g.span == nil {
		return
	}
	telemetry.EndGame(g.span, event)
	g.span = nil
}

// GameModel renders the board and turns key presses into controller calls.
type GameModel struct {
	TickCount    int
	ScreenWidth  int
	ScreenHeight int

	controller *game.Controller
	updates    <-chan tea.Msg
	snapshot   game.RenderSnapshot
	round      int
	score      int
	help       help.Model
	pilot      Pilot
	logger     *log.Logger

	ctx       context.Context
	sessionID string
	trace     *gameTrace

	gameState     viewState
	gameOverState GameOverState
}

func NewGameModel(opts Options) GameModel {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	listener := newChannelListener()
	controller := game.NewController(opts.Settings, listener)

	var pilot Pilot
	if opts.Pilot != nil {
		pilot = &guardedPilot{pilot: opts.Pilot}
	}

	return GameModel{
		ScreenWidth:  opts.Width,
		ScreenHeight: opts.Height,
		controller:   controller,
		updates:      listener.updates,
		snapshot:     controller.Snapshot(),
		help:         help.New(),
		pilot:        pilot,
		logger:       log.With("session", opts.SessionID),
		ctx:          opts.Context,
		sessionID:    opts.SessionID,
		trace:        &gameTrace{},
		gameState:    StatePlaying,
		gameOverState: GameOverState{
			ScreenWidth:  opts.Width,
			ScreenHeight: opts.Height,
		},
	}
}

func (m GameModel) Init() tea.Cmd {
	return m.listenForGameUpdates()
}

// StartGame begins a new game unless one is already in progress.
func (m GameModel) StartGame() GameModel {
	phase := m.controller.Phase()
	if phase == game.PhaseRunning || phase == game.PhasePaused {
		return m
	}

	if phase == game.PhaseGameOver {
		m.trace.finish(m.controller.LastGameOver())
	}
	m.controller.Start()
	m.round = m.controller.Snapshot().Round
	m.trace.begin(m.ctx, m.sessionID, m.controller.GridSize())
	m.logger.Info("Game started.", "grid", m.controller.GridSize(), "autopilot", m.pilot != nil)

	m.gameState = StatePlaying
	m.gameOverState.SelectedButton = 0
	m.TickCount = 0
	return m
}

// Close stops the controller and releases the pilot. Safe to call twice.
func (m GameModel) Close() {
	phase := m.controller.Phase()
	m.controller.Close()
	if phase == game.PhaseRunning || phase == game.PhasePaused {
		m.trace.finish(m.controller.LastGameOver())
	}
	if m.pilot != nil {
		m.pilot.Close()
	}
}

func (m GameModel) Phase() game.Phase {
	return m.controller.Phase()
}

func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.gameOverState.ScreenWidth = msg.Width
		m.gameOverState.ScreenHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.gameState == StateGameOver {
			return m.updateGameOver(msg)
		}
		return m.updatePlaying(msg)

	case TickMsg:
		if msg.Snapshot.Round != m.round {
			return m, m.listenForGameUpdates()
		}
		m.TickCount++
		m.snapshot = msg.Snapshot
		m.score = msg.Snapshot.Score
		m.steer(msg.Snapshot)
		return m, m.listenForGameUpdates()

	case ScoreChangedMsg:
		m.score = msg.Score
		return m, m.listenForGameUpdates()

	case GameOverMsg:
		// A restart can overtake the previous game's event.
		if msg.Event.Round != m.round {
			return m, m.listenForGameUpdates()
		}
		m.logger.Info("Showing game over screen.", "score", msg.Event.FinalScore, "reason", msg.Event.Reason)
		m.trace.finish(msg.Event)
		m.gameState = StateGameOver
		m.gameOverState.Event = msg.Event
		m.gameOverState.SelectedButton = 0
		m.score = msg.Event.FinalScore
		return m, m.listenForGameUpdates()
	}

	return m, nil
}

func (m GameModel) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.controller.RequestDirection(game.Up)
	case key.Matches(msg, keys.Down):
		m.controller.RequestDirection(game.Down)
	case key.Matches(msg, keys.Left):
		m.controller.RequestDirection(game.Left)
	case key.Matches(msg, keys.Right):
		m.controller.RequestDirection(game.Right)
	case key.Matches(msg, keys.Pause):
		m.controller.Pause()
	case key.Matches(msg, keys.End):
		m.controller.End()
	case key.Matches(msg, keys.Start), key.Matches(msg, keys.Confirm):
		return m.StartGame(), nil
	}
	return m, nil
}

func (m GameModel) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		m.gameOverState.SelectedButton = max(0, m.gameOverState.SelectedButton-1)
	case key.Matches(msg, keys.Right):
		m.gameOverState.SelectedButton = min(1, m.gameOverState.SelectedButton+1)
	case key.Matches(msg, keys.Start):
		return m.StartGame(), nil
	case key.Matches(msg, keys.Back):
		return m, func() tea.Msg { return QuitGameMsg{} }
	case key.Matches(msg, keys.Confirm):
		// 0: Play again, 1: Exit
		if m.gameOverState.SelectedButton == 0 {
			return m.StartGame(), nil
		}
		return m, func() tea.Msg { return QuitGameMsg{} }
	}
	return m, nil
}

func (m GameModel) steer(snapshot game.RenderSnapshot) {
	if m.pilot == nil || m.controller.Phase() != game.PhaseRunning {
		return
	}
	dir, err := m.pilot.NextDirection(snapshot)
	if err != nil {
		m.logger.Warn("Autopilot failed.", "error", err)
		return
	}
	m.controller.RequestDirection(dir)
}

func (m GameModel) View() string {
	if m.gameState == StateGameOver {
		return m.gameOverState.RenderGameOverScreen()
	}

	board := mapViewStyle.Render(m.renderBoard())
	status := statusPanelStyle.Width(statusPanelWidth).Render(m.renderStatusPanel())
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, status)

	if m.ScreenWidth == 0 || m.ScreenHeight == 0 {
		return content
	}
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}

func (m GameModel) renderBoard() string {
	snapshot := m.snapshot
	size := snapshot.GridSize

	body := make(map[game.Position]bool, len(snapshot.Snake))
	for i := 1; i < len(snapshot.Snake); i++ {
		body[snapshot.Snake[i]] = true
	}
	hasSnake := len(snapshot.Snake) > 0

	var sb strings.Builder
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cell := game.Position{X: x, Y: y}
			switch {
			case hasSnake && cell == snapshot.Head():
				sb.WriteString(headStyle.Render(headRunes[snapshot.Direction]))
			case body[cell]:
				sb.WriteString(bodyStyle.Render("●"))
			case hasSnake && cell == snapshot.Food:
				sb.WriteString(foodStyle.Render("◆"))
			default:
				sb.WriteString(voidStyle.Render("·"))
			}
		}
		if y < size-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (m GameModel) renderStatusPanel() string {
	var statusContent strings.Builder

	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Snake ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("Score: %d\n", m.score))
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", len(m.snapshot.Snake)))
	statusContent.WriteString(fmt.Sprintf("Direction: %s\n", headRunes[m.snapshot.Direction]))
	statusContent.WriteString(fmt.Sprintf("State: %s\n", m.controller.Phase()))
	statusContent.WriteString(fmt.Sprintf("Ticks: %d\n", m.TickCount))
	if m.pilot != nil {
		statusContent.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("87")).Render("Autopilot on") + "\n")
	}

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	statusContent.WriteString(m.help.FullHelpView(keys.FullHelp()))

	return statusContent.String()
}

// listenForGameUpdates waits for the next controller event. Exactly one of
// these is outstanding at a time; every handled event re-arms it.
func (m GameModel) listenForGameUpdates() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		return <-updates
	}
}
