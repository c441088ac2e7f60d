package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	IntroScreen Screen = iota
	GameScreen
)

// ControllerModel routes messages between the intro and game screens of one
// session.
type ControllerModel struct {
	CurrentScreen Screen

	IntroModel IntroModel
	GameModel  GameModel

	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(opts Options) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,
		IntroModel:    NewIntroModel(opts.Width, opts.Height),
		GameModel:     NewGameModel(opts),
		ScreenWidth:   opts.Width,
		ScreenHeight:  opts.Height,
	}
}

// Init starts the only game update listener this session will have.
func (m ControllerModel) Init() tea.Cmd {
	return tea.Batch(m.IntroModel.Init(), m.GameModel.Init())
}

// Close ends the session's game and stops its tick driver.
func (m ControllerModel) Close() {
	m.GameModel.Close()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case GameScreen:
		return m.GameModel.View()
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.Close()
			return m, tea.Quit
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.IntroModel = m.updateIntro(msg)
		m.GameModel = m.updateGame(msg)
		return m, nil

	case IntroSubmitMsg:
		if msg == 1 {
			m.Close()
			return m, tea.Quit
		}
		m.CurrentScreen = GameScreen
		m.GameModel = m.GameModel.StartGame()
		return m, nil

	case QuitGameMsg:
		m.CurrentScreen = IntroScreen
		return m, m.IntroModel.Init()

	case TickMsg, ScoreChangedMsg, GameOverMsg:
		// Controller events always reach the game model so the update
		// listener keeps being re-armed on every screen.
		model, cmd := m.GameModel.Update(msg)
		m.GameModel = model.(GameModel)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.CurrentScreen {
	case IntroScreen:
		var model tea.Model
		model, cmd = m.IntroModel.Update(msg)
		m.IntroModel = model.(IntroModel)
	case GameScreen:
		var model tea.Model
		model, cmd = m.GameModel.Update(msg)
		m.GameModel = model.(GameModel)
	}
	return m, cmd
}

func (m ControllerModel) updateIntro(msg tea.Msg) IntroModel {
	model, _ := m.IntroModel.Update(msg)
	return model.(IntroModel)
}

func (m ControllerModel) updateGame(msg tea.Msg) GameModel {
	model, _ := m.GameModel.Update(msg)
	return model.(GameModel)
}
