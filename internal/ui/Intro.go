package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntroSubmitMsg carries the chosen intro button: 0 starts a game, 1 quits.
type IntroSubmitMsg int

// IntroModel holds the state for the main menu.
type IntroModel struct {
	selected int
	width    int
	height   int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{selected: 0, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "right", "l", "tab":
			m.selected = 1 - m.selected
		case "enter":
			selected := m.selected
			return m, func() tea.Msg { return IntroSubmitMsg(selected) }
		}
	}
	return m, nil
}

var snakeAscii = `
   ____ ____  ___ ____    ____  _   _    _    _  _______
  / ___|  _ \|_ _|  _ \  / ___|| \ | |  / \  | |/ / ____|
 | |  _| |_) || || | | | \___ \|  \| | / _ \ | ' /|  _|
 | |_| |  _ < | || |_| |  ___) | |\  |/ ___ \| . \| |___
  \____|_| \_\___|____/  |____/|_| \_/_/   \_\_|\_\_____|
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7")).
				Padding(0, 3).
				Margin(1, 2).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("46")).
					Foreground(lipgloss.Color("0"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(snakeAscii))
	sb.WriteString("\n")

	start := introButtonStyle.Render("Start Game")
	quit := introButtonStyle.Render("Quit")
	if m.selected == 0 {
		start = introSelectedButtonStyle.Render("Start Game")
	} else {
		quit = introSelectedButtonStyle.Render("Quit")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, start, quit)
	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), buttons)

	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
