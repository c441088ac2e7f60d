package ui

import (
	"fmt"

	"github.com/Mshel/gridsnake/internal/game"
	"github.com/charmbracelet/lipgloss"
)

// QuitGameMsg sends the controller back to the intro screen.
type QuitGameMsg struct{}

// GameOverState holds the data and local state for rendering the game over screen.
type GameOverState struct {
	Event          game.GameOverEvent
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int
}

var (
	gameOverButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = gameOverButtonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))
)

var reasonText = map[game.Reason]string{
	game.ReasonWall:      "Hit the wall",
	game.ReasonSelf:      "Bit your own tail",
	game.ReasonEnded:     "Game ended",
	game.ReasonBoardFull: "Filled the whole board",
}

// RenderGameOverScreen draws the final score and the replay / exit buttons.
func (g *GameOverState) RenderGameOverScreen() string {
	messageStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Padding(1, 5).
		Align(lipgloss.Center)

	title := messageStyle.Render("💀 G A M E   O V E R 💀")
	if g.Event.Won() {
		title = messageStyle.Foreground(lipgloss.Color("10")).Render("🏆 Y O U   W I N 🏆")
	}

	stats := fmt.Sprintf("\nFinal Score: %d\nLength: %d\n%s\n", g.Event.FinalScore, g.Event.Length, reasonText[g.Event.Reason])

	playButton := gameOverButtonStyle.Render("PLAY AGAIN")
	exitButton := gameOverButtonStyle.Render("EXIT")
	if g.SelectedButton == 0 {
		playButton = selectedButtonStyle.Render("PLAY AGAIN")
	} else {
		exitButton = selectedButtonStyle.Render("EXIT")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, playButton, exitButton)
	content := lipgloss.JoinVertical(lipgloss.Center, title, stats, buttons)
	boxed := lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 2).Render(content)

	if g.ScreenWidth == 0 || g.ScreenHeight == 0 {
		return boxed
	}
	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight, lipgloss.Center, lipgloss.Center, boxed)
}
