package main

import (
	"context"
	"io"
	"os"

	"github.com/Mshel/gridsnake/internal/config"
	"github.com/Mshel/gridsnake/internal/telemetry"
	"github.com/Mshel/gridsnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func main() {
	if err := run(); err != nil {
		log.Error("Game exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log.SetLevel(cfg.LogLevel)

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "gridsnake")
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	ctx := context.Background()
	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Warn("Telemetry setup failed, running without traces", "error", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Error("Could not shut down telemetry", "error", err)
				}
			}()
		}
	}

	model := ui.NewControllerModel(ui.Options{
		Context:   ctx,
		Settings:  cfg.GameSettings(),
		SessionID: uuid.NewString(),
		Pilot:     ui.LoadPilot(cfg.AutopilotScript),
	})
	defer model.Close()

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
