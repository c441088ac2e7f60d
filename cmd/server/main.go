package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mshel/gridsnake/internal/config"
	"github.com/Mshel/gridsnake/internal/server"
	"github.com/Mshel/gridsnake/internal/telemetry"
	"github.com/charmbracelet/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	log.SetLevel(cfg.LogLevel)

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

	sshServer, err := server.New(cfg)
	if err != nil {
		log.Error("Failed to create ssh server", "error", err)
		os.Exit(1)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	// Capturing system signal to kill server
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Could not stop server", "error", err)
	}
}
