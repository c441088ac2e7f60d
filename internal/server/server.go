// Package server hosts one snake game per SSH session.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mshel/gridsnake/internal/config"
	"github.com/Mshel/gridsnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
)

type Server struct {
	cfg     config.Config
	limiter *ConnectionLimiter
	ssh     *ssh.Server
}

func New(cfg config.Config) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		limiter: NewConnectionLimiter(cfg.MaxConnectionsPerIP),
	}

	sshServer, err := wish.NewServer(
		wish.WithAddress(cfg.Address()),
		wish.WithHostKeyPath(cfg.PrivateKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(s.viewHandler),
			logging.Middleware(),
			activeterm.Middleware(),
			s.limiter.Middleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create ssh server: %w", err)
	}
	s.ssh = sshServer
	return s, nil
}

// ListenAndServe blocks until the server stops. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	log.Info("Starting SSH server", "address", s.cfg.Address())
	if err := s.ssh.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("Stopping SSH server")
	if err := s.ssh.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) viewHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sshSession.Pty()
	sessionID := uuid.NewString()
	log.Info("New game session", "session", sessionID, "user", sshSession.User())

	model := ui.NewControllerModel(ui.Options{
		Context:   sshSession.Context(),
		Settings:  s.cfg.GameSettings(),
		SessionID: sessionID,
		Pilot:     ui.LoadPilot(s.cfg.AutopilotScript),
		Width:     pty.Window.Width,
		Height:    pty.Window.Height,
	})

	go func() {
		<-sshSession.Context().Done()
		model.Close()
		log.Info("Game session closed", "session", sessionID)
	}()

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}
