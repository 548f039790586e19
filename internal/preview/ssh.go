package preview

import (
	"context"
	"errors"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"folio/internal/config"
	"folio/internal/site"
	"folio/internal/uistate"
)

// SSHServer serves the terminal preview to remote sessions. Every session
// gets its own document and controller; the preference store is shared, so
// a theme toggled from a phone shows up on the next laptop session.
type SSHServer struct {
	cfg    config.Config
	server *ssh.Server
}

// NewSSH builds the wish server around the preview model.
func NewSSH(cfg config.Config, content *site.Content, store uistate.Storage) (*SSHServer, error) {
	handler := func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		renderer := bm.MakeRenderer(s)
		model := New(store, content, renderer.HasDarkBackground)
		return model, []tea.ProgramOption{tea.WithAltScreen()}
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.SSHAddr()),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithIdleTimeout(cfg.SSHIdleTimeout),
		wish.WithMiddleware(
			bm.Middleware(handler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return nil, err
	}
	return &SSHServer{cfg: cfg, server: server}, nil
}

// Run serves until ctx is canceled.
func (s *SSHServer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.server.Shutdown(context.Background())
	}()

	log.Printf("event=ssh_preview_started addr=%s host_key_path=%s idle_timeout=%s",
		s.cfg.SSHAddr(), s.cfg.SSHHostKeyPath, s.cfg.SSHIdleTimeout)
	err := s.server.ListenAndServe()
	if err == nil || errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}
