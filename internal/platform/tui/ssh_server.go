package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-blokus/internal/core"
	"github.com/vovakirdan/tui-blokus/internal/registry"
	"github.com/vovakirdan/tui-blokus/internal/relay"
	"github.com/vovakirdan/tui-blokus/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2323").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.blokus/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// GameID is the variant highlighted in the menu.
	GameID string

	// Runtime is the base config handed to each sandbox.
	Runtime core.RuntimeConfig

	// ChatLines is the chat pane height; SendBuffer the per-session event buffer.
	ChatLines  int
	SendBuffer int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":2323",
		IdleTimeout: 30 * time.Minute,
		GameID:      "blokus",
		Runtime:     core.DefaultConfig(),
		ChatLines:   6,
		SendBuffer:  64,
	}
}

// SSHServer wraps a Wish SSH server. Every session gets its own sandbox;
// chat goes through the shared hub.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store // Optional
	hub    *relay.Hub     // Optional
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. store and hub may be nil.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, hub *relay.Hub, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "blokus-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		hub:    hub,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".blokus", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := s.config.Runtime
	cfg.ScreenW = pty.Window.Width
	cfg.ScreenH = pty.Window.Height

	model := NewSessionModel(s.store, cfg, sshSession.User(), s.config.GameID)

	if s.hub != nil {
		chatSession := relay.NewChannelSession(relay.NewSessionID(), s.config.SendBuffer)
		s.hub.Connect(chatSession)
		s.hub.Send(relay.SetUsernameMsg{SessionID: chatSession.ID(), Username: sshSession.User()})
		go func() {
			<-sshSession.Context().Done()
			s.hub.Disconnect(chatSession.ID())
			chatSession.Close()
		}()
		model = model.WithChat(NewChatModel(s.hub, chatSession, s.store, s.config.ChatLines))
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModel manages the full session flow: menu -> sandbox or history -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	preferID string
	menu     MenuModel
	play     *Model
	history  *HistoryModel
	chat     *ChatModel // Kept across sandboxes so the transcript survives
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username, preferID string) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		preferID: preferID,
		menu:     NewMenuModel(cfg, preferID),
	}
}

// WithChat attaches a chat pane to every sandbox this session opens.
func (m SessionModel) WithChat(chat ChatModel) SessionModel {
	m.chat = &chat
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.chat != nil {
		return tea.Batch(m.menu.Init(), m.chat.Init())
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.play != nil:
		return m.updatePlay(msg)
	case m.history != nil:
		return m.updateHistory(msg)
	}

	// Chat events keep flowing while the menu is up.
	switch msg.(type) {
	case chatEventMsg, chatHistoryMsg, chatClosedMsg:
		if m.chat != nil {
			chat, cmd := m.chat.Update(msg)
			m.chat = &chat
			return m, cmd
		}
		return m, nil
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// The menu answers a choice with tea.Quit for standalone use; drop it here.
	if m.menu.WantsHistory() {
		history := NewHistoryModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.history = &history
		return m, history.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// Shouldn't happen since menu only shows registered games
			return m, nil
		}
		m.preferID = selected.GameID
		m.config = m.menu.Config()

		play := NewModel(game, m.store, m.config, m.username)
		play.embedded = true
		if m.chat != nil {
			play = play.WithChat(*m.chat)
		}
		play.width, play.height = m.config.ScreenW, m.config.ScreenH
		m.play = &play

		// The chat listener is already running; only reset the game.
		game.Reset(m.config)
		play.resizeGame()
		return m, nil
	}

	return m, cmd
}

// updatePlay handles updates when a sandbox is open.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if play, ok := newModel.(Model); ok {
		m.play = &play
		m.chat = play.chat
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.play.BackToMenu() {
		m.play = nil
		m.menu = NewMenuModel(m.config, m.preferID)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateHistory handles updates when the history screen is open.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case chatEventMsg, chatHistoryMsg, chatClosedMsg:
		if m.chat != nil {
			chat, cmd := m.chat.Update(msg)
			m.chat = &chat
			return m, cmd
		}
		return m, nil
	}

	newModel, cmd := m.history.Update(msg)
	if history, ok := newModel.(HistoryModel); ok {
		m.history = &history
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.history = nil
		m.menu = NewMenuModel(m.config, m.preferID)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.play != nil:
		return m.play.View()
	case m.history != nil:
		return m.history.View()
	}
	return m.menu.View()
}
