// Package tui provides the Bubble Tea integration for the Blokus sandbox.
// It handles the terminal UI loop, input mapping, persistence of placed
// pieces and the optional chat pane.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blokus/internal/core"
	"github.com/vovakirdan/tui-blokus/internal/registry"
	"github.com/vovakirdan/tui-blokus/internal/storage"
)

// Layout constants for the board pane and chat pane.
const (
	boardPaneW   = 75 // Width the sandbox needs for board and sidebar
	boardPaneH   = 23
	chatPaneMinW = 28
	helpRows     = 1
)

// resizer is implemented by games that can resize without losing the board.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for one sandbox run.
// The sandbox has no clock: every key press is one Step.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	keys   KeyMap
	help   help.Model
	chat   *ChatModel // nil when no relay is attached

	owner        string // recorded with stored sessions
	storeSession int64  // 0 until the first placement is persisted
	state        core.GameState
	status       string
	width        int
	height       int

	embedded   bool // inside a SessionModel: Back returns to the menu
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, owner string) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		owner:  owner,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
}

// WithChat attaches a chat pane and enables its key binding.
func (m Model) WithChat(chat ChatModel) Model {
	m.chat = &chat
	m.keys = m.keys.WithChat()
	return m
}

// Init initializes the model and resets the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.resizeGame()
	if m.chat != nil {
		return m.chat.Init()
	}
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case chatEventMsg, chatHistoryMsg, chatClosedMsg:
		if m.chat == nil {
			return m, nil
		}
		chat, cmd := m.chat.Update(msg)
		m.chat = &chat
		return m, cmd
	}

	if m.chat != nil && m.chat.Focused() {
		chat, cmd := m.chat.Update(msg)
		m.chat = &chat
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if m.chat != nil && m.chat.Focused() {
		chat, cmd := m.chat.Update(msg)
		m.chat = &chat
		m.resizeGame()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back):
		if m.embedded {
			m.endStoreSession()
			m.backToMenu = true
			return m, nil
		}
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Chat):
		if m.chat == nil {
			return m, nil
		}
		cmd := m.chat.Focus()
		m.resizeGame()
		return m, cmd
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionNone {
		return m, nil
	}
	m.step(action)
	return m, nil
}

// step runs one action through the game and persists what it placed.
func (m *Model) step(action core.Action) {
	result := m.game.Step(core.FrameOf(action))
	m.state = result.State
	m.status = result.Message

	for _, ev := range result.Placements {
		m.persist(ev)
	}
	if action == core.ActionRestart {
		m.endStoreSession()
	}
}

// persist records a placement, starting a stored session on first use.
func (m *Model) persist(ev core.PlacementEvent) {
	if m.store == nil {
		return
	}
	if m.storeSession == 0 {
		id, err := m.store.StartSession(m.game.ID(), m.owner, m.state.Rule)
		if err != nil {
			m.status = "not saved: " + err.Error()
			return
		}
		m.storeSession = id
	}
	if _, err := m.store.SaveMove(m.storeSession, ev); err != nil {
		m.status = "not saved: " + err.Error()
	}
}

func (m *Model) endStoreSession() {
	if m.store != nil && m.storeSession != 0 {
		//nolint:errcheck // Best-effort, the moves are already stored
		m.store.EndSession(m.storeSession)
	}
	m.storeSession = 0
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.endStoreSession()
	m.quitting = true
	return m, tea.Quit
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.resizeGame()
	return m, nil
}

// chatPlacement decides where the chat pane goes for the current size.
type chatPlacement int

const (
	chatHidden chatPlacement = iota
	chatRight
	chatBelow
)

// layout returns the game pane size and where the chat pane goes.
func (m Model) layout() (gameW, gameH int, place chatPlacement) {
	gameW, gameH = m.width, m.height-helpRows
	if m.chat == nil {
		return gameW, gameH, chatHidden
	}
	switch {
	case m.width >= boardPaneW+chatPaneMinW:
		return boardPaneW, gameH, chatRight
	case gameH-m.chat.Height() >= boardPaneH || m.chat.Focused():
		return gameW, max(gameH-m.chat.Height(), 0), chatBelow
	}
	return gameW, gameH, chatHidden
}

// resizeGame pushes the current layout to the game and screen buffer.
func (m *Model) resizeGame() {
	w, h, _ := m.layout()
	m.config.ScreenW = w
	m.config.ScreenH = h
	m.screen.Resize(w, h)
	if r, ok := m.game.(resizer); ok {
		r.Resize(w, h)
	} else {
		m.game.Reset(m.config)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}
	dir := filepath.Join(home, ".blokus", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	board := RenderScreen(m.screen)

	gameW, _, place := m.layout()
	var body string
	switch place {
	case chatRight:
		body = lipgloss.JoinHorizontal(lipgloss.Top, board, m.chat.View(m.width-gameW))
	case chatBelow:
		body = lipgloss.JoinVertical(lipgloss.Left, board, m.chat.View(m.width))
	default:
		body = board
	}

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status
	}
	return body + "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(footer)
}

// State returns the last game summary.
func (m Model) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, owner string) error {
	model := NewModel(game, store, cfg, owner)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
