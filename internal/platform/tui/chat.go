package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blokus/internal/relay"
	"github.com/vovakirdan/tui-blokus/internal/storage"
)

// chatEventMsg wraps a hub event delivered to this session.
type chatEventMsg struct {
	evt relay.ServerEvent
}

// chatClosedMsg is sent once the session's event stream ends.
type chatClosedMsg struct{}

// chatHistoryMsg carries stored lines for a room just joined.
type chatHistoryMsg struct {
	room    string
	records []relay.ChatRecord
}

// ChatModel is the chat pane shown beside the board in SSH sessions.
// It is a sub-model: the owning model forwards messages and draws View.
type ChatModel struct {
	hub      *relay.Hub
	session  *relay.ChannelSession
	store    *storage.Store // Optional, for room history
	input    textinput.Model
	lines    []string
	maxLines int
	username string
	room     string
	closed   bool
}

// NewChatModel creates a chat pane bound to a hub session.
func NewChatModel(hub *relay.Hub, session *relay.ChannelSession, store *storage.Store, maxLines int) ChatModel {
	if maxLines < 1 {
		maxLines = 6
	}
	ti := textinput.New()
	ti.Placeholder = "say something, /join room, /rooms, /nick name"
	ti.CharLimit = 512
	ti.Prompt = "> "

	return ChatModel{
		hub:      hub,
		session:  session,
		store:    store,
		input:    ti,
		maxLines: maxLines,
	}
}

// Init starts listening for hub events.
func (c ChatModel) Init() tea.Cmd {
	return c.waitForEvent()
}

// waitForEvent returns a command that waits for hub events.
func (c ChatModel) waitForEvent() tea.Cmd {
	session := c.session
	return func() tea.Msg {
		if session == nil {
			return nil
		}
		select {
		case evt := <-session.Events():
			return chatEventMsg{evt: evt}
		case <-session.Done():
			return chatClosedMsg{}
		}
	}
}

// loadHistory fetches the latest stored lines of a room.
func (c ChatModel) loadHistory(room string) tea.Cmd {
	store, n := c.store, c.maxLines
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		records, err := store.RecentChat(room, n)
		if err != nil {
			return nil
		}
		return chatHistoryMsg{room: room, records: records}
	}
}

// Focused reports whether the input has keyboard focus.
func (c ChatModel) Focused() bool {
	return c.input.Focused()
}

// Focus gives the input keyboard focus.
func (c *ChatModel) Focus() tea.Cmd {
	return c.input.Focus()
}

// Blur releases keyboard focus.
func (c *ChatModel) Blur() {
	c.input.Blur()
}

// Lines returns the visible transcript.
func (c ChatModel) Lines() []string {
	return c.lines
}

// Update handles chat messages and, when focused, key presses.
func (c ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case chatEventMsg:
		cmd := c.handleEvent(msg.evt)
		return c, tea.Batch(cmd, c.waitForEvent())

	case chatHistoryMsg:
		if msg.room == c.room {
			history := make([]string, 0, len(msg.records))
			for _, rec := range msg.records {
				history = append(history, formatChatLine(rec.Timestamp, rec.Username, rec.Message))
			}
			c.lines = append(history, c.lines...)
			c.trim()
		}
		return c, nil

	case chatClosedMsg:
		c.closed = true
		c.addLine("! chat disconnected")
		return c, nil

	case tea.KeyMsg:
		if !c.Focused() {
			return c, nil
		}
		switch msg.Type {
		case tea.KeyEsc:
			c.Blur()
			return c, nil
		case tea.KeyEnter:
			c.submit(c.input.Value())
			c.input.Reset()
			return c, nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChatModel) handleEvent(evt relay.ServerEvent) tea.Cmd {
	switch e := evt.(type) {
	case relay.UsernameSetEvent:
		c.username = e.Username
		c.addLine("* you are " + e.Username)
	case relay.JoinRoomEvent:
		if !e.OK() {
			c.addLine(fmt.Sprintf("! cannot join %q: %s", e.Room, e.Err))
			return nil
		}
		c.room = e.Room
		c.lines = nil
		c.addLine("* joined #" + e.Room)
		return c.loadHistory(e.Room)
	case relay.RoomsEvent:
		if len(e.Rooms) == 0 {
			c.addLine("* no rooms")
		} else {
			c.addLine("* rooms: " + strings.Join(e.Rooms, ", "))
		}
	case relay.ChatBroadcastEvent:
		c.addLine(formatChatLine(e.Timestamp, e.Username, e.Message))
	case relay.ErrorEvent:
		c.addLine("! " + e.Message)
	}
	return nil
}

// submit turns one input line into a hub message.
func (c *ChatModel) submit(line string) {
	line = strings.TrimSpace(line)
	if line == "" || c.hub == nil || c.session == nil {
		return
	}
	id := c.session.ID()

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/join":
		c.hub.Send(relay.JoinRoomMsg{SessionID: id, Room: arg})
	case "/leave":
		c.hub.Send(relay.LeaveRoomMsg{SessionID: id})
		c.room = ""
		c.addLine("* left the room")
	case "/rooms":
		c.hub.Send(relay.GetRoomsMsg{SessionID: id})
	case "/nick":
		c.hub.Send(relay.SetUsernameMsg{SessionID: id, Username: arg})
	default:
		c.hub.Send(relay.SendChatMsg{SessionID: id, Message: line})
	}
}

func (c *ChatModel) addLine(line string) {
	c.lines = append(c.lines, line)
	c.trim()
}

func (c *ChatModel) trim() {
	if extra := len(c.lines) - c.maxLines; extra > 0 {
		c.lines = append([]string(nil), c.lines[extra:]...)
	}
}

func formatChatLine(ts uint32, user, msg string) string {
	return fmt.Sprintf("%s %s: %s", time.Unix(int64(ts), 0).Format("15:04"), user, msg)
}

// Height returns the rows View occupies.
func (c ChatModel) Height() int {
	return c.maxLines + 4 // border, header, input
}

// View renders the pane at the given outer width.
func (c ChatModel) View(width int) string {
	inner := max(width-4, 10)

	header := "chat"
	if c.room != "" {
		header = "#" + c.room
	}
	if c.username != "" {
		header += " as " + c.username
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	var b strings.Builder
	b.WriteString(headerStyle.Render(truncate(header, inner)))
	b.WriteString("\n")
	for i := range c.maxLines {
		if i < len(c.lines) {
			b.WriteString(truncate(c.lines[i], inner))
		}
		b.WriteString("\n")
	}
	c.input.Width = inner - lipgloss.Width(c.input.Prompt) - 1
	if c.Focused() {
		b.WriteString(c.input.View())
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("t: chat"))
	}

	border := lipgloss.Color("240")
	if c.Focused() {
		border = lipgloss.Color("10")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2).
		Render(b.String())
}

// truncate cuts s to at most n display columns.
func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
