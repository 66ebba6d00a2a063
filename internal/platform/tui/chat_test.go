package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blokus/internal/relay"
)

// nextEvent runs the chat's wait command with a timeout.
func nextEvent(t *testing.T, c ChatModel) tea.Msg {
	t.Helper()
	out := make(chan tea.Msg, 1)
	go func() { out <- c.waitForEvent()() }()
	select {
	case msg := <-out:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for chat event")
		return nil
	}
}

func newTestChat(t *testing.T) ChatModel {
	t.Helper()
	hub := relay.NewHub(relay.HubConfig{DefaultRoom: "lobby"}, nil, nil)
	hub.Start()
	t.Cleanup(hub.Stop)

	session := relay.NewChannelSession(relay.NewSessionID(), 16)
	t.Cleanup(session.Close)
	hub.Connect(session)
	return NewChatModel(hub, session, nil, 4)
}

func TestChatJoinAndSay(t *testing.T) {
	c := newTestChat(t)

	c, _ = c.Update(nextEvent(t, c))
	if c.room != "lobby" {
		t.Fatalf("room = %q, want lobby", c.room)
	}

	c.submit("/nick Kai")
	c, _ = c.Update(nextEvent(t, c))
	if c.username != "Kai" {
		t.Fatalf("username = %q, want Kai", c.username)
	}

	c.submit("hello there")
	c, _ = c.Update(nextEvent(t, c))
	last := c.Lines()[len(c.Lines())-1]
	if !strings.HasSuffix(last, "Kai: hello there") {
		t.Errorf("last line = %q", last)
	}

	c.submit("/rooms")
	c, _ = c.Update(nextEvent(t, c))
	if got := c.Lines()[len(c.Lines())-1]; got != "* rooms: lobby" {
		t.Errorf("rooms line = %q", got)
	}
}

func TestChatJoinRejected(t *testing.T) {
	c := newTestChat(t)
	c, _ = c.Update(nextEvent(t, c))

	c.submit("/join two words")
	c, _ = c.Update(nextEvent(t, c))
	if c.room != "lobby" {
		t.Errorf("failed join should keep the room, got %q", c.room)
	}
	if got := c.Lines()[len(c.Lines())-1]; !strings.HasPrefix(got, "! cannot join") {
		t.Errorf("last line = %q", got)
	}
}

func TestChatKeepsLastLines(t *testing.T) {
	c := NewChatModel(nil, nil, nil, 2)
	for _, msg := range []string{"a", "b", "c"} {
		c, _ = c.Update(chatEventMsg{evt: relay.ErrorEvent{Message: msg}})
	}
	got := c.Lines()
	if len(got) != 2 || got[0] != "! b" || got[1] != "! c" {
		t.Errorf("lines = %q", got)
	}
}

func TestChatFocusAndEscape(t *testing.T) {
	c := NewChatModel(nil, nil, nil, 2)
	c.Focus()
	if !c.Focused() {
		t.Fatal("Focus should focus the input")
	}
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if c.Focused() {
		t.Error("esc should blur the input")
	}
}

func TestChatClosed(t *testing.T) {
	c := NewChatModel(nil, nil, nil, 2)
	c, _ = c.Update(chatClosedMsg{})
	if !c.closed || c.Lines()[0] != "! chat disconnected" {
		t.Errorf("closed = %v, lines = %q", c.closed, c.Lines())
	}
}
