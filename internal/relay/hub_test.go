package relay

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

func recv(t *testing.T, s *ChannelSession) ServerEvent {
	t.Helper()
	select {
	case evt := <-s.Events():
		return evt
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func recvAs[T ServerEvent](t *testing.T, s *ChannelSession) T {
	t.Helper()
	evt := recv(t, s)
	out, ok := evt.(T)
	require.Truef(t, ok, "got %T (%+v)", evt, evt)
	return out
}

func newTestHub(t *testing.T, cfg HubConfig) *Hub {
	t.Helper()
	h := NewHub(cfg, nil, nil)
	h.Start()
	t.Cleanup(h.Stop)
	return h
}

func connect(t *testing.T, h *Hub) *ChannelSession {
	t.Helper()
	s := NewChannelSession(NewSessionID(), 16)
	h.Connect(s)
	t.Cleanup(s.Close)
	return s
}

func TestConnectJoinsDefaultRoom(t *testing.T) {
	h := newTestHub(t, DefaultHubConfig())
	s := connect(t, h)

	join := recvAs[JoinRoomEvent](t, s)
	assert.Equal(t, "lobby", join.Room)
	assert.True(t, join.OK())

	room, ok := h.RoomOf(s.ID())
	require.True(t, ok)
	assert.Equal(t, "lobby", room)
	assert.Equal(t, []string{"lobby"}, h.Rooms())
}

func TestSetUsername(t *testing.T) {
	h := newTestHub(t, HubConfig{})
	s := connect(t, h)

	h.Send(SetUsernameMsg{SessionID: s.ID(), Username: "  Mira  "})
	assert.Equal(t, "Mira", recvAs[UsernameSetEvent](t, s).Username)

	h.Send(SetUsernameMsg{SessionID: s.ID(), Username: ""})
	generated := recvAs[UsernameSetEvent](t, s).Username
	assert.Len(t, strings.Fields(generated), 2)

	h.Send(SetUsernameMsg{SessionID: s.ID(), Username: strings.Repeat("x", MaxUsernameLen+1)})
	recvAs[ErrorEvent](t, s)

	name, ok := h.Username(s.ID())
	require.True(t, ok)
	assert.Equal(t, generated, name)
}

func TestJoinRoomValidation(t *testing.T) {
	h := newTestHub(t, HubConfig{})
	s := connect(t, h)

	for _, room := range []string{"", "   ", "two words", strings.Repeat("r", MaxRoomNameLen+1)} {
		h.Send(JoinRoomMsg{SessionID: s.ID(), Room: room})
		evt := recvAs[JoinRoomEvent](t, s)
		assert.False(t, evt.OK(), "room %q", room)
	}
	assert.Empty(t, h.Rooms())
}

func TestSwitchingRoomsPrunesEmptyRoom(t *testing.T) {
	h := newTestHub(t, HubConfig{})
	s := connect(t, h)

	h.Send(JoinRoomMsg{SessionID: s.ID(), Room: "alpha"})
	require.True(t, recvAs[JoinRoomEvent](t, s).OK())
	h.Send(JoinRoomMsg{SessionID: s.ID(), Room: "beta"})
	require.True(t, recvAs[JoinRoomEvent](t, s).OK())

	h.Send(GetRoomsMsg{SessionID: s.ID()})
	assert.Equal(t, []string{"beta"}, recvAs[RoomsEvent](t, s).Rooms)

	h.Send(LeaveRoomMsg{SessionID: s.ID()})
	require.Eventually(t, func() bool { return len(h.Rooms()) == 0 }, waitFor, 5*time.Millisecond)
}

func TestRoomsSorted(t *testing.T) {
	h := newTestHub(t, HubConfig{})
	for _, room := range []string{"gamma", "alpha", "beta"} {
		s := connect(t, h)
		h.Send(JoinRoomMsg{SessionID: s.ID(), Room: room})
		recvAs[JoinRoomEvent](t, s)
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, h.Rooms())
}

func TestChatBroadcastStaysInRoom(t *testing.T) {
	h := newTestHub(t, DefaultHubConfig())
	a := connect(t, h)
	b := connect(t, h)
	c := connect(t, h)
	for _, s := range []*ChannelSession{a, b, c} {
		recvAs[JoinRoomEvent](t, s)
	}

	h.Send(JoinRoomMsg{SessionID: c.ID(), Room: "elsewhere"})
	recvAs[JoinRoomEvent](t, c)

	h.Send(SetUsernameMsg{SessionID: a.ID(), Username: "Ada"})
	recvAs[UsernameSetEvent](t, a)

	fixed := time.Unix(1_700_000_000, 0)
	h.now = func() time.Time { return fixed }
	h.Send(SendChatMsg{SessionID: a.ID(), Message: " hello "})

	want := ChatBroadcastEvent{Timestamp: 1_700_000_000, Username: "Ada", Room: "lobby", Message: "hello"}
	assert.Equal(t, want, recvAs[ChatBroadcastEvent](t, a))
	assert.Equal(t, want, recvAs[ChatBroadcastEvent](t, b))

	select {
	case evt := <-c.Events():
		t.Fatalf("session in another room got %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestChatWithoutUsernameAssignsOne(t *testing.T) {
	h := newTestHub(t, DefaultHubConfig())
	s := connect(t, h)
	recvAs[JoinRoomEvent](t, s)

	h.Send(SendChatMsg{SessionID: s.ID(), Message: "hi"})
	name := recvAs[UsernameSetEvent](t, s).Username
	chat := recvAs[ChatBroadcastEvent](t, s)
	assert.Equal(t, name, chat.Username)
}

func TestChatRequiresRoom(t *testing.T) {
	h := newTestHub(t, HubConfig{})
	s := connect(t, h)

	h.Send(SendChatMsg{SessionID: s.ID(), Message: "anyone?"})
	assert.Equal(t, "join a room first", recvAs[ErrorEvent](t, s).Message)
}

func TestChatTruncatedAndBlankIgnored(t *testing.T) {
	h := newTestHub(t, HubConfig{DefaultRoom: "lobby", MaxMessageLen: 5})
	s := connect(t, h)
	recvAs[JoinRoomEvent](t, s)
	h.Send(SetUsernameMsg{SessionID: s.ID(), Username: "Bo"})
	recvAs[UsernameSetEvent](t, s)

	h.Send(SendChatMsg{SessionID: s.ID(), Message: "   "})
	h.Send(SendChatMsg{SessionID: s.ID(), Message: "héllo world"})
	assert.Equal(t, "héllo", recvAs[ChatBroadcastEvent](t, s).Message)
}

type memSaver struct {
	mu      sync.Mutex
	records []ChatRecord
}

func (m *memSaver) SaveChat(rec ChatRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *memSaver) snapshot() []ChatRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ChatRecord(nil), m.records...)
}

func TestChatSaver(t *testing.T) {
	h := NewHub(DefaultHubConfig(), nil, nil)
	saver := &memSaver{}
	h.SetChatSaver(saver)
	h.Start()
	t.Cleanup(h.Stop)

	s := connect(t, h)
	recvAs[JoinRoomEvent](t, s)
	h.Send(SetUsernameMsg{SessionID: s.ID(), Username: "Cy"})
	recvAs[UsernameSetEvent](t, s)
	h.Send(SendChatMsg{SessionID: s.ID(), Message: "saved"})
	chat := recvAs[ChatBroadcastEvent](t, s)

	require.Eventually(t, func() bool { return len(saver.snapshot()) == 1 }, waitFor, 5*time.Millisecond)
	assert.Equal(t, ChatRecord{Room: "lobby", Username: "Cy", Message: "saved", Timestamp: chat.Timestamp}, saver.snapshot()[0])
}

func TestDisconnectCleansUp(t *testing.T) {
	h := newTestHub(t, DefaultHubConfig())
	s := connect(t, h)
	recvAs[JoinRoomEvent](t, s)
	require.Equal(t, 1, h.Sessions().Count())

	h.Disconnect(s.ID())
	require.Eventually(t, func() bool {
		return h.Sessions().Count() == 0 && len(h.Rooms()) == 0
	}, waitFor, 5*time.Millisecond)
	_, ok := h.RoomOf(s.ID())
	assert.False(t, ok)
}

func TestCleanupPrunesStaleMembers(t *testing.T) {
	h := newTestHub(t, DefaultHubConfig())
	s := connect(t, h)
	recvAs[JoinRoomEvent](t, s)

	// Session vanished without a disconnect message.
	h.Sessions().Unregister(s.ID())
	h.cleanup()

	assert.Empty(t, h.Rooms())
	assert.Equal(t, 0, h.Members("lobby"))
}
