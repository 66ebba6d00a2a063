package relay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRelay(t *testing.T) string {
	t.Helper()
	hub := NewHub(DefaultHubConfig(), nil, nil)
	hub.Start()
	t.Cleanup(hub.Stop)

	srv := NewServer(ServerConfig{Address: "127.0.0.1:0"}, hub, nil)
	require.NoError(t, srv.Listen())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(waitFor):
			t.Error("server did not stop")
		}
	})
	return srv.Addr().String()
}

func dialRelay(t *testing.T, addr string) *Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	c, err := Dial(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.SetReadDeadline(time.Now().Add(5*time.Second)))
	return c
}

func recvClient[T ServerEvent](t *testing.T, c *Client) T {
	t.Helper()
	evt, err := c.Recv()
	require.NoError(t, err)
	out, ok := evt.(T)
	require.Truef(t, ok, "got %T (%+v)", evt, evt)
	return out
}

func TestRelayChatOverTCP(t *testing.T) {
	addr := startRelay(t)
	alice := dialRelay(t, addr)
	bob := dialRelay(t, addr)

	assert.Equal(t, "lobby", recvClient[JoinRoomEvent](t, alice).Room)
	assert.Equal(t, "lobby", recvClient[JoinRoomEvent](t, bob).Room)

	require.NoError(t, alice.Send(SetUsernameMsg{Username: "Alice"}))
	assert.Equal(t, "Alice", recvClient[UsernameSetEvent](t, alice).Username)

	require.NoError(t, alice.Send(SendChatMsg{Message: "hi bob"}))
	for _, c := range []*Client{alice, bob} {
		chat := recvClient[ChatBroadcastEvent](t, c)
		assert.Equal(t, "Alice", chat.Username)
		assert.Equal(t, "lobby", chat.Room)
		assert.Equal(t, "hi bob", chat.Message)
	}

	require.NoError(t, bob.Send(GetRoomsMsg{}))
	assert.Equal(t, []string{"lobby"}, recvClient[RoomsEvent](t, bob).Rooms)
}

func TestRelayRejectsBadFrame(t *testing.T) {
	addr := startRelay(t)
	c := dialRelay(t, addr)
	recvClient[JoinRoomEvent](t, c)

	_, err := c.conn.Write(frameOf(0x7f))
	require.NoError(t, err)
	recvClient[ErrorEvent](t, c)

	// Connection stays usable.
	require.NoError(t, c.Send(GetRoomsMsg{}))
	recvClient[RoomsEvent](t, c)
}
