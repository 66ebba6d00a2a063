package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession(1, 2)
	s.Send(ErrorEvent{Message: "one"})
	s.Send(ErrorEvent{Message: "two"})
	s.Send(ErrorEvent{Message: "three"})

	assert.Equal(t, ErrorEvent{Message: "two"}, <-s.Events())
	assert.Equal(t, ErrorEvent{Message: "three"}, <-s.Events())
}

func TestChannelSessionClose(t *testing.T) {
	s := NewChannelSession(1, 4)
	s.Close()
	s.Close()

	s.Send(ErrorEvent{Message: "late"})
	assert.Empty(t, s.Events())
	_, open := <-s.Done()
	assert.False(t, open)
}

func TestSessionRegistry(t *testing.T) {
	r := NewSessionRegistry()
	a := NewChannelSession(NewSessionID(), 1)
	b := NewChannelSession(NewSessionID(), 1)
	require.NotEqual(t, a.ID(), b.ID())

	r.Register(a)
	r.Register(b)
	assert.Equal(t, 2, r.Count())

	got, ok := r.Get(a.ID())
	require.True(t, ok)
	assert.Equal(t, a.ID(), got.ID())

	r.Unregister(a.ID())
	_, ok = r.Get(a.ID())
	assert.False(t, ok)
	assert.Equal(t, 1, r.Count())
}

func TestBindSession(t *testing.T) {
	msg := bindSession(JoinRoomMsg{Room: "x"}, 42)
	assert.Equal(t, JoinRoomMsg{SessionID: 42, Room: "x"}, msg)
	assert.Equal(t, SendChatMsg{SessionID: 7, Message: "m"}, bindSession(SendChatMsg{Message: "m"}, 7))
}
