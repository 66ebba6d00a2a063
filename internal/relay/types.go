// Package relay implements the chat and room relay: a single-goroutine hub
// that tracks usernames and room membership, a length-framed binary wire
// codec, and a TCP transport. It has no knowledge of the board; sessions
// only exchange rooms and chat.
package relay

import (
	"sync/atomic"
)

// SessionID uniquely identifies a connected client (TCP connection or SSH session).
type SessionID uint64

// RoomID names a chat room. Rooms exist while they have members.
type RoomID string

var sessionSeq atomic.Uint64

// NewSessionID returns a process-unique session id. Zero is never returned.
func NewSessionID() SessionID {
	return SessionID(sessionSeq.Add(1))
}

// Limits shared by the hub and the codec.
const (
	MaxUsernameLen = 32
	MaxRoomNameLen = 32
)
