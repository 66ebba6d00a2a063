package relay

// ServerEvent represents an event sent from the hub to a session.
type ServerEvent interface {
	serverEvent()
}

// UsernameSetEvent confirms the session's username (chosen or generated).
type UsernameSetEvent struct {
	Username string
}

func (UsernameSetEvent) serverEvent() {}

// RoomsEvent lists the rooms that currently have members, sorted by name.
type RoomsEvent struct {
	Rooms []string
}

func (RoomsEvent) serverEvent() {}

// JoinRoomEvent answers a join request. Err is empty on success.
type JoinRoomEvent struct {
	Room string
	Err  string
}

func (JoinRoomEvent) serverEvent() {}

// OK reports whether the join succeeded.
func (e JoinRoomEvent) OK() bool {
	return e.Err == ""
}

// ChatBroadcastEvent carries one chat line to every member of a room.
type ChatBroadcastEvent struct {
	Timestamp uint32 // unix seconds
	Username  string
	Room      string
	Message   string
}

func (ChatBroadcastEvent) serverEvent() {}

// ErrorEvent reports a rejected request that has no dedicated response.
type ErrorEvent struct {
	Message string
}

func (ErrorEvent) serverEvent() {}

// ClientMessage represents a message from a session to the hub.
type ClientMessage interface {
	clientMessage()
}

// SetUsernameMsg requests a username. An empty name asks the hub to generate one.
type SetUsernameMsg struct {
	SessionID SessionID
	Username  string
}

func (SetUsernameMsg) clientMessage() {}

// GetRoomsMsg requests the room list.
type GetRoomsMsg struct {
	SessionID SessionID
}

func (GetRoomsMsg) clientMessage() {}

// JoinRoomMsg requests moving to a room, creating it if needed.
type JoinRoomMsg struct {
	SessionID SessionID
	Room      string
}

func (JoinRoomMsg) clientMessage() {}

// LeaveRoomMsg requests leaving the current room.
type LeaveRoomMsg struct {
	SessionID SessionID
}

func (LeaveRoomMsg) clientMessage() {}

// SendChatMsg posts a chat line to the session's room.
type SendChatMsg struct {
	SessionID SessionID
	Message   string
}

func (SendChatMsg) clientMessage() {}

// SessionDisconnectedMsg is sent by the transport when a session ends.
type SessionDisconnectedMsg struct {
	SessionID SessionID
}

func (SessionDisconnectedMsg) clientMessage() {}

// bindSession stamps a decoded message with the connection's session id.
func bindSession(msg ClientMessage, id SessionID) ClientMessage {
	switch m := msg.(type) {
	case SetUsernameMsg:
		m.SessionID = id
		return m
	case GetRoomsMsg:
		m.SessionID = id
		return m
	case JoinRoomMsg:
		m.SessionID = id
		return m
	case LeaveRoomMsg:
		m.SessionID = id
		return m
	case SendChatMsg:
		m.SessionID = id
		return m
	case SessionDisconnectedMsg:
		m.SessionID = id
		return m
	}
	return msg
}
