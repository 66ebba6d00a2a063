package relay

import (
	"io"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
)

// HubConfig holds configuration for the hub.
type HubConfig struct {
	DefaultRoom   string        // Room new sessions join on connect; empty disables
	MaxMessageLen int           // Chat lines are truncated to this many runes
	CleanupPeriod time.Duration // How often stale members and empty rooms are pruned
}

// DefaultHubConfig returns sensible defaults.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		DefaultRoom:   "lobby",
		MaxMessageLen: 512,
		CleanupPeriod: 30 * time.Second,
	}
}

// ChatSaver is an interface for persisting chat lines.
// This allows the hub to save history without depending on the storage package.
type ChatSaver interface {
	SaveChat(rec ChatRecord) error
}

// ChatRecord is one broadcast chat line.
type ChatRecord struct {
	Room      string
	Username  string
	Message   string
	Timestamp uint32
}

// Hub owns usernames and room membership. All mutation happens on the
// message goroutine; readers use the snapshot accessors.
type Hub struct {
	config   HubConfig
	sessions *SessionRegistry
	saver    ChatSaver // Optional, can be nil
	logger   *log.Logger
	now      func() time.Time
	rng      *rand.Rand

	mu        sync.RWMutex
	rooms     map[RoomID]map[SessionID]struct{}
	roomOf    *intmap.Map[SessionID, RoomID]
	usernames *intmap.Map[SessionID, string]

	msgChan  chan ClientMessage
	done     chan struct{}
	stopOnce sync.Once
}

// NewHub creates a new hub. A nil logger discards log output.
func NewHub(cfg HubConfig, sessions *SessionRegistry, logger *log.Logger) *Hub {
	if cfg.MaxMessageLen <= 0 {
		cfg.MaxMessageLen = DefaultHubConfig().MaxMessageLen
	}
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = DefaultHubConfig().CleanupPeriod
	}
	if sessions == nil {
		sessions = NewSessionRegistry()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		config:    cfg,
		sessions:  sessions,
		logger:    logger,
		now:       time.Now,
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x626c6f6b7573)),
		rooms:     make(map[RoomID]map[SessionID]struct{}),
		roomOf:    intmap.New[SessionID, RoomID](64),
		usernames: intmap.New[SessionID, string](64),
		msgChan:   make(chan ClientMessage, 256),
		done:      make(chan struct{}),
	}
}

// SetChatSaver sets the optional chat saver.
func (h *Hub) SetChatSaver(saver ChatSaver) {
	h.saver = saver
}

// Sessions returns the registry the hub delivers events through.
func (h *Hub) Sessions() *SessionRegistry {
	return h.sessions
}

// Start begins the hub's background processing.
func (h *Hub) Start() {
	go h.processMessages()
	go h.cleanupLoop()
}

// Stop shuts down the hub. Safe to call multiple times.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// Send sends a message to the hub for async processing.
func (h *Hub) Send(msg ClientMessage) {
	select {
	case h.msgChan <- msg:
	case <-h.done:
	}
}

// Connect registers a session and, when configured, places it in the default room.
func (h *Hub) Connect(session SessionHandle) {
	h.sessions.Register(session)
	if h.config.DefaultRoom != "" {
		h.Send(JoinRoomMsg{SessionID: session.ID(), Room: h.config.DefaultRoom})
	}
}

// Disconnect removes a session from its room and from the registry.
func (h *Hub) Disconnect(id SessionID) {
	h.Send(SessionDisconnectedMsg{SessionID: id})
}

// Rooms returns the names of rooms with at least one member, sorted.
func (h *Hub) Rooms() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.roomNamesLocked()
}

// Members returns the number of sessions in a room.
func (h *Hub) Members(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[RoomID(room)])
}

// RoomOf returns the session's current room.
func (h *Hub) RoomOf(id SessionID) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.roomOf.Get(id)
	return string(room), ok
}

// Username returns the session's username, if one was set.
func (h *Hub) Username(id SessionID) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.usernames.Get(id)
}

// processMessages handles incoming messages.
func (h *Hub) processMessages() {
	for {
		select {
		case msg := <-h.msgChan:
			h.handleMessage(msg)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleMessage(msg ClientMessage) {
	switch m := msg.(type) {
	case SetUsernameMsg:
		h.handleSetUsername(m)
	case GetRoomsMsg:
		h.handleGetRooms(m)
	case JoinRoomMsg:
		h.handleJoinRoom(m)
	case LeaveRoomMsg:
		h.handleLeaveRoom(m)
	case SendChatMsg:
		h.handleSendChat(m)
	case SessionDisconnectedMsg:
		h.handleSessionDisconnected(m)
	}
}

func (h *Hub) handleSetUsername(msg SetUsernameMsg) {
	session, ok := h.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	name := strings.TrimSpace(msg.Username)
	if name == "" {
		name = GenerateUsername(h.rng)
	}
	if !validName(name, MaxUsernameLen, true) {
		session.Send(ErrorEvent{Message: "invalid username"})
		return
	}

	h.mu.Lock()
	h.usernames.Put(msg.SessionID, name)
	h.mu.Unlock()

	session.Send(UsernameSetEvent{Username: name})
}

func (h *Hub) handleGetRooms(msg GetRoomsMsg) {
	session, ok := h.sessions.Get(msg.SessionID)
	if !ok {
		return
	}
	session.Send(RoomsEvent{Rooms: h.Rooms()})
}

func (h *Hub) handleJoinRoom(msg JoinRoomMsg) {
	session, ok := h.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	room := strings.TrimSpace(msg.Room)
	if !validName(room, MaxRoomNameLen, false) {
		session.Send(JoinRoomEvent{Room: room, Err: "invalid room name"})
		return
	}

	h.mu.Lock()
	if current, in := h.roomOf.Get(msg.SessionID); in && current == RoomID(room) {
		h.mu.Unlock()
		session.Send(JoinRoomEvent{Room: room})
		return
	}
	h.leaveLocked(msg.SessionID)
	members, exists := h.rooms[RoomID(room)]
	if !exists {
		members = make(map[SessionID]struct{})
		h.rooms[RoomID(room)] = members
		h.logger.Debug("room created", "room", room)
	}
	members[msg.SessionID] = struct{}{}
	h.roomOf.Put(msg.SessionID, RoomID(room))
	h.mu.Unlock()

	session.Send(JoinRoomEvent{Room: room})
}

func (h *Hub) handleLeaveRoom(msg LeaveRoomMsg) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(msg.SessionID)
}

func (h *Hub) handleSendChat(msg SendChatMsg) {
	session, ok := h.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	text := strings.TrimSpace(msg.Message)
	if text == "" {
		return
	}
	text = truncateRunes(text, h.config.MaxMessageLen)

	h.mu.Lock()
	room, in := h.roomOf.Get(msg.SessionID)
	if !in {
		h.mu.Unlock()
		session.Send(ErrorEvent{Message: "join a room first"})
		return
	}
	name, named := h.usernames.Get(msg.SessionID)
	if !named {
		name = GenerateUsername(h.rng)
		h.usernames.Put(msg.SessionID, name)
	}
	targets := make([]SessionID, 0, len(h.rooms[room]))
	for id := range h.rooms[room] {
		targets = append(targets, id)
	}
	h.mu.Unlock()

	if !named {
		session.Send(UsernameSetEvent{Username: name})
	}

	evt := ChatBroadcastEvent{
		Timestamp: uint32(h.now().Unix()),
		Username:  name,
		Room:      string(room),
		Message:   text,
	}
	for _, id := range targets {
		if member, ok := h.sessions.Get(id); ok {
			member.Send(evt)
		}
	}

	if h.saver != nil {
		rec := ChatRecord{Room: evt.Room, Username: evt.Username, Message: evt.Message, Timestamp: evt.Timestamp}
		go func() {
			if err := h.saver.SaveChat(rec); err != nil {
				h.logger.Warn("could not save chat line", "room", rec.Room, "error", err)
			}
		}()
	}
}

func (h *Hub) handleSessionDisconnected(msg SessionDisconnectedMsg) {
	h.mu.Lock()
	h.leaveLocked(msg.SessionID)
	h.usernames.Del(msg.SessionID)
	h.mu.Unlock()

	h.sessions.Unregister(msg.SessionID)
}

// leaveLocked removes a session from its room, deleting the room once empty.
// Caller must hold h.mu.
func (h *Hub) leaveLocked(id SessionID) {
	room, ok := h.roomOf.Get(id)
	if !ok {
		return
	}
	h.roomOf.Del(id)
	members := h.rooms[room]
	delete(members, id)
	if len(members) == 0 {
		delete(h.rooms, room)
		h.logger.Debug("room removed", "room", room)
	}
}

func (h *Hub) roomNamesLocked() []string {
	names := make([]string, 0, len(h.rooms))
	for room := range h.rooms {
		names = append(names, string(room))
	}
	slices.Sort(names)
	return names
}

// cleanupLoop periodically prunes members whose sessions are gone.
func (h *Hub) cleanupLoop() {
	ticker := time.NewTicker(h.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.cleanup()
		case <-h.done:
			return
		}
	}
}

func (h *Hub) cleanup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room, members := range h.rooms {
		for id := range members {
			if _, ok := h.sessions.Get(id); !ok {
				delete(members, id)
				h.roomOf.Del(id)
				h.usernames.Del(id)
			}
		}
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

// validName reports whether s is a usable room or user name.
func validName(s string, maxLen int, allowSpaces bool) bool {
	if s == "" || utf8.RuneCountInString(s) > maxLen {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
		if unicode.IsSpace(r) && !allowSpaces {
			return false
		}
	}
	return true
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
