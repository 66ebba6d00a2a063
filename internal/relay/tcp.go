package relay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ServerConfig holds configuration for the TCP relay server.
type ServerConfig struct {
	Address      string
	SendBuffer   int           // Per-session event buffer
	WriteTimeout time.Duration // Deadline for writing one frame
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:      "0.0.0.0:6969",
		SendBuffer:   64,
		WriteTimeout: 10 * time.Second,
	}
}

// Server accepts TCP connections and bridges them to a Hub.
type Server struct {
	config   ServerConfig
	hub      *Hub
	logger   *log.Logger
	listener net.Listener

	wg    sync.WaitGroup
	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// NewServer creates a relay server. A nil logger discards log output.
func NewServer(cfg ServerConfig, hub *Hub, logger *log.Logger) *Server {
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = DefaultServerConfig().SendBuffer
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultServerConfig().WriteTimeout
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		config: cfg,
		hub:    hub,
		logger: logger,
		conns:  make(map[net.Conn]struct{}),
	}
}

// Listen binds the listening socket.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("relay: cannot listen on %s: %w", s.config.Address, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ListenAndServe binds and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Serve accepts connections until ctx is cancelled, then closes every open
// connection and waits for their handlers to return.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("relay: Serve called before Listen")
	}
	s.logger.Info("relay listening", "address", s.listener.Addr().String())

	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			if errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}
		s.track(conn, true)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.track(conn, false)
			s.handleConn(ctx, conn)
		}()
	}

	s.mu.Lock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	s.logger.Info("relay stopped")
	return nil
}

func (s *Server) track(conn net.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
}

// handleConn runs the reader pump on the calling goroutine and the writer
// pump on its own.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	id := NewSessionID()
	session := NewChannelSession(id, s.config.SendBuffer)
	peer := conn.RemoteAddr().String()
	s.logger.Info("client connected", "session", id, "peer", peer)

	s.hub.Connect(session)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writePump(conn, session)
	}()

	reader := bufio.NewReader(conn)
	for {
		msg, err := ReadClientMessage(reader)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed), ctx.Err() != nil:
			case errors.Is(err, ErrUnknownTag), errors.Is(err, ErrMalformedFrame):
				// The frame was fully consumed, so the stream is still aligned.
				s.logger.Warn("bad frame", "session", id, "error", err)
				session.Send(ErrorEvent{Message: err.Error()})
				continue
			default:
				s.logger.Warn("read failed", "session", id, "error", err)
			}
			break
		}
		s.hub.Send(bindSession(msg, id))
	}

	s.hub.Disconnect(id)
	session.Close()
	_ = conn.Close()
	<-writerDone
	s.logger.Info("client disconnected", "session", id, "peer", peer)
}

func (s *Server) writePump(conn net.Conn, session *ChannelSession) {
	for {
		select {
		case evt := <-session.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := WriteServerEvent(conn, evt); err != nil {
				s.logger.Warn("write failed", "session", session.ID(), "error", err)
				_ = conn.Close()
				return
			}
		case <-session.Done():
			return
		}
	}
}

// Client is a minimal relay client speaking the framed protocol.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	mu     sync.Mutex
}

// Dial connects to a relay server.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("relay: cannot connect to %s: %w", addr, err)
	}
	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}

// Send writes one message. Safe for concurrent use.
func (c *Client) Send(msg ClientMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return WriteClientMessage(c.conn, msg)
}

// Recv blocks until the next server event arrives.
func (c *Client) Recv() (ServerEvent, error) {
	return ReadServerEvent(c.reader)
}

// SetReadDeadline bounds the next Recv.
func (c *Client) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
