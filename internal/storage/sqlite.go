// Package storage provides SQLite-based persistence for sandbox sessions,
// their move logs and relay chat history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-blokus/internal/core"
	"github.com/vovakirdan/tui-blokus/internal/relay"
)

// ErrUnknownSession is returned when a move references a session that was never started.
var ErrUnknownSession = errors.New("storage: unknown session")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Session is one sandbox run: a board from empty to whenever the player left.
type Session struct {
	ID        int64
	GameID    string
	Owner     string // SSH user or "local"
	StartRule string
	Moves     int
	StartedAt time.Time
	EndedAt   time.Time // Zero while the session is open
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; the hub saves chat from goroutines.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			owner TEXT NOT NULL,
			start_rule TEXT NOT NULL,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_owner ON sessions(owner);

		CREATE TABLE IF NOT EXISTS moves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL REFERENCES sessions(id),
			seq INTEGER NOT NULL,
			color TEXT NOT NULL,
			piece TEXT NOT NULL,
			rotation INTEGER NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(session_id, seq)
		);

		CREATE TABLE IF NOT EXISTS chat_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			room TEXT NOT NULL,
			username TEXT NOT NULL,
			message TEXT NOT NULL,
			sent_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_chat_messages_room ON chat_messages(room, id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession records a new sandbox session and returns its ID.
func (s *Store) StartSession(gameID, owner, startRule string) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO sessions (game_id, owner, start_rule) VALUES (?, ?, ?)",
		gameID, owner, startRule,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot start session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// EndSession stamps the session's end time. Ending twice keeps the first stamp.
func (s *Store) EndSession(sessionID int64) error {
	_, err := s.db.Exec(
		"UPDATE sessions SET ended_at = CURRENT_TIMESTAMP WHERE id = ? AND ended_at IS NULL",
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	return nil
}

// SaveMove appends a placement to the session's move log.
// Returns the move's 1-based sequence number.
func (s *Store) SaveMove(sessionID int64, ev core.PlacementEvent) (int, error) {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM sessions WHERE id = ?", sessionID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot look up session: %w", err)
	}
	if exists == 0 {
		return 0, fmt.Errorf("%w: %d", ErrUnknownSession, sessionID)
	}

	_, err = s.db.Exec(
		`INSERT INTO moves (session_id, seq, color, piece, rotation, x, y)
		 SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?, ?
		 FROM moves WHERE session_id = ?`,
		sessionID, ev.Color, ev.Piece, ev.Rotation, ev.Col, ev.Row, sessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save move: %w", err)
	}

	var seq int
	err = s.db.QueryRow("SELECT MAX(seq) FROM moves WHERE session_id = ?", sessionID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read move sequence: %w", err)
	}
	return seq, nil
}

// Moves returns the session's placements in the order they were made.
func (s *Store) Moves(sessionID int64) ([]core.PlacementEvent, error) {
	rows, err := s.db.Query(
		`SELECT color, piece, rotation, x, y
		 FROM moves
		 WHERE session_id = ?
		 ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query moves: %w", err)
	}
	defer rows.Close()

	var moves []core.PlacementEvent
	for rows.Next() {
		var ev core.PlacementEvent
		if err := rows.Scan(&ev.Color, &ev.Piece, &ev.Rotation, &ev.Col, &ev.Row); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		moves = append(moves, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return moves, nil
}

const sessionColumns = `s.id, s.game_id, s.owner, s.start_rule,
		(SELECT COUNT(*) FROM moves m WHERE m.session_id = s.id),
		s.started_at, s.ended_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (Session, error) {
	var sess Session
	var startedAt, endedAt any
	err := row.Scan(&sess.ID, &sess.GameID, &sess.Owner, &sess.StartRule, &sess.Moves, &startedAt, &endedAt)
	if err != nil {
		return Session{}, err
	}
	sess.StartedAt = parseTime(startedAt)
	sess.EndedAt = parseTime(endedAt)
	return sess, nil
}

// Session retrieves a session by ID. Returns nil if it does not exist.
func (s *Store) Session(sessionID int64) (*Session, error) {
	sess, err := scanSession(s.db.QueryRow(
		"SELECT "+sessionColumns+" FROM sessions s WHERE s.id = ?",
		sessionID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &sess, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+sessionColumns+" FROM sessions s ORDER BY s.id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sessions, nil
}

// SaveChat records one broadcast chat line.
func (s *Store) SaveChat(rec relay.ChatRecord) error {
	_, err := s.db.Exec(
		"INSERT INTO chat_messages (room, username, message, sent_at) VALUES (?, ?, ?, ?)",
		rec.Room, rec.Username, rec.Message, int64(rec.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save chat message: %w", err)
	}
	return nil
}

// RecentChat returns up to limit of the room's latest lines, oldest first.
func (s *Store) RecentChat(room string, limit int) ([]relay.ChatRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT room, username, message, sent_at
		 FROM chat_messages
		 WHERE room = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		room, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query chat: %w", err)
	}
	defer rows.Close()

	var records []relay.ChatRecord
	for rows.Next() {
		var rec relay.ChatRecord
		var sentAt int64
		if err := rows.Scan(&rec.Room, &rec.Username, &rec.Message, &sentAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Timestamp = uint32(sentAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	slices.Reverse(records)
	return records, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Ensure Store implements relay.ChatSaver
var _ relay.ChatSaver = (*Store)(nil)
