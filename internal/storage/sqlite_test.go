package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blokus/internal/core"
	"github.com/vovakirdan/tui-blokus/internal/relay"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	id, err := store.StartSession("blokus", "local", "corners")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	sess, err := store.Session(id)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "blokus", sess.GameID)
}

func TestMoveLog(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StartSession("blokus_classic", "mira", "own-corner")
	require.NoError(t, err)
	other, err := store.StartSession("blokus", "local", "corners")
	require.NoError(t, err)

	moves := []core.PlacementEvent{
		{Color: "green", Piece: "five-u", Rotation: 180, Col: 0, Row: 0},
		{Color: "red", Piece: "one", Rotation: 0, Col: 19, Row: 0},
		{Color: "green", Piece: "four-t", Rotation: 90, Col: 3, Row: 2},
	}
	for i, ev := range moves {
		seq, err := store.SaveMove(id, ev)
		require.NoError(t, err)
		assert.Equal(t, i+1, seq)
	}
	seq, err := store.SaveMove(other, moves[1])
	require.NoError(t, err)
	assert.Equal(t, 1, seq, "sequence numbers are per session")

	got, err := store.Moves(id)
	require.NoError(t, err)
	assert.Equal(t, moves, got)

	empty, err := store.StartSession("blokus", "local", "corners")
	require.NoError(t, err)
	got, err = store.Moves(empty)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveMoveUnknownSession(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveMove(404, core.PlacementEvent{Color: "green", Piece: "one"})
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestSessionsAndEnd(t *testing.T) {
	store := openTestStore(t)

	first, err := store.StartSession("blokus", "local", "corners")
	require.NoError(t, err)
	second, err := store.StartSession("blokus_edges", "ssh-user", "edges")
	require.NoError(t, err)
	_, err = store.SaveMove(second, core.PlacementEvent{Color: "blue", Piece: "two", Col: 5, Row: 0})
	require.NoError(t, err)

	sess, err := store.Session(first)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.True(t, sess.EndedAt.IsZero())

	require.NoError(t, store.EndSession(first))
	require.NoError(t, store.EndSession(first))
	sess, err = store.Session(first)
	require.NoError(t, err)
	assert.False(t, sess.EndedAt.IsZero())

	recent, err := store.RecentSessions(10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, second, recent[0].ID)
	assert.Equal(t, "ssh-user", recent[0].Owner)
	assert.Equal(t, "edges", recent[0].StartRule)
	assert.Equal(t, 1, recent[0].Moves)
	assert.Equal(t, first, recent[1].ID)
	assert.Equal(t, 0, recent[1].Moves)

	limited, err := store.RecentSessions(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	missing, err := store.Session(9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestChatHistory(t *testing.T) {
	store := openTestStore(t)

	lines := []relay.ChatRecord{
		{Room: "lobby", Username: "Ada", Message: "one", Timestamp: 100},
		{Room: "lobby", Username: "Bo", Message: "two", Timestamp: 101},
		{Room: "side", Username: "Cy", Message: "elsewhere", Timestamp: 102},
		{Room: "lobby", Username: "Ada", Message: "three", Timestamp: 103},
	}
	for _, rec := range lines {
		require.NoError(t, store.SaveChat(rec))
	}

	got, err := store.RecentChat("lobby", 2)
	require.NoError(t, err)
	assert.Equal(t, []relay.ChatRecord{lines[1], lines[3]}, got)

	all, err := store.RecentChat("lobby", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := store.RecentChat("nowhere", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
