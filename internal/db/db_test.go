package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSqliteDB_InMemory(t *testing.T) {
	conn, err := NewSqliteDB()
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec("CREATE TABLE refs (name TEXT PRIMARY KEY, hash TEXT);")
	require.NoError(t, err)

	_, err = conn.Exec("INSERT INTO refs (name, hash) VALUES (?, ?)", "refs/heads/main", "abc123")
	require.NoError(t, err)

	var count int
	require.NoError(t, conn.Get(&count, "SELECT COUNT(*) FROM refs"))
	assert.Equal(t, 1, count)
}

func TestNewSqliteDB_FileCreatesParentDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state", "journal.db")

	conn, err := NewSqliteDB(WithPath(dbPath))
	require.NoError(t, err)
	defer conn.Close()

	assert.DirExists(t, filepath.Dir(dbPath))
	assert.FileExists(t, dbPath)
}

func TestNewSqliteDB_PragmaOverride(t *testing.T) {
	conn, err := NewSqliteDB(WithPragmas("PRAGMA journal_mode=WAL;"))
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Exec("CREATE TABLE t (id INTEGER PRIMARY KEY);")
	assert.NoError(t, err)
}
