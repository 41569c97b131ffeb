package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpen_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client.db")

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.PingContext(ctx))
	require.True(t, tableExists(t, db, "goose_db_version"))
	require.True(t, tableExists(t, db, "metadata"))
}

func TestOpen_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client.db")

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO metadata(key, value) VALUES ('token', 'abc')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	var v string
	require.NoError(t, db.QueryRow(`SELECT value FROM metadata WHERE key='token'`).Scan(&v))
	require.Equal(t, "abc", v)
}

func TestOpen_InMemory(t *testing.T) {
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.True(t, tableExists(t, db, "metadata"))
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "coursecomment", "client.db")

	db, err := Open(context.Background(), dsn)
	require.NoError(t, err)
	defer db.Close()
	require.True(t, tableExists(t, db, "metadata"))
}
