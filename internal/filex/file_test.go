package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	dbPath := filepath.Join(tmp, "coursecomment", "nested", "client.db")

	require.NoError(t, EnsureParentDir(dbPath))

	fi, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	_, err = os.Stat(dbPath)
	require.True(t, os.IsNotExist(err), "must not create the file itself")
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "client.db")

	require.NoError(t, EnsureParentDir(dbPath))
	require.NoError(t, EnsureParentDir(dbPath))
}

func TestEnsureParentDir_SkipsSpecialNames(t *testing.T) {
	for _, p := range []string{"", ":memory:", "file:x?mode=memory"} {
		require.NoError(t, EnsureParentDir(p), p)
	}
}

func TestEnsureParentDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "coursecomment")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := EnsureParentDir(filepath.Join(blocker, "client.db"))
	require.Error(t, err, "should fail when a file exists with the directory's name")
}
