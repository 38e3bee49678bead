package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_RelativeResolvesAgainstCWD(t *testing.T) {
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	defer chdir(t, tmp)()

	got, err := EnsureDir("uploads")
	require.NoError(t, err)

	want := filepath.Join(tmp, "uploads")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureDir_AbsoluteAndIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	first, err := EnsureDir(dir)
	require.NoError(t, err)
	second, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsWhenPathIsFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))

	_, err := EnsureDir(f)
	require.Error(t, err)
}

func TestExistsAndRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "blob")
	require.NoError(t, os.WriteFile(f, []byte("data"), 0o600))

	require.True(t, Exists(f))
	require.False(t, Exists(dir), "directories are not files")

	removed, err := RemoveIfExists(f)
	require.NoError(t, err)
	require.True(t, removed)
	require.False(t, Exists(f))

	removed, err = RemoveIfExists(f)
	require.NoError(t, err)
	require.False(t, removed, "second removal is a no-op")
}
