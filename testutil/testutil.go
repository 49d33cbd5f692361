// Package testutil holds filesystem helpers for the engine's tests. The
// change-detection timestamps have one-second resolution, so tests that
// want a file to count as safely recorded must give its mtime some age;
// these helpers make that explicit instead of sprinkling sleeps around.
package testutil

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// WriteFileAged writes content to path, creating parent directories, and
// backdates the file's mtime by age. An age of a few seconds is enough to
// put the mtime strictly before any snapshot timestamp captured afterwards.
func WriteFileAged(t *testing.T, path string, content string, age time.Duration) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
}

// WriteFile writes content to path with the current mtime, creating parent
// directories.
func WriteFile(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// TouchAged rewrites path with its existing content and an mtime backdated
// by age, simulating an identical rewrite with a fresh (but still safely
// old) modification time.
func TouchAged(t *testing.T, path string, age time.Duration) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, content, 0644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
}

// Corrupt overwrites path with random garbage of the same rough size.
func Corrupt(t *testing.T, path string) {
	t.Helper()

	garbage := make([]byte, 64)
	_, err := rand.Read(garbage)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, garbage, 0644))
}

// Truncate cuts path down to n bytes.
func Truncate(t *testing.T, path string, n int64) {
	t.Helper()

	require.NoError(t, os.Truncate(path, n))
}

// FlipByte inverts one byte of path at the given offset.
func FlipByte(t *testing.T, path string, offset int64) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Less(t, offset, int64(len(data)))
	data[offset] ^= 0xff
	require.NoError(t, os.WriteFile(path, data, 0644))
}
