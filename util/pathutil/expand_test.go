package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := Expand("~/caches/stamp.bin")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "caches", "stamp.bin"), got)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("STAMP_TEST_DIR", "/tmp/stamp-test")

	got, err := Expand("$STAMP_TEST_DIR/cache")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/stamp-test/cache", got)
}

func TestExpandMakesAbsolute(t *testing.T) {
	got, err := Expand("relative/cache.bin")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}
