package glob

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/stamp/digest"
)

// countingProbe records every probed relative path and returns a digest of
// the path itself so leaf identity is visible in assertions.
func countingProbe(probed *[]string) LeafProbe {
	return func(rel string) (Leaf, bool, error) {
		*probed = append(*probed, rel)
		return Leaf{Digest: digest.Bytes([]byte(rel))}, true, nil
	}
}

func writeTestFile(t *testing.T, root string, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(rel), 0644))
}

func TestExpandSingleLevel(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "main.go")
	writeTestFile(t, root, "util.go")
	writeTestFile(t, root, "README.md")

	var probed []string
	tree, err := Expand(root, MustParse("*.go"), Options{}, countingProbe(&probed))
	require.NoError(t, err)

	require.Len(t, tree.Files, 2)
	assert.Equal(t, "main.go", tree.Files[0].Name)
	assert.Equal(t, "util.go", tree.Files[1].Name)
	assert.Empty(t, tree.Dirs)
	assert.Equal(t, []string{"main.go", "util.go"}, probed)
}

func TestExpandRecursesOneSegmentPerLevel(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "pkg/alpha/a.go")
	writeTestFile(t, root, "pkg/alpha/a.txt")
	writeTestFile(t, root, "pkg/beta/b.go")
	writeTestFile(t, root, "pkg/beta/deep/c.go")
	writeTestFile(t, root, "other/alpha/d.go")

	var probed []string
	tree, err := Expand(root, MustParse("pkg/*/*.go"), Options{}, countingProbe(&probed))
	require.NoError(t, err)

	require.Len(t, tree.Dirs, 1)
	assert.Equal(t, "pkg", tree.Dirs[0].Name)
	level := tree.Dirs[0].Tree
	require.Len(t, level.Dirs, 2)
	assert.Equal(t, "alpha", level.Dirs[0].Name)
	assert.Equal(t, "beta", level.Dirs[1].Name)

	alpha := level.Dirs[0].Tree
	require.Len(t, alpha.Files, 1)
	assert.Equal(t, "a.go", alpha.Files[0].Name)

	// deep/c.go is below the pattern's reach and must be invisible
	assert.Equal(t, 2, tree.NumFiles())
}

func TestExpandMissingDirectoryYieldsEmptyTree(t *testing.T) {
	root := t.TempDir()

	var probed []string
	tree, err := Expand(root, MustParse("no/such/*.go"), Options{}, countingProbe(&probed))
	require.NoError(t, err)
	assert.Equal(t, 0, tree.NumFiles())
	assert.Empty(t, probed)
}

func TestExpandNonMatchingEntriesInvisible(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.go")

	var probed []string
	before, err := Expand(root, MustParse("*.go"), Options{}, countingProbe(&probed))
	require.NoError(t, err)

	// Adding a non-matching file is a no-op for the expansion.
	writeTestFile(t, root, "notes.md")
	after, err := Expand(root, MustParse("*.go"), Options{}, countingProbe(&probed))
	require.NoError(t, err)
	assert.True(t, Equal(before, after))
}

func TestExpandFinalSegmentIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.go")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir.go"), 0755))

	var probed []string
	tree, err := Expand(root, MustParse("*.go"), Options{}, countingProbe(&probed))
	require.NoError(t, err)
	require.Len(t, tree.Files, 1)
	assert.Equal(t, "a.go", tree.Files[0].Name)
}

func TestExpandExclusions(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "src/a.go")
	writeTestFile(t, root, "src/a_test.go")
	writeTestFile(t, root, "vendor/b.go")

	var probed []string
	tree, err := Expand(root, MustParse("*/*.go"), Options{
		Exclude: []string{"vendor", "**/*_test.go"},
	}, countingProbe(&probed))
	require.NoError(t, err)

	assert.Equal(t, 1, tree.NumFiles())
	assert.Equal(t, []string{filepath.Join("src", "a.go")}, probed)
}

func TestExpandInvalidExclusionPattern(t *testing.T) {
	root := t.TempDir()
	_, err := Expand(root, MustParse("*.go"), Options{Exclude: []string{"["}}, countingProbe(new([]string)))
	require.Error(t, err)
}

func TestExpandVanishedFileSkipped(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "a.go")
	writeTestFile(t, root, "b.go")

	probe := func(rel string) (Leaf, bool, error) {
		if rel == "a.go" {
			return Leaf{}, false, nil
		}
		return Leaf{Digest: 1}, true, nil
	}
	tree, err := Expand(root, MustParse("*.go"), Options{}, probe)
	require.NoError(t, err)
	require.Len(t, tree.Files, 1)
	assert.Equal(t, "b.go", tree.Files[0].Name)
}
