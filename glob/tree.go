package glob

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/grovetools/stamp/digest"
)

// Leaf is the recorded state of one matched file. The digest is
// authoritative for change detection; the modification time is kept as a
// cheap pre-filter so unchanged files are not rehashed on every probe.
type Leaf struct {
	ModTime time.Time
	Digest  digest.Digest
}

// FileEntry pairs a matched file name with its recorded leaf state.
type FileEntry struct {
	Name string
	Leaf Leaf
}

// DirEntry pairs a traversed subdirectory name with the tree one pattern
// segment deeper.
type DirEntry struct {
	Name string
	Tree *Tree
}

// Tree is one level of expanded glob state: the files matched by the final
// pattern segment at this level and the subdirectories matched by an
// intermediate segment.
//
// Both slices are sorted by name and contain no duplicates. The diff walk
// compares two trees element-by-element without re-sorting, so the ordering
// is established at construction and preserved by every mutation. A tree
// read from an external source is not trusted to satisfy the invariant;
// only trees this engine built or persisted itself are.
type Tree struct {
	Files []FileEntry
	Dirs  []DirEntry
}

// AddFile inserts or replaces a file entry, keeping Files sorted by name.
func (t *Tree) AddFile(name string, leaf Leaf) {
	i := sort.Search(len(t.Files), func(i int) bool { return t.Files[i].Name >= name })
	if i < len(t.Files) && t.Files[i].Name == name {
		t.Files[i].Leaf = leaf
		return
	}
	t.Files = append(t.Files, FileEntry{})
	copy(t.Files[i+1:], t.Files[i:])
	t.Files[i] = FileEntry{Name: name, Leaf: leaf}
}

// AddDir inserts or replaces a subdirectory entry, keeping Dirs sorted by
// name.
func (t *Tree) AddDir(name string, sub *Tree) {
	i := sort.Search(len(t.Dirs), func(i int) bool { return t.Dirs[i].Name >= name })
	if i < len(t.Dirs) && t.Dirs[i].Name == name {
		t.Dirs[i].Tree = sub
		return
	}
	t.Dirs = append(t.Dirs, DirEntry{})
	copy(t.Dirs[i+1:], t.Dirs[i:])
	t.Dirs[i] = DirEntry{Name: name, Tree: sub}
}

// Lookup returns the leaf recorded for a root-relative path, descending one
// directory level per path component.
func (t *Tree) Lookup(rel string) (Leaf, bool) {
	components := splitPath(rel)
	node := t
	for _, component := range components[:len(components)-1] {
		i := sort.Search(len(node.Dirs), func(i int) bool { return node.Dirs[i].Name >= component })
		if i >= len(node.Dirs) || node.Dirs[i].Name != component {
			return Leaf{}, false
		}
		node = node.Dirs[i].Tree
	}
	name := components[len(components)-1]
	i := sort.Search(len(node.Files), func(i int) bool { return node.Files[i].Name >= name })
	if i >= len(node.Files) || node.Files[i].Name != name {
		return Leaf{}, false
	}
	return node.Files[i].Leaf, true
}

// NumFiles returns the total number of matched files in the tree.
func (t *Tree) NumFiles() int {
	n := len(t.Files)
	for _, d := range t.Dirs {
		n += d.Tree.NumFiles()
	}
	return n
}

// WalkFiles visits every matched file in sorted order with its
// root-relative path.
func (t *Tree) WalkFiles(fn func(rel string, leaf Leaf)) {
	t.walkFiles("", fn)
}

func (t *Tree) walkFiles(prefix string, fn func(rel string, leaf Leaf)) {
	for _, f := range t.Files {
		fn(filepath.Join(prefix, f.Name), f.Leaf)
	}
	for _, d := range t.Dirs {
		d.Tree.walkFiles(filepath.Join(prefix, d.Name), fn)
	}
}

// FirstDiff compares two trees built from the same pattern and reports the
// first differing root-relative path in sorted traversal order: an added or
// removed file or directory, or a file whose recorded leaf is no longer
// valid. A leaf in old whose ModTime is not strictly before cutoff counts
// as a difference whatever its digest; it was recorded too close to the
// snapshot instant to be trusted. A zero cutoff disables that rule.
func FirstDiff(old, new *Tree, cutoff time.Time) (string, bool) {
	return firstDiff("", old, new, cutoff)
}

func firstDiff(prefix string, old, new *Tree, cutoff time.Time) (string, bool) {
	i, j := 0, 0
	for i < len(old.Files) || j < len(new.Files) {
		switch {
		case j >= len(new.Files) || (i < len(old.Files) && old.Files[i].Name < new.Files[j].Name):
			return filepath.Join(prefix, old.Files[i].Name), true // removed
		case i >= len(old.Files) || old.Files[i].Name > new.Files[j].Name:
			return filepath.Join(prefix, new.Files[j].Name), true // added
		default:
			if old.Files[i].Leaf.Digest != new.Files[j].Leaf.Digest ||
				(!cutoff.IsZero() && !old.Files[i].Leaf.ModTime.Before(cutoff)) {
				return filepath.Join(prefix, old.Files[i].Name), true
			}
			i++
			j++
		}
	}

	i, j = 0, 0
	for i < len(old.Dirs) || j < len(new.Dirs) {
		switch {
		case j >= len(new.Dirs) || (i < len(old.Dirs) && old.Dirs[i].Name < new.Dirs[j].Name):
			return filepath.Join(prefix, old.Dirs[i].Name), true
		case i >= len(old.Dirs) || old.Dirs[i].Name > new.Dirs[j].Name:
			return filepath.Join(prefix, new.Dirs[j].Name), true
		default:
			sub := filepath.Join(prefix, old.Dirs[i].Name)
			if path, changed := firstDiff(sub, old.Dirs[i].Tree, new.Dirs[j].Tree, cutoff); changed {
				return path, changed
			}
			i++
			j++
		}
	}

	return "", false
}

// Equal reports whether two trees record the same matched set with the same
// digests.
func Equal(a, b *Tree) bool {
	_, changed := FirstDiff(a, b, time.Time{})
	return !changed
}

func splitPath(rel string) []string {
	return strings.Split(filepath.ToSlash(rel), "/")
}
