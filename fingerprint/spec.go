// Package fingerprint is the change-detection engine: it takes snapshots of
// a declared set of watched filesystem items together with a configuration
// key and a cached result value, persists them to a single cache file, and
// on a later check reports whether anything relevant changed since the
// snapshot was taken.
package fingerprint

import (
	"path/filepath"

	"github.com/grovetools/stamp/glob"
)

type specKind int

const (
	kindFile specKind = iota
	kindFileHashed
	kindNonExistentFile
	kindDirectory
	kindGlob
)

// Spec declares one thing to watch. All paths are relative to the root
// directory passed to Update and Check.
type Spec struct {
	kind    specKind
	path    string
	pattern glob.Pattern
}

// MonitorFile watches a file that must exist, tracked by modification time
// only.
func MonitorFile(path string) Spec {
	return Spec{kind: kindFile, path: path}
}

// MonitorFileHashed watches a file that must exist, tracked by modification
// time and content digest. An identical rewrite with a fresh mtime does not
// count as a change.
func MonitorFileHashed(path string) Spec {
	return Spec{kind: kindFileHashed, path: path}
}

// MonitorNonExistentFile watches a path expected to be absent. Only the
// absent-to-present transition counts as a change; once the file has been
// seen present, it reverting to absent does not.
func MonitorNonExistentFile(path string) Spec {
	return Spec{kind: kindNonExistentFile, path: path}
}

// MonitorDirectory watches a directory that must exist, tracked by
// modification time only.
func MonitorDirectory(path string) Spec {
	return Spec{kind: kindDirectory, path: path}
}

// MonitorGlob watches the files matched by pattern under dir (relative to
// the root). Matched files are always tracked by content digest.
func MonitorGlob(dir string, pattern glob.Pattern) Spec {
	return Spec{kind: kindGlob, path: dir, pattern: pattern}
}

// ParseGlobSpec is MonitorGlob for a pattern still in text form. A
// malformed pattern is a caller error at spec construction time, never a
// runtime condition of Check or Update.
func ParseGlobSpec(dir, pattern string) (Spec, error) {
	p, err := glob.Parse(pattern)
	if err != nil {
		return Spec{}, err
	}
	return MonitorGlob(dir, p), nil
}

// Path returns the root-relative path the spec is reported under.
func (s Spec) Path() string {
	if s.kind == kindGlob {
		return filepath.Join(s.path, s.pattern.String())
	}
	return s.path
}

// String returns a stable identity for the spec, used to detect drift
// between the spec list a snapshot was taken with and the one a check is
// run with.
func (s Spec) String() string {
	switch s.kind {
	case kindFile:
		return "file " + s.path
	case kindFileHashed:
		return "file+hash " + s.path
	case kindNonExistentFile:
		return "absent " + s.path
	case kindDirectory:
		return "dir " + s.path
	case kindGlob:
		return "glob " + filepath.Join(s.path, s.pattern.String())
	}
	return "invalid"
}
