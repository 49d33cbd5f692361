package glob

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"

	"github.com/grovetools/stamp/errors"
	"github.com/grovetools/stamp/logging"
)

var log = logging.NewLogger("glob")

// LeafProbe computes the leaf state for one matched file, identified by its
// root-relative path. Returning ok=false skips the entry (the file vanished
// between listing and probing).
type LeafProbe func(rel string) (Leaf, bool, error)

// Options controls expansion.
type Options struct {
	// Exclude holds docker-style exclusion patterns applied to the
	// root-relative path of every candidate entry. A matching entry and
	// everything below it become invisible to change detection.
	Exclude []string
}

// Expand walks the tree under root applying one pattern segment per
// directory level. The final segment matches files, which are handed to
// probe; intermediate segments match directories, which are recursed into.
// A missing or unreadable directory yields zero matches at that level, the
// same as a glob over a tree that does not exist yet.
func Expand(root string, pattern Pattern, opts Options, probe LeafProbe) (*Tree, error) {
	if len(pattern.segments) == 0 {
		return nil, errors.PatternInvalid("", "empty pattern")
	}

	var pm *patternmatcher.PatternMatcher
	if len(opts.Exclude) > 0 {
		var err error
		pm, err = patternmatcher.New(opts.Exclude)
		if err != nil {
			return nil, errors.PatternInvalid(strings.Join(opts.Exclude, ","), "invalid exclusion pattern").
				WithDetail("cause", err.Error())
		}
		// Pattern compilation is lazy inside the matcher; force it now so a
		// malformed exclusion fails before the walk starts.
		if _, err := pm.MatchesOrParentMatches("x"); err != nil {
			return nil, errors.PatternInvalid(strings.Join(opts.Exclude, ","), "invalid exclusion pattern").
				WithDetail("cause", err.Error())
		}
	}

	tree, err := expand(root, "", pattern.segments, pm, probe)
	if err != nil {
		return nil, err
	}
	log.WithField("pattern", pattern.String()).
		WithField("matches", tree.NumFiles()).
		Debug("expanded glob")
	return tree, nil
}

func expand(root, rel string, segments []Segment, pm *patternmatcher.PatternMatcher, probe LeafProbe) (*Tree, error) {
	tree := &Tree{}

	entries, err := os.ReadDir(filepath.Join(root, rel))
	if err != nil {
		return tree, nil
	}

	// os.ReadDir returns entries sorted by name, so insertion below happens
	// in sorted order and the tree invariant holds by construction.
	seg := segments[0]
	last := len(segments) == 1
	for _, entry := range entries {
		name := entry.Name()
		if !seg.Match(name) {
			continue
		}
		entryRel := filepath.Join(rel, name)
		if pm != nil {
			excluded, err := pm.MatchesOrParentMatches(entryRel)
			if err != nil {
				return nil, errors.PatternInvalid(entryRel, "exclusion match failed").
					WithDetail("cause", err.Error())
			}
			if excluded {
				continue
			}
		}

		if last {
			if entry.IsDir() {
				continue
			}
			leaf, ok, err := probe(entryRel)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			tree.AddFile(name, leaf)
			continue
		}

		if !entry.IsDir() {
			continue
		}
		sub, err := expand(root, entryRel, segments[1:], pm, probe)
		if err != nil {
			return nil, err
		}
		tree.AddDir(name, sub)
	}

	return tree, nil
}
