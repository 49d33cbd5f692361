package fingerprint

import (
	"path/filepath"

	"github.com/grovetools/stamp/glob"
)

// itemChanged compares the stored observation for one spec against a fresh
// probe and reports the path to surface if they no longer match.
//
// A stored state is only trusted when its recorded mtime is strictly
// earlier than the snapshot's own timestamp: a file stamped within the same
// resolution window as the snapshot may have been written concurrently with
// the action whose result was cached, so it is conservatively treated as
// changed (this is what gives the begin-timestamp protocol its teeth). The
// rule covers hashed states too: a digest recorded from such a probe
// describes content the action may never have seen, so the item stays
// changed no matter what the file contains now. Within the safe window a
// matching digest overrides an mtime mismatch, which is what keeps
// identical rewrites from flapping.
func itemChanged(spec Spec, stored, current State, ts Timestamp) (string, bool) {
	switch old := stored.(type) {
	case GoneState:
		// The action needed this file and it was missing; rerun
		// unconditionally, whether or not it has appeared since.
		return spec.Path(), true

	case ModTimeState:
		cur, ok := current.(ModTimeState)
		if !ok || !cur.ModTime.Equal(old.ModTime) || !ts.Covers(old.ModTime) {
			return spec.Path(), true
		}

	case DirState:
		cur, ok := current.(DirState)
		if !ok || !cur.ModTime.Equal(old.ModTime) || !ts.Covers(old.ModTime) {
			return spec.Path(), true
		}

	case HashedState:
		cur, ok := current.(HashedState)
		if !ok || !ts.Covers(old.ModTime) || cur.Digest != old.Digest {
			return spec.Path(), true
		}

	case AbsentState:
		if _, ok := current.(AbsentState); !ok {
			return spec.Path(), true
		}

	case PresentState:
		// Only the absent-to-present edge matters for this spec kind; the
		// file reverting to absent is not a change.
		return "", false

	case GlobState:
		cur, ok := current.(GlobState)
		if !ok {
			return spec.Path(), true
		}
		if rel, changed := glob.FirstDiff(old.Tree, cur.Tree, ts.Wall); changed {
			return filepath.Join(spec.path, rel), true
		}

	default:
		return spec.Path(), true
	}

	return "", false
}
