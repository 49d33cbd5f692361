package fingerprint

import (
	"encoding/gob"
	"time"

	"github.com/grovetools/stamp/digest"
	"github.com/grovetools/stamp/glob"
)

// State is the persisted observation for one watched item, recorded at
// snapshot time and compared against a fresh probe during a check.
type State interface {
	isState()
}

// ModTimeState records an existing file tracked by modification time only.
type ModTimeState struct {
	ModTime time.Time
}

// HashedState records an existing file tracked by modification time and
// content digest. The digest is authoritative; the mtime is a pre-filter
// that lets a recheck skip rehashing an untouched file.
type HashedState struct {
	ModTime time.Time
	Digest  digest.Digest
}

// GoneState records that a file or directory the spec required was absent
// at snapshot time. It compares as changed on every later check.
type GoneState struct{}

// AbsentState records that a path expected to be absent was indeed absent.
type AbsentState struct{}

// PresentState records that a path expected to be absent existed at
// snapshot time. Later checks treat it as unchanged whatever happens; only
// the absent-to-present edge is of interest.
type PresentState struct{}

// DirState records an existing directory tracked by modification time.
type DirState struct {
	ModTime time.Time
}

// GlobState records the expanded tree for a glob spec.
type GlobState struct {
	Tree *glob.Tree
}

func (ModTimeState) isState() {}
func (HashedState) isState()  {}
func (GoneState) isState()    {}
func (AbsentState) isState()  {}
func (PresentState) isState() {}
func (DirState) isState()     {}
func (GlobState) isState()    {}

// The cache file stores states behind the State interface, so every
// concrete type must be registered with gob.
func init() {
	gob.Register(ModTimeState{})
	gob.Register(HashedState{})
	gob.Register(GoneState{})
	gob.Register(AbsentState{})
	gob.Register(PresentState{})
	gob.Register(DirState{})
	gob.Register(GlobState{})
}
