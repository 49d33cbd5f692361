package fingerprint

import (
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/stamp/digest"
	"github.com/grovetools/stamp/errors"
	"github.com/grovetools/stamp/glob"
)

// prior carries the previous snapshot during probing so mtime-unchanged
// files can reuse their recorded digests instead of being rehashed.
type prior struct {
	ts     Timestamp
	states []State
}

type prober struct {
	root    string
	exclude []string
	prior   *prior
	log     *logrus.Entry
}

// probe computes the current observable state for one spec. Absence of the
// probed path is an expected state, never an error; any other I/O failure
// propagates as ErrCodeProbeFailed.
func (p *prober) probe(i int, spec Spec) (State, error) {
	full := filepath.Join(p.root, spec.path)

	switch spec.kind {
	case kindFile:
		info, err := os.Stat(full)
		if os.IsNotExist(err) {
			return GoneState{}, nil
		}
		if err != nil {
			return nil, errors.ProbeFailed(spec.path, err)
		}
		return ModTimeState{ModTime: info.ModTime()}, nil

	case kindDirectory:
		info, err := os.Stat(full)
		if os.IsNotExist(err) {
			return GoneState{}, nil
		}
		if err != nil {
			return nil, errors.ProbeFailed(spec.path, err)
		}
		if !info.IsDir() {
			return GoneState{}, nil
		}
		return DirState{ModTime: info.ModTime()}, nil

	case kindNonExistentFile:
		_, err := os.Stat(full)
		if os.IsNotExist(err) {
			return AbsentState{}, nil
		}
		if err != nil {
			return nil, errors.ProbeFailed(spec.path, err)
		}
		return PresentState{}, nil

	case kindFileHashed:
		info, err := os.Stat(full)
		if os.IsNotExist(err) {
			return GoneState{}, nil
		}
		if err != nil {
			return nil, errors.ProbeFailed(spec.path, err)
		}
		mtime := info.ModTime()
		if h, ok := p.priorState(i).(HashedState); ok && h.ModTime.Equal(mtime) && p.prior.ts.Covers(mtime) {
			// mtime pre-filter: an untouched mtime recorded safely before
			// the prior snapshot's timestamp is trusted without rehashing.
			return HashedState{ModTime: mtime, Digest: h.Digest}, nil
		}
		d, err := digest.File(full)
		if err != nil {
			if stderrors.Is(err, os.ErrNotExist) {
				return GoneState{}, nil
			}
			return nil, errors.ProbeFailed(spec.path, err)
		}
		return HashedState{ModTime: mtime, Digest: d}, nil

	case kindGlob:
		var priorTree *glob.Tree
		if g, ok := p.priorState(i).(GlobState); ok {
			priorTree = g.Tree
		}
		globRoot := filepath.Join(p.root, spec.path)
		tree, err := glob.Expand(globRoot, spec.pattern, glob.Options{Exclude: p.exclude}, p.leafProbe(globRoot, priorTree))
		if err != nil {
			return nil, err
		}
		return GlobState{Tree: tree}, nil
	}

	return nil, errors.InvalidInput("unknown spec kind")
}

// leafProbe hashes one matched glob file, reusing the prior tree's digest
// when the mtime pre-filter allows it. Files that vanish between listing
// and probing are skipped.
func (p *prober) leafProbe(globRoot string, priorTree *glob.Tree) glob.LeafProbe {
	return func(rel string) (glob.Leaf, bool, error) {
		full := filepath.Join(globRoot, rel)
		info, err := os.Stat(full)
		if os.IsNotExist(err) {
			return glob.Leaf{}, false, nil
		}
		if err != nil {
			return glob.Leaf{}, false, errors.ProbeFailed(rel, err)
		}
		mtime := info.ModTime()
		if priorTree != nil {
			if leaf, ok := priorTree.Lookup(rel); ok && leaf.ModTime.Equal(mtime) && p.prior.ts.Covers(mtime) {
				return glob.Leaf{ModTime: mtime, Digest: leaf.Digest}, true, nil
			}
		}
		d, err := digest.File(full)
		if err != nil {
			if stderrors.Is(err, os.ErrNotExist) {
				return glob.Leaf{}, false, nil
			}
			return glob.Leaf{}, false, errors.ProbeFailed(rel, err)
		}
		return glob.Leaf{ModTime: mtime, Digest: d}, true, nil
	}
}

func (p *prober) priorState(i int) State {
	if p.prior == nil || i >= len(p.prior.states) {
		return nil
	}
	return p.prior.states[i]
}
