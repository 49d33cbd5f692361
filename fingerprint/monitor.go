package fingerprint

import (
	"reflect"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/stamp/errors"
	"github.com/grovetools/stamp/logging"
	"github.com/grovetools/stamp/util/pathutil"
)

// Monitor owns one cache file and provides the two public entry points:
// Update takes a fresh snapshot, Check compares current filesystem state
// against the stored one. A monitor holds no state of its own between
// calls; everything lives in the cache file, which must not be shared with
// another concurrently running monitor.
type Monitor[K, V any] struct {
	// KeyValid, together with CheckIfOnlyValueChanged, admits a key that is
	// not identical to the stored one to the value-only-changed report, for
	// callers that can cheaply patch their cached result when only the
	// logical key moved. A concurrent file change always takes precedence
	// over a value-only report.
	KeyValid                KeyComparator[K]
	CheckIfOnlyValueChanged bool

	// Exclude holds docker-style patterns; matching glob entries and
	// everything below them are invisible to change detection.
	Exclude []string

	cachePath string
	log       *logrus.Entry
}

// New creates a monitor over the given cache file path. The file need not
// exist yet; the first Check against a missing file reports a first run.
func New[K, V any](cachePath string) (*Monitor[K, V], error) {
	expanded, err := pathutil.Expand(cachePath)
	if err != nil {
		return nil, errors.InvalidInput("cache path: " + err.Error())
	}
	return &Monitor[K, V]{
		KeyValid:  DeepEqualKeys[K](),
		cachePath: expanded,
		log:       logging.NewLogger("fingerprint"),
	}, nil
}

// CachePath returns the expanded cache file path the monitor owns.
func (m *Monitor[K, V]) CachePath() string {
	return m.cachePath
}

// BeginUpdate captures a timestamp to pass to Update after running an
// action that may touch the watched files. Because the stored timestamp
// then predates the action while probing happens after it, anything the
// action wrote is conservatively reported changed on every later Check.
// Callers whose action cannot touch the watched set may skip this and pass
// a nil timestamp to Update, trading that guarantee for one less probe of
// the clock.
func (m *Monitor[K, V]) BeginUpdate() Timestamp {
	return Now()
}

// Update probes every spec in order and persists a fresh snapshot wholesale,
// replacing any previous one. If ts is nil the timestamp is captured now;
// pass the result of BeginUpdate instead when an action ran in between.
func (m *Monitor[K, V]) Update(root string, ts *Timestamp, specs []Spec, key K, value V) error {
	stamp := Now()
	if ts != nil {
		stamp = *ts
	}

	root, err := pathutil.Expand(root)
	if err != nil {
		return errors.InvalidInput("root: " + err.Error())
	}

	p := &prober{root: root, exclude: m.Exclude, log: m.log}
	if prev, err := readSnapshot[K, V](m.cachePath); err == nil {
		p.prior = &prior{ts: prev.Timestamp, states: alignStates(prev, specs)}
	}

	states := make([]State, len(specs))
	ids := make([]string, len(specs))
	for i, spec := range specs {
		state, err := p.probe(i, spec)
		if err != nil {
			return err
		}
		states[i] = state
		ids[i] = spec.String()
	}

	snap := &Snapshot[K, V]{
		Timestamp: stamp,
		SpecIDs:   ids,
		States:    states,
		Key:       key,
		Value:     value,
	}
	if err := writeSnapshot(m.cachePath, snap); err != nil {
		return err
	}
	m.log.WithField("cache", m.cachePath).
		WithField("specs", len(specs)).
		Debug("snapshot updated")
	return nil
}

// Check loads the stored snapshot and compares current filesystem state
// against it, reporting the most specific true reason for a change. All
// changed outcomes are ordinary results; only unexpected I/O failures
// while probing return an error.
func (m *Monitor[K, V]) Check(root string, specs []Spec, key K) (CheckResult[K, V], error) {
	var zero CheckResult[K, V]

	snap, err := readSnapshot[K, V](m.cachePath)
	if err != nil {
		switch errors.GetCode(err) {
		case errors.ErrCodeCacheNotFound:
			return CheckResult[K, V]{Reason: ReasonFirstRun}, nil
		case errors.ErrCodeCacheCorrupt:
			m.log.WithField("cache", m.cachePath).Debug("cache file corrupt; treating as miss")
			return CheckResult[K, V]{Reason: ReasonCorruptCache}, nil
		}
		return zero, err
	}

	root, err = pathutil.Expand(root)
	if err != nil {
		return zero, errors.InvalidInput("root: " + err.Error())
	}

	p := &prober{
		root:    root,
		exclude: m.Exclude,
		prior:   &prior{ts: snap.Timestamp, states: snap.States},
		log:     m.log,
	}

	// A file change always wins over a value-only report, so files are
	// probed first in declared order, stopping at the first difference.
	for i, spec := range specs {
		if i >= len(snap.States) || snap.SpecIDs[i] != spec.String() {
			// The spec list drifted from the one the snapshot was taken
			// with; the snapshot cannot vouch for this item.
			return CheckResult[K, V]{Reason: ReasonFileChanged, Path: spec.Path()}, nil
		}
		current, err := p.probe(i, spec)
		if err != nil {
			return zero, err
		}
		if path, changed := itemChanged(spec, snap.States[i], current, snap.Timestamp); changed {
			m.log.WithField("path", path).Debug("watched file changed")
			return CheckResult[K, V]{Reason: ReasonFileChanged, Path: path}, nil
		}
	}
	if len(snap.States) > len(specs) {
		// Items the snapshot monitored but the caller no longer declares.
		return CheckResult[K, V]{Reason: ReasonFileChanged, Path: specIDPath(snap.SpecIDs[len(specs)])}, nil
	}

	if !reflect.DeepEqual(key, snap.Key) {
		if m.CheckIfOnlyValueChanged && m.KeyValid != nil && m.KeyValid(key, snap.Key) {
			m.log.Debug("only the configuration key changed; cached result may be patched in place")
		}
		return CheckResult[K, V]{Reason: ReasonValueChanged, OldKey: snap.Key}, nil
	}

	return CheckResult[K, V]{Reason: ReasonUnchanged, Value: snap.Value, Specs: specs}, nil
}

// alignStates pairs the previous snapshot's states with the new spec list
// so probing can reuse recorded digests. A state is only offered as a
// pre-filter when the spec at that position is the same one the snapshot
// recorded.
func alignStates[K, V any](prev *Snapshot[K, V], specs []Spec) []State {
	states := make([]State, len(specs))
	for i, spec := range specs {
		if i < len(prev.States) && prev.SpecIDs[i] == spec.String() {
			states[i] = prev.States[i]
		}
	}
	return states
}

// specIDPath recovers the reportable path from a stored spec identity.
func specIDPath(id string) string {
	if _, path, ok := strings.Cut(id, " "); ok {
		return path
	}
	return id
}
