package fingerprint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/grovetools/stamp/digest"
)

func TestModTimeRaceWindow(t *testing.T) {
	base := time.Unix(1700000000, 0)
	ts := Timestamp{Wall: base}
	spec := MonitorFile("main.c")

	// An mtime safely before the snapshot instant is trusted.
	old := ModTimeState{ModTime: base.Add(-2 * time.Second)}
	_, changed := itemChanged(spec, old, old, ts)
	assert.False(t, changed)

	// An mtime at the snapshot instant could stem from a write concurrent
	// with the snapshot, so an unchanged mtime proves nothing.
	racy := ModTimeState{ModTime: base}
	_, changed = itemChanged(spec, racy, racy, ts)
	assert.True(t, changed)

	after := ModTimeState{ModTime: base.Add(time.Second)}
	_, changed = itemChanged(spec, after, after, ts)
	assert.True(t, changed)
}

func TestHashedStateComparison(t *testing.T) {
	base := time.Unix(1700000000, 0)
	ts := Timestamp{Wall: base}
	spec := MonitorFileHashed("config.h")

	// With a safely recorded stored mtime, matching digests settle it even
	// when the current mtime moved: identical rewrites stay unchanged.
	old := HashedState{ModTime: base.Add(-2 * time.Second), Digest: digest.Digest(1)}
	cur := HashedState{ModTime: base.Add(time.Second), Digest: digest.Digest(1)}
	_, changed := itemChanged(spec, old, cur, ts)
	assert.False(t, changed)

	cur.Digest = digest.Digest(2)
	path, changed := itemChanged(spec, old, cur, ts)
	assert.True(t, changed)
	assert.Equal(t, "config.h", path)

	// A stored mtime inside the race window poisons the recorded digest:
	// the content it describes may postdate what the action read, so a
	// matching digest proves nothing.
	racy := HashedState{ModTime: base, Digest: digest.Digest(1)}
	same := HashedState{ModTime: base, Digest: digest.Digest(1)}
	path, changed = itemChanged(spec, racy, same, ts)
	assert.True(t, changed)
	assert.Equal(t, "config.h", path)
}

func TestGoneStateAlwaysChanged(t *testing.T) {
	ts := Timestamp{Wall: time.Unix(1700000000, 0)}
	spec := MonitorFile("gone.c")

	for _, current := range []State{
		GoneState{},
		ModTimeState{ModTime: time.Unix(1600000000, 0)},
	} {
		path, changed := itemChanged(spec, GoneState{}, current, ts)
		assert.True(t, changed)
		assert.Equal(t, "gone.c", path)
	}
}

func TestStateKindMismatchIsAChange(t *testing.T) {
	ts := Timestamp{Wall: time.Unix(1700000000, 0)}
	mtime := time.Unix(1600000000, 0)

	// A directory replaced by a file or vice versa never matches, even
	// with an identical mtime.
	_, changed := itemChanged(MonitorDirectory("d"), DirState{ModTime: mtime}, ModTimeState{ModTime: mtime}, ts)
	assert.True(t, changed)

	_, changed = itemChanged(MonitorFile("f"), ModTimeState{ModTime: mtime}, DirState{ModTime: mtime}, ts)
	assert.True(t, changed)
}
