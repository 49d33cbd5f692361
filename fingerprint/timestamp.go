package fingerprint

import "time"

// mtimeResolution is the coarsest modification-time resolution the host
// filesystem is assumed to provide. Timestamps are truncated down to it so
// that comparisons against file mtimes stay conservative: a file written
// within the same resolution window as the snapshot can never be proven
// unmodified by its mtime alone.
const mtimeResolution = time.Second

// Timestamp is an opaque instant captured when a snapshot is taken. It is
// compared only for ordering, never used for wall-clock arithmetic.
type Timestamp struct {
	Wall time.Time
}

// Now captures the current instant, truncated to mtimeResolution.
func Now() Timestamp {
	return Timestamp{Wall: time.Now().Truncate(mtimeResolution)}
}

// Covers reports whether a recorded modification time is strictly earlier
// than the timestamp. Only then can an unchanged mtime prove an unchanged
// file; an mtime at or after the timestamp cannot rule out a write
// concurrent with the snapshot.
func (ts Timestamp) Covers(mtime time.Time) bool {
	return mtime.Before(ts.Wall)
}

// IsZero reports whether the timestamp was never captured.
func (ts Timestamp) IsZero() bool {
	return ts.Wall.IsZero()
}

func (ts Timestamp) String() string {
	return ts.Wall.Format(time.RFC3339)
}
