package fingerprint

// Reason classifies the outcome of a Check.
type Reason int

const (
	// ReasonUnchanged: nothing relevant changed; the cached value is valid.
	ReasonUnchanged Reason = iota
	// ReasonFirstRun: no cache file exists yet.
	ReasonFirstRun
	// ReasonCorruptCache: a cache file exists but could not be read back.
	ReasonCorruptCache
	// ReasonFileChanged: a watched file or glob match differs.
	ReasonFileChanged
	// ReasonValueChanged: only the configuration key differs; no watched
	// file changed.
	ReasonValueChanged
)

func (r Reason) String() string {
	switch r {
	case ReasonUnchanged:
		return "unchanged"
	case ReasonFirstRun:
		return "first-run"
	case ReasonCorruptCache:
		return "corrupt-cache"
	case ReasonFileChanged:
		return "file-changed"
	case ReasonValueChanged:
		return "value-changed"
	}
	return "unknown"
}

// CheckResult is the outcome of a Check. Every changed outcome, including
// first runs and corrupt caches, is an ordinary value; only unexpected I/O
// failures surface as errors.
type CheckResult[K, V any] struct {
	Reason Reason

	// Path is the first offending root-relative path in declared spec
	// order, set when Reason is ReasonFileChanged. Only the first
	// difference is reported; changes are not aggregated.
	Path string

	// OldKey is the key the snapshot was stored under, set when Reason is
	// ReasonValueChanged.
	OldKey K

	// Value is the cached result and Specs the spec list that was
	// verified, set when Reason is ReasonUnchanged.
	Value V
	Specs []Spec
}

// Changed reports whether the caller must rerun its action.
func (r CheckResult[K, V]) Changed() bool {
	return r.Reason != ReasonUnchanged
}
