package fingerprint

// Snapshot is the persisted fingerprint: one timestamp, one recorded state
// per watched spec, and the caller's configuration key and result value. A
// snapshot is written wholesale by Update and replaced wholesale by the
// next Update; it is never patched in place on disk.
type Snapshot[K, V any] struct {
	// Timestamp is the instant the snapshot logically describes. With the
	// begin-timestamp protocol it predates the caller's action, which is
	// what makes files the action touched detectable later.
	Timestamp Timestamp

	// SpecIDs and States are order-aligned with the spec list passed to
	// Update. The identities let a check detect that it was handed a
	// different spec list than the snapshot was taken with.
	SpecIDs []string
	States  []State

	Key   K
	Value V
}
