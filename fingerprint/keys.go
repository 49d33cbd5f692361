package fingerprint

import "reflect"

// KeyComparator reports whether a new configuration key may be considered
// no worse than the key a snapshot was stored under. It gates the
// value-only-changed fast path: when it accepts, a check whose only
// difference is the key can be reported as a value change rather than
// forcing a rebuild.
type KeyComparator[K any] func(newKey, storedKey K) bool

// ExactKeys accepts only keys equal to the stored one.
func ExactKeys[K comparable]() KeyComparator[K] {
	return func(newKey, storedKey K) bool {
		return newKey == storedKey
	}
}

// DeepEqualKeys is ExactKeys for key types that are not comparable.
func DeepEqualKeys[K any]() KeyComparator[K] {
	return func(newKey, storedKey K) bool {
		return reflect.DeepEqual(newKey, storedKey)
	}
}

// SubsetKeys treats keys as unordered sets: the stored snapshot remains
// valid as long as every element of the new key was already present in the
// stored one.
func SubsetKeys[E comparable]() KeyComparator[[]E] {
	return func(newKey, storedKey []E) bool {
		stored := make(map[E]struct{}, len(storedKey))
		for _, e := range storedKey {
			stored[e] = struct{}{}
		}
		for _, e := range newKey {
			if _, ok := stored[e]; !ok {
				return false
			}
		}
		return true
	}
}
