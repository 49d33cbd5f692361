package errors

import (
	"fmt"
)

// CacheNotFound creates a missing cache file error
func CacheNotFound(path string) *StampError {
	return New(ErrCodeCacheNotFound, fmt.Sprintf("cache file not found: %s", path)).
		WithDetail("path", path)
}

// CacheCorrupt creates a corrupt cache file error
func CacheCorrupt(path string, reason string) *StampError {
	return New(ErrCodeCacheCorrupt, fmt.Sprintf("cache file is corrupt: %s (%s)", path, reason)).
		WithDetail("path", path).
		WithDetail("reason", reason)
}

// CacheReadFailed creates a cache read failure error
func CacheReadFailed(path string, err error) *StampError {
	return Wrap(err, ErrCodeCacheRead, fmt.Sprintf("failed to read cache file: %s", path)).
		WithDetail("path", path)
}

// CacheWriteFailed creates a cache write failure error
func CacheWriteFailed(path string, err error) *StampError {
	return Wrap(err, ErrCodeCacheWrite, fmt.Sprintf("failed to write cache file: %s", path)).
		WithDetail("path", path)
}

// ProbeFailed creates a file probe failure error
func ProbeFailed(path string, err error) *StampError {
	return Wrap(err, ErrCodeProbeFailed, fmt.Sprintf("failed to probe file: %s", path)).
		WithDetail("path", path)
}

// PatternInvalid creates a malformed glob pattern error
func PatternInvalid(pattern string, reason string) *StampError {
	return New(ErrCodePatternInvalid, fmt.Sprintf("invalid glob pattern '%s': %s", pattern, reason)).
		WithDetail("pattern", pattern).
		WithDetail("reason", reason)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *StampError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *StampError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// InvalidInput creates an invalid input error
func InvalidInput(reason string) *StampError {
	return New(ErrCodeInvalidInput, reason)
}
