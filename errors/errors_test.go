package errors

import (
	"fmt"
	"testing"
)

func TestStampError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeCacheCorrupt, "cache is corrupt")
	if err.Code != ErrCodeCacheCorrupt {
		t.Errorf("expected code %s, got %s", ErrCodeCacheCorrupt, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeProbeFailed, "probe failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeProbeFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeCacheCorrupt) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("path", "/tmp/cache").WithDetail("size", 42)
	if detailed.Details["path"] != "/tmp/cache" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test CacheNotFound
	err := CacheNotFound("/tmp/monitor.cache")
	if err.Code != ErrCodeCacheNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeCacheNotFound, err.Code)
	}
	if err.Details["path"] != "/tmp/monitor.cache" {
		t.Error("CacheNotFound should include path detail")
	}

	// Test CacheCorrupt
	err = CacheCorrupt("/tmp/monitor.cache", "checksum mismatch")
	if err.Code != ErrCodeCacheCorrupt {
		t.Errorf("expected code %s, got %s", ErrCodeCacheCorrupt, err.Code)
	}
	if err.Details["reason"] != "checksum mismatch" {
		t.Error("CacheCorrupt should include reason detail")
	}

	// Test PatternInvalid
	err = PatternInvalid("a/**/b", "recursive wildcards are not supported")
	if err.Code != ErrCodePatternInvalid {
		t.Errorf("expected code %s, got %s", ErrCodePatternInvalid, err.Code)
	}
	if err.Details["pattern"] != "a/**/b" {
		t.Error("PatternInvalid should include pattern detail")
	}
}
