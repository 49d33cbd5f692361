// Package glob implements the pattern-matching subsystem of the stamp
// engine. A pattern is a sequence of path-segment matchers, one per
// directory level; expansion walks a directory tree applying one segment
// per level and records the matching files and traversed subdirectories in
// a sorted Tree.
package glob

import (
	"strings"

	"github.com/grovetools/stamp/errors"
)

// Segment matches a single path component. It is either a literal name or a
// wildcard matcher built from literal runs separated by '*'.
type Segment struct {
	raw   string
	parts []string
}

// Literal reports whether the segment matches exactly one name.
func (s Segment) Literal() bool {
	return len(s.parts) == 1
}

// String returns the segment as written in the pattern.
func (s Segment) String() string {
	return s.raw
}

// Match reports whether a single path component satisfies the segment.
func (s Segment) Match(name string) bool {
	if name == "" {
		return false
	}
	if len(s.parts) == 1 {
		return name == s.parts[0]
	}

	first := s.parts[0]
	last := s.parts[len(s.parts)-1]
	if !strings.HasPrefix(name, first) {
		return false
	}
	rest := name[len(first):]
	if !strings.HasSuffix(rest, last) {
		return false
	}
	rest = rest[:len(rest)-len(last)]

	// Middle runs must appear in order within what the outer runs left over.
	for _, part := range s.parts[1 : len(s.parts)-1] {
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
	}
	return true
}

// NewSegment builds a single segment matcher from one path component.
func NewSegment(component string) (Segment, error) {
	if component == "" {
		return Segment{}, errors.PatternInvalid(component, "empty path segment")
	}
	if strings.Contains(component, "**") {
		return Segment{}, errors.PatternInvalid(component, "recursive wildcards are not supported")
	}
	return Segment{raw: component, parts: strings.Split(component, "*")}, nil
}

// Pattern is a parsed glob pattern: one segment per directory level.
type Pattern struct {
	segments []Segment
}

// Parse splits a pattern string on '/' and validates each segment. Patterns
// are root-relative; absolute patterns and empty segments are construction
// errors, as is the recursive '**' form.
func Parse(pattern string) (Pattern, error) {
	if pattern == "" {
		return Pattern{}, errors.PatternInvalid(pattern, "empty pattern")
	}
	if strings.HasPrefix(pattern, "/") {
		return Pattern{}, errors.PatternInvalid(pattern, "patterns must be root-relative")
	}

	components := strings.Split(pattern, "/")
	segments := make([]Segment, 0, len(components))
	for _, component := range components {
		seg, err := NewSegment(component)
		if err != nil {
			return Pattern{}, errors.PatternInvalid(pattern, component+": "+errMessage(err))
		}
		segments = append(segments, seg)
	}
	return Pattern{segments: segments}, nil
}

// MustParse is Parse for patterns known valid at compile time. It panics on
// malformed input, which is a caller bug by contract.
func MustParse(pattern string) Pattern {
	p, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPattern builds a pattern directly from parsed segments.
func NewPattern(segments ...Segment) Pattern {
	return Pattern{segments: segments}
}

// Segments returns the parsed segment sequence.
func (p Pattern) Segments() []Segment {
	return p.segments
}

// String reassembles the pattern text.
func (p Pattern) String() string {
	raw := make([]string, len(p.segments))
	for i, seg := range p.segments {
		raw[i] = seg.raw
	}
	return strings.Join(raw, "/")
}

func errMessage(err error) string {
	if stampErr, ok := err.(*errors.StampError); ok {
		if reason, ok := stampErr.Details["reason"].(string); ok {
			return reason
		}
	}
	return err.Error()
}
