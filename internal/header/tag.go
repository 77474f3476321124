// Package header parses, resolves, and serializes the leading comment
// header of a source file.
//
// A header is the maximal contiguous run of line comments at the top of a
// file, optionally preceded by a shebang line. It decomposes into an
// unkeyed preamble and an ordered mapping of normalized tag keys to
// multi-line values. Parsing and serialization are pure functions over
// in-memory text; all file I/O lives in the headerfile package.
package header

import (
	"fmt"
	"strings"
)

// NormalizeMode selects how raw tag names are canonicalized into lookup keys.
type NormalizeMode int

const (
	// NormalizeSnake lowercases the tag and collapses whitespace runs into a
	// single underscore. This is the default.
	NormalizeSnake NormalizeMode = iota

	// NormalizeLower lowercases the tag, whitespace preserved.
	NormalizeLower

	// NormalizePreserve returns the trimmed tag unchanged.
	NormalizePreserve
)

// ParseNormalizeMode parses a mode name (snake|lower|preserve).
// An empty name selects the default snake mode.
func ParseNormalizeMode(name string) (NormalizeMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "snake":
		return NormalizeSnake, nil
	case "lower":
		return NormalizeLower, nil
	case "preserve":
		return NormalizePreserve, nil
	default:
		return NormalizeSnake, fmt.Errorf("%w: %s", ErrUnknownNormalizeMode, name)
	}
}

// String returns the config-file name for the mode.
func (m NormalizeMode) String() string {
	switch m {
	case NormalizeLower:
		return "lower"
	case NormalizePreserve:
		return "preserve"
	default:
		return "snake"
	}
}

// Normalize canonicalizes a raw tag name into a lookup key.
// An empty result means "no tag" and must not be stored by callers.
func (m NormalizeMode) Normalize(raw string) string {
	tag := strings.TrimSpace(raw)
	switch m {
	case NormalizePreserve:
		return tag
	case NormalizeLower:
		return strings.ToLower(tag)
	default:
		return strings.ToLower(strings.Join(strings.Fields(tag), "_"))
	}
}
