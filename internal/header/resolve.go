package header

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// canonicalKeys is the fixed required key set in its canonical order.
// Fixed keys always precede ad-hoc keys in the ordered output list.
var canonicalKeys = []string{"MISSION", "STATUS", "VERSION", "NOTES", "DATE", "FILE", "AUTHOR"}

// DateStampLayout is the stamp format written into the DATE field.
const DateStampLayout = "2006-01-02 15:04:05"

// fallback values for required keys with neither a header value nor a
// folder default.
const (
	sentinelValue   = "tbd."
	zeroVersion     = "0.0.0"
	fileKey         = "FILE"
	dateKey         = "DATE"
	versionKey      = "VERSION"
	defaultFileName = "tbd."
)

// PreambleKey is the pseudo-key interactive surfaces use to address the
// unkeyed preamble. It is never stored in a TagMap.
const PreambleKey = "preamble"

// DatePolicy selects how the DATE field is treated during resolution.
// The two observed behaviors are deliberately kept as explicit modes.
type DatePolicy int

const (
	// DateIfMissing fills DATE only when the header has none, using the
	// file's modification time. This is the default.
	DateIfMissing DatePolicy = iota

	// DateAlways refreshes DATE to the current time on every resolve.
	DateAlways
)

// ParseDatePolicy parses a policy name (missing|always). An empty name
// selects the default missing-only policy.
func ParseDatePolicy(name string) (DatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "missing":
		return DateIfMissing, nil
	case "always":
		return DateAlways, nil
	default:
		return DateIfMissing, fmt.Errorf("%w: %s", ErrUnknownDatePolicy, name)
	}
}

// String returns the config-file name for the policy.
func (p DatePolicy) String() string {
	if p == DateAlways {
		return "always"
	}

	return "missing"
}

// ResolveOptions configures default resolution for one file.
type ResolveOptions struct {
	// Path is the target file path; its base name always wins the FILE key.
	Path string

	// ModTime is the file's last-modified time for the DATE fallback.
	// A zero value falls back to Now.
	ModTime time.Time

	// Now supplies the current time; nil means time.Now. Injected for
	// deterministic tests.
	Now func() time.Time

	// DatePolicy selects missing-only or unconditional DATE refresh.
	DatePolicy DatePolicy

	// Mode is the tag normalization mode canonical keys are looked up with.
	Mode NormalizeMode
}

// Resolve merges parsed tags with folder defaults into the ordered output
// list. Fixed required keys come first in canonical order, then every tag
// the header already had in discovery order; keys set on the map after
// parsing simply land at the tail of the discovery order. No key appears
// twice, and resolving the output of a previous resolve yields the same
// list (FILE and DATE being derived are recomputed, not drifted).
//
// Resolve does not mutate tags and performs no I/O.
func Resolve(tags *TagMap, defaults map[string]string, opts ResolveOptions) []Field {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	out := make([]Field, 0, len(canonicalKeys)+tags.Len())
	seen := make(map[string]bool, len(canonicalKeys)+tags.Len())

	for _, display := range canonicalKeys {
		key := opts.Mode.Normalize(display)

		out = append(out, Field{Key: key, Value: resolveFixed(display, key, tags, defaults, opts, now)})
		seen[key] = true
	}

	for _, key := range tags.Keys() {
		if seen[key] {
			continue
		}

		value, _ := tags.Value(key)
		out = append(out, Field{Key: key, Value: value})
		seen[key] = true
	}

	return out
}

// resolveFixed computes the value of one fixed required key.
func resolveFixed(
	display, key string, tags *TagMap, defaults map[string]string, opts ResolveOptions, now func() time.Time,
) string {
	// FILE is derived, never user-editable data.
	if display == fileKey {
		if opts.Path == "" {
			return defaultFileName
		}

		return filepath.Base(opts.Path)
	}

	if display == dateKey && opts.DatePolicy == DateAlways {
		return now().Format(DateStampLayout)
	}

	if value, ok := tags.Value(key); ok {
		return value
	}

	if def, ok := defaults[display]; ok && def != "" {
		return def
	}

	switch display {
	case versionKey:
		return zeroVersion
	case dateKey:
		stamp := opts.ModTime
		if stamp.IsZero() {
			stamp = now()
		}

		return stamp.Format(DateStampLayout)
	default:
		return sentinelValue
	}
}
