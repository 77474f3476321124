package header

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// versionRe is the strict dotted three-component version pattern.
var versionRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Version is a dotted three-component version number.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a strict int.int.int version string. Anything else
// yields the zero version 0.0.0 with ok=false; malformed versions are never
// an error.
func ParseVersion(s string) (Version, bool) {
	m := versionRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, false
	}

	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])

	return Version{Major: major, Minor: minor, Patch: patch}, true
}

// String renders the version as major.minor.patch.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Part identifies the version component a bump targets.
type Part int

const (
	PartMajor Part = iota
	PartMinor
	PartPatch
)

// ParsePart parses a bump part token. Unknown tokens are rejected with
// ErrUnknownPart; no state changes on failure.
func ParsePart(token string) (Part, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "major":
		return PartMajor, nil
	case "minor":
		return PartMinor, nil
	case "patch":
		return PartPatch, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPart, token)
	}
}

// String returns the token for the part.
func (p Part) String() string {
	switch p {
	case PartMajor:
		return "major"
	case PartMinor:
		return "minor"
	default:
		return "patch"
	}
}

// Bump increments the target component and zeroes every component to its
// right, strictly increasing the (major, minor, patch) tuple ordering.
func (v Version) Bump(part Part) Version {
	switch part {
	case PartMajor:
		return Version{Major: v.Major + 1}
	case PartMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}
