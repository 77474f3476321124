package header

import "errors"

var (
	// ErrUnknownNormalizeMode reports an unrecognized tag transform name.
	ErrUnknownNormalizeMode = errors.New("unknown tag transform")

	// ErrUnknownPart reports an unrecognized version bump part token.
	ErrUnknownPart = errors.New("unknown version part (want major, minor, or patch)")

	// ErrUnknownSyntax reports an unrecognized header syntax name.
	ErrUnknownSyntax = errors.New("unknown header syntax")

	// ErrUnknownDatePolicy reports an unrecognized date policy name.
	ErrUnknownDatePolicy = errors.New("unknown date policy")
)
