package header

import (
	"fmt"
	"strings"
)

// Syntax selects the canonical form written for tag keys. Both forms are
// always accepted on read; the syntax only governs output.
type Syntax int

const (
	// SyntaxInline writes "# KEY: value" lines with upper-cased keys and a
	// bare "#" separator before the body. This is the default.
	SyntaxInline Syntax = iota

	// SyntaxMarker writes "# :key" marker lines followed by one comment
	// line per value line, with a single blank line before the body.
	SyntaxMarker
)

// ParseSyntax parses a syntax name (inline|marker). An empty name selects
// the default inline syntax.
func ParseSyntax(name string) (Syntax, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "inline":
		return SyntaxInline, nil
	case "marker":
		return SyntaxMarker, nil
	default:
		return SyntaxInline, fmt.Errorf("%w: %s", ErrUnknownSyntax, name)
	}
}

// String returns the config-file name for the syntax.
func (s Syntax) String() string {
	if s == SyntaxMarker {
		return "marker"
	}

	return "inline"
}

// Field is one resolved (key, value) pair of the ordered output list.
// Key is a normalized lookup key; Value may contain embedded line breaks.
type Field struct {
	Key   string
	Value string
}

// SerializeOptions configures header rendering.
type SerializeOptions struct {
	// Syntax picks the written key form. Defaults to SyntaxInline.
	Syntax Syntax

	// WrapWidth is the word-wrap width for the free-text MISSION field,
	// in display cells. Values <= 0 fall back to DefaultWrapWidth.
	WrapWidth int

	// Mode identifies the free-text key: the field whose key equals
	// Mode.Normalize("MISSION") is word-wrapped.
	Mode NormalizeMode
}

// Render serializes shebang, preamble, and the ordered fields into comment
// lines and reattaches the preserved body.
//
// Exactly one separator (a bare "#" in inline syntax, a single blank line in
// marker syntax) precedes the body; blank-line runs produced at the boundary
// collapse to one so the head of the body never gains more than one blank
// line.
func Render(shebang string, preamble []string, fields []Field, body string, opts SerializeOptions) string {
	lines := headerLines(shebang, preamble, fields, opts)
	if len(lines) == 0 {
		return body
	}

	var out strings.Builder

	for _, line := range lines {
		out.WriteString(line)
		out.WriteByte('\n')
	}

	if opts.Syntax == SyntaxMarker {
		out.WriteByte('\n')

		body = trimLeadingBlankLines(body)
	}

	out.WriteString(body)

	return out.String()
}

// headerLines renders the comment-line sequence without the separator.
func headerLines(shebang string, preamble []string, fields []Field, opts SerializeOptions) []string {
	var lines []string

	if shebang != "" {
		lines = append(lines, shebang)
	}

	for _, p := range preamble {
		lines = append(lines, commentLine(p))
	}

	width := opts.WrapWidth
	if width <= 0 {
		width = DefaultWrapWidth
	}

	missionKey := opts.Mode.Normalize("MISSION")

	for _, field := range fields {
		valueLines := strings.Split(field.Value, "\n")
		if field.Key == missionKey {
			valueLines = wrapText(field.Value, width)
		}

		if opts.Syntax == SyntaxMarker {
			lines = append(lines, commentLine(":"+field.Key))
			for _, v := range valueLines {
				lines = append(lines, commentLine(v))
			}

			continue
		}

		display := strings.ToUpper(field.Key)

		if len(valueLines) == 0 || valueLines[0] == "" {
			lines = append(lines, commentLine(display+":"))
		} else {
			lines = append(lines, commentLine(display+": "+valueLines[0]))
		}

		for _, v := range valueLines[1:] {
			lines = append(lines, commentLine(v))
		}
	}

	if opts.Syntax == SyntaxInline && len(lines) > 0 {
		lines = append(lines, commentMarker)
	}

	return lines
}

// commentLine renders one logical content line as a comment line. Empty
// content becomes a bare comment marker with no trailing space.
func commentLine(content string) string {
	if content == "" {
		return commentMarker
	}

	return commentMarker + " " + content
}

// trimLeadingBlankLines removes blank lines from the head of the body.
func trimLeadingBlankLines(body string) string {
	for {
		switch {
		case strings.HasPrefix(body, "\n"):
			body = body[1:]
		case strings.HasPrefix(body, "\r\n"):
			body = body[2:]
		default:
			return body
		}
	}
}
