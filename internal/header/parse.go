package header

import (
	"regexp"
	"strings"
)

const (
	shebangMarker = "#!"
	commentMarker = "#"
)

// inlineTagRe matches the "FIRSTWORD: rest" key-start form. The first word
// may not contain whitespace or a colon; only the first colon after it
// delimits key from value, later colons belong to the value.
var inlineTagRe = regexp.MustCompile(`^\s*([^\s:]+)\s*:\s*(.*)$`)

// Parsed is the decomposition of a file into shebang, header, and body.
type Parsed struct {
	// Shebang is the verbatim first line when it begins with "#!",
	// without its line terminator. Empty when absent.
	Shebang string

	// Preamble holds unkeyed comment lines preceding the first tag.
	Preamble []string

	// Tags maps normalized keys to value lines in first-seen order.
	Tags *TagMap

	// Body is everything after the header, byte-for-byte, including its
	// own line terminators.
	Body string
}

// Parse decomposes src into shebang, preamble, tags, and untouched body.
//
// The header is the maximal contiguous prefix of comment lines following the
// optional shebang. Each comment line loses exactly one leading comment
// marker and at most one following space; the remaining content is
// classified as a key start (":tag" marker form or "KEY: value" inline
// form), a continuation of the open key, or preamble. Tag names are
// normalized with mode at the moment a key opens.
//
// Parse is pure and idempotent: re-parsing serializer output reproduces the
// same keys and value line sequences.
func Parse(src string, mode NormalizeMode) Parsed {
	parsed := Parsed{Tags: NewTagMap()}

	pos := 0

	line, next, ok := cutLine(src, pos)
	if ok && strings.HasPrefix(line, shebangMarker) {
		parsed.Shebang = line
		pos = next
	}

	current := ""

	for {
		line, next, ok = cutLine(src, pos)
		if !ok || !isCommentLine(line) {
			break
		}

		current = classify(&parsed, current, commentContent(line), mode)
		pos = next
	}

	parsed.Body = src[pos:]
	parsed.Tags.trimTrailingBlanks()

	return parsed
}

// classify applies one logical content line to the parse state and returns
// the key left open afterwards ("" when none).
func classify(parsed *Parsed, current, content string, mode NormalizeMode) string {
	if strings.TrimSpace(content) == "" {
		if current != "" {
			parsed.Tags.Append(current, "")
		} else {
			parsed.Preamble = append(parsed.Preamble, "")
		}

		return current
	}

	trimmed := strings.TrimSpace(content)

	// Marker form: ":tag" opens a key with no inline value. An empty tag
	// closes the open key without creating an entry.
	if rest, ok := strings.CutPrefix(trimmed, ":"); ok {
		key := mode.Normalize(rest)
		if key == "" {
			return ""
		}

		parsed.Tags.Set(key, nil)

		return key
	}

	// Inline form: "FIRSTWORD: rest".
	if m := inlineTagRe.FindStringSubmatch(content); m != nil {
		key := mode.Normalize(m[1])
		if key == "" {
			return ""
		}

		rest := strings.TrimRight(m[2], " \t")
		if rest == "" {
			parsed.Tags.Set(key, nil)
		} else {
			parsed.Tags.Set(key, []string{rest})
		}

		return key
	}

	// Continuation of the open key, or preamble when no key is open.
	value := strings.TrimRight(content, " \t")
	if current != "" {
		parsed.Tags.Append(current, value)
	} else {
		parsed.Preamble = append(parsed.Preamble, value)
	}

	return current
}

// cutLine returns the line starting at pos without its terminator, the
// offset of the following line, and whether a line existed.
func cutLine(src string, pos int) (string, int, bool) {
	if pos >= len(src) {
		return "", pos, false
	}

	end := strings.IndexByte(src[pos:], '\n')
	if end < 0 {
		return strings.TrimSuffix(src[pos:], "\r"), len(src), true
	}

	line := src[pos : pos+end]

	return strings.TrimSuffix(line, "\r"), pos + end + 1, true
}

// isCommentLine reports whether the line's content, ignoring leading
// whitespace, starts with the comment marker.
func isCommentLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), commentMarker)
}

// commentContent strips exactly one comment marker and at most one
// following space from the line's content.
func commentContent(line string) string {
	content := strings.TrimLeft(line, " \t")
	content = strings.TrimPrefix(content, commentMarker)
	content = strings.TrimPrefix(content, " ")

	return content
}
