package header

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// DefaultWrapWidth is the wrap width used when folder defaults supply none.
const DefaultWrapWidth = 72

// wrapText greedily word-wraps text to width display cells. Embedded line
// breaks are treated as ordinary word separators, so re-wrapping previously
// wrapped text is stable. Words wider than width get their own line.
func wrapText(text string, width int) []string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var (
		out  []string
		line strings.Builder
		used int
	)

	for _, word := range words {
		w := runewidth.StringWidth(word)

		if line.Len() == 0 {
			line.WriteString(word)
			used = w

			continue
		}

		if used+1+w > width {
			out = append(out, line.String())
			line.Reset()
			line.WriteString(word)
			used = w

			continue
		}

		line.WriteByte(' ')
		line.WriteString(word)
		used += 1 + w
	}

	if line.Len() > 0 {
		out = append(out, line.String())
	}

	return out
}
