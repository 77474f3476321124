package header

import "strings"

// TagMap is an insertion-order-preserving mapping of normalized tag keys to
// their value lines. A key keeps its first-seen position; redefining a key
// overwrites its value in place, it never produces a duplicate slot.
type TagMap struct {
	keys   []string
	values map[string][]string
}

// NewTagMap returns an empty TagMap.
func NewTagMap() *TagMap {
	return &TagMap{values: make(map[string][]string)}
}

// Set stores the value lines for key, overwriting any previous value.
// Empty keys are ignored.
func (m *TagMap) Set(key string, lines []string) {
	if key == "" {
		return
	}

	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = lines
}

// SetValue stores a single multi-line string value, split on line breaks.
func (m *TagMap) SetValue(key, value string) {
	if value == "" {
		m.Set(key, nil)

		return
	}

	m.Set(key, strings.Split(value, "\n"))
}

// Append adds one value line to key, creating the key if needed.
func (m *TagMap) Append(key, line string) {
	if key == "" {
		return
	}

	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.values[key] = append(m.values[key], line)
}

// Lines returns the stored value lines for key.
func (m *TagMap) Lines(key string) ([]string, bool) {
	lines, ok := m.values[key]

	return lines, ok
}

// Value returns the value for key joined into a single string.
func (m *TagMap) Value(key string) (string, bool) {
	lines, ok := m.values[key]
	if !ok {
		return "", false
	}

	return strings.Join(lines, "\n"), true
}

// Has reports whether key is present.
func (m *TagMap) Has(key string) bool {
	_, ok := m.values[key]

	return ok
}

// Delete removes key and its value. Removing an absent key is a no-op.
func (m *TagMap) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}

	delete(m.values, key)

	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)

			break
		}
	}
}

// Keys returns the keys in first-seen order. The returned slice is a copy.
func (m *TagMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)

	return out
}

// Len returns the number of stored keys.
func (m *TagMap) Len() int {
	return len(m.keys)
}

// trimTrailingBlanks drops trailing empty value lines from every key so that
// serializer separator lines are absorbed on re-parse.
func (m *TagMap) trimTrailingBlanks() {
	for key, lines := range m.values {
		for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}

		m.values[key] = lines
	}
}
