// Package defaults reads per-folder header default values.
//
// Each folder may carry a small JSON document mapping header keys to scalar
// default values, plus the optional WRAP_WIDTH setting. The document is read
// fresh for every operation and never cached across files. Malformed or
// non-object documents silently degrade to empty defaults; this store never
// fails an operation.
package defaults

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"

	"bhd/internal/header"
)

// FileName is the fixed per-folder defaults document name.
const FileName = ".bhd-defaults.json"

// wrapWidthKey is the defaults key carrying the folder's wrap width.
const wrapWidthKey = "WRAP_WIDTH"

// Defaults maps upper-cased header keys to stringified scalar defaults.
type Defaults map[string]string

// Load reads the defaults document for folder. A missing document is
// created empty (best effort) and yields empty defaults. Comments and
// trailing commas are tolerated (JSONC); anything unparsable, or a
// non-object top level, yields empty defaults rather than an error.
func Load(folder string) Defaults {
	path := filepath.Join(folder, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Best effort: seed an empty document so users can edit it.
			_ = atomic.WriteFile(path, bytes.NewReader([]byte("{}\n")))
		}

		return Defaults{}
	}

	return parse(data)
}

// parse decodes a defaults document, upper-casing keys and stringifying
// scalar values. Non-scalar values are dropped.
func parse(data []byte) Defaults {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Defaults{}
	}

	var raw map[string]any
	if json.Unmarshal(standardized, &raw) != nil {
		return Defaults{}
	}

	out := make(Defaults, len(raw))

	for key, value := range raw {
		str, ok := stringify(value)
		if !ok {
			continue
		}

		out[strings.ToUpper(key)] = str
	}

	return out
}

// Get returns the default for key, looked up case-insensitively.
func (d Defaults) Get(key string) (string, bool) {
	v, ok := d[strings.ToUpper(key)]

	return v, ok
}

// WrapWidth returns the folder's effective wrap width. The WRAP_WIDTH key
// accepts an integer or a digit string; anything else falls back to the
// default width.
func (d Defaults) WrapWidth() int {
	raw, ok := d[wrapWidthKey]
	if !ok {
		return header.DefaultWrapWidth
	}

	width, err := strconv.Atoi(raw)
	if err != nil || width <= 0 {
		return header.DefaultWrapWidth
	}

	return width
}

// stringify converts a decoded JSON scalar to its default-value string.
func stringify(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case bool:
		return strconv.FormatBool(typed), true
	case float64:
		if typed == math.Trunc(typed) {
			return strconv.FormatInt(int64(typed), 10), true
		}

		return strconv.FormatFloat(typed, 'g', -1, 64), true
	default:
		return "", false
	}
}
