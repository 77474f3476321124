package defaults_test

import (
	"os"
	"path/filepath"
	"testing"

	"bhd/internal/defaults"
	"bhd/internal/header"
)

func writeDefaults(t *testing.T, dir, content string) {
	t.Helper()

	path := filepath.Join(dir, defaults.FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write defaults: %v", err)
	}
}

func TestLoadReadsScalars(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDefaults(t, dir, `{"author": "Tester", "WRAP_WIDTH": 30, "draft": true, "ratio": 1.5}`)

	d := defaults.Load(dir)

	if v, _ := d.Get("AUTHOR"); v != "Tester" {
		t.Errorf("AUTHOR = %q", v)
	}

	if v, _ := d.Get("author"); v != "Tester" {
		t.Errorf("lookup should be case-insensitive, got %q", v)
	}

	if v, _ := d.Get("DRAFT"); v != "true" {
		t.Errorf("DRAFT = %q", v)
	}

	if v, _ := d.Get("RATIO"); v != "1.5" {
		t.Errorf("RATIO = %q", v)
	}

	if got := d.WrapWidth(); got != 30 {
		t.Errorf("WrapWidth() = %d, want 30", got)
	}
}

func TestLoadToleratesComments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDefaults(t, dir, "{\n  // house style\n  \"status\": \"draft\",\n}\n")

	d := defaults.Load(dir)

	if v, _ := d.Get("STATUS"); v != "draft" {
		t.Errorf("STATUS = %q, want draft", v)
	}
}

func TestLoadInvalidYieldsEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "garbage", content: "not json at all"},
		{name: "array top level", content: `["a", "b"]`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeDefaults(t, dir, tt.content)

			d := defaults.Load(dir)
			if len(d) != 0 {
				t.Errorf("expected empty defaults, got %v", d)
			}
		})
	}
}

func TestLoadMissingCreatesEmptyDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	d := defaults.Load(dir)
	if len(d) != 0 {
		t.Errorf("expected empty defaults, got %v", d)
	}

	data, err := os.ReadFile(filepath.Join(dir, defaults.FileName))
	if err != nil {
		t.Fatalf("defaults document should have been seeded: %v", err)
	}

	if string(data) != "{}\n" {
		t.Errorf("seeded document = %q, want empty object", data)
	}
}

func TestWrapWidthFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "absent", content: `{}`, want: header.DefaultWrapWidth},
		{name: "not a number", content: `{"WRAP_WIDTH": "wide"}`, want: header.DefaultWrapWidth},
		{name: "zero", content: `{"WRAP_WIDTH": 0}`, want: header.DefaultWrapWidth},
		{name: "negative", content: `{"WRAP_WIDTH": -4}`, want: header.DefaultWrapWidth},
		{name: "digit string", content: `{"WRAP_WIDTH": "44"}`, want: 44},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeDefaults(t, dir, tt.content)

			if got := defaults.Load(dir).WrapWidth(); got != tt.want {
				t.Errorf("WrapWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoadDropsNonScalars(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDefaults(t, dir, `{"tags": ["a"], "meta": {"x": 1}, "author": "ok"}`)

	d := defaults.Load(dir)

	if _, ok := d.Get("TAGS"); ok {
		t.Error("array value should be dropped")
	}

	if _, ok := d.Get("META"); ok {
		t.Error("object value should be dropped")
	}

	if v, _ := d.Get("AUTHOR"); v != "ok" {
		t.Errorf("AUTHOR = %q", v)
	}
}
