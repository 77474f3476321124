package header_test

import (
	"errors"
	"testing"

	"bhd/internal/header"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   header.Version
		wantOK bool
	}{
		{name: "plain", input: "1.2.3", want: header.Version{Major: 1, Minor: 2, Patch: 3}, wantOK: true},
		{name: "zero", input: "0.0.0", wantOK: true},
		{name: "surrounding space", input: " 10.0.7 ", want: header.Version{Major: 10, Patch: 7}, wantOK: true},
		{name: "two components", input: "1.2"},
		{name: "prefix", input: "v1.2.3"},
		{name: "word", input: "tbd."},
		{name: "empty", input: ""},
		{name: "negative", input: "-1.0.0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := header.ParseVersion(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}

			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVersionBump(t *testing.T) {
	t.Parallel()

	base := header.Version{Major: 1, Minor: 2, Patch: 3}

	tests := []struct {
		name string
		part header.Part
		want string
	}{
		{name: "patch", part: header.PartPatch, want: "1.2.4"},
		{name: "minor resets patch", part: header.PartMinor, want: "1.3.0"},
		{name: "major resets both", part: header.PartMajor, want: "2.0.0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := base.Bump(tt.part).String(); got != tt.want {
				t.Errorf("Bump(%v) = %s, want %s", tt.part, got, tt.want)
			}
		})
	}
}

func TestParsePart(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"major", "Minor", " PATCH "} {
		if _, err := header.ParsePart(token); err != nil {
			t.Errorf("ParsePart(%q) unexpected error: %v", token, err)
		}
	}

	if _, err := header.ParsePart("micro"); !errors.Is(err, header.ErrUnknownPart) {
		t.Errorf("expected ErrUnknownPart, got %v", err)
	}
}
