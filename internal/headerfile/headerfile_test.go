package headerfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bhd/internal/defaults"
	"bhd/internal/header"
	"bhd/internal/headerfile"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
}

func testOptions() headerfile.Options {
	return headerfile.Options{Now: fixedNow}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}

	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	return string(data)
}

func writeDefaultsDoc(t *testing.T, dir, content string) {
	t.Helper()

	writeFile(t, dir, defaults.FileName, content)
}

func TestAddDefaultsFillsMissingKeys(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDefaultsDoc(t, dir, `{"author": "Tester"}`)

	src := "#!/usr/bin/env python3\n# MISSION: demo\nprint(\"hello\")\n"
	path := writeFile(t, dir, "demo.py", src)

	changed, err := headerfile.AddDefaults(path, defaults.Load(dir), testOptions(), false)
	if err != nil {
		t.Fatalf("AddDefaults: %v", err)
	}

	if !changed {
		t.Fatal("expected a change")
	}

	got := readFile(t, path)

	for _, want := range []string{
		"#!/usr/bin/env python3\n",
		"# MISSION: demo\n",
		"# STATUS: tbd.\n",
		"# VERSION: 0.0.0\n",
		"# FILE: demo.py\n",
		"# AUTHOR: Tester\n",
		"print(\"hello\")\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	if !strings.HasSuffix(got, "#\nprint(\"hello\")\n") {
		t.Errorf("body should follow the separator untouched:\n%s", got)
	}
}

func TestAddDefaultsNoChangeNeeded(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := "# MISSION: demo\nbody\n"
	path := writeFile(t, dir, "demo.py", src)

	opts := testOptions()

	if _, err := headerfile.AddDefaults(path, defaults.Load(dir), opts, false); err != nil {
		t.Fatalf("first AddDefaults: %v", err)
	}

	before := readFile(t, path)

	changed, err := headerfile.AddDefaults(path, defaults.Load(dir), opts, false)
	if err != nil {
		t.Fatalf("second AddDefaults: %v", err)
	}

	if changed {
		t.Error("second pass should be a no-op")
	}

	if got := readFile(t, path); got != before {
		t.Errorf("file changed on a no-op pass:\nbefore:\n%s\nafter:\n%s", before, got)
	}
}

func TestAddDefaultsDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := "print(1)\n"
	path := writeFile(t, dir, "demo.py", src)

	changed, err := headerfile.AddDefaults(path, defaults.Load(dir), testOptions(), true)
	if err != nil {
		t.Fatalf("AddDefaults: %v", err)
	}

	if !changed {
		t.Error("dry run should still report the pending change")
	}

	if got := readFile(t, path); got != src {
		t.Errorf("dry run must not write, file is now:\n%s", got)
	}
}

func TestAddDefaultsCorrectsStaleFileKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := "# MISSION: m\n# STATUS: s\n# VERSION: 1.0.0\n# NOTES: n\n" +
		"# DATE: 2020-01-01 00:00:00\n# FILE: old-name.py\n# AUTHOR: a\nbody\n"
	path := writeFile(t, dir, "renamed.py", src)

	changed, err := headerfile.AddDefaults(path, defaults.Load(dir), testOptions(), false)
	if err != nil {
		t.Fatalf("AddDefaults: %v", err)
	}

	if !changed {
		t.Fatal("stale FILE key should count as a change")
	}

	got := readFile(t, path)
	if !strings.Contains(got, "# FILE: renamed.py\n") {
		t.Errorf("FILE not corrected:\n%s", got)
	}

	if strings.Contains(got, "old-name.py") {
		t.Errorf("stale name survived:\n%s", got)
	}
}

func TestWriteBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := "# MISSION: m\nbody\n"
	path := writeFile(t, dir, "demo.py", src)

	opts := testOptions()
	opts.Backup = true

	if _, err := headerfile.AddDefaults(path, defaults.Load(dir), opts, false); err != nil {
		t.Fatalf("AddDefaults: %v", err)
	}

	backup := readFile(t, path+headerfile.BackupSuffix)
	if backup != src {
		t.Errorf("backup = %q, want original content", backup)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := "#!/bin/sh\n# MISSION: m\n# STATUS: s\n#\necho hi\n"
	path := writeFile(t, dir, "demo.sh", src)

	if err := headerfile.Remove(path, testOptions()); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	want := "#!/bin/sh\necho hi\n"
	if got := readFile(t, path); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBump(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		part    header.Part
		wantOld string
		wantNew string
	}{
		{
			name:    "patch",
			src:     "# VERSION: 0.1.2\nbody\n",
			part:    header.PartPatch,
			wantOld: "0.1.2",
			wantNew: "0.1.3",
		},
		{
			name:    "minor resets patch",
			src:     "# VERSION: 0.1.2\nbody\n",
			part:    header.PartMinor,
			wantOld: "0.1.2",
			wantNew: "0.2.0",
		},
		{
			name:    "malformed resets first",
			src:     "# VERSION: v1.2\nbody\n",
			part:    header.PartPatch,
			wantOld: "v1.2",
			wantNew: "0.0.1",
		},
		{
			name:    "missing version starts at zero",
			src:     "# MISSION: m\nbody\n",
			part:    header.PartMajor,
			wantOld: "0.0.0",
			wantNew: "1.0.0",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := writeFile(t, dir, "demo.py", tt.src)

			old, bumped, err := headerfile.Bump(path, tt.part, defaults.Load(dir), testOptions(), false)
			if err != nil {
				t.Fatalf("Bump: %v", err)
			}

			if old != tt.wantOld || bumped != tt.wantNew {
				t.Errorf("Bump = %q -> %q, want %q -> %q", old, bumped, tt.wantOld, tt.wantNew)
			}

			if got := readFile(t, path); !strings.Contains(got, "# VERSION: "+tt.wantNew+"\n") {
				t.Errorf("new version not written:\n%s", got)
			}
		})
	}
}

func TestBumpUsesDefaultVersion(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDefaultsDoc(t, dir, `{"version": "2.5.0"}`)

	path := writeFile(t, dir, "demo.py", "# MISSION: m\nbody\n")

	old, bumped, err := headerfile.Bump(path, header.PartPatch, defaults.Load(dir), testOptions(), false)
	if err != nil {
		t.Fatalf("Bump: %v", err)
	}

	if old != "2.5.0" || bumped != "2.5.1" {
		t.Errorf("Bump = %q -> %q, want 2.5.0 -> 2.5.1", old, bumped)
	}
}

func TestBumpDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := "# VERSION: 1.0.0\nbody\n"
	path := writeFile(t, dir, "demo.py", src)

	old, bumped, err := headerfile.Bump(path, header.PartMajor, defaults.Load(dir), testOptions(), true)
	if err != nil {
		t.Fatalf("Bump: %v", err)
	}

	if old != "1.0.0" || bumped != "2.0.0" {
		t.Errorf("Bump = %q -> %q", old, bumped)
	}

	if got := readFile(t, path); got != src {
		t.Errorf("dry run must not write, file is now:\n%s", got)
	}
}

func TestFindFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "b.py", "x")
	writeFile(t, dir, "a.sh", "x")
	writeFile(t, dir, "ignore.txt", "x")

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	writeFile(t, sub, "c.py", "x")

	flat, err := headerfile.FindFiles(dir, false, nil)
	if err != nil {
		t.Fatalf("FindFiles: %v", err)
	}

	wantFlat := []string{filepath.Join(dir, "a.sh"), filepath.Join(dir, "b.py")}
	if len(flat) != 2 || flat[0] != wantFlat[0] || flat[1] != wantFlat[1] {
		t.Errorf("flat = %v, want %v", flat, wantFlat)
	}

	deep, err := headerfile.FindFiles(dir, true, nil)
	if err != nil {
		t.Fatalf("FindFiles recurse: %v", err)
	}

	if len(deep) != 3 {
		t.Errorf("deep = %v, want 3 files", deep)
	}
}

func TestFindFilesSingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "one.py", "x")

	got, err := headerfile.FindFiles(path, false, nil)
	if err != nil {
		t.Fatalf("FindFiles: %v", err)
	}

	if len(got) != 1 || filepath.Base(got[0]) != "one.py" {
		t.Errorf("got %v", got)
	}

	none, err := headerfile.FindFiles(writeFile(t, dir, "skip.txt", "x"), false, nil)
	if err != nil {
		t.Fatalf("FindFiles: %v", err)
	}

	if len(none) != 0 {
		t.Errorf("non-matching extension should yield nothing, got %v", none)
	}
}

func TestFindFilesCustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "job.rb", "x")
	writeFile(t, dir, "skip.py", "x")

	got, err := headerfile.FindFiles(dir, false, []string{".rb"})
	if err != nil {
		t.Fatalf("FindFiles: %v", err)
	}

	if len(got) != 1 || filepath.Base(got[0]) != "job.rb" {
		t.Errorf("got %v", got)
	}
}
