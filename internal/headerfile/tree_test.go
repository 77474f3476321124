package headerfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bhd/internal/header"
	"bhd/internal/headerfile"
)

func TestBumpTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.py", "# VERSION: 1.0.0\nbody\n")

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	writeFile(t, sub, "b.sh", "# VERSION: 0.2.9\nbody\n")

	results, err := headerfile.BumpTree(dir, header.PartPatch, testOptions(), false)
	if err != nil {
		t.Fatalf("BumpTree: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: %v", r.Path, r.Err)
		}
	}

	if results[0].New != "1.0.1" || results[1].New != "0.2.10" {
		t.Errorf("unexpected versions: %+v", results)
	}
}

func TestBumpTreeDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := "# VERSION: 1.0.0\nbody\n"
	path := writeFile(t, dir, "a.py", src)

	results, err := headerfile.BumpTree(dir, header.PartMinor, testOptions(), true)
	if err != nil {
		t.Fatalf("BumpTree: %v", err)
	}

	if len(results) != 1 || results[0].New != "1.1.0" {
		t.Errorf("results = %+v", results)
	}

	if got := readFile(t, path); got != src {
		t.Errorf("dry run must not write:\n%s", got)
	}
}

func TestBumpTreeContinuesPastFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "good.py", "# VERSION: 1.0.0\nbody\n")

	// A dangling symlink is found by the walk but cannot be read.
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "broken.py")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	results, err := headerfile.BumpTree(dir, header.PartPatch, testOptions(), false)
	if err != nil {
		t.Fatalf("BumpTree: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	var failed, succeeded int

	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			succeeded++

			if r.New != "1.0.1" {
				t.Errorf("%s bumped to %q", r.Path, r.New)
			}
		}
	}

	if failed != 1 || succeeded != 1 {
		t.Errorf("failed=%d succeeded=%d, want one of each", failed, succeeded)
	}
}

func TestApplyTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDefaultsDoc(t, dir, `{"author": "Root"}`)
	writeFile(t, dir, "a.py", "print(1)\n")

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	writeDefaultsDoc(t, sub, `{"author": "Sub"}`)
	writeFile(t, sub, "b.py", "print(2)\n")

	results, err := headerfile.ApplyTree(dir, testOptions(), false)
	if err != nil {
		t.Fatalf("ApplyTree: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	for _, r := range results {
		if r.Err != nil || !r.Changed {
			t.Errorf("%s: changed=%v err=%v", r.Path, r.Changed, r.Err)
		}
	}

	// Each file picks up the defaults of its own folder.
	if got := readFile(t, filepath.Join(dir, "a.py")); !strings.Contains(got, "# AUTHOR: Root\n") {
		t.Errorf("a.py:\n%s", got)
	}

	if got := readFile(t, filepath.Join(sub, "b.py")); !strings.Contains(got, "# AUTHOR: Sub\n") {
		t.Errorf("b.py:\n%s", got)
	}
}

func TestApplyTreeDryRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	src := "print(1)\n"
	path := writeFile(t, dir, "a.py", src)

	results, err := headerfile.ApplyTree(dir, testOptions(), true)
	if err != nil {
		t.Fatalf("ApplyTree: %v", err)
	}

	if len(results) != 1 || !results[0].Changed {
		t.Errorf("results = %+v", results)
	}

	if got := readFile(t, path); got != src {
		t.Errorf("dry run must not write:\n%s", got)
	}
}
