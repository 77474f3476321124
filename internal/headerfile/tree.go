package headerfile

import (
	"path/filepath"

	"bhd/internal/defaults"
	"bhd/internal/header"
)

// BumpResult is the outcome of a version bump for one file in a batch.
type BumpResult struct {
	Path string
	Old  string
	New  string
	Err  error
}

// ApplyResult is the outcome of a defaults application for one file.
type ApplyResult struct {
	Path    string
	Changed bool
	Err     error
}

// BumpTree bumps the VERSION of every candidate file under start,
// independently per file. Folder defaults are re-read per file's folder.
// A failing file is recorded and the batch continues; dry runs compute the
// same result set without writing.
func BumpTree(start string, part header.Part, opts Options, dryRun bool) ([]BumpResult, error) {
	files, err := FindFiles(start, true, opts.Extensions)
	if err != nil {
		return nil, err
	}

	results := make([]BumpResult, 0, len(files))

	for _, path := range files {
		d := defaults.Load(filepath.Dir(path))

		old, bumped, bumpErr := Bump(path, part, d, opts, dryRun)

		results = append(results, BumpResult{Path: path, Old: old, New: bumped, Err: bumpErr})
	}

	return results, nil
}

// ApplyTree fills missing header defaults for every candidate file under
// start, recursively. One bad file never aborts the batch.
func ApplyTree(start string, opts Options, dryRun bool) ([]ApplyResult, error) {
	files, err := FindFiles(start, true, opts.Extensions)
	if err != nil {
		return nil, err
	}

	results := make([]ApplyResult, 0, len(files))

	for _, path := range files {
		d := defaults.Load(filepath.Dir(path))

		changed, applyErr := AddDefaults(path, d, opts, dryRun)

		results = append(results, ApplyResult{Path: path, Changed: changed, Err: applyErr})
	}

	return results, nil
}
