// Package headerfile applies header operations to files on disk.
//
// Every operation is self-contained: read the whole file, transform in
// memory through the header package, write the whole file back atomically.
// Tree-wide operations visit files in stable sorted order and collect
// per-file failures instead of aborting the batch.
package headerfile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"bhd/internal/defaults"
	"bhd/internal/header"
)

// BackupSuffix is appended to the original path when backups are enabled.
const BackupSuffix = ".bak"

// DefaultExtensions lists the file extensions operated on when the config
// supplies none.
var DefaultExtensions = []string{".py", ".sh"}

// Options bundles the per-process knobs file operations need.
type Options struct {
	// Mode is the tag normalization mode.
	Mode header.NormalizeMode

	// Syntax is the canonical write form for tag keys.
	Syntax header.Syntax

	// DatePolicy selects missing-only or unconditional DATE refresh.
	DatePolicy header.DatePolicy

	// Backup preserves the previous content at a ".bak" sibling on write.
	Backup bool

	// Extensions filters candidate files; empty means DefaultExtensions.
	Extensions []string

	// Now supplies the current time; nil means time.Now.
	Now func() time.Time
}

// File is a loaded source file and its parsed header.
type File struct {
	Path    string
	Parsed  header.Parsed
	ModTime time.Time
}

// Load reads path and parses its leading header.
func Load(path string, opts Options) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	modTime := time.Time{}
	if info, statErr := os.Stat(path); statErr == nil {
		modTime = info.ModTime()
	}

	return &File{
		Path:    path,
		Parsed:  header.Parse(string(data), opts.Mode),
		ModTime: modTime,
	}, nil
}

// resolveOptions builds the resolver options for this file.
func (f *File) resolveOptions(opts Options) header.ResolveOptions {
	return header.ResolveOptions{
		Path:       f.Path,
		ModTime:    f.ModTime,
		Now:        opts.Now,
		DatePolicy: opts.DatePolicy,
		Mode:       opts.Mode,
	}
}

// Resolve computes the ordered output list for this file against its
// folder defaults.
func (f *File) Resolve(d defaults.Defaults, opts Options) []header.Field {
	return header.Resolve(f.Parsed.Tags, map[string]string(d), f.resolveOptions(opts))
}

// Write resolves the header and writes the file back, preserving the body.
// When backups are enabled the previous content is kept at path + ".bak"
// first.
func (f *File) Write(d defaults.Defaults, opts Options) error {
	fields := f.Resolve(d, opts)

	rendered := header.Render(f.Parsed.Shebang, f.Parsed.Preamble, fields, f.Parsed.Body, header.SerializeOptions{
		Syntax:    opts.Syntax,
		WrapWidth: d.WrapWidth(),
		Mode:      opts.Mode,
	})

	if opts.Backup {
		if backupErr := backup(f.Path); backupErr != nil {
			return backupErr
		}
	}

	if err := atomic.WriteFile(f.Path, strings.NewReader(rendered)); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}

	return nil
}

// AddDefaults fills missing required keys from folder defaults and fixed
// fallbacks, never overwriting existing values except the derived FILE key.
// Returns whether the file needed a write. Dry runs report without writing.
func AddDefaults(path string, d defaults.Defaults, opts Options, dryRun bool) (bool, error) {
	file, err := Load(path, opts)
	if err != nil {
		return false, err
	}

	changed := false

	fileTagKey := opts.Mode.Normalize("FILE")

	for _, field := range file.Resolve(d, opts) {
		if !file.Parsed.Tags.Has(field.Key) {
			file.Parsed.Tags.SetValue(field.Key, field.Value)

			changed = true

			continue
		}

		// FILE is derived; correct a stale value even when present.
		if field.Key == fileTagKey {
			if current, _ := file.Parsed.Tags.Value(field.Key); current != field.Value {
				file.Parsed.Tags.SetValue(field.Key, field.Value)

				changed = true
			}
		}
	}

	if !changed || dryRun {
		return changed, nil
	}

	return true, file.Write(d, opts)
}

// Remove strips the header, keeping the shebang and the untouched body.
func Remove(path string, opts Options) error {
	file, err := Load(path, opts)
	if err != nil {
		return err
	}

	var out strings.Builder

	if file.Parsed.Shebang != "" {
		out.WriteString(file.Parsed.Shebang)
		out.WriteByte('\n')
	}

	out.WriteString(file.Parsed.Body)

	if opts.Backup {
		if backupErr := backup(path); backupErr != nil {
			return backupErr
		}
	}

	if err := atomic.WriteFile(path, strings.NewReader(out.String())); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// backup copies the current content of path to its ".bak" sibling.
func backup(path string) error {
	prev, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}

	if err := atomic.WriteFile(path+BackupSuffix, strings.NewReader(string(prev))); err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}

	return nil
}

// Bump increments one component of the file's VERSION and writes the file
// back. The previous version is read from the header, then folder defaults;
// an unparsable version resets to 0.0.0 rather than failing. Returns the
// old and new version strings.
func Bump(path string, part header.Part, d defaults.Defaults, opts Options, dryRun bool) (string, string, error) {
	file, err := Load(path, opts)
	if err != nil {
		return "", "", err
	}

	versionTagKey := opts.Mode.Normalize("VERSION")

	old, ok := file.Parsed.Tags.Value(versionTagKey)
	if !ok || strings.TrimSpace(old) == "" {
		if def, defOK := d.Get("VERSION"); defOK && def != "" {
			old = def
		} else {
			old = "0.0.0"
		}
	}

	version, _ := header.ParseVersion(old)
	bumped := version.Bump(part)

	file.Parsed.Tags.SetValue(versionTagKey, bumped.String())

	if dryRun {
		return strings.TrimSpace(old), bumped.String(), nil
	}

	return strings.TrimSpace(old), bumped.String(), file.Write(d, opts)
}

// FindFiles returns the candidate files under start in stable sorted order.
// A matching regular file path returns just itself; a directory is listed
// (recursively when recurse is set) and filtered by extension.
func FindFiles(start string, recurse bool, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	info, err := os.Stat(start)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", start, err)
	}

	if !info.IsDir() {
		if !matchesExtension(start, extensions) {
			return nil, nil
		}

		abs, absErr := filepath.Abs(start)
		if absErr != nil {
			return nil, fmt.Errorf("resolve %s: %w", start, absErr)
		}

		return []string{abs}, nil
	}

	var files []string

	if recurse {
		walkErr := filepath.WalkDir(start, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !entry.IsDir() && matchesExtension(path, extensions) {
				files = append(files, path)
			}

			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk %s: %w", start, walkErr)
		}
	} else {
		entries, readErr := os.ReadDir(start)
		if readErr != nil {
			return nil, fmt.Errorf("read dir %s: %w", start, readErr)
		}

		for _, entry := range entries {
			if !entry.IsDir() && matchesExtension(entry.Name(), extensions) {
				files = append(files, filepath.Join(start, entry.Name()))
			}
		}
	}

	slices.Sort(files)

	return files, nil
}

// matchesExtension reports whether path carries one of the extensions.
func matchesExtension(path string, extensions []string) bool {
	return slices.Contains(extensions, filepath.Ext(path))
}
