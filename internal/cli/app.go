package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bhd/internal/collections"
	"bhd/internal/config"
	"bhd/internal/defaults"
	"bhd/internal/headerfile"
)

var (
	errFileRequired    = errors.New("file path is required")
	errPartRequired    = errors.New("version part is required (major|minor|patch)")
	errNameRequired    = errors.New("collection name is required")
	errNoSuchFile      = errors.New("no such file")
	errFlagRequiresArg = errors.New("flag requires an argument")
	errUnknownFlag     = errors.New("unknown flag")
)

// App bundles the resolved configuration shared by all commands.
type App struct {
	Cfg     config.Config
	Opts    headerfile.Options
	WorkDir string
	Env     map[string]string
	Stdin   io.Reader
}

// resolve turns a user-supplied path into an absolute path against the
// working directory.
func (a *App) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(a.WorkDir, path)
}

// requireFile resolves path and verifies it names an existing regular file.
func (a *App) requireFile(path string) (string, error) {
	if path == "" {
		return "", errFileRequired
	}

	abs := a.resolve(path)

	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", errNoSuchFile, path)
	}

	return abs, nil
}

// folderDefaults loads the defaults document of the file's folder.
func (a *App) folderDefaults(path string) defaults.Defaults {
	return defaults.Load(filepath.Dir(path))
}

// store returns the collections store for this invocation.
func (a *App) store() *collections.Store {
	return collections.NewStore(a.resolve(a.Cfg.CollectionsDir))
}
