// Package config resolves bhd configuration from config files, the
// environment, and built-in defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"bhd/internal/header"
	"bhd/internal/headerfile"
)

// FileName is the default project config file name.
const FileName = ".bhd.json"

// TagTransformEnv overrides the tag_transform setting for one process
// invocation.
const TagTransformEnv = "BHD_TAG_TRANSFORM"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigInvalid      = errors.New("invalid config file")
)

// Config holds all configuration options in their config-file form.
type Config struct {
	Editor         string   `json:"editor,omitempty"`
	TagTransform   string   `json:"tag_transform,omitempty"`   //nolint:tagliatelle // snake_case for config file
	Syntax         string   `json:"syntax,omitempty"`          // inline|marker
	DatePolicy     string   `json:"date_policy,omitempty"`     //nolint:tagliatelle // snake_case for config file
	Extensions     []string `json:"extensions,omitempty"`      // candidate file extensions
	Backup         *bool    `json:"backup,omitempty"`          // keep .bak siblings on write
	CollectionsDir string   `json:"collections_dir,omitempty"` //nolint:tagliatelle // snake_case for config file
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the built-in configuration.
func Default() Config {
	backup := true

	return Config{
		TagTransform:   header.NormalizeSnake.String(),
		Syntax:         header.SyntaxInline.String(),
		DatePolicy:     header.DateIfMissing.String(),
		Extensions:     headerfile.DefaultExtensions,
		Backup:         &backup,
		CollectionsDir: ".bhd-collections",
	}
}

// globalPath returns the global config file location:
// $XDG_CONFIG_HOME/bhd/config.json, falling back to ~/.config/bhd/config.json.
func globalPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "bhd", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "bhd", "config.json")
}

// Load resolves configuration with the following precedence (highest wins):
// defaults, global user config, project config (or an explicit file via
// configPath, which then must exist), then the BHD_TAG_TRANSFORM env var.
func Load(workDir, configPath string, env map[string]string) (Config, Sources, error) {
	cfg := Default()

	var sources Sources

	if path := globalPath(env); path != "" {
		loaded, ok, err := readFile(path, false)
		if err != nil {
			return Config{}, Sources{}, err
		}

		if ok {
			cfg = merge(cfg, loaded)
			sources.Global = path
		}
	}

	projectFile := filepath.Join(workDir, FileName)
	mustExist := false

	if configPath != "" {
		projectFile = configPath
		if !filepath.IsAbs(projectFile) {
			projectFile = filepath.Join(workDir, projectFile)
		}

		mustExist = true
	}

	loaded, ok, err := readFile(projectFile, mustExist)
	if err != nil {
		return Config{}, Sources{}, err
	}

	if ok {
		cfg = merge(cfg, loaded)
		sources.Project = projectFile
	}

	if mode := env[TagTransformEnv]; mode != "" {
		cfg.TagTransform = mode
	}

	if _, err := cfg.Options(); err != nil {
		return Config{}, Sources{}, err
	}

	return cfg, sources, nil
}

// readFile loads one config file. Missing optional files load as nothing.
func readFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
		}

		return Config{}, false, nil
	}

	// Standardize JSONC to JSON.
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	var cfg Config
	if unmarshalErr := json.Unmarshal(standardized, &cfg); unmarshalErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, unmarshalErr)
	}

	return cfg, true, nil
}

// merge overlays non-zero fields of overlay onto base.
func merge(base, overlay Config) Config {
	if overlay.Editor != "" {
		base.Editor = overlay.Editor
	}

	if overlay.TagTransform != "" {
		base.TagTransform = overlay.TagTransform
	}

	if overlay.Syntax != "" {
		base.Syntax = overlay.Syntax
	}

	if overlay.DatePolicy != "" {
		base.DatePolicy = overlay.DatePolicy
	}

	if len(overlay.Extensions) > 0 {
		base.Extensions = overlay.Extensions
	}

	if overlay.Backup != nil {
		base.Backup = overlay.Backup
	}

	if overlay.CollectionsDir != "" {
		base.CollectionsDir = overlay.CollectionsDir
	}

	return base
}

// Options parses the stringly config fields into headerfile options.
func (c Config) Options() (headerfile.Options, error) {
	mode, err := header.ParseNormalizeMode(c.TagTransform)
	if err != nil {
		return headerfile.Options{}, err
	}

	syntax, err := header.ParseSyntax(c.Syntax)
	if err != nil {
		return headerfile.Options{}, err
	}

	policy, err := header.ParseDatePolicy(c.DatePolicy)
	if err != nil {
		return headerfile.Options{}, err
	}

	backup := true
	if c.Backup != nil {
		backup = *c.Backup
	}

	return headerfile.Options{
		Mode:       mode,
		Syntax:     syntax,
		DatePolicy: policy,
		Backup:     backup,
		Extensions: c.Extensions,
	}, nil
}

// Format returns the config as formatted JSON.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
