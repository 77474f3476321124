package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"bhd/internal/config"
)

var errNoEditorFound = errors.New("no editor found (set config.editor, $EDITOR, or install vi/nano)")

// resolveEditor checks for an available editor.
// Priority: config.Editor -> $EDITOR -> vi -> nano -> error.
func resolveEditor(cfg config.Config, env map[string]string) (string, error) {
	// 1. Check config.Editor
	if cfg.Editor != "" {
		_, lookErr := exec.LookPath(cfg.Editor)
		if lookErr == nil {
			return cfg.Editor, nil
		}
	}

	// 2. Check $EDITOR from env map
	if editor := env["EDITOR"]; editor != "" {
		_, lookErr := exec.LookPath(editor)
		if lookErr == nil {
			return editor, nil
		}
	}

	// 3. Try vi
	_, viErr := exec.LookPath("vi")
	if viErr == nil {
		return "vi", nil
	}

	// 4. Try nano
	_, nanoErr := exec.LookPath("nano")
	if nanoErr == nil {
		return "nano", nil
	}

	return "", errNoEditorFound
}

// editInEditor round-trips initial text through the user's editor via a
// temp file and returns the edited content with trailing newlines trimmed.
// Blocks until the editor exits.
func editInEditor(editor, initial string) (string, error) {
	tmp, err := os.CreateTemp("", "bhd-edit-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, writeErr := tmp.WriteString(initial); writeErr != nil {
		_ = tmp.Close()

		return "", fmt.Errorf("write temp file: %w", writeErr)
	}

	if closeErr := tmp.Close(); closeErr != nil {
		return "", fmt.Errorf("close temp file: %w", closeErr)
	}

	cmd := exec.Command(editor, tmpName)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if runErr := cmd.Run(); runErr != nil {
		return "", fmt.Errorf("run editor: %w", runErr)
	}

	edited, err := os.ReadFile(tmpName)
	if err != nil {
		return "", fmt.Errorf("read temp file: %w", err)
	}

	return strings.TrimRight(string(edited), "\n"), nil
}
