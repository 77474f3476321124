package cli

import (
	"path/filepath"

	"bhd/internal/headerfile"
)

const lsHelp = `  ls [path]                List candidate files (non-recursive)`

func cmdLs(o *IO, app *App, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: bhd ls [path]")
		o.Println()
		o.Println("List candidate files in the given directory (default: cwd).")

		return nil
	}

	target := app.WorkDir
	if len(args) > 0 {
		target = app.resolve(args[0])
	}

	files, err := headerfile.FindFiles(target, false, app.Opts.Extensions)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		o.Println("no candidate files found")

		return nil
	}

	for i, f := range files {
		o.Printf("%3d. %s  (%s)\n", i+1, filepath.Base(f), f)
	}

	return nil
}
