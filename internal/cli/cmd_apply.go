package cli

import (
	flag "github.com/spf13/pflag"

	"bhd/internal/headerfile"
)

const applyHelp = `  apply [path]             Apply default headers recursively
    --dry-run                Preview changes without writing`

func cmdApply(o *IO, app *App, args []string) error {
	flagSet := flag.NewFlagSet("apply", flag.ContinueOnError)
	dryRun := flagSet.Bool("dry-run", false, "Preview without writing")

	if hasHelpFlag(args) {
		o.Println("Usage: bhd apply [path] [--dry-run]")
		o.Println()
		o.Println("Fill missing header defaults for every candidate file under")
		o.Println("path, recursively. Folder defaults are read per folder.")

		return nil
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	start := app.WorkDir
	if flagSet.NArg() > 0 {
		start = app.resolve(flagSet.Arg(0))
	}

	results, err := headerfile.ApplyTree(start, app.Opts, *dryRun)
	if err != nil {
		return err
	}

	if *dryRun {
		o.Println("dry-run: files that would be changed:")
	}

	changed := 0

	for _, result := range results {
		if result.Err != nil {
			o.Warn("%s: %v", result.Path, result.Err)

			continue
		}

		if result.Changed {
			o.Println(result.Path)

			changed++
		}
	}

	if *dryRun {
		o.Printf("%d file(s) would be changed\n", changed)
	} else {
		o.Printf("%d file(s) changed\n", changed)
	}

	return nil
}
