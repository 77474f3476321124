package cli

import (
	flag "github.com/spf13/pflag"

	"bhd/internal/header"
	"bhd/internal/headerfile"
)

const (
	bumpHelp    = `  bump <part> <file>       Bump VERSION (part: major|minor|patch)`
	bumpAllHelp = `  bump-all <part> [path]   Bump VERSION of every file under path
    --dry-run                Preview changes without writing`
)

func cmdBump(o *IO, app *App, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: bhd bump <part> <file>")
		o.Println()
		o.Println("Increment one component of the file's VERSION header key.")
		o.Println("An unparsable existing version resets to 0.0.0 first.")

		return nil
	}

	if len(args) == 0 {
		return errPartRequired
	}

	part, err := header.ParsePart(args[0])
	if err != nil {
		return err
	}

	if len(args) < 2 {
		return errFileRequired
	}

	path, err := app.requireFile(args[1])
	if err != nil {
		return err
	}

	old, bumped, err := headerfile.Bump(path, part, app.folderDefaults(path), app.Opts, false)
	if err != nil {
		return err
	}

	o.Printf("%s: %s -> %s\n", path, old, bumped)

	return nil
}

func cmdBumpAll(o *IO, app *App, args []string) error {
	flagSet := flag.NewFlagSet("bump-all", flag.ContinueOnError)
	dryRun := flagSet.Bool("dry-run", false, "Preview without writing")

	if hasHelpFlag(args) {
		o.Println("Usage: bhd bump-all <part> [path] [--dry-run]")
		o.Println()
		o.Println("Bump VERSION independently for every candidate file under")
		o.Println("path (default: cwd). One failing file does not stop the batch.")

		return nil
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if flagSet.NArg() == 0 {
		return errPartRequired
	}

	part, err := header.ParsePart(flagSet.Arg(0))
	if err != nil {
		return err
	}

	start := app.WorkDir
	if flagSet.NArg() > 1 {
		start = app.resolve(flagSet.Arg(1))
	}

	results, err := headerfile.BumpTree(start, part, app.Opts, *dryRun)
	if err != nil {
		return err
	}

	if *dryRun {
		o.Println("dry-run: changes that would be made:")
	}

	affected := 0

	for _, result := range results {
		if result.Err != nil {
			o.Warn("%s: %v", result.Path, result.Err)

			continue
		}

		o.Printf("%s: %s -> %s\n", result.Path, result.Old, result.New)

		affected++
	}

	o.Printf("%d file(s) affected\n", affected)

	return nil
}
