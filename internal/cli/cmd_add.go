package cli

import (
	flag "github.com/spf13/pflag"

	"bhd/internal/headerfile"
)

const addHelp = `  add <file> [--dry-run]   Add default header keys where missing`

func cmdAdd(o *IO, app *App, args []string) error {
	flagSet := flag.NewFlagSet("add", flag.ContinueOnError)
	dryRun := flagSet.Bool("dry-run", false, "Preview without writing")

	if hasHelpFlag(args) {
		o.Println("Usage: bhd add <file> [--dry-run]")
		o.Println()
		o.Println("Fill missing required header keys from folder defaults.")
		o.Println("Existing keys are never overwritten; FILE is corrected to")
		o.Println("the file's base name.")

		return nil
	}

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if flagSet.NArg() == 0 {
		return errFileRequired
	}

	path, err := app.requireFile(flagSet.Arg(0))
	if err != nil {
		return err
	}

	changed, err := headerfile.AddDefaults(path, app.folderDefaults(path), app.Opts, *dryRun)
	if err != nil {
		return err
	}

	switch {
	case changed && *dryRun:
		o.Println("dry-run: defaults would be added")
	case changed:
		o.Println("defaults added where missing")
	default:
		o.Println("no changes necessary")
	}

	return nil
}
