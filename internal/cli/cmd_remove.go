package cli

import "bhd/internal/headerfile"

const removeHelp = `  remove <file>            Remove the header, keep shebang and body`

func cmdRemove(o *IO, app *App, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: bhd remove <file>")
		o.Println()
		o.Println("Strip the leading comment header. The shebang line and the")
		o.Println("file body are preserved untouched.")

		return nil
	}

	if len(args) == 0 {
		return errFileRequired
	}

	path, err := app.requireFile(args[0])
	if err != nil {
		return err
	}

	if err := headerfile.Remove(path, app.Opts); err != nil {
		return err
	}

	o.Println("header removed")

	return nil
}
