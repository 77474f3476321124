package cli

import (
	"strings"

	"bhd/internal/headerfile"
)

const showHelp = `  show <file>              Show the resolved header of a file`

// bodyPreviewLines caps the body excerpt printed after the header.
const bodyPreviewLines = 10

func cmdShow(o *IO, app *App, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: bhd show <file>")
		o.Println()
		o.Println("Print the parsed header merged with folder defaults.")

		return nil
	}

	if len(args) == 0 {
		return errFileRequired
	}

	path, err := app.requireFile(args[0])
	if err != nil {
		return err
	}

	file, err := headerfile.Load(path, app.Opts)
	if err != nil {
		return err
	}

	o.Println("File:", path)

	if file.Parsed.Shebang != "" {
		o.Println("Shebang:", file.Parsed.Shebang)
	}

	if len(file.Parsed.Preamble) > 0 {
		o.Println("preamble:")

		for _, line := range file.Parsed.Preamble {
			o.Println("  " + line)
		}
	}

	for _, field := range file.Resolve(app.folderDefaults(path), app.Opts) {
		o.Printf("%s:\n", field.Key)

		for _, line := range strings.Split(field.Value, "\n") {
			o.Println("  " + line)
		}
	}

	preview := strings.Split(file.Parsed.Body, "\n")
	if len(preview) > bodyPreviewLines {
		preview = preview[:bodyPreviewLines]
	}

	o.Println("---- file content (first lines after header) ----")

	for i, line := range preview {
		o.Printf("%2d: %s\n", i+1, line)
	}

	return nil
}
