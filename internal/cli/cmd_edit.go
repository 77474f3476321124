package cli

import (
	"strings"

	"github.com/peterh/liner"

	"bhd/internal/header"
	"bhd/internal/headerfile"
)

const editHelp = `  edit <file>              Interactively edit the header fields`

func cmdEdit(o *IO, app *App, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: bhd edit <file>")
		o.Println()
		o.Println("Edit header fields one by one. Multi-line fields open in")
		o.Println("$EDITOR; single-line fields are prompted inline.")

		return nil
	}

	if len(args) == 0 {
		return errFileRequired
	}

	path, err := app.requireFile(args[0])
	if err != nil {
		return err
	}

	prompt := liner.NewLiner()
	defer func() { _ = prompt.Close() }()

	prompt.SetCtrlCAborts(true)

	return editHeader(o, app, prompt, path)
}

// editHeader runs the field-by-field editing loop for one file and writes
// the result back on save.
func editHeader(o *IO, app *App, prompt *liner.State, path string) error {
	file, err := headerfile.Load(path, app.Opts)
	if err != nil {
		return err
	}

	d := app.folderDefaults(path)
	fields := file.Resolve(d, app.Opts)

	fileTagKey := app.Opts.Mode.Normalize("FILE")
	missionKey := app.Opts.Mode.Normalize("MISSION")
	versionKey := app.Opts.Mode.Normalize("VERSION")

	o.Printf("Editing header for %s. Commands: field number, b (bump), s (save), q (quit)\n", path)

	for {
		o.Println()
		o.Println("Current header values (first line shown):")

		for i, field := range fields {
			first, _, _ := strings.Cut(field.Value, "\n")
			o.Printf("%2d. %s: %s\n", i+1, strings.ToUpper(field.Key), first)
		}

		choice, promptErr := prompt.Prompt("Select field, 's' save, 'q' quit, 'b' bump version: ")
		if promptErr != nil {
			o.Println("aborting without saving")

			return nil
		}

		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "q", ".q":
			o.Println("aborting without saving")

			return nil

		case "s", ".w":
			for _, field := range fields {
				file.Parsed.Tags.SetValue(field.Key, field.Value)
			}

			if writeErr := file.Write(d, app.Opts); writeErr != nil {
				return writeErr
			}

			o.Println("saved")

			return nil

		case "b":
			fields = bumpField(o, prompt, fields, versionKey)

		default:
			fields = editField(o, app, prompt, fields, choice, fileTagKey, missionKey)
		}
	}
}

// bumpField interactively bumps the VERSION entry of the field list.
func bumpField(o *IO, prompt *liner.State, fields []header.Field, versionKey string) []header.Field {
	token, err := prompt.Prompt("Which part to bump? (major/minor/patch): ")
	if err != nil {
		return fields
	}

	part, err := header.ParsePart(token)
	if err != nil {
		o.Println("error:", err)

		return fields
	}

	for i, field := range fields {
		if field.Key != versionKey {
			continue
		}

		version, _ := header.ParseVersion(field.Value)
		fields[i].Value = version.Bump(part).String()
		o.Println("bumped version to", fields[i].Value)

		break
	}

	return fields
}

// editField updates one selected field in the list.
func editField(
	o *IO, app *App, prompt *liner.State, fields []header.Field, choice, fileTagKey, missionKey string,
) []header.Field {
	idx, ok := fieldIndex(choice, len(fields))
	if !ok {
		o.Println("unknown command")

		return fields
	}

	field := fields[idx]

	if field.Key == fileTagKey {
		o.Println("FILE is derived from the file name and cannot be edited")

		return fields
	}

	if field.Key == missionKey || strings.Contains(field.Value, "\n") {
		editor, err := resolveEditor(app.Cfg, app.Env)
		if err != nil {
			o.Println("error:", err)

			return fields
		}

		edited, err := editInEditor(editor, field.Value)
		if err != nil {
			o.Println("error:", err)

			return fields
		}

		fields[idx].Value = edited

		return fields
	}

	value, err := prompt.PromptWithSuggestion("New value for "+strings.ToUpper(field.Key)+": ", field.Value, -1)
	if err != nil {
		return fields
	}

	fields[idx].Value = strings.TrimRight(value, " \t")

	return fields
}

// fieldIndex parses a 1-based field selection.
func fieldIndex(choice string, count int) (int, bool) {
	n := 0

	for _, r := range strings.TrimSpace(choice) {
		if r < '0' || r > '9' {
			return 0, false
		}

		n = n*10 + int(r-'0')
	}

	if n < 1 || n > count {
		return 0, false
	}

	return n - 1, true
}
