package cli

import (
	"errors"
	"slices"
)

const colHelp = `  col <subcommand>         Manage JSON record collections
    col ls                   List collections
    col show <name>          Show a collection's records
    col new <name>           Create an empty collection
    col set <name> <k> <v>   Set one record
    col rm <name> [key]      Delete a collection or one record`

var (
	errColSubcommand = errors.New("col requires a subcommand (ls|show|new|set|rm)")
	errKeyRequired   = errors.New("record key is required")
	errValueRequired = errors.New("record value is required")
)

func cmdCol(o *IO, app *App, args []string) error {
	if hasHelpFlag(args) {
		o.Println("Usage: bhd col <ls|show|new|set|rm> [args]")
		o.Println()
		o.Println("Manage the per-name JSON record store.")

		return nil
	}

	if len(args) == 0 {
		return errColSubcommand
	}

	store := app.store()

	switch args[0] {
	case "ls":
		names, err := store.List()
		if err != nil {
			return err
		}

		if len(names) == 0 {
			o.Println("no collections")

			return nil
		}

		for i, name := range names {
			o.Printf("%3d. %s\n", i+1, name)
		}

		return nil

	case "show":
		if len(args) < 2 {
			return errNameRequired
		}

		records, err := store.Read(args[1])
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(records))
		for key := range records {
			keys = append(keys, key)
		}

		slices.Sort(keys)

		for _, key := range keys {
			o.Printf("%s : %s\n", key, records[key])
		}

		return nil

	case "new":
		if len(args) < 2 {
			return errNameRequired
		}

		if err := store.Create(args[1], nil); err != nil {
			return err
		}

		o.Println("created collection", args[1])

		return nil

	case "set":
		if len(args) < 2 {
			return errNameRequired
		}

		if len(args) < 3 {
			return errKeyRequired
		}

		if len(args) < 4 {
			return errValueRequired
		}

		name, key, value := args[1], args[2], args[3]

		records, err := store.Read(name)
		if err != nil {
			return err
		}

		records[key] = value

		if err := store.Update(name, records); err != nil {
			return err
		}

		o.Printf("%s: %s = %s\n", name, key, value)

		return nil

	case "rm":
		if len(args) < 2 {
			return errNameRequired
		}

		name := args[1]

		// With a key argument, remove just that record.
		if len(args) > 2 {
			records, err := store.Read(name)
			if err != nil {
				return err
			}

			delete(records, args[2])

			if err := store.Update(name, records); err != nil {
				return err
			}

			o.Printf("%s: removed %s\n", name, args[2])

			return nil
		}

		if err := store.Delete(name); err != nil {
			return err
		}

		o.Println("deleted collection", name)

		return nil

	default:
		return errColSubcommand
	}
}
