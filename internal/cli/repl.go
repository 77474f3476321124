package cli

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"bhd/internal/headerfile"
)

var errNoFileSelected = errors.New("no file selected")

// mainloop is the interactive fallback started when bhd is invoked without
// a command (optionally with a single file preselected).
type mainloop struct {
	o        *IO
	app      *App
	liner    *liner.State
	files    []string
	selected string
}

// historyFile returns the path to the prompt history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".bhd_history")
}

func runMainloop(o *IO, app *App, selected string) int {
	loop := &mainloop{o: o, app: app, selected: selected}

	if err := loop.run(); err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	return o.Finish()
}

func (m *mainloop) run() error {
	m.liner = liner.NewLiner()
	defer func() { _ = m.liner.Close() }()

	m.liner.SetCtrlCAborts(true)
	m.liner.SetCompleter(m.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = m.liner.ReadHistory(f)
		_ = f.Close()
	}

	m.refresh()

	m.o.Println("bhd interactive mainloop. Type 'help' for commands.")

	for {
		prompt := "[no-file] > "
		if m.selected != "" {
			prompt = "[" + filepath.Base(m.selected) + "] > "
		}

		line, err := m.liner.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				m.o.Println("\nexiting")
				m.saveHistory()

				return nil
			}

			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m.liner.AppendHistory(line)

		parts := strings.Fields(line)

		if quit := m.dispatch(strings.ToLower(parts[0]), parts[1:]); quit {
			m.saveHistory()

			return nil
		}
	}
}

// dispatch executes one mainloop command. Returns true to exit the loop.
func (m *mainloop) dispatch(cmd string, args []string) bool {
	var err error

	switch cmd {
	case "q", "quit", "exit":
		m.o.Println("exiting")

		return true

	case "help", "h", "?":
		m.printHelp()

	case "list", "ls":
		err = cmdLs(m.o, m.app, args)

	case "refresh":
		m.refresh()
		m.o.Println("refreshed")

	case "select":
		m.selectFile(args)

	case "show":
		err = m.withSelected(func(path string) error {
			return cmdShow(m.o, m.app, []string{path})
		})

	case "add":
		err = m.withSelected(func(path string) error {
			return cmdAdd(m.o, m.app, []string{path})
		})

	case "remove":
		err = m.withSelected(func(path string) error {
			return cmdRemove(m.o, m.app, []string{path})
		})

	case "edit":
		err = m.withSelected(func(path string) error {
			return editHeader(m.o, m.app, m.liner, path)
		})

	case "bump":
		err = m.withSelected(func(path string) error {
			part := ""
			if len(args) > 0 {
				part = args[0]
			} else {
				answer, perr := m.liner.Prompt("Which part to bump? (major/minor/patch): ")
				if perr != nil {
					return nil
				}

				part = answer
			}

			return cmdBump(m.o, m.app, []string{strings.TrimSpace(part), path})
		})

	case "bumpall":
		err = cmdBumpAll(m.o, m.app, args)

	case "apply":
		err = cmdApply(m.o, m.app, args)

	case "col":
		err = cmdCol(m.o, m.app, args)

	default:
		m.o.Println("unknown command, type 'help' for commands")
	}

	if err != nil {
		m.o.Println("error:", err)
	}

	return false
}

// withSelected runs fn against the currently selected file.
func (m *mainloop) withSelected(fn func(path string) error) error {
	if m.selected == "" {
		return errNoFileSelected
	}

	return fn(m.selected)
}

// refresh re-lists the candidate files of the working directory.
func (m *mainloop) refresh() {
	files, err := headerfile.FindFiles(m.app.WorkDir, false, m.app.Opts.Extensions)
	if err != nil {
		m.files = nil

		return
	}

	m.files = files
}

// selectFile picks a file by list index, path, or base name. An ambiguous
// base name is reported and nothing is selected.
func (m *mainloop) selectFile(args []string) {
	if len(args) == 0 {
		m.o.Println("provide a number or file name")

		return
	}

	token := args[0]

	if idx, err := strconv.Atoi(token); err == nil {
		if idx < 1 || idx > len(m.files) {
			m.o.Println("index out of range")

			return
		}

		m.selected = m.files[idx-1]
		m.o.Println("selected", m.selected)

		return
	}

	if path, err := m.app.requireFile(token); err == nil {
		m.selected = path
		m.o.Println("selected", path)

		return
	}

	var matches []string

	for _, f := range m.files {
		if filepath.Base(f) == token {
			matches = append(matches, f)
		}
	}

	switch len(matches) {
	case 0:
		m.o.Println("no match found")
	case 1:
		m.selected = matches[0]
		m.o.Println("selected", m.selected)
	default:
		m.o.Println("multiple matches, specify a path or an index:")

		for i, f := range matches {
			m.o.Printf("%2d. %s\n", i+1, f)
		}
	}
}

// saveHistory persists prompt history to disk.
func (m *mainloop) saveHistory() {
	path := historyFile()
	if path == "" {
		return
	}

	if f, err := os.Create(path); err == nil {
		_, _ = m.liner.WriteHistory(f)
		_ = f.Close()
	}
}

// completer provides tab completion for mainloop commands.
func (m *mainloop) completer(line string) []string {
	commands := []string{
		"list", "ls", "select", "show", "add", "remove", "edit",
		"bump", "bumpall", "apply", "col", "refresh", "help", "quit",
	}

	var out []string

	for _, c := range commands {
		if strings.HasPrefix(c, strings.ToLower(line)) {
			out = append(out, c)
		}
	}

	return out
}

func (m *mainloop) printHelp() {
	m.o.Println(`Commands:
  list                 list candidate files in the working directory
  select <num|name>    select a file by list number, path, or base name
  show                 show the resolved header of the selected file
  add                  add default header keys to the selected file
  edit                 interactively edit the selected file's header
  remove               remove the header from the selected file
  bump [part]          bump the selected file's version
  bumpall <part> [p]   bump versions under a path (--dry-run supported)
  apply [p]            apply default headers recursively (--dry-run supported)
  col <sub>            manage JSON record collections
  refresh              re-read the file list
  help                 this help
  quit                 exit`)
}
