package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"bhd/internal/config"
)

const (
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns the process exit code.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	flags, err := parseGlobalFlags(argsAfterProgram(args))
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			fprintln(errOut, "error: cannot get working directory:", err)

			return 1
		}
	}

	cfg, sources, err := config.Load(workDir, flags.configPath, env)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	opts, err := cfg.Options()
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	app := &App{Cfg: cfg, Opts: opts, WorkDir: workDir, Env: env, Stdin: stdin}
	o := NewIO(out, errOut)

	// Interactive fallback: no command at all, or a single existing file.
	if len(flags.remaining) == 0 {
		return runMainloop(o, app, "")
	}

	cmd := flags.remaining[0]
	rest := flags.remaining[1:]

	if cmd == "-h" || cmd == helpFlag || cmd == "help" {
		printUsage(out)

		return 0
	}

	if len(flags.remaining) == 1 && !isCommand(cmd) {
		if path, fileErr := app.requireFile(cmd); fileErr == nil {
			return runMainloop(o, app, path)
		}
	}

	var cmdErr error

	switch cmd {
	case "ls":
		cmdErr = cmdLs(o, app, rest)
	case "show":
		cmdErr = cmdShow(o, app, rest)
	case "add":
		cmdErr = cmdAdd(o, app, rest)
	case "remove":
		cmdErr = cmdRemove(o, app, rest)
	case "edit":
		cmdErr = cmdEdit(o, app, rest)
	case "bump":
		cmdErr = cmdBump(o, app, rest)
	case "bump-all":
		cmdErr = cmdBumpAll(o, app, rest)
	case "apply":
		cmdErr = cmdApply(o, app, rest)
	case "col":
		cmdErr = cmdCol(o, app, rest)
	case "print-config":
		cmdErr = cmdPrintConfig(o, app, sources)
	default:
		fprintln(errOut, "error: unknown command:", cmd)
		printUsage(errOut)

		return 1
	}

	if cmdErr != nil {
		fprintln(errOut, "error:", cmdErr)

		return 1
	}

	return o.Finish()
}

// isCommand reports whether name is a known subcommand.
func isCommand(name string) bool {
	switch name {
	case "ls", "show", "add", "remove", "edit", "bump", "bump-all", "apply", "col", "print-config", "help":
		return true
	default:
		return false
	}
}

// argsAfterProgram drops the program name when present.
func argsAfterProgram(args []string) []string {
	if len(args) == 0 {
		return nil
	}

	return args[1:]
}

type globalFlags struct {
	workDir    string
	configPath string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a global flag at args[idx]. Returns the number of
// args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if arg == "-C" || arg == "--cwd" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", errUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}

func printUsage(writer io.Writer) {
	fprintln(writer, `bhd - manage file header comment blocks

Usage: bhd [options] <command> [args]

Invoked with no command (or a single file path) bhd starts the
interactive mainloop.

Options:
  -C, --cwd <dir>    Run as if started in <dir>
  -c, --config       Use specified config file

Commands:`)
	fprintln(writer, lsHelp)
	fprintln(writer, showHelp)
	fprintln(writer, addHelp)
	fprintln(writer, removeHelp)
	fprintln(writer, editHelp)
	fprintln(writer, bumpHelp)
	fprintln(writer, bumpAllHelp)
	fprintln(writer, applyHelp)
	fprintln(writer, colHelp)
	fprintln(writer, `  print-config             Show resolved configuration`)
}
