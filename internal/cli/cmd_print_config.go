package cli

import (
	"bhd/internal/config"
)

// cmdPrintConfig prints the effective configuration and where it came from.
func cmdPrintConfig(o *IO, app *App, sources config.Sources) error {
	formatted, err := config.Format(app.Cfg)
	if err != nil {
		return err
	}

	o.Println(formatted)
	o.Println("# Sources:")

	if sources.Global != "" {
		o.Println("#   global: ", sources.Global)
	}

	if sources.Project != "" {
		o.Println("#   project:", sources.Project)
	}

	if sources.Global == "" && sources.Project == "" {
		o.Println("#   (defaults only)")
	}

	return nil
}
