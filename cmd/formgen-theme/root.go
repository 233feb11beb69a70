package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type app struct {
	out     io.Writer
	errOut  io.Writer
	logger  *log.Logger
	verbose bool
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{
		out:    out,
		errOut: errOut,
		logger: log.NewWithOptions(errOut, log.Options{
			Prefix: "formgen-theme",
		}),
	}

	cmd := &cobra.Command{
		Use:   "formgen-theme",
		Short: "Render OpenAPI schemas as themed forms",
		Long: titleStyle.Render("formgen-theme") + ` renders a component schema of an OpenAPI document
as an HTML form (plain or shadcn themed) or as terminal prompts.

Render flags fall back to FORMGEN_* environment variables (FORMGEN_THEME,
FORMGEN_VARIANT, FORMGEN_RENDERER, FORMGEN_TUI_FORMAT) when not given.

String maps (additionalProperties: {type: string}) are edited through the
environment-variable key/value editor.

Examples:
  formgen-theme render --source api.yaml --schema Service
  formgen-theme render --source api.yaml --schema Service --variant dark --output form.html
  formgen-theme render --source api.yaml --schema Service --renderer tui --values prefill.yaml
  formgen-theme widgets`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if a.verbose {
				a.logger.SetLevel(log.DebugLevel)
			}
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(a.renderCommand())
	cmd.AddCommand(a.widgetsCommand())
	return cmd
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
