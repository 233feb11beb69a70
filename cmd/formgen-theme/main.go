// Command formgen-theme renders OpenAPI component schemas as forms, either as
// themed HTML or as interactive terminal prompts.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/goliatone/go-formgen-theme/pkg/renderers/tui"
)

// Version is set via -ldflags.
var Version = "dev"

func main() {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	if err := fang.Execute(
		context.Background(),
		cmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}
