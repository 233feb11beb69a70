package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgen-theme/pkg/orchestrator"
	"github.com/goliatone/go-formgen-theme/pkg/render"
	"github.com/goliatone/go-formgen-theme/pkg/renderers/tui"
	"github.com/goliatone/go-formgen-theme/pkg/renderers/vanilla"
	"github.com/goliatone/go-formgen-theme/pkg/theme/shadcn"
)

const (
	rendererHTML = "html"
	rendererTUI  = "tui"

	themeShadcn = shadcn.Name
	themeNone   = "none"
)

type renderFlags struct {
	source    string
	schema    string
	renderer  string
	theme     string
	variant   string
	values    string
	preset    string
	output    string
	tuiFormat string
	disabled  bool
	readOnly  bool
}

func (a *app) renderCommand() *cobra.Command {
	flags := renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a component schema as a form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := resolveFlags(cmd, flags)
			if err != nil {
				return err
			}
			return a.runRender(cmd, resolved)
		},
	}

	cmd.Flags().StringVarP(&flags.source, "source", "s", "", "OpenAPI document path (JSON or YAML)")
	cmd.Flags().StringVar(&flags.schema, "schema", "", "component schema to render")
	cmd.Flags().StringVarP(&flags.renderer, "renderer", "r", rendererHTML, "renderer: html or tui")
	cmd.Flags().StringVar(&flags.theme, "theme", themeShadcn, "HTML theme: shadcn or none")
	cmd.Flags().StringVar(&flags.variant, "variant", "", "theme variant (e.g. dark)")
	cmd.Flags().StringVar(&flags.values, "values", "", "YAML or JSON file with prefill values")
	cmd.Flags().StringVar(&flags.preset, "preset", "", "YAML or JSON preset overriding labels and hints")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&flags.tuiFormat, "tui-format", string(tui.OutputFormatJSON), "tui output: json, form or pretty")
	cmd.Flags().BoolVar(&flags.disabled, "disabled", false, "render every control disabled")
	cmd.Flags().BoolVar(&flags.readOnly, "readonly", false, "render every control read-only")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

// resolveFlags lets FORMGEN_* environment variables fill flags the user did
// not set.
func resolveFlags(cmd *cobra.Command, flags renderFlags) (renderFlags, error) {
	v := viper.New()
	v.SetEnvPrefix("FORMGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return flags, fmt.Errorf("bind flags: %w", err)
	}

	flags.renderer = v.GetString("renderer")
	flags.theme = v.GetString("theme")
	flags.variant = v.GetString("variant")
	flags.tuiFormat = v.GetString("tui-format")
	return flags, nil
}

func (a *app) runRender(cmd *cobra.Command, flags renderFlags) error {
	options, rendererName, err := a.orchestratorOptions(flags)
	if err != nil {
		return err
	}

	values, err := loadValues(flags.values)
	if err != nil {
		return err
	}

	a.logger.Debug("rendering form",
		"source", flags.source,
		"schema", flags.schema,
		"renderer", rendererName,
		"variant", flags.variant,
	)

	gen := orchestrator.New(options...)
	out, err := gen.Generate(cmd.Context(), orchestrator.Request{
		Path:         flags.source,
		Schema:       flags.schema,
		Renderer:     rendererName,
		Values:       values,
		ThemeVariant: flags.variant,
		Disabled:     flags.disabled,
		ReadOnly:     flags.readOnly,
	})
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := fmt.Fprintln(a.out, string(out))
		return err
	}
	if err := writeFile(flags.output, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Debug("form written", "path", flags.output, "bytes", len(out))
	fmt.Fprintf(a.out, "%s form written to %s\n", successStyle.Render("✓"), pathStyle.Render(flags.output))
	return nil
}

func (a *app) orchestratorOptions(flags renderFlags) ([]orchestrator.Option, string, error) {
	registry := render.NewRegistry()
	var options []orchestrator.Option

	switch strings.ToLower(strings.TrimSpace(flags.renderer)) {
	case rendererTUI:
		renderer, err := tui.New(
			tui.WithOutputFormat(tui.OutputFormat(flags.tuiFormat)),
			tui.WithTheme(tui.Theme{InfoPrefix: "›", ErrorPrefix: "✗"}),
		)
		if err != nil {
			return nil, "", err
		}
		if err := registry.Register(renderer); err != nil {
			return nil, "", err
		}
	case rendererHTML, "":
		renderer, err := a.htmlRenderer(flags.theme)
		if err != nil {
			return nil, "", err
		}
		if err := registry.Register(renderer); err != nil {
			return nil, "", err
		}
		if strings.EqualFold(flags.theme, themeShadcn) {
			manifest, err := shadcn.Manifest()
			if err != nil {
				return nil, "", err
			}
			provider := theme.NewRegistry()
			if err := provider.Register(manifest); err != nil {
				return nil, "", err
			}
			options = append(options,
				orchestrator.WithThemeProvider(provider, shadcn.Name, ""),
				orchestrator.WithThemeFallbacks(shadcn.New().Partials()),
			)
		}
	default:
		return nil, "", fmt.Errorf("unknown renderer %q (want %s or %s)", flags.renderer, rendererHTML, rendererTUI)
	}

	if flags.preset != "" {
		preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(flags.preset)), filepath.Base(flags.preset))
		if err != nil {
			return nil, "", err
		}
		options = append(options, orchestrator.WithSchemaTransformer(preset))
	}

	names := registry.List()
	options = append(options,
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(names[0]),
	)
	return options, names[0], nil
}

func (a *app) htmlRenderer(themeName string) (*vanilla.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(themeName)) {
	case themeShadcn:
		return shadcn.NewRenderer()
	case themeNone, "":
		return vanilla.New()
	default:
		return nil, fmt.Errorf("unknown theme %q (want %s or %s)", themeName, themeShadcn, themeNone)
	}
}

// loadValues reads prefill values. Nested mappings address nested fields;
// string maps such as env blocks are passed through as mappings.
func loadValues(path string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse values %s: %w", path, err)
	}
	if values == nil {
		return nil, errors.New("values file is empty")
	}
	return values, nil
}
