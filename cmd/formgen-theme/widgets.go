package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formgen-theme/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-formgen-theme/pkg/theme/shadcn"
)

func (a *app) widgetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "widgets",
		Short: "List the shadcn theme registrations by role",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.listWidgets()
		},
	}
}

func (a *app) listWidgets() error {
	t := shadcn.New()
	registry, err := t.Registry()
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, titleStyle.Render("shadcn"))
	writeSection(a.out, "widgets", registry.Names(components.RoleWidget))
	writeSection(a.out, "fields", registry.Names(components.RoleField))

	templates := make([]string, 0, len(t.Templates))
	for _, name := range slices.Sorted(maps.Keys(t.Templates)) {
		tmpl := t.Templates[name]
		templates = append(templates, fmt.Sprintf("%s (%s → %s)", name, tmpl.Partial, tmpl.Path))
	}
	writeSection(a.out, "templates", templates)
	return nil
}

func writeSection(out io.Writer, role string, names []string) {
	fmt.Fprintln(out, roleStyle.Render(role+":"))
	for _, name := range names {
		fmt.Fprintln(out, "  "+nameStyle.Render(name))
	}
}
