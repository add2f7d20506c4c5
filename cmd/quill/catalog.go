package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/quill/internal/catalog"
	"github.com/alexisbeaulieu97/quill/internal/components"
	"github.com/alexisbeaulieu97/quill/internal/theme"
)

func newCatalogCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "catalog [colors|spacing|typography]",
		Short:     "Print the design tokens of the component library",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: catalog.Sections(),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) == 1 {
				section = args[0]
			}
			return runCatalog(cmd, app, section)
		},
	}

	return cmd
}

func runCatalog(cmd *cobra.Command, app *AppContext, section string) error {
	ctx, logger := app.CommandContext(cmd, "command.catalog")
	out := cmd.OutOrStdout()

	p, err := app.newPresentation(out)
	if err != nil {
		return newCommandError("render catalog", "preparing theme surface", err, "Set theme.surface to class or attribute.")
	}
	env, err := app.themeEnvironment(p, terminalOf(out), logger)
	if err != nil {
		return newCommandError("render catalog", "opening preference storage", err, "Check that $HOME or $XDG_STATE_HOME is writable, or pass --ephemeral.")
	}

	// Resolve before the first line is written so every swatch uses the
	// right variant.
	theme.Bootstrap(ctx, app.themeOptions().BootstrapOptions(), env, p.root, logger)

	rendered, err := catalog.Render(section, components.RenderContext{Renderer: p.renderer}, components.GetTheme())
	if err != nil {
		return newCommandError("render catalog", fmt.Sprintf("section %q", section), err, "Use one of: "+strings.Join(catalog.Sections(), ", ")+".")
	}
	fmt.Fprint(out, rendered)
	return nil
}
