package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/quill/internal/components"
	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	"github.com/alexisbeaulieu97/quill/internal/events"
	"github.com/alexisbeaulieu97/quill/internal/ports"
	"github.com/alexisbeaulieu97/quill/internal/theme"
)

type themeOptions struct {
	jsonOutput bool
}

func newThemeCmd(app *AppContext) *cobra.Command {
	opts := &themeOptions{}

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect or change the light/dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeGet(cmd, app, opts)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the selection, system preference and effective theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeGet(cmd, app, opts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "set <light|dark|system>",
		Short:     "Persist a theme selection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: selectionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeSet(cmd, app, opts, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch to the opposite of the current effective theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeToggle(cmd, app, opts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "resolve",
		Short: "Run the early theme pass and report what it applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runThemeResolve(cmd, app, opts)
		},
	})

	return cmd
}

func selectionNames() []string {
	sels := appearance.Selections()
	names := make([]string, len(sels))
	for i, s := range sels {
		names[i] = string(s)
	}
	return names
}

// themeSession is an engine plus the presentation it drives, for one command.
type themeSession struct {
	ctx          context.Context
	logger       ports.Logger
	presentation *presentation
	engine       *theme.Engine
	events       *events.Bus
}

func openThemeSession(cmd *cobra.Command, app *AppContext, component string) (*themeSession, error) {
	ctx, logger := app.CommandContext(cmd, component)
	p, err := app.newPresentation(cmd.OutOrStdout())
	if err != nil {
		return nil, newCommandError("open theme", "preparing theme surface", err, "Set theme.surface to class or attribute.")
	}
	env, err := app.themeEnvironment(p, terminalOf(cmd.OutOrStdout()), logger)
	if err != nil {
		return nil, newCommandError("open theme", "opening preference storage", err, "Check that $HOME or $XDG_STATE_HOME is writable, or pass --ephemeral.")
	}
	return &themeSession{
		ctx:          ctx,
		logger:       logger,
		presentation: p,
		engine:       theme.NewEngine(app.themeOptions(), env, logger),
		events:       events.NewBus(logger),
	}, nil
}

func runThemeGet(cmd *cobra.Command, app *AppContext, opts *themeOptions) error {
	session, err := openThemeSession(cmd, app, "command.theme.get")
	if err != nil {
		return err
	}
	return renderState(cmd.OutOrStdout(), session.engine.State(), opts.jsonOutput)
}

func runThemeSet(cmd *cobra.Command, app *AppContext, opts *themeOptions, value string) error {
	sel, err := appearance.ParseSelection(value)
	if err != nil {
		return newCommandError("set theme", fmt.Sprintf("parsing %q", value), err, "Use one of: "+strings.Join(selectionNames(), ", ")+".")
	}

	session, err := openThemeSession(cmd, app, "command.theme.set")
	if err != nil {
		return err
	}
	session.engine.Start()
	defer session.engine.Stop()
	defer events.Relay(session.ctx, session.events, session.engine)()

	changed := false
	defer session.events.Subscribe(ports.EventThemeChanged, func(context.Context, ports.DomainEvent) error {
		changed = true
		return nil
	})()

	if err := session.engine.SetTheme(sel); err != nil {
		return newCommandError("set theme", string(sel), err, "Use one of: "+strings.Join(selectionNames(), ", ")+".")
	}
	if changed {
		session.logger.Info(session.ctx, "theme selection updated", "selection", string(sel))
	} else {
		session.logger.Info(session.ctx, "theme selection unchanged", "selection", string(sel))
	}
	return renderState(cmd.OutOrStdout(), session.engine.State(), opts.jsonOutput)
}

func runThemeToggle(cmd *cobra.Command, app *AppContext, opts *themeOptions) error {
	session, err := openThemeSession(cmd, app, "command.theme.toggle")
	if err != nil {
		return err
	}
	session.engine.Start()
	defer session.engine.Stop()
	defer events.Relay(session.ctx, session.events, session.engine)()

	toggle := components.NewThemeToggle(session.engine)
	if err := toggle.Activate(); err != nil {
		return newCommandError("toggle theme", "applying selection", err, "Run 'quill theme set light' or 'quill theme set dark' instead.")
	}
	return renderState(cmd.OutOrStdout(), session.engine.State(), opts.jsonOutput)
}

type resolvePayload struct {
	theme.BootstrapResult
	Marker string `json:"marker"`
}

func runThemeResolve(cmd *cobra.Command, app *AppContext, opts *themeOptions) error {
	ctx, logger := app.CommandContext(cmd, "command.theme.resolve")
	out := cmd.OutOrStdout()
	p, err := app.newPresentation(out)
	if err != nil {
		return newCommandError("resolve theme", "preparing theme surface", err, "Set theme.surface to class or attribute.")
	}
	env, err := app.themeEnvironment(p, terminalOf(out), logger)
	if err != nil {
		return newCommandError("resolve theme", "opening preference storage", err, "Check that $HOME or $XDG_STATE_HOME is writable, or pass --ephemeral.")
	}

	result := theme.Bootstrap(ctx, app.themeOptions().BootstrapOptions(), env, p.root, logger)
	events.NewBus(logger).Publish(ctx, events.ThemeBootstrapped{Result: result})
	payload := resolvePayload{BootstrapResult: result}
	if m, ok := p.root.Marker(theme.MarkerID); ok {
		payload.Marker = m.ID
	}

	if opts.jsonOutput {
		return writeJSON(out, payload)
	}
	fmt.Fprintf(out, "selection: %s\n", result.Selection)
	if result.Preference != "" {
		fmt.Fprintf(out, "system:    %s\n", result.Preference)
	}
	fmt.Fprintf(out, "effective: %s\n", result.Effective)
	if result.Degraded {
		fmt.Fprintln(out, "degraded:  true")
	}
	fmt.Fprintf(out, "marker:    %s\n", payload.Marker)
	return nil
}

func renderState(out io.Writer, state theme.State, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(out, state)
	}
	system := string(state.Preference)
	if !state.Tracking {
		system += " (fallback)"
	}
	fmt.Fprintf(out, "selection: %s\nsystem:    %s\neffective: %s\n", state.Selection, system, state.Effective)
	return nil
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
