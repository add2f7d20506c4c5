package main

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/quill/internal/components"
	"github.com/alexisbeaulieu97/quill/internal/events"
	"github.com/alexisbeaulieu97/quill/internal/logging"
	"github.com/alexisbeaulieu97/quill/internal/ports"
	"github.com/alexisbeaulieu97/quill/internal/theme"
	"github.com/alexisbeaulieu97/quill/internal/tui/splash"
	"github.com/alexisbeaulieu97/quill/internal/waitlist"
)

func newSplashCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "splash",
		Short: "Show the Quill splash screen",
		Long:  `Show the landing screen with the waitlist sign-up and the light/dark toggle. This is also what plain 'quill' runs.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplash(cmd, app)
		},
	}

	return cmd
}

func runSplash(cmd *cobra.Command, app *AppContext) error {
	ctx, logger := app.CommandContext(cmd, "command.splash")
	out := cmd.OutOrStdout()
	interactive := app.Interactive != nil && app.Interactive(cmd)

	p, err := app.newPresentation(out)
	if err != nil {
		return newCommandError("show splash", "preparing theme surface", err, "Set theme.surface to class or attribute.")
	}

	// Logs are held back while the program owns the screen.
	held := logging.NewEventBuffer(0)
	tuiLogger := ports.Logger(logging.NewBufferedLogger(held))
	defer held.Flush(logger)

	env := theme.Environment{Surface: p.surface}
	if interactive {
		env, err = app.themeEnvironment(p, terminalOf(out), tuiLogger)
		if err != nil {
			return newCommandError("show splash", "opening preference storage", err, "Check that $HOME or $XDG_STATE_HOME is writable, or pass --ephemeral.")
		}
	}

	opts := app.themeOptions()
	early := theme.Bootstrap(ctx, opts.BootstrapOptions(), env, p.root, tuiLogger)
	bus := events.NewBus(tuiLogger)
	bus.Publish(ctx, events.ThemeBootstrapped{Result: early})
	logger.Debug(ctx, "splash bootstrapped", "interactive", interactive)

	engine := theme.NewEngine(opts, env, tuiLogger)
	engine.Start()
	defer engine.Stop()
	defer events.Relay(ctx, bus, engine)()

	model := splash.NewModel(splash.Config{
		Engine:        engine,
		Events:        bus,
		Submitter:     app.submitter(),
		Renderer:      p.renderer,
		Theme:         components.GetTheme(),
		SubmitTimeout: app.submitTimeout(),
		Logger:        tuiLogger,
	})
	defer model.Close()

	if !interactive {
		// No terminal to take over: print a single frame.
		fmt.Fprintln(out, model.View())
		return nil
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(out))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error(ctx, "splash execution failed", "error", err)
		return fmt.Errorf("failed to run splash: %w", err)
	}
	return nil
}

func (a *AppContext) submitter() waitlist.Submitter {
	if a.Submitter != nil {
		return a.Submitter
	}
	if a.Config == nil || a.Config.Waitlist.Endpoint == "" {
		return nil
	}
	return waitlist.NewHTTPSubmitter(a.Config.Waitlist.Endpoint, a.Config.Waitlist.Timeout)
}

func (a *AppContext) submitTimeout() time.Duration {
	if a.Config == nil {
		return waitlist.DefaultTimeout
	}
	return a.Config.Waitlist.Timeout
}
