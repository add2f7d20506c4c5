package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/quill/internal/config"
	"github.com/alexisbeaulieu97/quill/internal/logging"
	"github.com/alexisbeaulieu97/quill/internal/platform"
	"github.com/alexisbeaulieu97/quill/internal/ports"
	"github.com/alexisbeaulieu97/quill/internal/storage"
	"github.com/alexisbeaulieu97/quill/internal/surface"
	"github.com/alexisbeaulieu97/quill/internal/theme"
	"github.com/alexisbeaulieu97/quill/internal/waitlist"
)

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	Config *config.Config
	Logger ports.Logger
	Buffer *logging.EventBuffer

	// Storage and Signal replace the platform adapters when set.
	Storage ports.Storage
	Signal  ports.PreferenceSignal
	// Submitter replaces the HTTP waitlist client when set.
	Submitter waitlist.Submitter
	// Interactive reports whether the splash screen may take over the terminal.
	Interactive func(cmd *cobra.Command) bool

	flags *rootFlags
}

func newAppContext() *AppContext {
	buffer := logging.NewEventBuffer(0)
	return &AppContext{
		Logger: logging.NewBufferedLogger(buffer),
		Buffer: buffer,
		Interactive: func(cmd *cobra.Command) bool {
			f, ok := cmd.OutOrStdout().(*os.File)
			return ok && platform.Interactive(f) && platform.Interactive(os.Stdin)
		},
	}
}

// Configure loads the config file, applies flag overrides and swaps the
// startup buffer for the real logger.
func (a *AppContext) Configure(cmd *cobra.Command) error {
	flags := a.flags
	if flags == nil {
		flags = &rootFlags{}
	}

	path, required := flags.configPath, flags.configPath != ""
	if !required {
		var err error
		path, err = config.Path()
		if err != nil {
			return newCommandError("load configuration", "determining config path", err, "Set XDG_CONFIG_HOME or pass --config.")
		}
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return newCommandError("load configuration", path, err, "Fix the reported field or remove the file to use defaults.")
	}
	if err := cfg.Apply(config.Overrides{
		LogLevel:     flags.logLevel,
		LogFormat:    flags.logFormat,
		StorageKey:   flags.storageKey,
		DefaultTheme: flags.defaultTheme,
	}); err != nil {
		return newCommandError("load configuration", "applying command-line flags", err, "Check the flag values against 'quill --help'.")
	}
	a.Config = cfg

	logger, err := logging.New(logging.Options{
		Writer:    cmd.ErrOrStderr(),
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Layer:     "cli",
		Component: "quill",
	})
	if err != nil {
		return newCommandError("configure logging", cfg.Log.Format, err, "Use --log-format text or json.")
	}
	a.Buffer.Flush(logger)
	a.Logger = logger
	return nil
}

// CommandContext returns a context carrying a fresh correlation ID and a
// logger scoped to component.
func (a *AppContext) CommandContext(cmd *cobra.Command, component string) (context.Context, ports.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	id := logging.GetCorrelationID(ctx)
	if id == "" {
		id = logging.GenerateCorrelationID()
		ctx = logging.WithCorrelationID(ctx, id)
	}
	// The engine logs outside any command context, so the ID also rides
	// on the logger itself.
	return ctx, logging.OrNoOp(a.Logger).With("component", component, "correlation_id", id)
}

func (a *AppContext) themeOptions() theme.Options {
	if a.Config == nil {
		return theme.DefaultOptions()
	}
	return a.Config.Theme.Options()
}

func (a *AppContext) storage() (ports.Storage, error) {
	if a.Storage != nil {
		return a.Storage, nil
	}
	if a.flags != nil && a.flags.ephemeral {
		a.Storage = storage.NewMemoryStore()
		return a.Storage, nil
	}
	path, err := storage.DefaultPath()
	if err != nil {
		return nil, err
	}
	return storage.NewFileStore(path), nil
}

func (a *AppContext) signal(terminal *os.File, logger ports.Logger) ports.PreferenceSignal {
	if a.Signal != nil {
		return a.Signal
	}
	interval := platform.DefaultPollInterval
	if a.Config != nil && a.Config.Theme.PollInterval > 0 {
		interval = a.Config.Theme.PollInterval
	}
	return platform.NewSignal(interval, terminal, logger)
}

// presentation is the root the views render from plus the renderer the
// surface keeps in step with it.
type presentation struct {
	root     *surface.Root
	renderer *lipgloss.Renderer
	surface  ports.Surface
}

func (a *AppContext) newPresentation(out io.Writer) (*presentation, error) {
	mode, attribute := surface.ModeClass, surface.DefaultAttribute
	if a.Config != nil {
		mode, attribute = a.Config.Theme.Surface, a.Config.Theme.Attribute
	}
	root := surface.NewRoot()
	rootSurface, err := surface.New(mode, attribute, root)
	if err != nil {
		return nil, err
	}
	renderer := lipgloss.NewRenderer(out)
	return &presentation{
		root:     root,
		renderer: renderer,
		surface:  surface.Tee(rootSurface, surface.NewRendererSurface(renderer)),
	}, nil
}

// themeEnvironment assembles the ports for a command. terminal is the TTY
// the terminal probe may query, or nil.
func (a *AppContext) themeEnvironment(p *presentation, terminal *os.File, logger ports.Logger) (theme.Environment, error) {
	store, err := a.storage()
	if err != nil {
		return theme.Environment{}, err
	}
	env := theme.Environment{Storage: store, Surface: p.surface}
	if a.themeOptions().TrackSystem {
		env.Signal = a.signal(terminal, logger)
	}
	return env, nil
}

func terminalOf(w io.Writer) *os.File {
	f, ok := w.(*os.File)
	if !ok || !platform.Interactive(f) {
		return nil
	}
	return f
}
