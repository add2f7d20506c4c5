package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath   string
	logLevel     string
	logFormat    string
	storageKey   string
	defaultTheme string
	ephemeral    bool
}

func newRootCmd(app *AppContext) *cobra.Command {
	flags := &rootFlags{}
	app.flags = flags

	cmd := &cobra.Command{
		Use:           "quill",
		Short:         "Quill keeps your notes one keystroke away",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Configure(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, show the splash screen
			if len(args) == 0 {
				return runSplash(cmd, app)
			}
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to config.yaml (default $XDG_CONFIG_HOME/quill/config.yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&flags.storageKey, "storage-key", "", "Preference key the theme selection is stored under")
	pf.StringVar(&flags.defaultTheme, "default-theme", "", "Selection used when none is stored: light, dark, system")
	pf.BoolVar(&flags.ephemeral, "ephemeral", false, "Keep preferences in memory for this run only")

	cmd.AddCommand(newSplashCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newCatalogCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
