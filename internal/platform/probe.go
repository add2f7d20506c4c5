// Package platform answers "does the user prefer a light or dark appearance"
// from the environment, the operating system, and the terminal.
package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	qerrors "github.com/alexisbeaulieu97/quill/pkg/errors"
)

// EnvOverride forces the reported appearance, e.g. QUILL_APPEARANCE=dark.
const EnvOverride = "QUILL_APPEARANCE"

const defaultCommandTimeout = 250 * time.Millisecond

// Probe is one source of appearance information. ok is false when the probe
// has no opinion; err carries the reason a probe that should have answered
// could not.
type Probe interface {
	Name() string
	Appearance() (pref appearance.Preference, ok bool, err error)
}

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// EnvProbe reads an explicit override from the environment. "auto" and the
// empty string defer to the next probe.
type EnvProbe struct {
	Key    string
	Getenv func(string) string
}

func (p EnvProbe) Name() string { return "env" }

func (p EnvProbe) Appearance() (appearance.Preference, bool, error) {
	key := p.Key
	if key == "" {
		key = EnvOverride
	}
	value := strings.TrimSpace(getenv(p.Getenv)(key))
	if value == "" || strings.EqualFold(value, "auto") {
		return "", false, nil
	}
	pref, err := appearance.ParsePreference(value)
	if err != nil {
		return "", false, qerrors.NewSignalError(p.Name(), fmt.Errorf("%s: %w", key, err))
	}
	return pref, true, nil
}

// ColorFGBGProbe reads the COLORFGBG hint some terminals export ("fg;bg").
// The last segment is the background palette index; indexes below 7 are dark.
type ColorFGBGProbe struct {
	Getenv func(string) string
}

func (p ColorFGBGProbe) Name() string { return "colorfgbg" }

func (p ColorFGBGProbe) Appearance() (appearance.Preference, bool, error) {
	value := strings.TrimSpace(getenv(p.Getenv)("COLORFGBG"))
	if value == "" {
		return "", false, nil
	}
	parts := strings.Split(value, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return "", false, qerrors.NewSignalError(p.Name(), fmt.Errorf("unparseable COLORFGBG %q", value))
	}
	return appearance.PreferenceFromDark(bg < 7), true, nil
}

// OSProbe asks the desktop environment: `defaults` on macOS, `gsettings` on
// GNOME. Every command is bounded by Timeout.
type OSProbe struct {
	GOOS    string
	Run     CommandRunner
	Timeout time.Duration
}

func (p OSProbe) Name() string { return "os" }

func (p OSProbe) Appearance() (appearance.Preference, bool, error) {
	goos := p.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "darwin":
		return p.darwin()
	case "linux", "freebsd", "openbsd":
		return p.gnome()
	default:
		return "", false, nil
	}
}

func (p OSProbe) run(name string, args ...string) ([]byte, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	run := p.Run
	if run == nil {
		run = execRunner
	}
	out, err := run(ctx, name, args...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	return out, err
}

// darwin: AppleInterfaceStyle prints "Dark" in dark mode and the key is
// missing (non-zero exit) in light mode.
func (p OSProbe) darwin() (appearance.Preference, bool, error) {
	out, err := p.run("defaults", "read", "-g", "AppleInterfaceStyle")
	if err == nil {
		return appearance.PreferenceFromDark(strings.Contains(strings.ToLower(string(out)), "dark")), true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return appearance.PreferenceLight, true, nil
	}
	return "", false, qerrors.NewSignalError(p.Name(), err)
}

func (p OSProbe) gnome() (appearance.Preference, bool, error) {
	out, err := p.run("gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if err == nil {
		lower := strings.ToLower(string(out))
		switch {
		case strings.Contains(lower, "dark"):
			return appearance.PreferenceDark, true, nil
		case strings.Contains(lower, "light"):
			return appearance.PreferenceLight, true, nil
		}
	}

	out, gtkErr := p.run("gsettings", "get", "org.gnome.desktop.interface", "gtk-theme")
	if gtkErr != nil {
		if err == nil {
			return "", false, nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", false, nil
		}
		return "", false, qerrors.NewSignalError(p.Name(), err)
	}
	return appearance.PreferenceFromDark(strings.Contains(strings.ToLower(string(out)), "dark")), true, nil
}

// TerminalProbe asks the terminal for its background colour. It only answers
// when File is a TTY, and it reads from the terminal, so it must not run while
// a TUI owns stdin.
type TerminalProbe struct {
	File *os.File
}

func (p TerminalProbe) Name() string { return "terminal" }

func (p TerminalProbe) Appearance() (appearance.Preference, bool, error) {
	if !Interactive(p.File) {
		return "", false, nil
	}
	return appearance.PreferenceFromDark(termenv.NewOutput(p.File).HasDarkBackground()), true, nil
}

// Interactive reports whether f is attached to a terminal.
func Interactive(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func getenv(fn func(string) string) func(string) string {
	if fn != nil {
		return fn
	}
	return os.Getenv
}
