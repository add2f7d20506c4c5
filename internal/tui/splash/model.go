// Package splash is the quill landing screen: hero, pitch, waitlist
// call-to-action and the theme toggle.
package splash

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/quill/internal/components"
	"github.com/alexisbeaulieu97/quill/internal/events"
	"github.com/alexisbeaulieu97/quill/internal/logging"
	"github.com/alexisbeaulieu97/quill/internal/ports"
	"github.com/alexisbeaulieu97/quill/internal/theme"
	"github.com/alexisbeaulieu97/quill/internal/waitlist"
)

// ThemeController is the engine surface the splash screen drives.
type ThemeController interface {
	components.ThemeSource
	State() theme.State
	OnChange(func(theme.State)) func()
}

// Config wires the model to its collaborators.
type Config struct {
	Engine ThemeController
	// Events carries theme.changed for Engine. When nil the model relays
	// Engine into a bus of its own.
	Events    ports.EventPublisher
	Submitter waitlist.Submitter
	// Renderer is the renderer the theme surface keeps in sync. Nil uses
	// the lipgloss default.
	Renderer      *lipgloss.Renderer
	Theme         components.Theme
	SubmitTimeout time.Duration
	Logger        ports.Logger
}

// Model is the splash screen's Bubbletea state.
type Model struct {
	engine    ThemeController
	toggle    *components.ThemeToggle
	watch     *ThemeWatch
	relay     func()
	submitter waitlist.Submitter
	logger    ports.Logger
	ctx       components.RenderContext
	tokens    components.Theme

	state theme.State

	input   textinput.Model
	spinner spinner.Model
	help    help.Model

	submitting    bool
	submitTimeout time.Duration
	submitted     string
	errorMsg      string

	width  int
	height int
}

// NewModel builds the model. Call Close when the program exits to release
// the event subscription.
func NewModel(cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "you@example.com"
	input.Prompt = "✉ "
	input.CharLimit = 254
	input.Width = 32

	s := spinner.New()
	s.Spinner = spinner.Dot

	timeout := cfg.SubmitTimeout
	if timeout <= 0 {
		timeout = waitlist.DefaultTimeout
	}

	bus, relay := cfg.Events, func() {}
	if bus == nil {
		own := events.NewBus(nil)
		relay = events.Relay(context.Background(), own, cfg.Engine)
		bus = own
	}

	tokens := cfg.Theme
	if len(tokens.Families) == 0 {
		tokens = components.GetTheme()
	}

	return Model{
		engine:        cfg.Engine,
		toggle:        components.NewThemeToggle(cfg.Engine),
		watch:         WatchTheme(bus),
		relay:         relay,
		submitter:     cfg.Submitter,
		logger:        logging.OrNoOp(cfg.Logger).With("component", "tui.splash"),
		ctx:           components.RenderContext{Renderer: cfg.Renderer},
		tokens:        tokens,
		state:         cfg.Engine.State(),
		input:         input,
		spinner:       s,
		help:          help.New(),
		submitTimeout: timeout,
		width:         80,
		height:        24,
	}
}

// Init starts listening for theme changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.watch.Wait(), textinput.Blink)
}

// Close stops relaying theme changes.
func (m Model) Close() {
	m.watch.Close()
	m.relay()
}

// State returns the theme state last seen by the model.
func (m Model) State() theme.State {
	return m.state
}

// Submitting reports whether a waitlist request is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// Submitted returns the address accepted by the waitlist, if any.
func (m Model) Submitted() string {
	return m.submitted
}

// Error returns the current status-line error.
func (m Model) Error() string {
	return m.errorMsg
}

// InputFocused reports whether keystrokes go to the email field.
func (m Model) InputFocused() bool {
	return m.input.Focused()
}
