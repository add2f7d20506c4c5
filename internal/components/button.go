package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ButtonVariant selects the button's visual weight.
type ButtonVariant int

const (
	ButtonVariantPrimary ButtonVariant = iota
	ButtonVariantGhost
)

// ButtonOptions defines the configuration options for a button
type ButtonOptions struct {
	Variant  ButtonVariant
	Disabled bool
	Focus    bool
}

// Button represents a clickable button component
type Button struct {
	label   string
	options ButtonOptions
}

// NewButton creates a new button with the given label and options
func NewButton(label string, opts ButtonOptions) *Button {
	return &Button{
		label:   label,
		options: opts,
	}
}

// WithVariant sets the button variant
func (b *Button) WithVariant(variant ButtonVariant) *Button {
	b.options.Variant = variant
	return b
}

// WithDisabled sets the button disabled state
func (b *Button) WithDisabled(disabled bool) *Button {
	b.options.Disabled = disabled
	return b
}

// WithFocus sets the button focus state
func (b *Button) WithFocus(focus bool) *Button {
	b.options.Focus = focus
	return b
}

// Label returns the button text.
func (b *Button) Label() string {
	return b.label
}

// View renders the button with the default renderer.
func (b *Button) View() string {
	return b.ViewWithContext(RenderContext{})
}

// ViewWithContext renders the button on ctx's renderer.
func (b *Button) ViewWithContext(ctx RenderContext) string {
	return b.buildStyle(ctx.NewStyle()).Render(b.label)
}

// buildStyle calculates the button style based on current options
func (b *Button) buildStyle(base lipgloss.Style) lipgloss.Style {
	var appliers []StyleApplier
	switch b.options.Variant {
	case ButtonVariantGhost:
		appliers = ButtonGhostStyle()
	default:
		appliers = ButtonPrimaryStyle()
	}
	style := Style(base, appliers...)

	if b.options.Disabled {
		style = Style(style, Foreground(PaletteNeutral)).Faint(true)
	} else if b.options.Focus {
		style = Style(style, Typography(TypographyVariantEmphasis)).Underline(true)
	}

	return style
}

// ButtonGroup represents a horizontal group of buttons
type ButtonGroup struct {
	buttons []*Button
	spacing int
}

// NewButtonGroup creates a new button group
func NewButtonGroup(buttons ...*Button) *ButtonGroup {
	return &ButtonGroup{
		buttons: buttons,
		spacing: PaddingValue(SpacingSizeExtraSmall),
	}
}

// ViewWithContext renders the group on ctx's renderer.
func (bg *ButtonGroup) ViewWithContext(ctx RenderContext) string {
	if len(bg.buttons) == 0 {
		return ""
	}

	views := make([]string, 0, len(bg.buttons)*2)
	for i, button := range bg.buttons {
		if i > 0 {
			views = append(views, strings.Repeat(" ", bg.spacing))
		}
		views = append(views, button.ViewWithContext(ctx))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}
