package components

import (
	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
)

// ThemeSource is the slice of the theme engine the toggle needs.
type ThemeSource interface {
	Effective() appearance.Effective
	SetTheme(appearance.Selection) error
}

// Toggle icons, chosen for the theme the control switches to.
const (
	IconDark  = "☾"
	IconLight = "☀"
)

// ThemeToggle flips between light and dark. It holds no state of its own:
// the icon, label, and action all derive from the source's effective theme.
type ThemeToggle struct {
	source ThemeSource
}

// NewThemeToggle binds a toggle to source.
func NewThemeToggle(source ThemeSource) *ThemeToggle {
	return &ThemeToggle{source: source}
}

// Next is the explicit selection activation will set. It is never system.
func (t *ThemeToggle) Next() appearance.Selection {
	return appearance.Opposite(t.source.Effective())
}

// Activate sets the opposite of the current effective theme.
func (t *ThemeToggle) Activate() error {
	return t.source.SetTheme(t.Next())
}

// Label announces the action, not the current state.
func (t *ThemeToggle) Label() string {
	if t.Next() == appearance.SelectionDark {
		return "Switch to dark theme"
	}
	return "Switch to light theme"
}

// Icon shows the theme the control switches to.
func (t *ThemeToggle) Icon() string {
	if t.Next() == appearance.SelectionDark {
		return IconDark
	}
	return IconLight
}

// View renders the toggle with the default renderer.
func (t *ThemeToggle) View() string {
	return t.ViewWithContext(RenderContext{})
}

// ViewWithContext renders the toggle as a ghost button.
func (t *ThemeToggle) ViewWithContext(ctx RenderContext) string {
	return NewButton(t.Icon()+"  "+t.Label(), ButtonOptions{Variant: ButtonVariantGhost}).ViewWithContext(ctx)
}
