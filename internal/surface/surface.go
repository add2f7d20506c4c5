package surface

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	"github.com/alexisbeaulieu97/quill/internal/ports"
)

// Surface modes.
const (
	ModeClass     = "class"
	ModeAttribute = "attribute"
)

// DefaultAttribute is the attribute name used in attribute mode.
const DefaultAttribute = "data-theme"

// New returns the root adapter for the configured mode.
func New(mode, attribute string, root *Root) (ports.Surface, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeClass:
		return &ClassSurface{Root: root}, nil
	case ModeAttribute:
		if attribute == "" {
			attribute = DefaultAttribute
		}
		return &AttributeSurface{Root: root, Name: attribute}, nil
	default:
		return nil, fmt.Errorf("unknown surface mode %q (want class or attribute)", mode)
	}
}

// ClassSurface toggles a class named after the theme.
type ClassSurface struct {
	Root *Root
}

// Apply removes the other theme's class, then adds the effective one.
func (s *ClassSurface) Apply(theme appearance.Effective) {
	other := appearance.EffectiveDark
	if theme == appearance.EffectiveDark {
		other = appearance.EffectiveLight
	}
	s.Root.RemoveClass(string(other))
	if !s.Root.HasClass(string(theme)) {
		s.Root.AddClass(string(theme))
	}
}

// Clear removes both theme classes.
func (s *ClassSurface) Clear() {
	s.Root.RemoveClass(string(appearance.EffectiveLight))
	s.Root.RemoveClass(string(appearance.EffectiveDark))
}

// AttributeSurface sets a named attribute to the theme name.
type AttributeSurface struct {
	Root *Root
	Name string
}

// Apply sets the attribute, skipping the write when it already matches.
func (s *AttributeSurface) Apply(theme appearance.Effective) {
	if current, ok := s.Root.Attribute(s.Name); ok && current == string(theme) {
		return
	}
	s.Root.SetAttribute(s.Name, string(theme))
}

// Clear removes the attribute.
func (s *AttributeSurface) Clear() {
	s.Root.RemoveAttribute(s.Name)
}

// RendererSurface mirrors the effective theme onto a lipgloss renderer so
// AdaptiveColor values pick the matching variant.
type RendererSurface struct {
	renderer *lipgloss.Renderer
}

// NewRendererSurface wraps r, or the default renderer when r is nil.
func NewRendererSurface(r *lipgloss.Renderer) *RendererSurface {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &RendererSurface{renderer: r}
}

// Apply sets the renderer background.
func (s *RendererSurface) Apply(theme appearance.Effective) {
	s.renderer.SetHasDarkBackground(theme.Dark())
}

// Clear resets the renderer to lipgloss's own fallback, which assumes a dark
// background.
func (s *RendererSurface) Clear() {
	s.renderer.SetHasDarkBackground(true)
}

// Renderer returns the wrapped renderer.
func (s *RendererSurface) Renderer() *lipgloss.Renderer {
	return s.renderer
}

// Tee fans a theme out to several surfaces in order. Nil entries are skipped.
func Tee(surfaces ...ports.Surface) ports.Surface {
	out := make(tee, 0, len(surfaces))
	for _, s := range surfaces {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type tee []ports.Surface

func (t tee) Apply(theme appearance.Effective) {
	for _, s := range t {
		s.Apply(theme)
	}
}

func (t tee) Clear() {
	for _, s := range t {
		s.Clear()
	}
}
