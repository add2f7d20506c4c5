package surface

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	"github.com/alexisbeaulieu97/quill/internal/ports"
)

func TestClassSurfaceRemovesConflictingClass(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	root.AddClass("antialiased")
	root.AddClass("light")

	s, err := New(ModeClass, "", root)
	require.NoError(t, err)

	s.Apply(appearance.EffectiveDark)
	require.Equal(t, []string{"antialiased", "dark"}, root.Classes())

	got, ok := root.Effective("")
	require.True(t, ok)
	require.Equal(t, appearance.EffectiveDark, got)

	s.Clear()
	require.Equal(t, []string{"antialiased"}, root.Classes())
	_, ok = root.Effective("")
	require.False(t, ok)
}

func TestClassSurfaceApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	s := &ClassSurface{Root: root}
	s.Apply(appearance.EffectiveLight)
	writes := root.Writes()

	s.Apply(appearance.EffectiveLight)
	require.Equal(t, writes, root.Writes())
}

func TestAttributeSurfaceSetsNamedAttribute(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	s, err := New(ModeAttribute, "data-mode", root)
	require.NoError(t, err)

	s.Apply(appearance.EffectiveLight)
	v, ok := root.Attribute("data-mode")
	require.True(t, ok)
	require.Equal(t, "light", v)

	s.Apply(appearance.EffectiveDark)
	got, ok := root.Effective("data-mode")
	require.True(t, ok)
	require.Equal(t, appearance.EffectiveDark, got)
	require.Empty(t, root.Classes())

	writes := root.Writes()
	s.Apply(appearance.EffectiveDark)
	require.Equal(t, writes, root.Writes())

	s.Clear()
	_, ok = root.Attribute("data-mode")
	require.False(t, ok)
}

func TestAttributeModeDefaultsName(t *testing.T) {
	t.Parallel()

	s, err := New(ModeAttribute, "", NewRoot())
	require.NoError(t, err)
	require.Equal(t, DefaultAttribute, s.(*AttributeSurface).Name)
}

func TestNewRejectsUnknownMode(t *testing.T) {
	t.Parallel()

	_, err := New("inline-style", "", NewRoot())
	require.Error(t, err)
}

func TestEffectiveRejectsConflictingClasses(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	root.AddClass("light")
	root.AddClass("dark")
	_, ok := root.Effective("")
	require.False(t, ok)
}

func TestRendererSurfaceTogglesBackground(t *testing.T) {
	t.Parallel()

	r := lipgloss.NewRenderer(io.Discard)
	s := NewRendererSurface(r)

	s.Apply(appearance.EffectiveLight)
	require.False(t, r.HasDarkBackground())

	s.Apply(appearance.EffectiveDark)
	require.True(t, r.HasDarkBackground())
	require.Same(t, r, s.Renderer())
}

func TestTeeAppliesToEverySurface(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	r := lipgloss.NewRenderer(io.Discard)
	s := Tee(&ClassSurface{Root: root}, nil, NewRendererSurface(r))

	s.Apply(appearance.EffectiveLight)
	require.True(t, root.HasClass("light"))
	require.False(t, r.HasDarkBackground())

	s.Clear()
	require.False(t, root.HasClass("light"))
}

func TestRootMarkers(t *testing.T) {
	t.Parallel()

	root := NewRoot()
	root.AppendMarker(ports.Marker{ID: "theme-bootstrap", TestID: "theme-bootstrap-marker", Hidden: true})

	m, ok := root.Marker("theme-bootstrap")
	require.True(t, ok)
	require.True(t, m.Hidden)
	_, ok = root.Marker("missing")
	require.False(t, ok)
}
