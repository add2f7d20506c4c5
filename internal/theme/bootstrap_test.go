package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	"github.com/alexisbeaulieu97/quill/internal/ports"
	"github.com/alexisbeaulieu97/quill/internal/storage"
	"github.com/alexisbeaulieu97/quill/internal/surface"
)

type panicSurface struct{}

func (panicSurface) Apply(appearance.Effective) { panic("root detached") }
func (panicSurface) Clear()                     {}

func TestBootstrapAppliesStoredSelectionAndMarker(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(DefaultStorageKey, "dark"))
	signal := newFakeSignal(appearance.PreferenceLight)
	root := surface.NewRoot()
	root.AddClass("light")

	result := Bootstrap(context.Background(), BootstrapOptions{}, Environment{
		Storage: store,
		Signal:  signal,
		Surface: &surface.ClassSurface{Root: root},
	}, root, nil)

	require.Equal(t, BootstrapResult{Selection: appearance.SelectionDark, Effective: appearance.EffectiveDark}, result)
	require.Equal(t, []string{"dark"}, root.Classes())
	require.Equal(t, 0, signal.Queries(), "explicit selection must not query the platform")

	marker, ok := root.Marker(MarkerID)
	require.True(t, ok)
	require.Equal(t, ports.Marker{ID: "theme-bootstrap", TestID: "theme-bootstrap-marker", Hidden: true}, marker)
}

func TestBootstrapQueriesSignalForSystem(t *testing.T) {
	t.Parallel()

	signal := newFakeSignal(appearance.PreferenceDark)
	root := surface.NewRoot()

	result := Bootstrap(context.Background(), BootstrapOptions{Default: appearance.SelectionSystem}, Environment{
		Storage: storage.NewMemoryStore(),
		Signal:  signal,
		Surface: &surface.AttributeSurface{Root: root, Name: "data-theme"},
	}, root, nil)

	require.Equal(t, 1, signal.Queries())
	require.Equal(t, appearance.PreferenceDark, result.Preference)
	v, ok := root.Attribute("data-theme")
	require.True(t, ok)
	require.Equal(t, "dark", v)
}

func TestBootstrapInvalidRecordUsesDefault(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("app-theme", "solarized"))
	root := surface.NewRoot()

	result := Bootstrap(context.Background(), BootstrapOptions{Default: appearance.SelectionLight, StorageKey: "app-theme"}, Environment{
		Storage: store,
		Surface: &surface.ClassSurface{Root: root},
	}, root, nil)

	require.Equal(t, appearance.SelectionLight, result.Selection)
	require.False(t, result.Degraded)
	require.True(t, root.HasClass("light"))
}

func TestBootstrapStorageFailureDegradesWithWarning(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	store.FailReads(errors.New("SecurityError"))
	logger := &recordingLogger{}
	root := surface.NewRoot()

	result := Bootstrap(context.Background(), BootstrapOptions{Default: appearance.SelectionDark}, Environment{
		Storage: store,
		Surface: &surface.ClassSurface{Root: root},
	}, root, logger)

	require.True(t, result.Degraded)
	require.Equal(t, appearance.EffectiveDark, result.Effective)
	require.True(t, root.HasClass("dark"))
	require.NotEmpty(t, logger.Warnings())
}

func TestBootstrapSignalFailureUsesFallback(t *testing.T) {
	t.Parallel()

	signal := newFakeSignal(appearance.PreferenceDark)
	signal.queryErr = errNoSignal
	root := surface.NewRoot()

	result := Bootstrap(context.Background(), BootstrapOptions{Fallback: appearance.PreferenceLight}, Environment{
		Signal:  signal,
		Surface: &surface.ClassSurface{Root: root},
	}, root, nil)

	require.True(t, result.Degraded)
	require.Equal(t, appearance.EffectiveLight, result.Effective)
	require.True(t, root.HasClass("light"))
}

func TestBootstrapNeverPanics(t *testing.T) {
	t.Parallel()

	root := surface.NewRoot()
	logger := &recordingLogger{}

	var result BootstrapResult
	require.NotPanics(t, func() {
		result = Bootstrap(context.Background(), BootstrapOptions{Default: appearance.SelectionDark}, Environment{
			Storage: panicStorage{},
			Surface: panicSurface{},
		}, root, logger)
	})

	require.Equal(t, appearance.EffectiveDark, result.Effective)
	require.True(t, result.Degraded)
	_, ok := root.Marker(MarkerID)
	require.True(t, ok)
	require.Contains(t, logger.Warnings(), "surface rejected theme")
}

func TestBootstrapWithoutPortsIsDeterministic(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() {
		result := Bootstrap(context.Background(), BootstrapOptions{Default: appearance.SelectionSystem, Fallback: appearance.PreferenceDark}, Environment{}, nil, nil)
		require.Equal(t, appearance.EffectiveDark, result.Effective)
	})
}

func TestBootstrapAndEngineAgree(t *testing.T) {
	t.Parallel()

	for _, record := range []string{"", "light", "dark", "system", "bogus"} {
		for _, pref := range []appearance.Preference{appearance.PreferenceLight, appearance.PreferenceDark} {
			store := storage.NewMemoryStore()
			if record != "" {
				require.NoError(t, store.Set(DefaultStorageKey, record))
			}
			env := Environment{Storage: store, Signal: newFakeSignal(pref)}
			opts := DefaultOptions()

			early := Bootstrap(context.Background(), opts.BootstrapOptions(), env, nil, nil)
			engine := NewEngine(opts, env, nil)
			require.Equal(t, early.Effective, engine.Effective(), "record=%q pref=%s", record, pref)
			require.Equal(t, early.Selection, engine.Theme())
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultOptions().Validate())
	require.NoError(t, Options{}.Validate())
	require.ErrorIs(t, Options{Default: "auto"}.Validate(), appearance.ErrInvalidSelection)
	require.ErrorIs(t, Options{Fallback: "system"}.Validate(), appearance.ErrInvalidPreference)
	require.Error(t, Options{StorageKey: "   "}.Validate())
}

func TestZeroOptionsFillDefaultsButKeepTrackingOff(t *testing.T) {
	t.Parallel()

	got := Options{}.withDefaults()
	want := DefaultOptions()
	want.TrackSystem = false
	require.Equal(t, want, got)

	signal := newFakeSignal(appearance.PreferenceDark)
	engine := NewEngine(Options{}, Environment{Storage: storage.NewMemoryStore(), Signal: signal}, nil)
	require.Equal(t, 0, signal.Queries())
	require.False(t, engine.State().Tracking)
}
