package platform

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	qerrors "github.com/alexisbeaulieu97/quill/pkg/errors"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

type stubProbe struct {
	mu   sync.Mutex
	name string
	pref appearance.Preference
	ok   bool
	err  error
}

func (p *stubProbe) Name() string { return p.name }

func (p *stubProbe) Appearance() (appearance.Preference, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pref, p.ok, p.err
}

func (p *stubProbe) set(pref appearance.Preference) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pref, p.ok = pref, true
}

func TestEnvProbe(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		value   string
		want    appearance.Preference
		ok      bool
		wantErr bool
	}{
		{name: "unset", value: ""},
		{name: "auto defers", value: "auto"},
		{name: "dark", value: "dark", want: appearance.PreferenceDark, ok: true},
		{name: "case insensitive", value: " Light ", want: appearance.PreferenceLight, ok: true},
		{name: "garbage", value: "sepia", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			probe := EnvProbe{Getenv: envOf(map[string]string{EnvOverride: tc.value})}
			pref, ok, err := probe.Appearance()
			if tc.wantErr {
				var signalErr *qerrors.SignalError
				require.ErrorAs(t, err, &signalErr)
				require.Equal(t, "env", signalErr.Probe)
				require.False(t, ok)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, pref)
		})
	}
}

func TestColorFGBGProbe(t *testing.T) {
	t.Parallel()

	pref, ok, err := ColorFGBGProbe{Getenv: envOf(map[string]string{"COLORFGBG": "15;0"})}.Appearance()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, appearance.PreferenceDark, pref)

	pref, ok, err = ColorFGBGProbe{Getenv: envOf(map[string]string{"COLORFGBG": "0;default;15"})}.Appearance()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, appearance.PreferenceLight, pref)

	_, ok, err = ColorFGBGProbe{Getenv: envOf(nil)}.Appearance()
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = ColorFGBGProbe{Getenv: envOf(map[string]string{"COLORFGBG": "15;default"})}.Appearance()
	require.Error(t, err)
	require.False(t, ok)
}

func TestOSProbeDarwin(t *testing.T) {
	t.Parallel()

	dark := OSProbe{GOOS: "darwin", Run: func(context.Context, string, ...string) ([]byte, error) {
		return []byte("Dark\n"), nil
	}}
	pref, ok, err := dark.Appearance()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, appearance.PreferenceDark, pref)

	light := OSProbe{GOOS: "darwin", Run: func(context.Context, string, ...string) ([]byte, error) {
		return nil, &exec.ExitError{}
	}}
	pref, ok, err = light.Appearance()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, appearance.PreferenceLight, pref)
}

func TestOSProbeGnomeFallsBackToGTKTheme(t *testing.T) {
	t.Parallel()

	var calls [][]string
	probe := OSProbe{GOOS: "linux", Run: func(_ context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, append([]string{name}, args...))
		if args[len(args)-1] == "color-scheme" {
			return []byte("'default'\n"), nil
		}
		return []byte("'Adwaita-dark'\n"), nil
	}}

	pref, ok, err := probe.Appearance()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, appearance.PreferenceDark, pref)
	require.Len(t, calls, 2)
}

func TestOSProbeGnomeColorScheme(t *testing.T) {
	t.Parallel()

	probe := OSProbe{GOOS: "linux", Run: func(context.Context, string, ...string) ([]byte, error) {
		return []byte("'prefer-light'\n"), nil
	}}
	pref, ok, err := probe.Appearance()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, appearance.PreferenceLight, pref)
}

func TestOSProbeTimesOut(t *testing.T) {
	t.Parallel()

	probe := OSProbe{GOOS: "darwin", Timeout: 10 * time.Millisecond, Run: func(ctx context.Context, _ string, _ ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	_, ok, err := probe.Appearance()
	require.False(t, ok)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOSProbeUnknownPlatformHasNoOpinion(t *testing.T) {
	t.Parallel()

	_, ok, err := OSProbe{GOOS: "plan9"}.Appearance()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTerminalProbeIgnoresNonTTY(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	require.False(t, Interactive(f))
	require.False(t, Interactive(nil))
	_, ok, err := TerminalProbe{File: f}.Appearance()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSignalQueryFirstConclusiveWins(t *testing.T) {
	t.Parallel()

	signal := &Signal{Probes: []Probe{
		&stubProbe{name: "broken", err: errors.New("boom")},
		&stubProbe{name: "silent"},
		&stubProbe{name: "answer", pref: appearance.PreferenceDark, ok: true},
		&stubProbe{name: "ignored", pref: appearance.PreferenceLight, ok: true},
	}}

	pref, err := signal.Query()
	require.NoError(t, err)
	require.Equal(t, appearance.PreferenceDark, pref)
}

func TestSignalQueryUnavailable(t *testing.T) {
	t.Parallel()

	_, err := (&Signal{Probes: []Probe{&stubProbe{name: "silent"}}}).Query()
	require.ErrorIs(t, err, ErrSignalUnavailable)
}

func TestSignalSubscribeReportsChangesOnly(t *testing.T) {
	t.Parallel()

	probe := &stubProbe{name: "live", pref: appearance.PreferenceLight, ok: true}
	ticks := make(chan time.Time)
	stopped := make(chan struct{})
	signal := &Signal{
		Probes:   []Probe{probe},
		Interval: time.Second,
		newTicker: func(time.Duration) (<-chan time.Time, func()) {
			return ticks, func() { close(stopped) }
		},
	}

	got := make(chan appearance.Preference, 4)
	unsubscribe, err := signal.Subscribe(func(p appearance.Preference) { got <- p })
	require.NoError(t, err)

	ticks <- time.Now()
	probe.set(appearance.PreferenceDark)
	ticks <- time.Now()
	ticks <- time.Now()

	select {
	case p := <-got:
		require.Equal(t, appearance.PreferenceDark, p)
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	unsubscribe()
	unsubscribe()
	<-stopped
	require.Empty(t, got)
}

func TestSignalSubscribeBaselineIsQueryAnswer(t *testing.T) {
	t.Parallel()

	live := &stubProbe{name: "os"}
	terminal := &stubProbe{name: "terminal", pref: appearance.PreferenceDark, ok: true}
	ticks := make(chan time.Time)
	signal := &Signal{
		Probes:     []Probe{live, terminal},
		LiveProbes: []Probe{live},
		Interval:   time.Second,
		newTicker: func(time.Duration) (<-chan time.Time, func()) {
			return ticks, func() {}
		},
	}

	pref, err := signal.Query()
	require.NoError(t, err)
	require.Equal(t, appearance.PreferenceDark, pref)

	got := make(chan appearance.Preference, 4)
	unsubscribe, err := signal.Subscribe(func(p appearance.Preference) { got <- p })
	require.NoError(t, err)

	// Live probes agreeing with the queried answer are not a change.
	ticks <- time.Now()
	live.set(appearance.PreferenceDark)
	ticks <- time.Now()
	live.set(appearance.PreferenceLight)
	ticks <- time.Now()

	select {
	case p := <-got:
		require.Equal(t, appearance.PreferenceLight, p)
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	unsubscribe()
	require.Empty(t, got)
}

func TestSignalSubscribeUnsupportedWithoutInterval(t *testing.T) {
	t.Parallel()

	_, err := (&Signal{Probes: []Probe{&stubProbe{name: "x"}}}).Subscribe(func(appearance.Preference) {})
	require.ErrorIs(t, err, ErrSubscribeUnsupported)
}

func TestNewSignalKeepsTerminalOutOfLiveProbes(t *testing.T) {
	t.Parallel()

	signal := NewSignal(DefaultPollInterval, nil, nil)
	require.Len(t, signal.Probes, 4)
	require.Len(t, signal.LiveProbes, 3)
	for i, p := range signal.LiveProbes {
		require.NotEqual(t, "terminal", p.Name())
		require.Equal(t, signal.Probes[i].Name(), p.Name())
	}
}
