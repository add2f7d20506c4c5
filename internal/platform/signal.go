package platform

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	"github.com/alexisbeaulieu97/quill/internal/logging"
	"github.com/alexisbeaulieu97/quill/internal/ports"
)

var (
	// ErrSignalUnavailable is returned by Query when no probe has an answer.
	ErrSignalUnavailable = errors.New("system appearance unavailable")
	// ErrSubscribeUnsupported is returned by Subscribe when polling is disabled.
	ErrSubscribeUnsupported = errors.New("system appearance change notifications unsupported")
)

// DefaultPollInterval is how often live probes are re-run.
const DefaultPollInterval = 5 * time.Second

// Signal implements ports.PreferenceSignal over a chain of probes. Query walks
// Probes in order. Subscribe polls LiveProbes (Probes when nil) every Interval
// and reports only changes.
type Signal struct {
	Probes     []Probe
	LiveProbes []Probe
	Interval   time.Duration
	Logger     ports.Logger

	newTicker func(time.Duration) (<-chan time.Time, func())
}

// NewSignal builds the standard probe chain. The terminal probe runs only
// for the initial query; the live watcher polls the rest of the chain in the
// same order, so both agree whenever a non-terminal probe has an answer.
func NewSignal(interval time.Duration, terminal *os.File, logger ports.Logger) *Signal {
	env := EnvProbe{}
	fgbg := ColorFGBGProbe{}
	osProbe := OSProbe{}
	return &Signal{
		Probes:     []Probe{env, fgbg, osProbe, TerminalProbe{File: terminal}},
		LiveProbes: []Probe{env, fgbg, osProbe},
		Interval:   interval,
		Logger:     logger,
	}
}

// Query returns the first conclusive probe answer.
func (s *Signal) Query() (appearance.Preference, error) {
	if pref, ok := s.query(s.Probes); ok {
		return pref, nil
	}
	return "", ErrSignalUnavailable
}

func (s *Signal) query(probes []Probe) (appearance.Preference, bool) {
	logger := logging.OrNoOp(s.Logger)
	for _, probe := range probes {
		pref, ok, err := probe.Appearance()
		if err != nil {
			logger.Debug(context.Background(), "appearance probe failed", "probe", probe.Name(), "error", err)
			continue
		}
		if ok {
			return pref, true
		}
	}
	return "", false
}

// Subscribe starts a watcher goroutine that calls fn whenever the polled
// preference changes. The baseline is the full-chain answer Query gives, so
// the first notification is a change from what the caller already holds. The
// returned func stops the watcher and waits for it; fn is never called after
// it returns.
func (s *Signal) Subscribe(fn func(appearance.Preference)) (func(), error) {
	live := s.LiveProbes
	if live == nil {
		live = s.Probes
	}
	if s.Interval <= 0 || len(live) == 0 || fn == nil {
		return nil, ErrSubscribeUnsupported
	}

	newTicker := s.newTicker
	if newTicker == nil {
		newTicker = func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		}
	}

	last, _ := s.query(s.Probes)
	ticks, stopTicker := newTicker(s.Interval)
	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer stopTicker()
		for {
			select {
			case <-done:
				return
			case <-ticks:
				pref, ok := s.query(live)
				if !ok || pref == last {
					continue
				}
				last = pref
				select {
				case <-done:
					return
				default:
				}
				fn(pref)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}, nil
}

var _ ports.PreferenceSignal = (*Signal)(nil)
