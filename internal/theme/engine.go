package theme

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	"github.com/alexisbeaulieu97/quill/internal/logging"
	"github.com/alexisbeaulieu97/quill/internal/ports"
)

// Engine owns the (selection, preference) pair for a session and keeps the
// surface equal to the effective theme derived from it.
//
// Transitions are serialised: a SetTheme call and a preference notification
// never interleave. Listeners run inside the transition that produced the
// state they receive, so they must not call SetTheme synchronously.
type Engine struct {
	opts     Options
	env      Environment
	headless bool
	logger   ports.Logger
	ctx      context.Context

	// tx serialises transitions; mu guards the fields below for readers.
	tx sync.Mutex
	mu sync.RWMutex

	selection   appearance.Selection
	preference  appearance.Preference
	tracking    bool
	running     bool
	stopped     bool
	unsubscribe func()

	listeners    map[int]func(State)
	nextListener int
}

// NewEngine loads the initial state. The selection follows the same record
// rule as Bootstrap; the preference comes from one synchronous query when
// tracking is enabled. Nothing touches the surface until Start.
func NewEngine(opts Options, env Environment, logger ports.Logger) *Engine {
	opts = opts.withDefaults()
	e := &Engine{
		opts:      opts,
		env:       env,
		headless:  env.Headless(),
		logger:    logging.OrNoOp(logger).With("component", "theme.engine", "storage_key", opts.StorageKey),
		ctx:       context.Background(),
		listeners: make(map[int]func(State)),
	}

	e.selection = opts.Default
	e.preference = opts.Fallback
	if e.headless {
		e.logger.Debug(e.ctx, "no platform access, using configured default", "selection", string(opts.Default))
		return e
	}

	e.selection, _ = loadSelection(e.ctx, env.Storage, opts.StorageKey, opts.Default, e.logger)

	if opts.TrackSystem && env.Signal != nil {
		pref, err := safeQuery(env.Signal)
		if err != nil {
			e.logger.Warn(e.ctx, "system appearance unavailable, tracking disabled", "fallback", string(opts.Fallback), "error", err)
		} else {
			e.preference = pref
			e.tracking = true
		}
	}
	return e
}

// Start reconciles the surface with the current state, even if Bootstrap
// already applied it, and subscribes to preference changes when tracking.
// Calling Start twice, or after Stop, does nothing.
func (e *Engine) Start() {
	e.tx.Lock()
	e.mu.Lock()
	if e.running || e.stopped {
		e.mu.Unlock()
		e.tx.Unlock()
		return
	}
	e.running = true
	effective := e.effectiveLocked()
	tracking := e.tracking
	e.mu.Unlock()

	e.apply(effective)
	e.tx.Unlock()

	if !tracking {
		return
	}

	// Subscribe outside tx: the watcher calls back into onPreference, which
	// takes tx, and an unsubscribe that waits for the watcher must not hold it.
	unsubscribe, err := safeSubscribe(e.env.Signal, e.onPreference)
	if err != nil {
		e.logger.Warn(e.ctx, "system appearance changes unavailable, tracking disabled", "error", err)
		e.mu.Lock()
		e.tracking = false
		e.mu.Unlock()
		return
	}

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		unsubscribe()
		return
	}
	e.unsubscribe = unsubscribe
	e.mu.Unlock()
}

// Stop cancels the preference subscription. Once Stop returns the engine
// never writes to the surface again. It is safe to call more than once.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	e.running = false
	unsubscribe := e.unsubscribe
	e.unsubscribe = nil
	e.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}

	// Wait out a transition that read running before it was cleared.
	e.tx.Lock()
	e.tx.Unlock()
	e.logger.Debug(e.ctx, "theme engine stopped")
}

// Theme returns the current selection.
func (e *Engine) Theme() appearance.Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selection
}

// SystemTheme returns the current system preference, or the fallback when
// tracking is off.
func (e *Engine) SystemTheme() appearance.Preference {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.preference
}

// Effective returns the derived theme.
func (e *Engine) Effective() appearance.Effective {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.effectiveLocked()
}

// State returns a consistent snapshot.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stateLocked()
}

// SetTheme records an explicit selection, persists it, and re-applies the
// surface when the effective theme changed. Setting the current selection
// again is a no-op. A failed write is logged; the in-memory selection stays
// authoritative for the session. After Stop the selection is still recorded
// but the surface is left alone.
func (e *Engine) SetTheme(sel appearance.Selection) error {
	if !sel.Valid() {
		return fmt.Errorf("%w: %q", appearance.ErrInvalidSelection, sel)
	}

	e.tx.Lock()
	defer e.tx.Unlock()

	e.mu.Lock()
	if sel == e.selection {
		e.mu.Unlock()
		return nil
	}
	before := e.effectiveLocked()
	e.selection = sel
	after := e.effectiveLocked()
	state := e.stateLocked()
	running := e.running
	e.mu.Unlock()

	if !e.headless && e.env.Storage != nil {
		if err := safeSet(e.env.Storage, e.opts.StorageKey, string(sel)); err != nil {
			e.logger.Warn(e.ctx, "theme selection not persisted", "selection", string(sel), "error", err)
		}
	}

	if running && after != before {
		e.apply(after)
	}
	e.logger.Debug(e.ctx, "theme selected", "selection", string(sel), "effective", string(after))
	e.notify(state)
	return nil
}

// SetThemeString parses value and delegates to SetTheme.
func (e *Engine) SetThemeString(value string) error {
	sel, err := appearance.ParseSelection(value)
	if err != nil {
		return err
	}
	return e.SetTheme(sel)
}

// OnChange registers fn to receive every committed state change. The returned
// func removes it.
func (e *Engine) OnChange(fn func(State)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	e.mu.Lock()
	id := e.nextListener
	e.nextListener++
	e.listeners[id] = fn
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.listeners, id)
			e.mu.Unlock()
		})
	}
}

func (e *Engine) onPreference(pref appearance.Preference) {
	if !pref.Valid() {
		e.logger.Debug(e.ctx, "ignoring invalid preference notification", "preference", string(pref))
		return
	}

	e.tx.Lock()
	defer e.tx.Unlock()

	e.mu.Lock()
	if e.stopped || !e.tracking || pref == e.preference {
		e.mu.Unlock()
		return
	}
	before := e.effectiveLocked()
	e.preference = pref
	after := e.effectiveLocked()
	state := e.stateLocked()
	running := e.running
	e.mu.Unlock()

	if running && after != before {
		e.apply(after)
	}
	e.logger.Debug(e.ctx, "system appearance changed", "preference", string(pref), "effective", string(after))
	e.notify(state)
}

func (e *Engine) apply(theme appearance.Effective) {
	if e.env.Surface == nil {
		return
	}
	e.env.Surface.Apply(theme)
}

func (e *Engine) notify(state State) {
	e.mu.RLock()
	listeners := make([]func(State), 0, len(e.listeners))
	for _, fn := range e.listeners {
		listeners = append(listeners, fn)
	}
	e.mu.RUnlock()

	for _, fn := range listeners {
		fn(state)
	}
}

func (e *Engine) effectiveLocked() appearance.Effective {
	return appearance.Resolve(e.selection, e.preference)
}

func (e *Engine) stateLocked() State {
	return State{
		Selection:  e.selection,
		Preference: e.preference,
		Effective:  e.effectiveLocked(),
		Tracking:   e.tracking,
	}
}
