package splash

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/quill/internal/events"
	"github.com/alexisbeaulieu97/quill/internal/ports"
	"github.com/alexisbeaulieu97/quill/internal/theme"
	"github.com/alexisbeaulieu97/quill/internal/waitlist"
)

// ThemeWatch relays theme.changed events to the program. Events are
// published from inside the engine's transition, so the relay never blocks:
// when the buffer is full the stale state is replaced by the newer one.
type ThemeWatch struct {
	states chan theme.State
	done   chan struct{}
	cancel func()
	once   sync.Once
	mu     sync.Mutex
}

// WatchTheme subscribes to theme.changed on bus.
func WatchTheme(bus ports.EventPublisher) *ThemeWatch {
	w := &ThemeWatch{
		states: make(chan theme.State, 1),
		done:   make(chan struct{}),
	}
	w.cancel = bus.Subscribe(ports.EventThemeChanged, w.handle)
	return w
}

func (w *ThemeWatch) handle(_ context.Context, event ports.DomainEvent) error {
	changed, ok := event.(events.ThemeChanged)
	if !ok {
		return fmt.Errorf("unexpected %s event %T", event.EventType(), event)
	}
	w.push(changed.State)
	return nil
}

func (w *ThemeWatch) push(state theme.State) {
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case w.states <- state:
		return
	default:
	}
	select {
	case <-w.states:
	default:
	}
	select {
	case w.states <- state:
	default:
	}
}

// Close unsubscribes and releases any pending wait.
func (w *ThemeWatch) Close() {
	w.once.Do(func() {
		w.cancel()
		close(w.done)
	})
}

// Wait returns a command that yields the next ThemeChangedMsg, or nil once
// the watch is closed.
func (w *ThemeWatch) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case state := <-w.states:
			return ThemeChangedMsg{State: state}
		case <-w.done:
			return nil
		}
	}
}

func submitCmd(submitter waitlist.Submitter, email string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return SubmitDoneMsg{Email: email, Err: submitter.Submit(ctx, email)}
	}
}
