package events

import (
	"context"

	"github.com/alexisbeaulieu97/quill/internal/ports"
	"github.com/alexisbeaulieu97/quill/internal/theme"
)

// ThemeBootstrapped records what the early pass applied.
type ThemeBootstrapped struct {
	Result theme.BootstrapResult
}

func (e ThemeBootstrapped) EventType() string { return ports.EventThemeBootstrapped }

func (e ThemeBootstrapped) Payload() interface{} {
	return map[string]interface{}{
		"selection":  string(e.Result.Selection),
		"preference": string(e.Result.Preference),
		"effective":  string(e.Result.Effective),
		"degraded":   e.Result.Degraded,
	}
}

// ThemeChanged carries a state committed by the engine.
type ThemeChanged struct {
	State theme.State
}

func (e ThemeChanged) EventType() string { return ports.EventThemeChanged }

func (e ThemeChanged) Payload() interface{} {
	return map[string]interface{}{
		"selection":  string(e.State.Selection),
		"preference": string(e.State.Preference),
		"effective":  string(e.State.Effective),
		"tracking":   e.State.Tracking,
	}
}

// Relay publishes a ThemeChanged event for every state source commits. The
// returned func stops relaying.
func Relay(ctx context.Context, publisher ports.EventPublisher, source interface {
	OnChange(func(theme.State)) func()
}) (cancel func()) {
	if publisher == nil || source == nil {
		return func() {}
	}
	return source.OnChange(func(state theme.State) {
		publisher.Publish(ctx, ThemeChanged{State: state})
	})
}
