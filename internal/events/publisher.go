// Package events carries theme lifecycle events. Every event is written to
// the structured log, then handed to the handlers subscribed to its type.
package events

import (
	"context"
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/quill/internal/logging"
	"github.com/alexisbeaulieu97/quill/internal/ports"
)

// Bus is an in-process ports.EventPublisher. Handlers run on the publishing
// goroutine in subscription order, so they must return quickly.
type Bus struct {
	logger ports.Logger

	mu       sync.RWMutex
	handlers map[string][]handlerRef
	seq      uint64
}

type handlerRef struct {
	id uint64
	fn ports.EventHandler
}

// NewBus returns a bus that logs through logger. A nil logger discards.
func NewBus(logger ports.Logger) *Bus {
	return &Bus{
		logger:   logging.OrNoOp(logger),
		handlers: make(map[string][]handlerRef),
	}
}

// Publish logs event at info level and delivers it to its handlers.
func (b *Bus) Publish(ctx context.Context, event ports.DomainEvent) {
	if b == nil || event == nil {
		return
	}
	kind := event.EventType()
	b.logger.Info(ctx, "domain event", eventFields(event)...)

	for _, fn := range b.subscribers(kind) {
		if err := fn(ctx, event); err != nil {
			b.logger.Warn(ctx, "event handler failed", "event_type", kind, "error", err)
		}
	}
}

// Subscribe registers handler for eventType.
func (b *Bus) Subscribe(eventType string, handler ports.EventHandler) (unsubscribe func()) {
	if b == nil || handler == nil {
		return func() {}
	}

	b.mu.Lock()
	b.seq++
	id := b.seq
	b.handlers[eventType] = append(b.handlers[eventType], handlerRef{id: id, fn: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(eventType, id) })
	}
}

func (b *Bus) subscribers(kind string) []ports.EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	refs := b.handlers[kind]
	out := make([]ports.EventHandler, len(refs))
	for i, ref := range refs {
		out[i] = ref.fn
	}
	return out
}

func (b *Bus) remove(kind string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := make([]handlerRef, 0, len(b.handlers[kind]))
	for _, ref := range b.handlers[kind] {
		if ref.id != id {
			kept = append(kept, ref)
		}
	}
	if len(kept) == 0 {
		delete(b.handlers, kind)
		return
	}
	b.handlers[kind] = kept
}

// eventFields flattens a map payload into sorted key/value pairs; any other
// payload is logged under "payload".
func eventFields(event ports.DomainEvent) []interface{} {
	fields := []interface{}{"event_type", event.EventType()}
	payload := event.Payload()
	if payload == nil {
		return fields
	}
	m, ok := payload.(map[string]interface{})
	if !ok {
		return append(fields, "payload", payload)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, k, m[k])
	}
	return fields
}

var _ ports.EventPublisher = (*Bus)(nil)
