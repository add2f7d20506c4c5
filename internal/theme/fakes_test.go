package theme

import (
	"context"
	"errors"
	"sync"

	"github.com/alexisbeaulieu97/quill/internal/domain/appearance"
	"github.com/alexisbeaulieu97/quill/internal/ports"
)

var errNoSignal = errors.New("appearance signal unsupported")

// fakeSignal answers Query from a fixed value and lets tests fire change
// events synchronously.
type fakeSignal struct {
	mu           sync.Mutex
	pref         appearance.Preference
	queryErr     error
	subscribeErr error
	queries      int
	subscribers  map[int]func(appearance.Preference)
	everSeen     []func(appearance.Preference)
	next         int
	unsubscribes int
}

func newFakeSignal(pref appearance.Preference) *fakeSignal {
	return &fakeSignal{pref: pref, subscribers: make(map[int]func(appearance.Preference))}
}

func (s *fakeSignal) Query() (appearance.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	if s.queryErr != nil {
		return "", s.queryErr
	}
	return s.pref, nil
}

func (s *fakeSignal) Subscribe(fn func(appearance.Preference)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribeErr != nil {
		return nil, s.subscribeErr
	}
	id := s.next
	s.next++
	s.subscribers[id] = fn
	s.everSeen = append(s.everSeen, fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			s.unsubscribes++
		}
	}, nil
}

// emit changes the platform preference and notifies current subscribers.
func (s *fakeSignal) emit(pref appearance.Preference) {
	s.mu.Lock()
	s.pref = pref
	fns := make([]func(appearance.Preference), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(pref)
	}
}

// emitLate delivers an event to every handler ever registered, including
// unsubscribed ones, the way a platform callback already in flight would.
func (s *fakeSignal) emitLate(pref appearance.Preference) {
	s.mu.Lock()
	fns := append([]func(appearance.Preference){}, s.everSeen...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn(pref)
	}
}

func (s *fakeSignal) Queries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries
}

func (s *fakeSignal) Unsubscribes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribes
}

func (s *fakeSignal) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// panicStorage blows up on every call.
type panicStorage struct{}

func (panicStorage) Get(string) (string, bool, error) { panic("storage disabled") }
func (panicStorage) Set(string, string) error         { panic("storage disabled") }

// recordingLogger keeps warn messages for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Debug(context.Context, string, ...interface{}) {}
func (l *recordingLogger) Info(context.Context, string, ...interface{})  {}
func (l *recordingLogger) Error(context.Context, string, ...interface{}) {}

func (l *recordingLogger) Warn(_ context.Context, msg string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) With(...interface{}) ports.Logger { return l }

func (l *recordingLogger) Warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warns...)
}
