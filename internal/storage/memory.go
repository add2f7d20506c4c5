package storage

import (
	"sync"

	"github.com/alexisbeaulieu97/quill/internal/ports"
	qerrors "github.com/alexisbeaulieu97/quill/pkg/errors"
)

// MemoryStore is an in-process store used for ephemeral runs and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string]string
	getErr   error
	setErr   error
	getCalls int
	setCalls int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.getErr != nil {
		return "", false, qerrors.NewStorageError("read", key, s.getErr)
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	if s.setErr != nil {
		return qerrors.NewStorageError("write", key, s.setErr)
	}
	s.values[key] = value
	return nil
}

// FailReads makes every Get return err. Pass nil to recover.
func (s *MemoryStore) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = err
}

// FailWrites makes every Set return err. Pass nil to recover.
func (s *MemoryStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setErr = err
}

// Writes returns the number of Set calls, failed ones included.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.setCalls
}

// Reads returns the number of Get calls.
func (s *MemoryStore) Reads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getCalls
}

var _ ports.Storage = (*MemoryStore)(nil)
