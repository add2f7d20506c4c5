// Package storage provides the user-scoped key/value stores that remember the
// theme selection between runs.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/quill/internal/ports"
	qerrors "github.com/alexisbeaulieu97/quill/pkg/errors"
)

// CorruptSuffix is appended to a preferences file that could not be parsed
// when Set moves it aside.
const CorruptSuffix = ".corrupt"

var errCorrupt = errors.New("corrupt preferences file")

// FileStore keeps string values in a flat YAML map on disk. Every Set rewrites
// the whole file atomically so a crash never leaves a half-written record.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore returns a store backed by path. The file and its directory are
// created lazily on the first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value stored under key. A missing file reads as empty.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, err := s.load()
	if err != nil {
		return "", false, qerrors.NewStorageError("read", key, err)
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key, keeping every other key in the file. A file that
// does not parse is moved aside to path+CorruptSuffix and replaced.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	switch {
	case errors.Is(err, errCorrupt):
		// An unparseable file holds no usable record. Keep a copy if possible;
		// the rewrite below replaces the original either way.
		_ = os.Rename(s.path, s.path+CorruptSuffix)
		values = nil
	case err != nil:
		return qerrors.NewStorageError("read", key, err)
	}
	if values == nil {
		values = make(map[string]string)
	}
	values[key] = value

	if err := s.save(values); err != nil {
		return qerrors.NewStorageError("write", key, err)
	}
	return nil
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", errCorrupt, s.path, err)
	}
	return values, nil
}

func (s *FileStore) save(values map[string]string) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, FileName+".*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename temp preferences: %w", err)
	}
	return nil
}

var _ ports.Storage = (*FileStore)(nil)
