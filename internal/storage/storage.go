// Package storage persists the credential token and the cached display
// fields between runs.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// Keys of the durable store.
const (
	KeyAuthToken  = "authToken"
	KeyUserAvatar = "userAvatar"
	KeyUserName   = "userName"
)

// FileName is the default name of the store file inside the data dir.
const FileName = "storage.json"

// Store is a durable string key/value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(keys ...string) error
}

// FileStore keeps every key in one JSON object on disk. Writes go to a
// temp file that is renamed over the original.
type FileStore struct {
	fs   afero.Fs
	path string

	mu   sync.Mutex
	data map[string]string
}

// Open loads the store at path, creating an empty one when the file does
// not exist yet.
func Open(fs afero.Fs, path string) (*FileStore, error) {
	s := &FileStore{fs: fs, path: path, data: map[string]string{}}
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("storage.Open: read %s: %w", path, err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("storage.Open: parse %s: %w", path, err)
	}
	if s.data == nil {
		s.data = map[string]string{}
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value of key and whether it is present.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores value under key and flushes the file.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flush()
}

// Remove deletes keys and flushes the file. Missing keys are ignored.
func (s *FileStore) Remove(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return s.flush()
}

func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("storage: create dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, raw, 0600); err != nil {
		return fmt.Errorf("storage: write: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage: replace: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when signed out.
func Token(s Store) string {
	tok, _ := s.Get(KeyAuthToken)
	return tok
}

// TokenSource adapts s to the client's token supplier.
func TokenSource(s Store) func() string {
	return func() string { return Token(s) }
}
