package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/Mavwarf/mailshell/internal/paths"
)

// FileStore implements Store as one JSON object on disk. Every Set rewrites
// the file atomically.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a FileStore that reads and writes the given file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// load reads the whole file. A missing file is an empty store; a corrupt
// file is an error so that Set does not silently discard it.
func (f *FileStore) load() (map[string]string, error) {
	state := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return state, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("prefs: parsing %s: %w", f.path, err)
	}
	return state, nil
}

func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := state[key]
	return v, ok, nil
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.load()
	if err != nil {
		return err
	}
	state[key] = value

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs: marshal: %w", err)
	}
	if err := paths.AtomicWrite(f.path, data); err != nil {
		return fmt.Errorf("prefs: write %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) Keys() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	return keys, nil
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Close() error { return nil }
