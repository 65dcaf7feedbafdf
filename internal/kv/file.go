package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File persists each namespace as one JSON file under a data directory,
// overwriting the file on every Set.
type File struct {
	mu  sync.Mutex
	dir string
}

// NewFile creates the data directory if needed and returns a file-backed
// store rooted there.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(name string) string {
	// Namespace names are fixed store identifiers, but keep path traversal
	// out anyway.
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	return filepath.Join(f.dir, name+".json")
}

func (f *File) Get(_ context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read namespace %s: %w", name, err)
	}
	return data, nil
}

func (f *File) Set(_ context.Context, name string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.WriteFile(f.path(name), value, 0o644); err != nil {
		return fmt.Errorf("write namespace %s: %w", name, err)
	}
	return nil
}

func (f *File) Remove(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove namespace %s: %w", name, err)
	}
	return nil
}
