// Package filestore persists session keys to local JSON files for the CLI and the file session backend.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/turnos-app/turnos/internal/ports"
)

// KV is a ports.KeyValueStore backed by a single JSON object on disk.
// Every write rewrites the file atomically with owner-only permissions.
type KV struct {
	path string
	mu   sync.Mutex
}

var _ ports.KeyValueStore = (*KV)(nil)

// New returns a KV stored at path. The file is created on first write.
func New(path string) (*KV, error) {
	if path == "" {
		return nil, errors.New("filestore: path is required")
	}
	return &KV{path: path}, nil
}

// Path returns the backing file location.
func (k *KV) Path() string { return k.path }

func (k *KV) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	items, err := k.load()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (k *KV) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	items, err := k.load()
	if err != nil {
		// Unreadable state is replaced rather than blocking a fresh login.
		items = make(map[string]string)
	}
	items[key] = value
	return k.save(items)
}

func (k *KV) Delete(_ context.Context, keys ...string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	items, err := k.load()
	if err != nil {
		return k.remove()
	}
	for _, key := range keys {
		delete(items, key)
	}
	if len(items) == 0 {
		return k.remove()
	}
	return k.save(items)
}

func (k *KV) load() (map[string]string, error) {
	data, err := os.ReadFile(k.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	items := make(map[string]string)
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return items, nil
}

func (k *KV) save(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}
	dir := filepath.Dir(k.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, k.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (k *KV) remove() error {
	if err := os.Remove(k.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
