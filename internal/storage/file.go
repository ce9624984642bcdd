package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
)

// File keeps every key in one JSON document on disk. The document is
// rewritten through a temporary file and a rename, so a crash mid-save
// leaves the previous document intact.
type File struct {
	path string
	data map[string]string
}

// OpenFile loads the store at path, creating its directory if needed.
// A missing file is an empty store.
func OpenFile(path string) (*File, error) {
	const op = "Open"

	if path == "" {
		return nil, wrap(op, "", errors.New("file store path is empty"))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, wrap(op, "", err)
	}

	f := &File{path: path, data: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, wrap(op, "", err)
	}
	if len(raw) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(raw, &f.data); err != nil {
		return nil, wrap(op, "", fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err))
	}
	return f, nil
}

// Path returns the backing file location.
func (f *File) Path() string {
	return f.path
}

func (f *File) Load(_ context.Context, key string) ([]byte, error) {
	v, ok := f.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (f *File) Save(_ context.Context, entries ...Entry) error {
	const op = "Save"

	next := maps.Clone(f.data)
	for _, e := range entries {
		next[e.Key] = string(e.Value)
	}
	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return wrap(op, "", err)
	}
	if err := writeAtomic(f.path, raw); err != nil {
		return wrap(op, "", err)
	}
	f.data = next
	return nil
}

func (f *File) Close() error {
	return nil
}

func writeAtomic(path string, raw []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	cleanup := func() { _ = os.Remove(name) }

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(name, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
