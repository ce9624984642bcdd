package storage

import (
	"context"
	"errors"
)

// ErrClosed is returned by a Memory store after Close.
var ErrClosed = errors.New("store is closed")

// Memory is an in-process Store. FailSave, when set, makes every Save fail
// without writing, which lets callers exercise their rollback paths.
type Memory struct {
	data     map[string][]byte
	closed   bool
	FailSave error
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	if m.closed {
		return nil, wrap("Load", key, ErrClosed)
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Save(_ context.Context, entries ...Entry) error {
	if m.closed {
		return wrap("Save", "", ErrClosed)
	}
	if m.FailSave != nil {
		return wrap("Save", "", m.FailSave)
	}
	for _, e := range entries {
		m.data[e.Key] = append([]byte(nil), e.Value...)
	}
	return nil
}

func (m *Memory) Close() error {
	m.closed = true
	return nil
}
