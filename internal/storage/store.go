// Package storage provides the key-value persistence port used by the ledger
// and the profile store, together with its backends.
//
// Keys:
//   - profile:    JSON object (models.Profile)
//   - invoices:   JSON array (models.Invoice)
//   - nextNumber: stringified positive integer
//   - theme:      "light" or "dark", used by terminal rendering only
//
// Backends:
//   - memory: in-process map, for tests and throwaway sessions
//   - file:   a single JSON document on disk, replaced atomically on every save
//   - sqlite: a kv_entries table managed through gorm
//
// Save is all-or-nothing for every backend: either every entry passed in one
// call is written, or none is.
package storage

import (
	"context"
	"fmt"
)

// Well-known keys.
const (
	KeyProfile    = "profile"
	KeyInvoices   = "invoices"
	KeyNextNumber = "nextNumber"
	KeyTheme      = "theme"
)

// Backend names accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Entry is a single key/value pair written by Save.
type Entry struct {
	Key   string
	Value []byte
}

// Store is the persistence port.
type Store interface {
	// Load returns the value stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save writes all entries atomically.
	Save(ctx context.Context, entries ...Entry) error

	// Close releases the backend.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Driver string
	Path   string
}

// Open creates the backend named by opts.Driver.
func Open(opts Options) (Store, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile, "":
		f, err := OpenFile(opts.Path)
		if err != nil {
			return nil, err
		}
		return f, nil
	case DriverSQLite:
		s, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

// dedupe keeps the last entry for each key, preserving first-seen order.
func dedupe(entries []Entry) []Entry {
	idx := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if i, ok := idx[e.Key]; ok {
			out[i] = e
			continue
		}
		idx[e.Key] = len(out)
		out = append(out, e)
	}
	return out
}
