// Package flags persists named boolean UI flags across process restarts.
//
// Values are serialized as the strings "true" and "false". A flag reads as
// true unless its stored value is literally "false", so a missing key, an
// unreadable store and a garbled value all fall back to true.
package flags

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// RotationWarning is the flag recording whether the rotation warning banner
// should still be shown.
const RotationWarning = "rotation_warning"

const (
	serializedTrue  = "true"
	serializedFalse = "false"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown flag store backend")

// Backend identifies a storage implementation
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// KV is the raw string storage a Store is layered on.
type KV interface {
	Get(name string) (value string, found bool, err error)
	Set(name, value string) error
	Delete(name string) error
	Close() error
}

// Store reads and writes boolean flags. Errors never escape Read or Write:
// reads fall back to true and failed writes are logged and dropped.
type Store struct {
	kv     KV
	logger *zap.Logger
}

// New wraps kv. A nil logger discards warnings.
func New(kv KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{kv: kv, logger: logger}
}

// NewMemory returns a Store backed by an in-process map.
func NewMemory() *Store {
	return New(NewMemoryKV(), nil)
}

// Open builds the store for backend at path.
func Open(backend Backend, path string, logger *zap.Logger) (*Store, error) {
	var (
		kv  KV
		err error
	)
	switch backend {
	case BackendMemory:
		kv = NewMemoryKV()
	case BackendFile, "":
		kv = NewFileKV(path)
	case BackendSQLite:
		kv, err = OpenSQLiteKV(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite flag store: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	return New(kv, logger), nil
}

// Read returns the flag value, true unless the stored value is "false".
func (s *Store) Read(name string) bool {
	if s == nil || s.kv == nil {
		return true
	}
	value, found, err := s.kv.Get(name)
	if err != nil {
		s.logger.Warn("flag read failed, using default",
			zap.String("flag", name), zap.Error(err))
		return true
	}
	if !found {
		return true
	}
	return value != serializedFalse
}

// Write persists the flag synchronously. Failures are logged, not returned.
func (s *Store) Write(name string, value bool) {
	if s == nil || s.kv == nil {
		return
	}
	serialized := serializedTrue
	if !value {
		serialized = serializedFalse
	}
	if err := s.kv.Set(name, serialized); err != nil {
		s.logger.Warn("flag write failed, keeping in-memory state only",
			zap.String("flag", name), zap.Bool("value", value), zap.Error(err))
	}
}

// Lookup returns the raw stored value and whether it exists.
func (s *Store) Lookup(name string) (string, bool, error) {
	return s.kv.Get(name)
}

// Reset deletes the flag so the next reader sees the default again.
func (s *Store) Reset(name string) error {
	return s.kv.Delete(name)
}

// Close releases the backend.
func (s *Store) Close() error {
	if s == nil || s.kv == nil {
		return nil
	}
	return s.kv.Close()
}
