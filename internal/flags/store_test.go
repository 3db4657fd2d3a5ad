package flags

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingKV struct{}

var errBroken = errors.New("storage disabled")

func (failingKV) Get(string) (string, bool, error) { return "", false, errBroken }
func (failingKV) Set(string, string) error         { return errBroken }
func (failingKV) Delete(string) error              { return errBroken }
func (failingKV) Close() error                     { return nil }

func TestReadDefaultsToTrue(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
		want   bool
	}{
		{"missing key", nil, true},
		{"serialized false", strPtr("false"), false},
		{"serialized true", strPtr("true"), true},
		{"garbage", strPtr("nope"), true},
		{"empty string", strPtr(""), true},
		{"capitalized False", strPtr("False"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemoryKV()
			if tt.stored != nil {
				require.NoError(t, kv.Set(RotationWarning, *tt.stored))
			}
			s := New(kv, nil)
			assert.Equal(t, tt.want, s.Read(RotationWarning))
		})
	}
}

func TestWriteSerializesLiterally(t *testing.T) {
	kv := NewMemoryKV()
	s := New(kv, nil)

	s.Write(RotationWarning, false)
	v, ok, err := kv.Get(RotationWarning)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "false", v)

	s.Write(RotationWarning, true)
	v, _, _ = kv.Get(RotationWarning)
	assert.Equal(t, "true", v)
}

func TestBrokenStorageDegrades(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := New(failingKV{}, zap.New(core))

	assert.True(t, s.Read(RotationWarning))
	assert.NotPanics(t, func() { s.Write(RotationWarning, false) })
	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, "flag write failed, keeping in-memory state only", logs.All()[1].Message)
}

func TestNilStore(t *testing.T) {
	var s *Store
	assert.True(t, s.Read(RotationWarning))
	s.Write(RotationWarning, false)
	assert.NoError(t, s.Close())
}

func TestFileKVSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "flags.json")

	first := New(NewFileKV(path), nil)
	assert.True(t, first.Read(RotationWarning))
	first.Write(RotationWarning, false)

	second := New(NewFileKV(path), nil)
	assert.False(t, second.Read(RotationWarning))

	require.NoError(t, second.Reset(RotationWarning))
	assert.True(t, New(NewFileKV(path), nil).Read(RotationWarning))
}

func TestFileKVUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	core, logs := observer.New(zapcore.WarnLevel)
	s := New(NewFileKV(filepath.Join(blocker, "flags.json")), zap.New(core))

	s.Write(RotationWarning, false)
	assert.Equal(t, 1, logs.Len())
	assert.True(t, s.Read(RotationWarning))
}

func TestFileKVCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := New(NewFileKV(path), nil)
	assert.True(t, s.Read(RotationWarning))
}

func TestSQLiteKVSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.db")

	first, err := Open(BackendSQLite, path, nil)
	require.NoError(t, err)
	assert.True(t, first.Read(RotationWarning))
	first.Write(RotationWarning, false)
	first.Write(RotationWarning, false)
	require.NoError(t, first.Close())

	second, err := Open(BackendSQLite, path, nil)
	require.NoError(t, err)
	defer second.Close()
	assert.False(t, second.Read(RotationWarning))

	v, ok, err := second.Lookup(RotationWarning)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", v)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("redis", "", nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func strPtr(s string) *string { return &s }
