package flags

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileKV stores flags as a JSON object in a single file.
// The file is re-read on every Get so a fresh store sees earlier writes.
type FileKV struct {
	path string
}

// NewFileKV returns a FileKV for path. The file is created on first Set.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// DefaultFilePath returns ~/.draw-it/flags.json
func DefaultFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".draw-it", "flags.json"), nil
}

func (f *FileKV) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return values, nil
}

func (f *FileKV) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0644)
}

func (f *FileKV) Get(name string) (string, bool, error) {
	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[name]
	return v, ok, nil
}

func (f *FileKV) Set(name, value string) error {
	values, err := f.load()
	if err != nil {
		return err
	}
	values[name] = value
	return f.save(values)
}

func (f *FileKV) Delete(name string) error {
	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[name]; !ok {
		return nil
	}
	delete(values, name)
	return f.save(values)
}

func (f *FileKV) Close() error { return nil }
