// Package download hands finished exports to the filesystem.
package download

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chadlavi/draw-it/internal/compositor"
)

// timestampLayout matches the ISO-8601 form browsers produce for dates,
// e.g. 2024-03-09T17:04:05.123Z. It sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Saver receives an encoded image and the name to save it under.
type Saver interface {
	Save(encoded, filename string) error
}

// Filename returns the export name for t.
func Filename(t time.Time) string {
	return t.UTC().Format(timestampLayout) + ".png"
}

// DirSaver writes exports into a directory.
type DirSaver struct {
	Dir string
}

// NewDirSaver returns a saver writing into dir ("" means the working directory).
func NewDirSaver(dir string) *DirSaver {
	if dir == "" {
		dir = "."
	}
	return &DirSaver{Dir: dir}
}

// Save decodes the data URL and writes it to Dir/filename.
func (s *DirSaver) Save(encoded, filename string) error {
	data, err := compositor.Decode(encoded)
	if err != nil {
		return err
	}
	if filepath.Base(filename) != filename {
		return fmt.Errorf("filename %q must not contain a path", filename)
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Path returns where filename would be written.
func (s *DirSaver) Path(filename string) string {
	return filepath.Join(s.Dir, filename)
}

// SaverFunc adapts a function to Saver.
type SaverFunc func(encoded, filename string) error

func (f SaverFunc) Save(encoded, filename string) error { return f(encoded, filename) }
