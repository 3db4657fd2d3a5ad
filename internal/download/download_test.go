package download

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chadlavi/draw-it/internal/compositor"
)

func TestFilename(t *testing.T) {
	ts := time.Date(2024, 3, 9, 17, 4, 5, 123_000_000, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "2024-03-09T22:04:05.123Z.png", Filename(ts))

	earlier := Filename(time.Date(2024, 3, 9, 9, 0, 0, 0, time.UTC))
	later := Filename(time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC))
	assert.Less(t, earlier, later, "names sort chronologically")
}

func TestDirSaverWritesDecodedPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	s := NewDirSaver(dir)

	require.NoError(t, s.Save(compositor.DataURLPrefix+"aGk=", "a.png"))

	data, err := os.ReadFile(s.Path("a.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), data)
}

func TestDirSaverRejects(t *testing.T) {
	s := NewDirSaver(t.TempDir())

	assert.ErrorIs(t, s.Save("hello", "a.png"), compositor.ErrNotDataURL)
	assert.Error(t, s.Save(compositor.DataURLPrefix+"aGk=", "../a.png"))
}

func TestNewDirSaverDefaultsToWorkingDir(t *testing.T) {
	assert.Equal(t, ".", NewDirSaver("").Dir)
}
