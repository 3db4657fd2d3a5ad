package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/chadlavi/draw-it/internal/canvas"
	"github.com/chadlavi/draw-it/internal/config"
	"github.com/chadlavi/draw-it/internal/flags"
)

// isolate gives the test its own HOME and working directory and clears the
// command-line globals.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(origDir) })

	configPath, storeName, outDir, restorePath, background = "", "", "", "", ""
	debug, ephemeral = false, false
	return home
}

func TestFlagsGetAndReset(t *testing.T) {
	home := isolate(t)

	store, err := flags.Open(flags.BackendFile, filepath.Join(home, ".draw-it", "flags.json"), nil)
	require.NoError(t, err)
	store.Write(flags.RotationWarning, false)
	require.NoError(t, store.Close())

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runFlagsGet(cmd, []string{flags.RotationWarning}))
	assert.Equal(t, "rotation_warning: false\n", out.String())

	out.Reset()
	require.NoError(t, runFlagsReset(cmd, []string{flags.RotationWarning}))
	assert.Equal(t, "rotation_warning reset\n", out.String())

	out.Reset()
	require.NoError(t, runFlagsGet(cmd, []string{flags.RotationWarning}))
	assert.Equal(t, "rotation_warning: unset (reads true)\n", out.String())
}

func TestFlagsSQLiteBackend(t *testing.T) {
	home := isolate(t)
	storeName = "sqlite"

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, runFlagsGet(cmd, []string{flags.RotationWarning}))
	assert.Contains(t, out.String(), "unset")

	_, err := os.Stat(filepath.Join(home, ".draw-it", "flags.db"))
	assert.NoError(t, err, "sqlite store should live next to the config")
}

func TestUnknownStoreFails(t *testing.T) {
	isolate(t)
	storeName = "redis"

	err := runFlagsGet(&cobra.Command{}, []string{flags.RotationWarning})
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	home := isolate(t)
	outDir = "sketches"

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, runConfigInit(cmd, nil))

	path := filepath.Join(home, ".draw-it", "config.json")
	assert.Equal(t, "wrote "+path+"\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"output_dir": "sketches"`))
}

func TestWriteDrawingRestores(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drawing.json")

	raster := canvas.NewRaster(nil)
	raster.Configure(canvas.DefaultConfig(300))
	raster.BeginStroke(canvas.Point{X: 10, Y: 10})
	raster.MoveStroke(canvas.Point{X: 100, Y: 120})
	raster.EndStroke()
	require.NoError(t, writeDrawing(path, raster))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	restored := canvas.NewRaster(nil)
	cfg := canvas.DefaultConfig(600)
	cfg.SaveData = string(data)
	cfg.ImmediateLoading = true
	restored.Configure(cfg)

	require.Len(t, restored.Lines(), 1)
	last := restored.Lines()[0].Points[1]
	assert.InDelta(t, 200.0, last.X, 0.001)
	assert.InDelta(t, 240.0, last.Y, 0.001)
}

// blocker returns a regular file, so paths beneath it cannot be created.
func blocker(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestOpenFlagStoreFallsBackToMemory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FlagStore = flags.BackendSQLite
	cfg.FlagStorePath = filepath.Join(blocker(t), "flags.db")

	core, logs := observer.New(zapcore.WarnLevel)
	store := openFlagStore(cfg, zap.New(core))
	require.NotNil(t, store)
	defer store.Close()

	assert.True(t, store.Read(flags.RotationWarning), "unreadable storage reads as the default")
	store.Write(flags.RotationWarning, false)
	assert.False(t, store.Read(flags.RotationWarning), "dismissal should hold for this run")
	assert.Equal(t, 1, logs.FilterMessage("flag store unavailable, using memory").Len())
}

func TestNewLoggerFallsBackToNop(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(blocker(t), "logs", "draw-it.log")

	var stderr bytes.Buffer
	logger := newLogger(cfg, &stderr)
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
	assert.Contains(t, stderr.String(), "logging disabled")
}

func TestWriteDrawingDuringReplayKeepsEveryLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.json")

	src := canvas.NewRaster(nil)
	src.Configure(canvas.DefaultConfig(300))
	for i := 0; i < 3; i++ {
		y := float64(20 + i*40)
		src.BeginStroke(canvas.Point{X: 10, Y: y})
		src.MoveStroke(canvas.Point{X: 200, Y: y})
		src.EndStroke()
	}
	require.NoError(t, writeDrawing(path, src))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// quit after the first replayed line
	replaying := canvas.NewRaster(nil)
	cfg := canvas.DefaultConfig(300)
	cfg.SaveData = string(data)
	replaying.Configure(cfg)
	require.True(t, replaying.ReplayNext())
	require.NoError(t, writeDrawing(path, replaying))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	restored := canvas.NewRaster(nil)
	cfg.SaveData = string(data)
	cfg.ImmediateLoading = true
	restored.Configure(cfg)
	assert.Len(t, restored.Lines(), 3)
}
