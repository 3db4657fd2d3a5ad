package canvas

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mounted(t *testing.T, size int, mutate ...func(*Config)) (*Raster, *int) {
	t.Helper()
	r := NewRaster(nil)
	changes := 0
	r.OnChange(func() { changes++ })
	cfg := DefaultConfig(size)
	cfg.BrushColor = "#000000"
	for _, m := range mutate {
		m(&cfg)
	}
	r.Configure(cfg)
	require.True(t, r.Mounted())
	return r, &changes
}

func stroke(r *Raster, pts ...Point) {
	r.BeginStroke(pts[0])
	for _, p := range pts[1:] {
		r.MoveStroke(p)
	}
	r.EndStroke()
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestUnmountedSurfaceIsInert(t *testing.T) {
	r := NewRaster(nil)
	changes := 0
	r.OnChange(func() { changes++ })

	layers, ok := r.Layers()
	assert.False(t, ok)
	assert.Nil(t, layers)
	assert.Nil(t, r.Frame())

	assert.NotPanics(t, func() {
		r.Undo()
		r.Clear()
		stroke(r, Point{1, 1}, Point{5, 5})
	})
	assert.Empty(t, r.Lines())
	assert.Equal(t, 0, changes)
	assert.ErrorIs(t, r.Load(`{"lines":[]}`, true), ErrNotMounted)
}

func TestStrokeUsesBrushColor(t *testing.T) {
	r, changes := mounted(t, 600, func(c *Config) {
		c.BrushColor = "#1273DE"
		c.BrushRadius = 3
	})

	stroke(r, Point{10, 10}, Point{30, 10}, Point{50, 10})
	require.Equal(t, 1, *changes)
	require.Len(t, r.Lines(), 1)
	assert.Equal(t, "#1273DE", r.Lines()[0].BrushColor)

	layers, ok := r.Layers()
	require.True(t, ok)
	require.Len(t, layers, 1)
	assert.Equal(t, color.NRGBA{R: 0x12, G: 0x73, B: 0xDE, A: 255}, nrgbaAt(layers[0], 30, 10))
	assert.Equal(t, uint8(0), nrgbaAt(layers[0], 30, 100).A, "ink layer stays transparent elsewhere")
}

func TestSinglePointStrokeLeavesDot(t *testing.T) {
	r, changes := mounted(t, 100, func(c *Config) { c.BrushRadius = 4 })
	stroke(r, Point{50, 50})

	assert.Equal(t, 1, *changes)
	layers, _ := r.Layers()
	assert.Equal(t, uint8(255), nrgbaAt(layers[0], 50, 50).A)
}

func TestUndo(t *testing.T) {
	r, changes := mounted(t, 200)
	stroke(r, Point{10, 10}, Point{20, 20})
	stroke(r, Point{100, 100}, Point{150, 100})
	require.Equal(t, 2, *changes)

	r.Undo()
	assert.Equal(t, 3, *changes)
	assert.Len(t, r.Lines(), 1)
	layers, _ := r.Layers()
	assert.Equal(t, uint8(0), nrgbaAt(layers[0], 125, 100).A)

	r.Undo()
	r.Undo()
	r.Undo()
	assert.Equal(t, 4, *changes, "undo on an empty surface is a no-op")
	assert.Empty(t, r.Lines())
}

func TestClearDoesNotNotify(t *testing.T) {
	r, changes := mounted(t, 200)
	stroke(r, Point{10, 10}, Point{190, 190})
	r.Clear()
	r.Clear()

	assert.Equal(t, 1, *changes)
	assert.Empty(t, r.Lines())
	layers, _ := r.Layers()
	assert.Equal(t, uint8(0), nrgbaAt(layers[0], 100, 100).A)
}

func TestLazyBrushFollowsBeyondRadius(t *testing.T) {
	r, _ := mounted(t, 600, func(c *Config) { c.LazyRadius = 10 })

	r.BeginStroke(Point{0, 0})
	r.MoveStroke(Point{5, 0})
	r.MoveStroke(Point{20, 0})
	r.EndStroke()

	want := []Point{{0, 0}, {10, 0}}
	if diff := cmp.Diff(want, r.Lines()[0].Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestDisabledIgnoresInput(t *testing.T) {
	r, changes := mounted(t, 100, func(c *Config) { c.Disabled = true })
	stroke(r, Point{1, 1}, Point{50, 50})
	assert.Empty(t, r.Lines())
	assert.Equal(t, 0, *changes)
}

func TestResizeRescalesLines(t *testing.T) {
	r, _ := mounted(t, 600)
	stroke(r, Point{100, 100}, Point{200, 300})

	cfg := r.Config()
	cfg.CanvasWidth, cfg.CanvasHeight = 300, 300
	r.Configure(cfg)

	want := []Point{{50, 50}, {100, 150}}
	if diff := cmp.Diff(want, r.Lines()[0].Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 1.0, r.Lines()[0].BrushRadius, 1e-9)

	cfg.CanvasWidth, cfg.CanvasHeight = 0, 0
	r.Configure(cfg)
	assert.False(t, r.Mounted())

	cfg.CanvasWidth, cfg.CanvasHeight = 600, 600
	r.Configure(cfg)
	assert.Equal(t, 600, r.Size())
	if diff := cmp.Diff([]Point{{100, 100}, {200, 300}}, r.Lines()[0].Points); diff != "" {
		t.Errorf("points after remount (-want +got):\n%s", diff)
	}
}

func TestConfigureKeepsSquareAndClamps(t *testing.T) {
	r := NewRaster(nil)
	cfg := DefaultConfig(0)
	cfg.CanvasWidth, cfg.CanvasHeight = 900, 700
	r.Configure(cfg)

	assert.Equal(t, 600, r.Config().CanvasWidth)
	assert.Equal(t, 600, r.Config().CanvasHeight)

	cfg.CanvasWidth, cfg.CanvasHeight = -5, 100
	r.Configure(cfg)
	assert.False(t, r.Mounted())
}

func TestSaveDataRoundTripAcrossSizes(t *testing.T) {
	src, _ := mounted(t, 600)
	stroke(src, Point{60, 60}, Point{120, 180})
	data, err := src.SaveData()
	require.NoError(t, err)

	dst, changes := mounted(t, 300)
	require.NoError(t, dst.Load(data, true))
	assert.Equal(t, 1, *changes)
	if diff := cmp.Diff([]Point{{30, 30}, {60, 90}}, dst.Lines()[0].Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptySaveData(t *testing.T) {
	r, _ := mounted(t, 50)
	data, err := r.SaveData()
	require.NoError(t, err)
	assert.JSONEq(t, `{"lines":[],"width":50,"height":50}`, data)
}

func TestReplayIsGradual(t *testing.T) {
	data := `{"lines":[
		{"points":[{"x":1,"y":1},{"x":9,"y":9}],"brushColor":"#B80000","brushRadius":2},
		{"points":[{"x":20,"y":20}],"brushColor":"#008B02","brushRadius":2}
	],"width":100,"height":100}`

	r, changes := mounted(t, 100, func(c *Config) { c.SaveData = data })
	assert.True(t, r.Replaying())
	assert.Empty(t, r.Lines())
	assert.Equal(t, 0, *changes)

	assert.True(t, r.ReplayNext())
	assert.Len(t, r.Lines(), 1)
	assert.False(t, r.ReplayNext())
	assert.Len(t, r.Lines(), 2)
	assert.False(t, r.ReplayNext())
	assert.Equal(t, 2, *changes)

	// re-applying the same config does not reload
	r.Configure(r.Config())
	assert.Len(t, r.Lines(), 2)
}

func TestSaveDataKeepsQueuedReplay(t *testing.T) {
	src, _ := mounted(t, 100)
	stroke(src, Point{1, 1}, Point{9, 9})
	stroke(src, Point{20, 20}, Point{30, 40})
	stroke(src, Point{50, 50})
	data, err := src.SaveData()
	require.NoError(t, err)

	r, _ := mounted(t, 100, func(c *Config) { c.SaveData = data })
	require.True(t, r.ReplayNext())
	require.Len(t, r.Lines(), 1)

	again, err := r.SaveData()
	require.NoError(t, err)
	assert.JSONEq(t, data, again)

	// replay state is untouched by serializing
	assert.Len(t, r.Lines(), 1)
	assert.True(t, r.Replaying())
}

func TestLoadRejectsGarbage(t *testing.T) {
	r, _ := mounted(t, 100)
	assert.Error(t, r.Load("not json", true))
}

func writePNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestBackgroundLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	writePNG(t, path, color.NRGBA{R: 255, A: 255})

	for _, ref := range []string{path, "file://" + path} {
		t.Run(ref, func(t *testing.T) {
			r, _ := mounted(t, 100, func(c *Config) { c.BackgroundImageURL = ref })
			layers, ok := r.Layers()
			require.True(t, ok)
			require.Len(t, layers, 2)
			bg := nrgbaAt(layers[0], 50, 50)
			assert.InDelta(t, 255, int(bg.R), 2)
			assert.InDelta(t, 0, int(bg.G), 2)
			assert.InDelta(t, 255, int(bg.A), 2)
		})
	}
}

func TestMissingBackgroundIsIgnored(t *testing.T) {
	r, _ := mounted(t, 100, func(c *Config) {
		c.BackgroundImageURL = filepath.Join(t.TempDir(), "nope.png")
	})
	layers, ok := r.Layers()
	require.True(t, ok)
	assert.Len(t, layers, 1)
}

func TestFrameIsOpaque(t *testing.T) {
	r, _ := mounted(t, 100, func(c *Config) { c.HideGrid = false })
	frame := r.Frame()
	require.NotNil(t, frame)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, nrgbaAt(frame, 1, 1))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#000000", color.NRGBA{A: 255}, false},
		{"#1273DE", color.NRGBA{R: 0x12, G: 0x73, B: 0xDE, A: 255}, false},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#11223344", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, false},
		{"rgba(150,150,150,0.17)", color.NRGBA{R: 150, G: 150, B: 150, A: 43}, false},
		{"rgb(1, 2, 3)", color.NRGBA{R: 1, G: 2, B: 3, A: 255}, false},
		{"#12345", color.NRGBA{}, true},
		{"rgba(1,2,3)", color.NRGBA{}, true},
		{"rgb(256,0,0)", color.NRGBA{}, true},
		{"tomato", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
