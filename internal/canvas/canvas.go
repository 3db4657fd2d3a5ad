// Package canvas is the freehand drawing surface: brush input with a lazy
// follower, committed lines with undo, a background layer and the
// serialized save format used to restore a previous drawing.
package canvas

import (
	"image"
	"time"
)

// Point is a position in canvas pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is one committed stroke.
type Line struct {
	Points      []Point `json:"points"`
	BrushColor  string  `json:"brushColor"`
	BrushRadius float64 `json:"brushRadius"`
}

// Config configures a Surface. CanvasWidth and CanvasHeight are kept equal.
type Config struct {
	BrushRadius        float64
	LazyRadius         float64
	BrushColor         string
	CatenaryColor      string
	GridColor          string
	HideGrid           bool
	CanvasWidth        int
	CanvasHeight       int
	Disabled           bool
	BackgroundImageURL string
	SaveData           string
	ImmediateLoading   bool
	LoadTimeOffset     time.Duration
}

// DefaultConfig returns the stock surface configuration for a canvas of
// edge size.
func DefaultConfig(size int) Config {
	return Config{
		BrushRadius:    2,
		LazyRadius:     0,
		BrushColor:     "#444",
		CatenaryColor:  "#0a0302",
		GridColor:      "rgba(150,150,150,0.17)",
		HideGrid:       true,
		CanvasWidth:    size,
		CanvasHeight:   size,
		LoadTimeOffset: 5 * time.Millisecond,
	}
}

// Surface is the drawing capability the session drives.
type Surface interface {
	// Configure applies cfg. A zero size unmounts the surface.
	Configure(cfg Config)
	// Undo removes the last committed line. No-op when there is none.
	Undo()
	// Clear removes every line. It does not emit a change notification.
	Clear()
	// Layers returns the background and ink layers bottom to top, or
	// ok=false while the surface is not mounted.
	Layers() (layers []image.Image, ok bool)
	// OnChange registers the handler called after each settled change.
	OnChange(fn func())
}
