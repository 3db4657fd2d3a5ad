// Package layout derives the canvas size from the terminal viewport and
// maps between canvas pixels and terminal cells.
package layout

// MaxCanvasSize is the largest canvas edge in pixels.
const MaxCanvasSize = 600

// Dimension returns the square canvas edge for a viewport width in pixels.
// Unmeasured (0) and negative widths give 0, which callers treat as "not mounted".
func Dimension(viewportWidth int) int {
	if viewportWidth <= 0 {
		return 0
	}
	return min(MaxCanvasSize, viewportWidth)
}

// Viewport tracks the latest terminal size reported by the resize event stream.
type Viewport struct {
	cols        int
	rows        int
	cellWidthPx int
	measured    bool
}

// NewViewport returns an unmeasured viewport. Each terminal column counts
// as cellWidthPx pixels.
func NewViewport(cellWidthPx int) Viewport {
	if cellWidthPx < 1 {
		cellWidthPx = 1
	}
	return Viewport{cellWidthPx: cellWidthPx}
}

// Resize records a resize notification.
func (v *Viewport) Resize(cols, rows int) {
	v.cols = max(cols, 0)
	v.rows = max(rows, 0)
	v.measured = true
}

// Measured reports whether a resize has been seen yet.
func (v Viewport) Measured() bool {
	return v.measured
}

// Width returns the viewport width in pixels, 0 before the first measurement.
func (v Viewport) Width() int {
	if !v.measured {
		return 0
	}
	return v.cols * v.cellWidthPx
}

func (v Viewport) Cols() int { return v.cols }
func (v Viewport) Rows() int { return v.rows }
