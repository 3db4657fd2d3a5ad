package layout

// CellGrid maps a square canvas onto a block of terminal cells. Every cell
// shows two vertically stacked square "subpixels" (the upper and lower
// half-block), so a grid of Cols x Rows cells samples a Cols x 2*Rows image.
type CellGrid struct {
	Canvas int // canvas edge in pixels
	Cols   int
	Rows   int
}

// FitGrid picks the largest square cell grid for a canvas of edge px that
// fits in maxCols x maxRows cells.
func FitGrid(canvas, maxCols, maxRows int) CellGrid {
	if canvas <= 0 || maxCols <= 0 || maxRows <= 0 {
		return CellGrid{}
	}
	side := min(maxCols, 2*maxRows, canvas)
	// keep an even number of subpixel rows
	side -= side % 2
	if side <= 0 {
		return CellGrid{}
	}
	return CellGrid{Canvas: canvas, Cols: side, Rows: side / 2}
}

// Empty reports whether nothing can be drawn.
func (g CellGrid) Empty() bool {
	return g.Cols == 0 || g.Rows == 0 || g.Canvas == 0
}

// ToCanvas converts a cell position relative to the grid's top-left cell
// into the canvas pixel coordinate at the center of that cell.
func (g CellGrid) ToCanvas(col, row int) (x, y float64, ok bool) {
	if g.Empty() || col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return 0, 0, false
	}
	scale := float64(g.Canvas) / float64(g.Cols)
	x = (float64(col) + 0.5) * scale
	y = float64(row*2+1) * scale
	return x, y, true
}

// Clamp pulls a cell position onto the nearest cell of the grid.
func (g CellGrid) Clamp(col, row int) (int, int) {
	if g.Empty() {
		return 0, 0
	}
	return min(max(col, 0), g.Cols-1), min(max(row, 0), g.Rows-1)
}
