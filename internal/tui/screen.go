package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/chadlavi/draw-it/internal/clickaway"
	"github.com/chadlavi/draw-it/internal/layout"
	"github.com/chadlavi/draw-it/internal/model"
)

const (
	bannerText   = "! This works best in portrait mode on this device!"
	dismissLabel = " let me play this way anyway "

	paletteLabel  = " color... "
	undoLabel     = " undo "
	clearLabel    = " clear "
	downloadLabel = " download "

	chipWidth   = 2
	swatchWidth = 3

	// debug panel to the right of the canvas, when it fits
	debugWidth     = 34
	minCanvasCols  = 20
	reservedBottom = 4 // buttons, two palette rows, status bar
)

// screen is the cell layout of one frame. Regions are absolute terminal
// cells so mouse events can be hit-tested directly against them.
type screen struct {
	width  int
	height int

	bannerRow int // -1 when the banner is hidden
	dismiss   clickaway.Rect
	promptRow int

	canvas clickaway.Rect
	grid   layout.CellGrid

	buttonRow   int
	paletteBtn  clickaway.Rect
	undoBtn     clickaway.Rect
	clearBtn    clickaway.Rect
	downloadBtn clickaway.Rect

	popover  clickaway.Rect
	swatches []clickaway.Rect

	debugX    int // 0 when there is no room for the panel
	statusRow int
}

// computeScreen lays out a width x height terminal for a canvas of edge
// canvasSize pixels.
func computeScreen(width, height, canvasSize int, banner bool) screen {
	s := screen{width: width, height: height, bannerRow: -1}

	row := 1 // header
	if banner {
		s.bannerRow = row
		x := 1 + lipgloss.Width(bannerText) + 1
		s.dismiss = clickaway.Rect{X: x, Y: row, W: lipgloss.Width(dismissLabel), H: 1}
		row++
	}
	s.promptRow = row
	row += 2

	maxCols := width - 2
	if maxCols-debugWidth-1 >= minCanvasCols {
		maxCols -= debugWidth + 1
		s.debugX = -1 // placed once the canvas width is known
	}
	s.grid = layout.FitGrid(canvasSize, maxCols, height-row-reservedBottom)
	s.canvas = clickaway.Rect{X: 1, Y: row, W: s.grid.Cols, H: s.grid.Rows}
	if s.debugX != 0 {
		s.debugX = s.canvas.X + s.grid.Cols + 1
	}

	s.buttonRow = row + s.grid.Rows
	x := 1
	next := func(w int) clickaway.Rect {
		r := clickaway.Rect{X: x, Y: s.buttonRow, W: w, H: 1}
		x += w + 1
		return r
	}
	s.paletteBtn = next(chipWidth + lipgloss.Width(paletteLabel))
	s.undoBtn = next(lipgloss.Width(undoLabel))
	s.clearBtn = next(lipgloss.Width(clearLabel))
	s.downloadBtn = next(lipgloss.Width(downloadLabel))

	rows := (len(model.Palette) + model.PaletteColumns - 1) / model.PaletteColumns
	s.popover = clickaway.Rect{
		X: s.paletteBtn.X,
		Y: s.buttonRow + 1,
		W: model.PaletteColumns * swatchWidth,
		H: rows,
	}
	s.swatches = make([]clickaway.Rect, len(model.Palette))
	for i := range model.Palette {
		s.swatches[i] = clickaway.Rect{
			X: s.popover.X + (i%model.PaletteColumns)*swatchWidth,
			Y: s.popover.Y + i/model.PaletteColumns,
			W: swatchWidth,
			H: 1,
		}
	}

	s.statusRow = max(height-1, s.buttonRow+rows+1)
	return s
}

// swatchAt returns the palette index under (x, y), or -1.
func (s screen) swatchAt(x, y int) int {
	for i, r := range s.swatches {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}
