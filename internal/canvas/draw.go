package canvas

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

const gridSpacing = 25

var (
	fallbackInk      = color.NRGBA{A: 255}
	fallbackGrid     = color.NRGBA{R: 150, G: 150, B: 150, A: 43}
	fallbackCatenary = color.NRGBA{R: 0x0a, G: 0x03, B: 0x02, A: 255}
)

// drawLine renders a line with midpoint quadratic smoothing and round caps.
func drawLine(dc *gg.Context, line Line) {
	pts := line.Points
	if len(pts) == 0 {
		return
	}
	dc.SetColor(mustColor(line.BrushColor, fallbackInk))

	if len(pts) == 1 {
		dc.DrawCircle(pts[0].X, pts[0].Y, line.BrushRadius)
		dc.Fill()
		return
	}

	dc.SetLineWidth(line.BrushRadius * 2)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.MoveTo(pts[0].X, pts[0].Y)
	for i := 1; i < len(pts); i++ {
		prev, cur := pts[i-1], pts[i]
		mid := Point{X: (prev.X + cur.X) / 2, Y: (prev.Y + cur.Y) / 2}
		dc.QuadraticTo(prev.X, prev.Y, mid.X, mid.Y)
	}
	last := pts[len(pts)-1]
	dc.LineTo(last.X, last.Y)
	dc.Stroke()
}

// Frame renders what the user sees: an opaque white page, the optional
// grid, the background and ink layers, the stroke in progress and the
// brush guide. It is for display only and never exported.
func (r *Raster) Frame() image.Image {
	if r.ink == nil {
		return nil
	}
	dc := gg.NewContext(r.size, r.size)
	dc.SetColor(color.White)
	dc.Clear()

	if !r.cfg.HideGrid {
		dc.SetColor(mustColor(r.cfg.GridColor, fallbackGrid))
		dc.SetLineWidth(1)
		for v := gridSpacing; v < r.size; v += gridSpacing {
			dc.DrawLine(float64(v), 0, float64(v), float64(r.size))
			dc.DrawLine(0, float64(v), float64(r.size), float64(v))
		}
		dc.Stroke()
	}

	if r.background != nil {
		dc.DrawImage(r.background, 0, 0)
	}
	dc.DrawImage(r.ink.Image(), 0, 0)

	if r.current != nil {
		drawLine(dc, *r.current)
	}

	if r.placed && !r.cfg.Disabled {
		guide := mustColor(r.cfg.CatenaryColor, fallbackCatenary)
		dc.SetColor(guide)
		if r.pointer != r.brush {
			dc.SetLineWidth(1)
			dc.DrawLine(r.brush.X, r.brush.Y, r.pointer.X, r.pointer.Y)
			dc.Stroke()
		}
		dc.SetColor(mustColor(r.cfg.BrushColor, fallbackInk))
		dc.DrawCircle(r.brush.X, r.brush.Y, r.cfg.BrushRadius)
		dc.Fill()
	}

	return dc.Image()
}
