package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xdraw "golang.org/x/image/draw"
)

const halfBlock = "▀"

// thumbnail scales img into a cols x 2*rows image for the debug preview.
func thumbnail(img image.Image, cols, rows int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// inkSample shrinks img to cols x 2*rows keeping, for every block, the
// pixel furthest from white. Averaging would fade thin strokes into the page.
func inkSample(img image.Image, cols, rows int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	subRows := rows * 2
	for sy := 0; sy < subRows; sy++ {
		y0 := b.Min.Y + sy*h/subRows
		y1 := max(b.Min.Y+(sy+1)*h/subRows, y0+1)
		for sx := 0; sx < cols; sx++ {
			x0 := b.Min.X + sx*w/cols
			x1 := max(b.Min.X+(sx+1)*w/cols, x0+1)
			best := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			bestInk := -1
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
					ink := 765 - int(c.R) - int(c.G) - int(c.B)
					if ink > bestInk {
						best, bestInk = c, ink
					}
				}
			}
			dst.SetRGBA(sx, sy, best)
		}
	}
	return dst
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// halfBlocks renders a cols x 2*rows image as rows of half-block cells.
func halfBlocks(img *image.RGBA) []string {
	b := img.Bounds()
	rows := b.Dy() / 2
	styles := make(map[[2]color.RGBA]lipgloss.Style)
	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		var sb strings.Builder
		for col := 0; col < b.Dx(); col++ {
			top := img.RGBAAt(b.Min.X+col, b.Min.Y+row*2)
			bottom := img.RGBAAt(b.Min.X+col, b.Min.Y+row*2+1)
			key := [2]color.RGBA{top, bottom}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().
					Foreground(lipgloss.Color(hex(top))).
					Background(lipgloss.Color(hex(bottom)))
				styles[key] = st
			}
			sb.WriteString(st.Render(halfBlock))
		}
		lines = append(lines, sb.String())
	}
	return lines
}
