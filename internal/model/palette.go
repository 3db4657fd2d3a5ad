package model

import "strings"

// Palette is the fixed set of swatches offered by the color popover.
var Palette = []string{
	"#B80000",
	"#DB3E00",
	"#FCCB00",
	"#008B02",
	"#006B76",
	"#1273DE",
	"#004DCF",
	"#5300EB",
	"#000000",
	"#EB9694",
	"#FAD0C3",
	"#FEF3BD",
	"#C1E1C5",
	"#BEDADC",
	"#C4DEF6",
	"#BED3F3",
	"#D4C4FB",
	"#CCCCCC",
}

// PaletteColumns is the popover width in swatches (two rows).
var PaletteColumns = (len(Palette) + 1) / 2

// DefaultBrushColor is the brush color at session start.
const DefaultBrushColor = "#000000"

// SwatchIndex returns the palette position of hex, or -1 when the color is
// not one of the presets.
func SwatchIndex(hex string) int {
	for i, c := range Palette {
		if strings.EqualFold(c, hex) {
			return i
		}
	}
	return -1
}
