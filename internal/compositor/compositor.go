// Package compositor flattens a surface's layers onto an opaque white page
// and encodes the result as a PNG data URL ready for download.
package compositor

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/fogleman/gg"
)

// DataURLPrefix prefixes every encoded export.
const DataURLPrefix = "data:image/png;base64,"

// ErrNotDataURL is returned when decoding something that is not a PNG data URL.
var ErrNotDataURL = errors.New("not a png data url")

// Source exposes layers bottom to top. ok is false until the source is mounted.
type Source interface {
	Layers() (layers []image.Image, ok bool)
}

// Composite draws the source layers in order over opaque white and encodes
// the result. An unmounted or nil source yields "" and no error.
func Composite(src Source) (string, error) {
	if src == nil {
		return "", nil
	}
	layers, ok := src.Layers()
	if !ok || len(layers) == 0 {
		return "", nil
	}

	var bounds image.Rectangle
	for _, l := range layers {
		bounds = bounds.Union(l.Bounds())
	}
	if bounds.Empty() {
		return "", nil
	}

	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.SetColor(color.White)
	dc.Clear()
	for _, l := range layers {
		b := l.Bounds()
		dc.DrawImage(l, b.Min.X-bounds.Min.X, b.Min.Y-bounds.Min.Y)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("encode composite: %w", err)
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode returns the PNG bytes inside a data URL.
func Decode(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, DataURLPrefix) {
		return nil, ErrNotDataURL
	}
	data, err := base64.StdEncoding.DecodeString(dataURL[len(DataURLPrefix):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDataURL, err)
	}
	return data, nil
}

// DecodeImage decodes a data URL back into an image.
func DecodeImage(dataURL string) (image.Image, error) {
	data, err := Decode(dataURL)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return img, nil
}
