package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotMounted is returned when loading into a surface without a size.
var ErrNotMounted = errors.New("canvas not mounted")

type saveFile struct {
	Lines  []Line `json:"lines"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SaveData serializes the committed lines, followed by any lines still
// queued for replay, and the canvas size.
func (r *Raster) SaveData() (string, error) {
	lines := make([]Line, 0, len(r.lines)+len(r.replay))
	lines = append(lines, r.lines...)
	lines = append(lines, r.replay...)
	data, err := json.Marshal(saveFile{Lines: lines, Width: r.size, Height: r.size})
	if err != nil {
		return "", fmt.Errorf("marshal save data: %w", err)
	}
	return string(data), nil
}

// Load replaces the drawing with serialized lines, scaled from the saved
// size to the current one. With immediate set every line is committed at
// once and a single change is emitted. Otherwise the lines are queued and
// committed one per ReplayNext call.
func (r *Raster) Load(data string, immediate bool) error {
	if r.ink == nil {
		return ErrNotMounted
	}
	var sf saveFile
	if err := json.Unmarshal([]byte(data), &sf); err != nil {
		return fmt.Errorf("parse save data: %w", err)
	}
	if sf.Width > 0 && sf.Width != r.size {
		scaleLines(sf.Lines, float64(r.size)/float64(sf.Width))
	}

	r.lines = nil
	r.current = nil
	r.drawing = false
	r.replay = nil

	if immediate {
		r.lines = append(r.lines, sf.Lines...)
		r.redraw()
		r.notify()
		return nil
	}
	r.redraw()
	r.replay = sf.Lines
	return nil
}

// Replaying reports whether queued lines remain.
func (r *Raster) Replaying() bool {
	return len(r.replay) > 0
}

// ReplayNext commits the next queued line and reports whether more remain.
func (r *Raster) ReplayNext() bool {
	if len(r.replay) == 0 || r.ink == nil {
		return false
	}
	line := r.replay[0]
	r.replay = r.replay[1:]
	r.lines = append(r.lines, line)
	drawLine(r.ink, line)
	r.notify()
	return len(r.replay) > 0
}
