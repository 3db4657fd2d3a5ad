package canvas

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"github.com/chadlavi/draw-it/internal/layout"
)

// Raster is the in-process Surface. Lines are stored in the pixel space of
// the current canvas size and rescaled proportionally when it changes.
type Raster struct {
	cfg    Config
	size   int
	lines  []Line
	replay []Line

	// stroke input
	current *Line
	drawing bool
	brush   Point
	pointer Point
	placed  bool

	ink        *gg.Context
	bgRef      string
	bgSource   image.Image
	background *image.RGBA
	saveData   string

	onChange func()
	logger   *zap.Logger
}

var _ Surface = (*Raster)(nil)

// NewRaster returns an unmounted surface.
func NewRaster(logger *zap.Logger) *Raster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Raster{cfg: DefaultConfig(0), logger: logger}
}

// OnChange registers the change handler, replacing any previous one.
func (r *Raster) OnChange(fn func()) {
	r.onChange = fn
}

func (r *Raster) notify() {
	if r.onChange != nil {
		r.onChange()
	}
}

// Configure applies cfg. Existing lines keep their relative position when
// the canvas size changes.
func (r *Raster) Configure(cfg Config) {
	size := min(max(cfg.CanvasWidth, 0), max(cfg.CanvasHeight, 0), layout.MaxCanvasSize)
	cfg.CanvasWidth, cfg.CanvasHeight = size, size

	resized := size != r.size
	if resized && size > 0 && r.size > 0 {
		factor := float64(size) / float64(r.size)
		scaleLines(r.lines, factor)
		scaleLines(r.replay, factor)
		if r.current != nil {
			scalePoints(r.current.Points, factor)
		}
		r.brush = scalePoint(r.brush, factor)
		r.pointer = scalePoint(r.pointer, factor)
		r.logger.Debug("canvas resized", zap.Int("from", r.size), zap.Int("to", size),
			zap.Int("lines", len(r.lines)))
	}
	if size > 0 {
		r.size = size
	} else if r.size > 0 && resized {
		r.logger.Debug("canvas unmounted", zap.Int("last_size", r.size))
	}

	bgChanged := cfg.BackgroundImageURL != r.bgRef
	if bgChanged {
		r.bgRef = cfg.BackgroundImageURL
		r.bgSource = nil
		if r.bgRef != "" {
			img, err := loadImage(r.bgRef)
			if err != nil {
				r.logger.Warn("background image unavailable", zap.String("ref", r.bgRef), zap.Error(err))
			} else {
				r.bgSource = img
			}
		}
	}

	if cfg.Disabled && r.drawing {
		r.drawing = false
		r.current = nil
	}
	r.cfg = cfg

	if size == 0 {
		r.ink = nil
		r.background = nil
		return
	}
	if resized || r.ink == nil {
		r.redraw()
	}
	if resized || bgChanged || (r.background == nil && r.bgSource != nil) {
		r.background = nil
		if r.bgSource != nil {
			r.background = scaleSquare(r.bgSource, size)
		}
	}

	if cfg.SaveData != "" && cfg.SaveData != r.saveData {
		r.saveData = cfg.SaveData
		if err := r.Load(cfg.SaveData, cfg.ImmediateLoading); err != nil {
			r.logger.Warn("ignoring unreadable save data", zap.Error(err))
		}
	}
}

// Config returns the applied configuration.
func (r *Raster) Config() Config {
	return r.cfg
}

// Mounted reports whether the surface has a drawable size.
func (r *Raster) Mounted() bool {
	return r.ink != nil
}

// Size returns the current canvas edge, 0 while unmounted.
func (r *Raster) Size() int {
	if r.ink == nil {
		return 0
	}
	return r.size
}

// Lines returns the committed lines.
func (r *Raster) Lines() []Line {
	return r.lines
}

// Layers returns the background (if any) and the ink layer.
func (r *Raster) Layers() ([]image.Image, bool) {
	if r.ink == nil {
		return nil, false
	}
	layers := make([]image.Image, 0, 2)
	if r.background != nil {
		layers = append(layers, r.background)
	}
	return append(layers, r.ink.Image()), true
}

func (r *Raster) acceptsInput() bool {
	return r.ink != nil && !r.cfg.Disabled
}

// BeginStroke starts a line at p.
func (r *Raster) BeginStroke(p Point) {
	if !r.acceptsInput() {
		return
	}
	r.pointer = p
	if !r.placed || r.cfg.LazyRadius <= 0 {
		r.brush = p
		r.placed = true
	} else {
		r.follow()
	}
	r.drawing = true
	r.current = &Line{
		Points:      []Point{r.brush},
		BrushColor:  r.cfg.BrushColor,
		BrushRadius: r.cfg.BrushRadius,
	}
}

// MoveStroke moves the pointer to p. The brush only follows once the
// pointer is further than LazyRadius away.
func (r *Raster) MoveStroke(p Point) {
	if r.ink == nil {
		return
	}
	r.pointer = p
	if !r.placed {
		r.brush = p
		r.placed = true
	}
	if !r.follow() || !r.drawing || r.current == nil {
		return
	}
	r.current.Points = append(r.current.Points, r.brush)
}

// follow drags the brush toward the pointer and reports whether it moved.
func (r *Raster) follow() bool {
	dx := r.pointer.X - r.brush.X
	dy := r.pointer.Y - r.brush.Y
	dist := math.Hypot(dx, dy)
	lazy := math.Max(r.cfg.LazyRadius, 0)
	if dist <= lazy || dist == 0 {
		return false
	}
	step := (dist - lazy) / dist
	r.brush = Point{X: r.brush.X + dx*step, Y: r.brush.Y + dy*step}
	return true
}

// EndStroke commits the line in progress and notifies.
func (r *Raster) EndStroke() {
	if !r.drawing {
		return
	}
	r.drawing = false
	line := r.current
	r.current = nil
	if line == nil || len(line.Points) == 0 || r.ink == nil {
		return
	}
	r.lines = append(r.lines, *line)
	drawLine(r.ink, *line)
	r.notify()
}

// Drawing reports whether a stroke is in progress.
func (r *Raster) Drawing() bool {
	return r.drawing
}

// Undo drops the last committed line.
func (r *Raster) Undo() {
	if len(r.lines) == 0 {
		return
	}
	r.lines = r.lines[:len(r.lines)-1]
	if r.ink != nil {
		r.redraw()
	}
	r.notify()
}

// Clear drops every line, including any pending replay.
func (r *Raster) Clear() {
	r.lines = nil
	r.replay = nil
	r.current = nil
	r.drawing = false
	if r.ink != nil {
		r.redraw()
	}
}

func (r *Raster) redraw() {
	r.ink = gg.NewContext(r.size, r.size)
	for _, line := range r.lines {
		drawLine(r.ink, line)
	}
}

func scalePoint(p Point, f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

func scalePoints(pts []Point, f float64) {
	for i := range pts {
		pts[i] = scalePoint(pts[i], f)
	}
}

func scaleLines(lines []Line, f float64) {
	for i := range lines {
		scalePoints(lines[i].Points, f)
		lines[i].BrushRadius *= f
	}
}
