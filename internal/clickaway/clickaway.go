// Package clickaway reports pointer presses that land outside a region.
package clickaway

// Rect is a rectangle of terminal cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Press is one pointer-down interaction. Seq must increase between distinct
// presses; a press seen twice is only considered once.
type Press struct {
	Seq  uint64
	X, Y int
}

// Detector invokes a callback for presses outside its region while active.
// The region is the union of the mounted rectangles, so a trigger and its
// popover can be mounted together.
type Detector struct {
	onAway  func()
	region  []Rect
	mounted bool
	active  bool
	lastSeq uint64
	seen    bool
}

// New returns an unmounted, inactive detector.
func New(onAway func()) *Detector {
	return &Detector{onAway: onAway}
}

// Mount replaces the region. Mounting again never stacks callbacks.
func (d *Detector) Mount(rects ...Rect) {
	d.region = append(d.region[:0], rects...)
	d.mounted = true
}

// Unmount drops the region. It is safe to call repeatedly.
func (d *Detector) Unmount() {
	d.region = d.region[:0]
	d.mounted = false
}

// SetActive sets whether outside presses should fire.
func (d *Detector) SetActive(active bool) {
	d.active = active
}

func (d *Detector) Mounted() bool { return d.mounted }

// Inside reports whether (x, y) is within the mounted region.
func (d *Detector) Inside(x, y int) bool {
	for _, r := range d.region {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// Handle fires the callback at most once for p and reports whether it did.
func (d *Detector) Handle(p Press) bool {
	if d.seen && p.Seq <= d.lastSeq {
		return false
	}
	d.seen = true
	d.lastSeq = p.Seq

	if !d.mounted || !d.active || d.onAway == nil {
		return false
	}
	if d.Inside(p.X, p.Y) {
		return false
	}
	d.onAway()
	return true
}
