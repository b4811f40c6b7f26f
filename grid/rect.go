package grid

import "fmt"

// Rect places a region on the matrix, in grid units
type Rect struct {
	X, Y, W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Translated returns a copy shifted by dx, dy
func (r Rect) Translated(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Local converts global matrix coordinates into coordinates relative to r.
// ok is false when the point lies outside r.
func (r Rect) Local(gx, gy int) (lx, ly int, ok bool) {
	lx = gx - r.X
	ly = gy - r.Y
	ok = lx >= 0 && lx < r.W && ly >= 0 && ly < r.H
	return lx, ly, ok
}

// Cells returns the number of pads covered by r
func (r Rect) Cells() int {
	return r.W * r.H
}

// SameSize reports whether r and o have equal dimensions
func (r Rect) SameSize(o Rect) bool {
	return r.W == o.W && r.H == o.H
}

// Overlaps reports whether r and o share at least one pad
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Validate checks that r is non-empty and fits inside the 8x8 matrix
func (r Rect) Validate() error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("rect %v: empty size", r)
	}
	if r.X < 0 || r.Y < 0 || r.X+r.W > MatrixWidth || r.Y+r.H > MatrixHeight {
		return fmt.Errorf("rect %v: outside the %dx%d matrix", r, MatrixWidth, MatrixHeight)
	}
	return nil
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}
