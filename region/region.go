package region

import (
	"go-launchgrid/grid"
	"go-launchgrid/midi"
)

// Edge is a press or release transition of a button
type Edge int

const (
	Press Edge = iota
	Release
)

func (e Edge) String() string {
	if e == Press {
		return "press"
	}
	return "release"
}

// Region owns a set of ctrl buttons, page buttons and a matrix rectangle.
// It reacts to button edges and other MIDI traffic and renders LED colours
// into its Frame.
type Region interface {
	Rect() grid.Rect
	Frame() *Frame

	ClaimsCtrl(x int) bool
	ClaimsPage(y int) bool

	// Process receives every event that does not come from the controller itself
	Process(ev midi.Event) []midi.Event

	CtrlButtonEvent(x int, edge Edge) []midi.Event
	PageButtonEvent(y int, edge Edge) []midi.Event
	// MatrixButtonEvent gets coordinates relative to Rect
	MatrixButtonEvent(x, y int, edge Edge) []midi.Event
}

// Frame is the rendered LED state of a region. Only the owning region writes it.
type Frame struct {
	ctrl   [grid.CtrlButtons]grid.Color
	page   [grid.PageButtons]grid.Color
	matrix []grid.Color // row-major, w*h
	w, h   int
}

func newFrame(w, h int) *Frame {
	f := &Frame{matrix: make([]grid.Color, w*h), w: w, h: h}
	for i := range f.ctrl {
		f.ctrl[i] = grid.LEDOff
	}
	for i := range f.page {
		f.page[i] = grid.LEDOff
	}
	for i := range f.matrix {
		f.matrix[i] = grid.LEDOff
	}
	return f
}

func (f *Frame) Width() int  { return f.w }
func (f *Frame) Height() int { return f.h }

func (f *Frame) Ctrl(x int) grid.Color {
	return f.ctrl[x]
}

func (f *Frame) Page(y int) grid.Color {
	return f.page[y]
}

// Matrix returns the colour at local coordinates x, y
func (f *Frame) Matrix(x, y int) grid.Color {
	return f.matrix[y*f.w+x]
}

func (f *Frame) setCtrl(x int, c grid.Color) {
	if grid.ValidCtrl(x) {
		f.ctrl[x] = c
	}
}

func (f *Frame) setPage(y int, c grid.Color) {
	if grid.ValidPage(y) {
		f.page[y] = c
	}
}

func (f *Frame) setMatrix(x, y int, c grid.Color) {
	f.matrix[y*f.w+x] = c
}

// Base holds the state every region shares: placement, frame and claims.
// Embedded, it answers all entry points with no events.
type Base struct {
	rect  grid.Rect
	frame *Frame
	ctrl  [grid.CtrlButtons]bool
	page  [grid.PageButtons]bool
}

func newBase(rect grid.Rect) Base {
	return Base{rect: rect, frame: newFrame(rect.W, rect.H)}
}

func (b *Base) Rect() grid.Rect { return b.rect }
func (b *Base) Frame() *Frame   { return b.frame }

func (b *Base) ClaimsCtrl(x int) bool {
	return grid.ValidCtrl(x) && b.ctrl[x]
}

func (b *Base) ClaimsPage(y int) bool {
	return grid.ValidPage(y) && b.page[y]
}

func (b *Base) claimCtrl(x int) {
	if grid.ValidCtrl(x) {
		b.ctrl[x] = true
	}
}

func (b *Base) claimPage(y int) {
	if grid.ValidPage(y) {
		b.page[y] = true
	}
}

func (b *Base) clearClaims() {
	b.ctrl = [grid.CtrlButtons]bool{}
	b.page = [grid.PageButtons]bool{}
}

func (b *Base) Process(midi.Event) []midi.Event                 { return nil }
func (b *Base) CtrlButtonEvent(int, Edge) []midi.Event          { return nil }
func (b *Base) PageButtonEvent(int, Edge) []midi.Event          { return nil }
func (b *Base) MatrixButtonEvent(x, y int, e Edge) []midi.Event { return nil }
