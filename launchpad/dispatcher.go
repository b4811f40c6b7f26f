package launchpad

import (
	"fmt"

	"go-launchgrid/debug"
	"go-launchgrid/grid"
	"go-launchgrid/midi"
	"go-launchgrid/region"
)

// Snapshot is the full LED state of the controller
type Snapshot struct {
	Ctrl   [grid.CtrlButtons]grid.Color
	Page   [grid.PageButtons]grid.Color
	Matrix [grid.MatrixHeight][grid.MatrixWidth]grid.Color // [y][x]
}

func newSnapshot() Snapshot {
	var s Snapshot
	for i := range s.Ctrl {
		s.Ctrl[i] = grid.LEDOff
	}
	for i := range s.Page {
		s.Page[i] = grid.LEDOff
	}
	for y := range s.Matrix {
		for x := range s.Matrix[y] {
			s.Matrix[y][x] = grid.LEDOff
		}
	}
	return s
}

// Dispatcher routes controller input to regions and turns their
// composed LED state into a minimal stream of LED updates
type Dispatcher struct {
	regions []region.Region

	controlIn  midi.Port
	controlOut midi.Port
	clockIn    midi.Port

	// previous is what the device shows. current is never cleared, so a
	// button no region claims keeps the last colour written to it.
	current  *Snapshot
	previous *Snapshot
}

// NewDispatcher creates a dispatcher for the controller on controlIn/controlOut.
// clockIn is informational (NoPort when absent): clock events reach regions
// through the regular broadcast.
func NewDispatcher(controlIn, controlOut, clockIn midi.Port) *Dispatcher {
	cur, prev := newSnapshot(), newSnapshot()
	return &Dispatcher{
		controlIn:  controlIn,
		controlOut: controlOut,
		clockIn:    clockIn,
		current:    &cur,
		previous:   &prev,
	}
}

// AddWindow appends a region. Later regions paint over earlier ones.
func (d *Dispatcher) AddWindow(r region.Region) error {
	if err := r.Rect().Validate(); err != nil {
		return fmt.Errorf("add window: %w", err)
	}
	d.regions = append(d.regions, r)
	return nil
}

// Regions returns the regions in paint order
func (d *Dispatcher) Regions() []region.Region {
	return d.regions
}

func (d *Dispatcher) ControlIn() midi.Port  { return d.controlIn }
func (d *Dispatcher) ControlOut() midi.Port { return d.controlOut }
func (d *Dispatcher) ClockIn() midi.Port    { return d.clockIn }

// Dispatch handles one input event and returns the region output
// followed by the LED updates it caused
func (d *Dispatcher) Dispatch(ev midi.Event) []midi.Event {
	out := d.processRegions(ev)
	d.collect()
	return append(out, d.render()...)
}

// Render paints without an input event
func (d *Dispatcher) Render() []midi.Event {
	d.collect()
	return d.render()
}

// Snapshot returns the last rendered LED state
func (d *Dispatcher) Snapshot() Snapshot {
	return *d.previous
}

func (d *Dispatcher) processRegions(ev midi.Event) []midi.Event {
	var out []midi.Event

	if ev.Port != d.controlIn {
		for _, r := range d.regions {
			out = append(out, r.Process(ev)...)
		}
		return out
	}

	switch ev.Type {
	case midi.CC:
		if !grid.IsCtrlCC(ev.Controller) {
			return nil
		}
		x := grid.XForCtrlCC(ev.Controller)
		edge := region.Release
		if ev.Value == 127 {
			edge = region.Press
		}
		for _, r := range d.regions {
			if r.ClaimsCtrl(x) {
				out = append(out, r.CtrlButtonEvent(x, edge)...)
			}
		}

	case midi.NoteOn, midi.NoteOff:
		edge := region.Release
		if ev.Type == midi.NoteOn {
			edge = region.Press
		}
		if grid.IsPageNote(ev.Note) {
			y := grid.YForPageNote(ev.Note)
			for _, r := range d.regions {
				if r.ClaimsPage(y) {
					out = append(out, r.PageButtonEvent(y, edge)...)
				}
			}
		}
		if grid.IsMatrixNote(ev.Note) {
			gx, gy := grid.XForMatrixNote(ev.Note), grid.YForMatrixNote(ev.Note)
			for _, r := range d.regions {
				if lx, ly, ok := r.Rect().Local(gx, gy); ok {
					out = append(out, r.MatrixButtonEvent(lx, ly, edge)...)
				}
			}
		}

	default:
		debug.Log("dispatch", "ignored %v", ev)
	}
	return out
}

// collect copies every claimed button and covered pad into the current frame
func (d *Dispatcher) collect() {
	cur := d.current
	for _, r := range d.regions {
		f := r.Frame()
		for x := 0; x < grid.CtrlButtons; x++ {
			if r.ClaimsCtrl(x) {
				cur.Ctrl[x] = f.Ctrl(x)
			}
		}
		for y := 0; y < grid.PageButtons; y++ {
			if r.ClaimsPage(y) {
				cur.Page[y] = f.Page(y)
			}
		}
		rect := r.Rect()
		for y := 0; y < rect.H; y++ {
			for x := 0; x < rect.W; x++ {
				cur.Matrix[rect.Y+y][rect.X+x] = f.Matrix(x, y)
			}
		}
	}
}

// render emits one LED event per changed button, then commits the frame
func (d *Dispatcher) render() []midi.Event {
	cur, prev := d.current, d.previous
	var out []midi.Event

	for x := 0; x < grid.CtrlButtons; x++ {
		if cur.Ctrl[x] != prev.Ctrl[x] {
			out = append(out, midi.NewCC(d.controlOut, 1, grid.CtrlButtonID(x), uint8(cur.Ctrl[x])))
		}
	}
	for y := 0; y < grid.PageButtons; y++ {
		if cur.Page[y] != prev.Page[y] {
			out = append(out, midi.NewNoteOn(d.controlOut, 1, grid.PageButtonID(y), uint8(cur.Page[y])))
		}
	}
	for y := 0; y < grid.MatrixHeight; y++ {
		for x := 0; x < grid.MatrixWidth; x++ {
			if cur.Matrix[y][x] != prev.Matrix[y][x] {
				out = append(out, midi.NewNoteOn(d.controlOut, 1, grid.MatrixButtonID(x, y), uint8(cur.Matrix[y][x])))
			}
		}
	}

	*prev = *cur
	return out
}
