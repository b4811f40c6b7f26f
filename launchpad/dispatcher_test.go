package launchpad

import (
	"testing"

	"go-launchgrid/grid"
	"go-launchgrid/midi"
	"go-launchgrid/region"
)

const (
	lpIn      midi.Port = 0
	kronosIn  midi.Port = 1
	clockIn   midi.Port = 4
	lpOut     midi.Port = 0
	kronosOut midi.Port = 1
)

func pressPad(x, y int) midi.Event {
	return midi.NewNoteOn(lpIn, 1, grid.MatrixButtonID(x, y), 127)
}

func releasePad(x, y int) midi.Event {
	return midi.NewNoteOff(lpIn, 1, grid.MatrixButtonID(x, y), 0)
}

func pressCtrl(x int) midi.Event {
	return midi.NewCC(lpIn, 1, grid.CtrlButtonID(x), 127)
}

func leds(events []midi.Event) []midi.Event {
	var out []midi.Event
	for _, ev := range events {
		if ev.Port == lpOut && ev.Channel == 1 && (ev.Type == midi.CC || ev.Type == midi.NoteOn) {
			out = append(out, ev)
		}
	}
	return out
}

func TestRouterEndToEnd(t *testing.T) {
	d := NewDispatcher(lpIn, lpOut, clockIn)
	r, err := region.NewRouter(grid.NewRect(0, 0, 8, 2), kronosIn, 16, kronosOut, region.DefaultRouterColors)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AddWindow(r); err != nil {
		t.Fatal(err)
	}
	d.Render()

	d.Dispatch(pressPad(3, 0))
	if r.Selected() != 4 {
		t.Fatalf("Selected = %d, want 4", r.Selected())
	}

	out := d.Dispatch(midi.NewNoteOn(kronosIn, 16, 60, 100))
	if len(out) == 0 {
		t.Fatal("no output")
	}
	first := out[0]
	if first.Type != midi.NoteOn || first.Port != kronosOut || first.Channel != 4 || first.Note != 60 {
		t.Errorf("first event = %v, want NoteOn port 1 ch4 note 60", first)
	}
	// region events precede LED updates: the highlight follows
	if len(out) != 2 || out[1].Note != grid.MatrixButtonID(3, 0) {
		t.Errorf("led update = %v", out[1:])
	}
}

func TestDispatcherInitialPaintAndDiff(t *testing.T) {
	d := NewDispatcher(lpIn, lpOut, clockIn)
	tr, err := region.NewTrigger(grid.NewRect(4, 0, 4, 6), region.Manual, 37, kronosOut, 16,
		region.TriggerButtons{Play: 6, Prepare: 7, Save: 0, Load: 1}, []int{0, 1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	d.AddWindow(tr)

	out := d.Render()
	// ctrl: play, prepare, save, load differ from off; pages 0-6
	if len(out) != 4+7 {
		t.Fatalf("initial paint = %d events: %v", len(out), out)
	}
	for i := 0; i < 4; i++ {
		if out[i].Type != midi.CC {
			t.Errorf("event %d = %v, ctrl updates come first", i, out[i])
		}
	}
	if out[4].Type != midi.NoteOn || out[4].Note != grid.PageButtonID(0) || out[4].Velocity != uint8(grid.Green3) {
		t.Errorf("page 0 = %v", out[4])
	}

	if out := d.Render(); len(out) != 0 {
		t.Errorf("unchanged state re-rendered %v", out)
	}

	// one pad press: just that pad changes
	out = d.Dispatch(pressPad(5, 2))
	if len(out) != 1 || out[0].Note != grid.MatrixButtonID(5, 2) {
		t.Errorf("pad press = %v", out)
	}
	if d.Snapshot().Matrix[2][5] == grid.LEDOff {
		t.Error("snapshot should show the active pad")
	}
	if out := d.Dispatch(releasePad(5, 2)); len(out) != 0 {
		t.Errorf("release = %v", out)
	}
}

func TestDispatcherOrdering(t *testing.T) {
	d := NewDispatcher(lpIn, lpOut, clockIn)
	tr, _ := region.NewTrigger(grid.NewRect(0, 0, 2, 2), region.Manual, 37, kronosOut, 16, region.NoTriggerButtons, []int{0, 1})
	d.AddWindow(tr)
	d.Render()

	d.Dispatch(pressPad(1, 1))
	d.Dispatch(pressPad(0, 0))
	out := d.Dispatch(midi.NewNoteOn(lpIn, 1, grid.PageButtonID(1), 127))

	// page switch stops both pads (region events), then LEDs: pages, then matrix rows
	var kinds []string
	for _, ev := range out {
		switch {
		case ev.Port == kronosOut && ev.Type == midi.NoteOff:
			kinds = append(kinds, "off")
		case grid.IsPageNote(ev.Note):
			kinds = append(kinds, "page")
		default:
			kinds = append(kinds, "pad")
		}
	}
	want := []string{"off", "off", "page", "page", "pad", "pad"}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("got %v, want %v", kinds, want)
		}
	}
	if out[4].Note != grid.MatrixButtonID(0, 0) || out[5].Note != grid.MatrixButtonID(1, 1) {
		t.Errorf("matrix updates out of row order: %v", out[4:])
	}
}

func TestDispatcherUnclaimedStayDark(t *testing.T) {
	d := NewDispatcher(lpIn, lpOut, clockIn)
	r, _ := region.NewRouter(grid.NewRect(0, 6, 8, 2), kronosIn, 16, kronosOut, region.DefaultRouterColors)
	d.AddWindow(r)

	var all []midi.Event
	all = append(all, d.Render()...)
	for i := 0; i < 20; i++ {
		all = append(all, d.Dispatch(midi.NewNoteOn(kronosIn, 16, uint8(40+i), 90))...)
		all = append(all, d.Dispatch(midi.NewClock(clockIn))...)
		all = append(all, d.Dispatch(pressPad(i%8, 6+i%2))...)
		all = append(all, d.Dispatch(pressPad(i%8, i%6))...) // unclaimed pads
		all = append(all, d.Dispatch(pressCtrl(i%8))...)
	}

	for _, ev := range leds(all) {
		if ev.Type == midi.CC {
			t.Fatalf("unclaimed ctrl button updated: %v", ev)
		}
		if grid.IsPageNote(ev.Note) {
			t.Fatalf("unclaimed page button updated: %v", ev)
		}
		if grid.YForMatrixNote(ev.Note) < 6 {
			t.Fatalf("unclaimed pad updated: %v", ev)
		}
	}
	snap := d.Snapshot()
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			if snap.Matrix[y][x] != grid.LEDOff {
				t.Errorf("pad (%d,%d) = %d", x, y, snap.Matrix[y][x])
			}
		}
	}
}

func TestDispatcherLazyClear(t *testing.T) {
	d := NewDispatcher(lpIn, lpOut, clockIn)
	rect := grid.NewRect(0, 0, 4, 6)
	s, _ := region.NewSwitcher(rect, region.NoButton)
	tr, _ := region.NewTrigger(rect, region.Manual, 37, kronosOut, 16,
		region.TriggerButtons{Play: region.NoButton, Prepare: region.NoButton, Save: 0, Load: region.NoButton}, nil)
	empty, _ := region.NewEmpty(rect)
	s.Add(tr, 6)
	s.Add(empty, 7)
	d.AddWindow(s)

	out := d.Render()
	if len(out) != 1 || out[0].Type != midi.CC || out[0].Value != uint8(grid.Red1) {
		t.Fatalf("initial paint = %v, want the save button", out)
	}

	// the empty child does not claim ctrl 0: its LED keeps the last colour written
	if out := d.Dispatch(midi.NewNoteOn(lpIn, 1, grid.PageButtonID(7), 127)); len(out) != 0 {
		t.Errorf("switch to empty child = %v, want no LED updates", out)
	}
	if s.ClaimsCtrl(0) {
		t.Fatal("ctrl 0 should be released")
	}
	if c := d.Snapshot().Ctrl[0]; c != grid.Red1 {
		t.Errorf("released ctrl 0 = %d, want stale red1", c)
	}
	for i := 0; i < 3; i++ {
		if out := d.Dispatch(midi.NewClock(clockIn)); len(out) != 0 {
			t.Errorf("tick %d = %v, stale buttons must not flicker", i, out)
		}
	}
}

func TestDispatcherIgnoresUnmapped(t *testing.T) {
	d := NewDispatcher(lpIn, lpOut, clockIn)
	r, _ := region.NewRouter(grid.NewRect(0, 0, 8, 2), kronosIn, 16, kronosOut, region.DefaultRouterColors)
	d.AddWindow(r)
	d.Render()

	tests := []midi.Event{
		midi.NewCC(lpIn, 1, 0x10, 127),
		midi.NewNoteOn(lpIn, 1, 0x0A, 127),
		midi.NewNoteOn(lpIn, 1, 0x7F, 127),
		{Port: lpIn, Type: midi.Other, Raw: []byte{0xFA}},
		midi.NewClock(lpIn),
	}
	for _, ev := range tests {
		if out := d.Dispatch(ev); len(out) != 0 {
			t.Errorf("Dispatch(%v) = %v", ev, out)
		}
	}
	if r.Selected() != 1 {
		t.Errorf("Selected = %d, want 1", r.Selected())
	}
}

func TestAddWindowRejectsOutside(t *testing.T) {
	d := NewDispatcher(lpIn, lpOut, midi.NoPort)
	e, _ := region.NewEmpty(grid.NewRect(6, 6, 4, 4))
	if err := d.AddWindow(e); err == nil {
		t.Error("rect outside the matrix should be rejected")
	}
}
