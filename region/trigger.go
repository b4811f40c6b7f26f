package region

import (
	"fmt"

	"go-launchgrid/debug"
	"go-launchgrid/grid"
	"go-launchgrid/midi"
)

// TriggerMode decides how a pad press maps to pattern notes
type TriggerMode int

const (
	// Manual toggles a pattern on press
	Manual TriggerMode = iota
	// Once starts a pattern on press, stops it on release and fades the pad
	Once
)

func (m TriggerMode) String() string {
	if m == Once {
		return "once"
	}
	return "manual"
}

// ParseTriggerMode parses "manual" or "once"
func ParseTriggerMode(s string) (TriggerMode, error) {
	switch s {
	case "manual":
		return Manual, nil
	case "once":
		return Once, nil
	}
	return Manual, fmt.Errorf("unknown trigger mode %q", s)
}

const (
	numPages = 8

	lightUpTime      = 25
	pauseBlinkTime   = 48
	prepareBlinkTime = 24

	pageActiveColor    = grid.Green3
	pageInactiveColor  = grid.Red1
	prepareActiveColor = grid.Green3 + grid.Red3
)

// editing mode of a trigger
type triggerState int

const (
	stateNormal triggerState = iota
	statePrepare
)

// pad brightness ramps, mirrored to 12 entries in init
var colorTables = [3][]grid.Color{
	{
		grid.Red1,
		grid.Red1,
		grid.Red1 + grid.Green1,
		grid.Red1 + grid.Green1,
		grid.Red1 + grid.Green1,
		grid.Green1,
		grid.Green1,
	},
	{
		grid.Red2,
		grid.Red2 + grid.Green1,
		grid.Red2 + grid.Green1,
		grid.Red2 + grid.Green2,
		grid.Red1 + grid.Green2,
		grid.Red1 + grid.Green2,
		grid.Green2,
	},
	{
		grid.Red3,
		grid.Red3 + grid.Green1,
		grid.Red3 + grid.Green2,
		grid.Red3 + grid.Green3,
		grid.Red2 + grid.Green3,
		grid.Red1 + grid.Green3,
		grid.Green3,
	},
}

func init() {
	for i, ct := range colorTables {
		for j := len(ct) - 2; j >= 1; j-- {
			ct = append(ct, ct[j])
		}
		colorTables[i] = ct
	}
}

// page is one w*h layer of pattern countdowns. 0 is stopped,
// lightUpTime is running or held.
type page struct {
	times []int
}

// TriggerButtons assigns ctrl buttons to a trigger; NoButton leaves one unset
type TriggerButtons struct {
	Play    int
	Prepare int
	Save    int
	Load    int
}

// NoTriggerButtons leaves all ctrl buttons unassigned
var NoTriggerButtons = TriggerButtons{Play: NoButton, Prepare: NoButton, Save: NoButton, Load: NoButton}

// Trigger maps its pads to pattern-recall notes (cell index + first key)
// on eight pages. One page is live; prepare mode edits another page
// without sounding it.
type Trigger struct {
	Base

	mode     TriggerMode
	firstKey int
	outPort  midi.Port
	outChan  uint8

	buttons   TriggerButtons
	pageOrder []int

	running bool
	pages   [numPages]page
	live    int
	prepare int
	state   triggerState

	playBlink    int
	prepareBlink int
}

// NewTrigger creates a trigger. pageButtons lists the page buttons that
// select pages; with a play button set the trigger starts paused.
func NewTrigger(rect grid.Rect, mode TriggerMode, firstKey int, outPort midi.Port, outChan uint8, buttons TriggerButtons, pageButtons []int) (*Trigger, error) {
	if rect.W <= 0 || rect.H <= 0 {
		return nil, fmt.Errorf("trigger %v: empty size", rect)
	}
	if outChan < 1 || outChan > numChannels {
		return nil, fmt.Errorf("trigger %v: output channel %d outside 1-%d", rect, outChan, numChannels)
	}
	if firstKey < 0 || firstKey+rect.Cells()-1 > 127 {
		return nil, fmt.Errorf("trigger %v: keys %d-%d outside 0-127", rect, firstKey, firstKey+rect.Cells()-1)
	}

	t := &Trigger{
		Base:     newBase(rect),
		mode:     mode,
		firstKey: firstKey,
		outPort:  outPort,
		outChan:  outChan,
		buttons:  buttons,
		running:  true,
	}
	for i := range t.pages {
		t.pages[i].times = make([]int, rect.Cells())
	}

	seen := make(map[int]string)
	for _, b := range []struct {
		name string
		x    int
	}{{"play", buttons.Play}, {"prepare", buttons.Prepare}, {"save", buttons.Save}, {"load", buttons.Load}} {
		if b.x == NoButton {
			continue
		}
		if !grid.ValidCtrl(b.x) {
			return nil, fmt.Errorf("trigger %v: %s button %d out of range", rect, b.name, b.x)
		}
		if other, dup := seen[b.x]; dup {
			return nil, fmt.Errorf("trigger %v: ctrl button %d assigned to %s and %s", rect, b.x, other, b.name)
		}
		seen[b.x] = b.name
		t.claimCtrl(b.x)
	}
	if buttons.Play != NoButton {
		t.running = false
	}

	for _, y := range pageButtons {
		if !grid.ValidPage(y) {
			return nil, fmt.Errorf("trigger %v: page button %d out of range", rect, y)
		}
		if t.ClaimsPage(y) {
			return nil, fmt.Errorf("trigger %v: page button %d listed twice", rect, y)
		}
		t.claimPage(y)
		t.pageOrder = append(t.pageOrder, y)
	}

	t.updateColors()
	return t, nil
}

// Running reports whether trigger notes are emitted
func (t *Trigger) Running() bool { return t.running }

// LivePage returns the sounding page
func (t *Trigger) LivePage() int { return t.live }

// PreparePage returns the page edited in prepare mode
func (t *Trigger) PreparePage() int { return t.prepare }

// Preparing reports whether prepare mode is on
func (t *Trigger) Preparing() bool { return t.state == statePrepare }

// Time returns the countdown of a cell on a page
func (t *Trigger) Time(p, x, y int) int {
	return t.pages[p].times[y*t.rect.W+x]
}

func (t *Trigger) key(x, y int) uint8 {
	return uint8(y*t.rect.W + x + t.firstKey)
}

func (t *Trigger) noteFor(x, y int, start bool) midi.Event {
	if start {
		return midi.NewNoteOn(t.outPort, t.outChan, t.key(x, y), 127)
	}
	return midi.NewNoteOff(t.outPort, t.outChan, t.key(x, y), 0)
}

// startOrStop emits a note for every active cell of page p
func (t *Trigger) startOrStop(p int, start bool) []midi.Event {
	var out []midi.Event
	for y := 0; y < t.rect.H; y++ {
		for x := 0; x < t.rect.W; x++ {
			if t.Time(p, x, y) != 0 {
				out = append(out, t.noteFor(x, y, start))
			}
		}
	}
	return out
}

func (t *Trigger) Process(ev midi.Event) []midi.Event {
	if ev.Type == midi.Clock {
		t.playBlink = (t.playBlink + 1) % pauseBlinkTime
		t.prepareBlink = (t.prepareBlink + 1) % prepareBlinkTime

		if t.mode == Once {
			times := t.pages[t.live].times
			for i, v := range times {
				if v >= 1 && v < lightUpTime {
					times[i] = v - 1
				}
			}
		}
	}
	t.updateColors()
	return nil
}

func (t *Trigger) CtrlButtonEvent(x int, edge Edge) []midi.Event {
	if edge != Press {
		return nil
	}

	var out []midi.Event
	if t.buttons.Play != NoButton && x == t.buttons.Play {
		t.running = !t.running
		out = append(out, t.startOrStop(t.live, t.running)...)
		debug.Log("trigger", "trigger %v running=%v", t.rect, t.running)
	}
	if t.buttons.Prepare != NoButton && x == t.buttons.Prepare {
		if t.state == statePrepare {
			t.state = stateNormal
		} else {
			t.state = statePrepare
			t.prepare = t.live
		}
		debug.Log("trigger", "trigger %v prepare=%v", t.rect, t.state == statePrepare)
	}
	t.updateColors()
	return out
}

func (t *Trigger) PageButtonEvent(y int, edge Edge) []midi.Event {
	if edge != Press || !t.ClaimsPage(y) {
		return nil
	}

	var out []midi.Event
	switch t.state {
	case stateNormal:
		out = append(out, t.startOrStop(t.live, false)...)
		t.live = y
		out = append(out, t.startOrStop(t.live, t.running)...)
		debug.Log("trigger", "trigger %v live page %d", t.rect, y)
	case statePrepare:
		t.prepare = y
	}
	t.updateColors()
	return out
}

// editPage returns the page pad presses modify
func (t *Trigger) editPage() int {
	if t.state == statePrepare {
		return t.prepare
	}
	return t.live
}

func (t *Trigger) MatrixButtonEvent(x, y int, edge Edge) []midi.Event {
	p := t.editPage()
	i := y*t.rect.W + x
	tm := t.pages[p].times[i]

	switch t.mode {
	case Manual:
		if edge == Press {
			if tm != 0 {
				tm = 0
			} else {
				tm = lightUpTime
			}
		}
	case Once:
		if edge == Press {
			tm = lightUpTime
		} else if tm >= 1 && tm <= lightUpTime {
			tm--
		}
	}
	t.pages[p].times[i] = tm

	var out []midi.Event
	// edits to a prepared page other than the live one stay silent
	if t.state == stateNormal || p == t.live {
		if (t.mode == Manual && edge == Press) || t.mode == Once {
			if t.running {
				out = append(out, t.noteFor(x, y, tm >= lightUpTime))
			}
		}
	}
	t.updateColors()
	return out
}

func (t *Trigger) updateColors() {
	if b := t.buttons.Play; b != NoButton {
		c := grid.Red1
		if t.running {
			c = grid.Green3
		} else if t.playBlink > pauseBlinkTime/2 {
			c = grid.Red2
		}
		t.frame.setCtrl(b, c)
	}
	if b := t.buttons.Save; b != NoButton {
		c := grid.Red1
		if t.state == statePrepare {
			c = grid.LEDOff
		}
		t.frame.setCtrl(b, c)
	}
	if b := t.buttons.Load; b != NoButton {
		c := grid.Green1
		if t.state == statePrepare {
			c = grid.LEDOff
		}
		t.frame.setCtrl(b, c)
	}
	if b := t.buttons.Prepare; b != NoButton {
		c := grid.Red1 + grid.Green1
		if t.state == statePrepare {
			c = grid.LEDOff
			if t.prepareBlink > prepareBlinkTime/2 {
				c = prepareActiveColor
			}
		}
		t.frame.setCtrl(b, c)
	}

	for _, y := range t.pageOrder {
		t.frame.setPage(y, pageInactiveColor)
	}
	t.frame.setPage(t.live, pageActiveColor)
	if t.state == statePrepare {
		t.frame.setPage(t.prepare, prepareActiveColor)
	}

	p := t.editPage()
	for y := 0; y < t.rect.H; y++ {
		for x := 0; x < t.rect.W; x++ {
			t.frame.setMatrix(x, y, t.matrixColor(p, x, y))
		}
	}
}

func (t *Trigger) matrixColor(p, x, y int) grid.Color {
	tm := t.Time(p, x, y)
	if tm <= 0 {
		return grid.LEDOff
	}
	brightness := int(min(2.5*float64(tm)/lightUpTime, 2))
	ct := colorTables[brightness]
	return ct[(y*t.rect.W+x)%len(ct)]
}
