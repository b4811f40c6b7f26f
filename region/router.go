package region

import (
	"fmt"

	"go-launchgrid/debug"
	"go-launchgrid/grid"
	"go-launchgrid/midi"
)

const (
	numChannels = 16

	routerLightUpTime = 3

	routerLightUpActive   = grid.Green3 + grid.Red3
	routerLightUpInactive = grid.Green3 + grid.Red1
)

// RouterColors are the matrix colours of a channel router
type RouterColors struct {
	Active       grid.Color
	InactiveOdd  grid.Color // cells with even index y*w+x
	InactiveEven grid.Color
}

// DefaultRouterColors is red for the selected channel on a dim green field
var DefaultRouterColors = RouterColors{
	Active:       grid.Red3,
	InactiveOdd:  grid.Green1,
	InactiveEven: grid.Green1,
}

// Router selects one of w*h MIDI channels as the live destination for
// everything played on its input channel, and keeps notes and the
// sustain pedal consistent across selection changes
type Router struct {
	Base

	inPort    midi.Port
	inChannel uint8
	outPort   midi.Port
	colors    RouterColors

	selected uint8
	// indexed by channel 1-16, slot 0 unused
	highlights [numChannels + 1]int
	pressed    [numChannels + 1][128]bool
	sustains   [numChannels + 1]uint8
}

// NewRouter creates a router for events arriving on inPort/inChannel
func NewRouter(rect grid.Rect, inPort midi.Port, inChannel uint8, outPort midi.Port, colors RouterColors) (*Router, error) {
	if rect.W <= 0 || rect.H <= 0 {
		return nil, fmt.Errorf("router %v: empty size", rect)
	}
	if rect.Cells() > numChannels {
		return nil, fmt.Errorf("router %v: %d cells, at most %d channels", rect, rect.Cells(), numChannels)
	}
	if inChannel < 1 || inChannel > numChannels {
		return nil, fmt.Errorf("router %v: input channel %d outside 1-%d", rect, inChannel, numChannels)
	}

	r := &Router{
		Base:      newBase(rect),
		inPort:    inPort,
		inChannel: inChannel,
		outPort:   outPort,
		colors:    colors,
		selected:  1,
	}
	r.updateColors()
	return r, nil
}

// Selected returns the current output channel
func (r *Router) Selected() uint8 {
	return r.selected
}

// Highlight returns the remaining light-up ticks of a channel
func (r *Router) Highlight(channel uint8) int {
	if channel < 1 || channel > numChannels {
		return 0
	}
	return r.highlights[channel]
}

// Sustain returns the stored pedal value of a channel
func (r *Router) Sustain(channel uint8) uint8 {
	if channel < 1 || channel > numChannels {
		return 0
	}
	return r.sustains[channel]
}

func (r *Router) Process(ev midi.Event) []midi.Event {
	var out []midi.Event

	if ev.Port == r.inPort {
		if ev.Channel == r.inChannel {
			out = append(out, r.trackNotes(ev)...)
			ev = ev.Routed(r.outPort, r.selected)
			out = append(out, ev)
		} else if ev.Type != midi.Clock {
			ev.Port = r.outPort
			out = append(out, ev)
		}
		if ev.Type == midi.NoteOn && ev.Channel >= 1 && ev.Channel <= numChannels {
			r.highlights[ev.Channel] = routerLightUpTime
		}
	}

	if ev.Type == midi.Clock {
		for ch := 1; ch <= numChannels; ch++ {
			if r.highlights[ch] > 0 {
				r.highlights[ch]--
			}
		}
	}

	r.updateColors()
	return out
}

// trackNotes returns the cleanup events for an input-channel event
func (r *Router) trackNotes(ev midi.Event) []midi.Event {
	var out []midi.Event

	switch {
	case ev.Type == midi.NoteOn:
		r.pressed[r.selected][ev.Note&0x7F] = true

	case ev.Type == midi.NoteOff:
		note := ev.Note & 0x7F
		for ch := uint8(1); ch <= numChannels; ch++ {
			if ch != r.selected && r.pressed[ch][note] {
				r.pressed[ch][note] = false
				out = append(out, midi.NewNoteOff(r.outPort, ch, note, 0))
			}
		}
		r.pressed[r.selected][note] = false

	case ev.Type == midi.CC && ev.Controller == midi.CCPedal:
		r.sustains[r.selected] = ev.Value
		for ch := uint8(1); ch <= numChannels; ch++ {
			if ch != r.selected && r.sustains[ch] > 0 {
				r.sustains[ch] = ev.Value
				out = append(out, midi.NewCC(r.outPort, ch, midi.CCPedal, ev.Value))
			}
		}
	}
	return out
}

func (r *Router) MatrixButtonEvent(x, y int, edge Edge) []midi.Event {
	if edge != Press {
		return nil
	}

	var out []midi.Event
	pedal := r.sustains[r.selected]
	r.selected = uint8(y*r.rect.W + x + 1)

	// carry a held pedal over to the new channel
	if pedal > 0 {
		r.sustains[r.selected] = pedal
		out = append(out, midi.NewCC(r.outPort, r.selected, midi.CCPedal, pedal))
	}

	debug.Log("router", "switched to channel %d", r.selected)
	r.updateColors()
	return out
}

func (r *Router) updateColors() {
	for y := 0; y < r.rect.H; y++ {
		for x := 0; x < r.rect.W; x++ {
			z := y*r.rect.W + x
			channel := uint8(z + 1)
			active := channel == r.selected

			c := r.colors.Active
			if !active {
				c = r.colors.InactiveOdd
				if z%2 != 0 {
					c = r.colors.InactiveEven
				}
			}
			if r.highlights[channel] > 0 {
				c = routerLightUpInactive
				if active {
					c = routerLightUpActive
				}
			}
			r.frame.setMatrix(x, y, c)
		}
	}
}
