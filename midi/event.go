package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// Type is the kind of a decoded event
type Type uint8

// MIDI message types
const (
	Other   Type = 0
	NoteOff Type = 0x80
	NoteOn  Type = 0x90
	CC      Type = 0xB0
	Clock   Type = 0xF8
)

// CCPedal is the sustain pedal controller
const CCPedal uint8 = 64

// Port is a logical port number. Input and output ports are numbered separately.
type Port int

// NoPort marks an unconfigured optional port
const NoPort Port = -1

// Event is a decoded MIDI message tagged with the port it came from or goes to
type Event struct {
	Port       Port
	Type       Type
	Channel    uint8 // 1-16, 0 for system messages
	Note       uint8
	Velocity   uint8
	Controller uint8
	Value      uint8
	Raw        []byte // original bytes of Other messages
}

func NewNoteOn(port Port, channel, note, velocity uint8) Event {
	return Event{Port: port, Type: NoteOn, Channel: channel, Note: note, Velocity: velocity}
}

func NewNoteOff(port Port, channel, note, velocity uint8) Event {
	return Event{Port: port, Type: NoteOff, Channel: channel, Note: note, Velocity: velocity}
}

func NewCC(port Port, channel, controller, value uint8) Event {
	return Event{Port: port, Type: CC, Channel: channel, Controller: controller, Value: value}
}

func NewClock(port Port) Event {
	return Event{Port: port, Type: Clock}
}

// Routed returns a copy of e addressed to port and channel
func (e Event) Routed(port Port, channel uint8) Event {
	e.Port = port
	e.Channel = channel
	return e
}

// IsNote reports whether e is a note-on or note-off
func (e Event) IsNote() bool {
	return e.Type == NoteOn || e.Type == NoteOff
}

// Decode converts a wire message into an Event.
// A note-on with velocity 0 is decoded as a note-off.
func Decode(port Port, msg gomidi.Message) Event {
	ev := Event{Port: port}
	var channel, a, b uint8

	switch {
	case len(msg) == 3 && msg[0]&0xF0 == byte(NoteOn) && msg[2] == 0:
		ev.Type = NoteOff
		ev.Channel, ev.Note = msg[0]&0x0F+1, msg[1]
	case msg.GetNoteOn(&channel, &a, &b):
		ev.Type = NoteOn
		ev.Channel, ev.Note, ev.Velocity = channel+1, a, b
	case msg.GetNoteOff(&channel, &a, &b):
		ev.Type = NoteOff
		ev.Channel, ev.Note, ev.Velocity = channel+1, a, b
	case msg.GetControlChange(&channel, &a, &b):
		ev.Type = CC
		ev.Channel, ev.Controller, ev.Value = channel+1, a, b
	case len(msg) == 1 && msg[0] == byte(Clock):
		ev.Type = Clock
	default:
		ev.Type = Other
		ev.Raw = append([]byte(nil), msg...)
		if isChannelStatus(msg) {
			ev.Channel = msg[0]&0x0F + 1
		}
	}
	return ev
}

// Message encodes e for the wire
func (e Event) Message() gomidi.Message {
	ch := wireChannel(e.Channel)

	switch e.Type {
	case NoteOn:
		return gomidi.NoteOn(ch, e.Note, e.Velocity)
	case NoteOff:
		if e.Velocity == 0 {
			return gomidi.NoteOff(ch, e.Note)
		}
		return gomidi.Message{byte(NoteOff) | ch, e.Note & 0x7F, e.Velocity & 0x7F}
	case CC:
		return gomidi.ControlChange(ch, e.Controller, e.Value)
	case Clock:
		return gomidi.Message{byte(Clock)}
	}

	msg := gomidi.Message(append([]byte(nil), e.Raw...))
	if isChannelStatus(msg) && e.Channel > 0 {
		msg[0] = msg[0]&0xF0 | ch
	}
	return msg
}

func (e Event) String() string {
	switch e.Type {
	case NoteOn:
		return fmt.Sprintf("port %d NoteOn ch%d note %d vel %d", e.Port, e.Channel, e.Note, e.Velocity)
	case NoteOff:
		return fmt.Sprintf("port %d NoteOff ch%d note %d vel %d", e.Port, e.Channel, e.Note, e.Velocity)
	case CC:
		return fmt.Sprintf("port %d CC ch%d #%d = %d", e.Port, e.Channel, e.Controller, e.Value)
	case Clock:
		return fmt.Sprintf("port %d Clock", e.Port)
	}
	return fmt.Sprintf("port %d % X", e.Port, e.Raw)
}

func wireChannel(channel uint8) uint8 {
	if channel == 0 {
		return 0
	}
	return (channel - 1) & 0x0F
}

func isChannelStatus(msg []byte) bool {
	return len(msg) > 0 && msg[0] >= 0x80 && msg[0] < 0xF0
}
