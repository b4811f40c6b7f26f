package midi

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go-launchgrid/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

const scanTimeout = 3 * time.Second

// Endpoints is a snapshot of the MIDI ports the driver can see
type Endpoints struct {
	In  []drivers.In
	Out []drivers.Out
}

// Scan lists MIDI endpoints, giving up after a timeout (CoreMIDI can hang)
func Scan() (Endpoints, error) {
	ch := make(chan Endpoints, 1)
	go func() {
		ch <- Endpoints{In: gomidi.GetInPorts(), Out: gomidi.GetOutPorts()}
	}()

	select {
	case eps := <-ch:
		return eps, nil
	case <-time.After(scanTimeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return Endpoints{}, fmt.Errorf("midi port scan timed out after %s", scanTimeout)
	}
}

// FindIn returns the input endpoint named name. An exact match wins,
// otherwise the first endpoint whose name contains name (case-insensitive).
func (e Endpoints) FindIn(name string) (drivers.In, bool) {
	names := make([]string, len(e.In))
	for i, in := range e.In {
		names[i] = in.String()
	}
	if i := matchName(names, name); i >= 0 {
		return e.In[i], true
	}
	return nil, false
}

// FindOut is FindIn for output endpoints
func (e Endpoints) FindOut(name string) (drivers.Out, bool) {
	names := make([]string, len(e.Out))
	for i, out := range e.Out {
		names[i] = out.String()
	}
	if i := matchName(names, name); i >= 0 {
		return e.Out[i], true
	}
	return nil, false
}

func matchName(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	want := strings.ToLower(name)
	for i, n := range names {
		if strings.Contains(strings.ToLower(n), want) {
			return i
		}
	}
	return -1
}

// listener is one open input endpoint, fanned out to every logical port bound to it
type listener struct {
	endpoint string
	ports    []Port
	stop     func()
}

// PortManager opens logical ports on physical endpoints and moves events
// between the driver callbacks and a single consumer
type PortManager struct {
	mu        sync.RWMutex
	listeners map[string]*listener
	outs      map[Port]func(gomidi.Message) error
	outNames  map[Port]string
	clockPort Port
	events    chan Event
	closed    bool
}

// NewPortManager creates a port manager. clockPort is the only port that
// receives timing clock messages, unless it is NoPort.
func NewPortManager(clockPort Port) *PortManager {
	return &PortManager{
		listeners: make(map[string]*listener),
		outs:      make(map[Port]func(gomidi.Message) error),
		outNames:  make(map[Port]string),
		clockPort: clockPort,
		events:    make(chan Event, 512),
	}
}

// Events returns the channel all decoded input events arrive on
func (pm *PortManager) Events() <-chan Event {
	return pm.events
}

// OpenIn binds a logical input port to the endpoint in. Several ports may
// share one endpoint; each gets its own copy of every event.
func (pm *PortManager) OpenIn(port Port, in drivers.In) error {
	name := in.String()

	pm.mu.Lock()
	defer pm.mu.Unlock()

	if l, ok := pm.listeners[name]; ok {
		l.ports = append(l.ports, port)
		debug.Log("ports", "in %d shares %q", port, name)
		return nil
	}

	l := &listener{endpoint: name, ports: []Port{port}}
	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		pm.receive(l, msg)
	}, gomidi.UseTimeCode(), gomidi.UseSysEx())
	if err != nil {
		return fmt.Errorf("listen on %q: %w", name, err)
	}
	l.stop = stop
	pm.listeners[name] = l

	debug.Log("ports", "in %d opened %q", port, name)
	return nil
}

// OpenOut binds a logical output port to the endpoint out
func (pm *PortManager) OpenOut(port Port, out drivers.Out) error {
	send, err := gomidi.SendTo(out)
	if err != nil {
		return fmt.Errorf("open output %q: %w", out.String(), err)
	}
	pm.bindOut(port, out.String(), send)
	debug.Log("ports", "out %d opened %q", port, out.String())
	return nil
}

func (pm *PortManager) bindOut(port Port, name string, send func(gomidi.Message) error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.outs[port] = send
	pm.outNames[port] = name
}

// receive runs on the driver's callback goroutine and only enqueues
func (pm *PortManager) receive(l *listener, msg gomidi.Message) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if pm.closed {
		return
	}

	for _, port := range l.ports {
		ev := Decode(port, msg)
		if ev.Type == Clock && pm.clockPort != NoPort && port != pm.clockPort {
			continue
		}
		select {
		case pm.events <- ev:
		default:
			debug.LogEvery(100, "ports", "event queue full, dropped %v", ev)
		}
	}
}

// Send encodes ev and writes it to its output port
func (pm *PortManager) Send(ev Event) error {
	pm.mu.RLock()
	send, ok := pm.outs[ev.Port]
	pm.mu.RUnlock()

	if !ok {
		return fmt.Errorf("send %v: output port %d not open", ev, ev.Port)
	}
	if err := send(ev.Message()); err != nil {
		return fmt.Errorf("send %v: %w", ev, err)
	}
	return nil
}

// OutName returns the endpoint name bound to an output port
func (pm *PortManager) OutName(port Port) string {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.outNames[port]
}

// Close stops all listeners and closes the event channel
func (pm *PortManager) Close() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.closed {
		return
	}
	pm.closed = true
	for _, l := range pm.listeners {
		if l.stop != nil {
			l.stop()
		}
	}
	pm.listeners = make(map[string]*listener)
	close(pm.events)
}

// CloseDriver releases the MIDI driver. Call once at exit.
func CloseDriver() {
	gomidi.CloseDriver()
}
