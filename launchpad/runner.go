package launchpad

import (
	"context"
	"sync"

	"go-launchgrid/debug"
	"go-launchgrid/midi"
)

// Transport is the port side of a Runner
type Transport interface {
	Events() <-chan midi.Event
	// SendAll sends in order and returns the number of failed sends
	SendAll(events []midi.Event, ledPort midi.Port) int
}

// Update is published after every frame
type Update struct {
	Snapshot Snapshot
	In       *midi.Event // nil for the initial paint
	Out      []midi.Event
	Failed   int
}

// Runner owns the dispatcher and feeds it one event at a time
type Runner struct {
	d *Dispatcher
	t Transport

	mu   sync.Mutex
	subs []chan Update
}

func NewRunner(d *Dispatcher, t Transport) *Runner {
	return &Runner{d: d, t: t}
}

// Subscribe returns a channel of frame updates. Slow readers only see
// the latest update.
func (r *Runner) Subscribe() <-chan Update {
	ch := make(chan Update, 1)
	r.mu.Lock()
	r.subs = append(r.subs, ch)
	r.mu.Unlock()
	return ch
}

// Run paints the initial state, then processes events until ctx is done
// or the transport's event channel closes. Subscriber channels are closed
// on return.
func (r *Runner) Run(ctx context.Context) error {
	defer r.closeSubs()

	out := r.d.Render()
	failed := r.t.SendAll(out, r.d.ControlOut())
	r.publish(Update{Snapshot: r.d.Snapshot(), Out: out, Failed: failed})
	debug.Log("run", "initial paint: %d leds", len(out))

	events := r.t.Events()
	for {
		select {
		case <-ctx.Done():
			debug.Log("run", "stopped: %v", ctx.Err())
			return nil
		case ev, ok := <-events:
			if !ok {
				debug.Log("run", "event channel closed")
				return nil
			}
			if ev.Type == midi.Clock {
				debug.LogEvery(96, "run", "clock on port %d", ev.Port)
			} else {
				debug.Log("run", "in  %v", ev)
			}

			out := r.d.Dispatch(ev)
			failed := r.t.SendAll(out, r.d.ControlOut())
			r.publish(Update{Snapshot: r.d.Snapshot(), In: &ev, Out: out, Failed: failed})
		}
	}
}

func (r *Runner) publish(u Update) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ch := range r.subs {
		select {
		case ch <- u:
		default:
			// drop the stale update, keep the latest
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- u:
			default:
			}
		}
	}
}

func (r *Runner) closeSubs() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.subs {
		close(ch)
	}
	r.subs = nil
}
