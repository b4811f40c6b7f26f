package midi

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go-launchgrid/debug"
)

// Launchpad Mini / S layout select (CC 0 on channel 1)
const (
	lpReset    uint8 = 0x00
	lpLayoutXY uint8 = 0x01
)

var ledSendCount uint64

// IsLaunchpad reports whether an endpoint name looks like a Launchpad
func IsLaunchpad(name string) bool {
	return strings.Contains(strings.ToLower(name), "launchpad")
}

// InitDevice resets the Launchpad on port, which turns all LEDs off,
// and selects the X-Y layout the grid geometry assumes
func (pm *PortManager) InitDevice(port Port) error {
	for _, v := range []uint8{lpReset, lpLayoutXY} {
		if err := pm.Send(NewCC(port, 1, 0, v)); err != nil {
			return fmt.Errorf("init launchpad: %w", err)
		}
	}
	debug.Log("ports", "launchpad on out %d reset, X-Y layout", port)
	return nil
}

// ResetDevice turns all LEDs off on the way out
func (pm *PortManager) ResetDevice(port Port) error {
	return pm.Send(NewCC(port, 1, 0, lpReset))
}

// SendAll sends events in order. Failures are logged and skipped;
// the count of failed sends is returned.
func (pm *PortManager) SendAll(events []Event, ledPort Port) int {
	failed := 0
	leds := 0
	for _, ev := range events {
		if err := pm.Send(ev); err != nil {
			debug.Log("ports", "%v", err)
			failed++
			continue
		}
		if ev.Port == ledPort {
			leds++
		}
	}

	if leds > 0 {
		count := atomic.AddUint64(&ledSendCount, uint64(leds))
		if count%100 < uint64(leds) {
			debug.Log("lp-send", "led count=%d (this batch=%d)", count, leds)
		}
	}
	return failed
}
