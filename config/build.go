package config

import (
	"fmt"

	"go-launchgrid/grid"
	"go-launchgrid/launchpad"
	"go-launchgrid/midi"
	"go-launchgrid/region"
)

// Window is a built region with the config entry it came from
type Window struct {
	Name     string
	Type     string
	Region   region.Region
	Children []Window
}

// Layout is a config turned into live objects
type Layout struct {
	Dispatcher *launchpad.Dispatcher
	Windows    []Window
	In         []PortConfig // index is the midi.Port id
	Out        []PortConfig
}

// Validate builds the config and reports the first defect
func (c *Config) Validate() error {
	_, err := c.Build()
	return err
}

// Build checks the config and creates the dispatcher and its regions
func (c *Config) Build() (*Layout, error) {
	if err := c.checkPorts(); err != nil {
		return nil, err
	}

	ctlIn, err := c.inPort(c.Controller.In)
	if err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}
	ctlOut, err := c.outPort(c.Controller.Out)
	if err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}
	clock := midi.NoPort
	if c.Controller.Clock != "" {
		if clock, err = c.inPort(c.Controller.Clock); err != nil {
			return nil, fmt.Errorf("controller clock: %w", err)
		}
	}

	if len(c.Windows) == 0 {
		return nil, fmt.Errorf("no windows configured")
	}

	d := launchpad.NewDispatcher(ctlIn, ctlOut, clock)
	l := &Layout{Dispatcher: d, In: c.Ports.In, Out: c.Ports.Out}

	for i, wc := range c.Windows {
		w, err := c.buildWindow(wc, grid.Rect{})
		if err != nil {
			return nil, fmt.Errorf("window %d (%s): %w", i, wc.label(), err)
		}
		if err := d.AddWindow(w.Region); err != nil {
			return nil, fmt.Errorf("window %d (%s): %w", i, wc.label(), err)
		}
		l.Windows = append(l.Windows, w)
	}

	if !c.AllowOverlap {
		if err := checkOverlap(l.Windows); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (wc WindowConfig) label() string {
	if wc.Name != "" {
		return wc.Name
	}
	return wc.Type
}

func (c *Config) checkPorts() error {
	for _, side := range []struct {
		kind  string
		ports []PortConfig
	}{{"input", c.Ports.In}, {"output", c.Ports.Out}} {
		seen := make(map[string]bool)
		for i, p := range side.ports {
			if p.Name == "" {
				return fmt.Errorf("%s port %d: missing name", side.kind, i)
			}
			if p.Endpoint == "" {
				return fmt.Errorf("%s port %q: missing endpoint", side.kind, p.Name)
			}
			if seen[p.Name] {
				return fmt.Errorf("%s port %q defined twice", side.kind, p.Name)
			}
			seen[p.Name] = true
		}
	}
	return nil
}

func (c *Config) inPort(name string) (midi.Port, error) {
	i := c.FindIn(name)
	if i < 0 {
		return midi.NoPort, fmt.Errorf("unknown input port %q", name)
	}
	return midi.Port(i), nil
}

func (c *Config) outPort(name string) (midi.Port, error) {
	i := c.FindOut(name)
	if i < 0 {
		return midi.NoPort, fmt.Errorf("unknown output port %q", name)
	}
	return midi.Port(i), nil
}

func button(p *int) int {
	if p == nil {
		return region.NoButton
	}
	return *p
}

func channel(ch int) (uint8, error) {
	if ch < 1 || ch > 16 {
		return 0, fmt.Errorf("channel %d outside 1-16", ch)
	}
	return uint8(ch), nil
}

func colorOr(s string, def grid.Color) (grid.Color, error) {
	if s == "" {
		return def, nil
	}
	return grid.ParseColor(s)
}

// buildWindow creates the region for wc. A child inherits the size of
// parent when its own rect is empty.
func (c *Config) buildWindow(wc WindowConfig, parent grid.Rect) (Window, error) {
	rect := grid.NewRect(wc.Rect.X, wc.Rect.Y, wc.Rect.W, wc.Rect.H)
	if rect.W == 0 && rect.H == 0 && parent.W > 0 {
		rect = grid.NewRect(0, 0, parent.W, parent.H)
	}
	w := Window{Name: wc.label(), Type: wc.Type}

	switch wc.Type {
	case TypeEmpty:
		r, err := region.NewEmpty(rect)
		if err != nil {
			return w, err
		}
		w.Region = r

	case TypeTrigger:
		tc := wc.Trigger
		if tc == nil {
			return w, fmt.Errorf("missing trigger section")
		}
		mode, err := region.ParseTriggerMode(tc.Mode)
		if err != nil {
			return w, err
		}
		out, err := c.outPort(tc.Out)
		if err != nil {
			return w, err
		}
		ch, err := channel(tc.Channel)
		if err != nil {
			return w, err
		}
		buttons := region.TriggerButtons{
			Play:    button(tc.Play),
			Prepare: button(tc.Prepare),
			Save:    button(tc.Save),
			Load:    button(tc.Load),
		}
		r, err := region.NewTrigger(rect, mode, tc.FirstKey, out, ch, buttons, tc.Pages)
		if err != nil {
			return w, err
		}
		w.Region = r

	case TypeRouter:
		rc := wc.Router
		if rc == nil {
			return w, fmt.Errorf("missing router section")
		}
		in, err := c.inPort(rc.In)
		if err != nil {
			return w, err
		}
		out, err := c.outPort(rc.Out)
		if err != nil {
			return w, err
		}
		ch, err := channel(rc.Channel)
		if err != nil {
			return w, err
		}
		colors := region.DefaultRouterColors
		if colors.Active, err = colorOr(rc.Active, colors.Active); err != nil {
			return w, err
		}
		if colors.InactiveOdd, err = colorOr(rc.InactiveOdd, colors.InactiveOdd); err != nil {
			return w, err
		}
		if colors.InactiveEven, err = colorOr(rc.InactiveEven, colors.InactiveEven); err != nil {
			return w, err
		}
		r, err := region.NewRouter(rect, in, ch, out, colors)
		if err != nil {
			return w, err
		}
		w.Region = r

	case TypeSwitcher:
		sc := wc.Switcher
		if sc == nil {
			return w, fmt.Errorf("missing switcher section")
		}
		s, err := region.NewSwitcher(rect, button(sc.Scroll))
		if err != nil {
			return w, err
		}
		for i, cc := range sc.Children {
			child, err := c.buildWindow(cc, rect)
			if err != nil {
				return w, fmt.Errorf("child %d (%s): %w", i, cc.label(), err)
			}
			if err := s.Add(child.Region, button(cc.Page)); err != nil {
				return w, err
			}
			w.Children = append(w.Children, child)
		}
		if err := s.Validate(); err != nil {
			return w, err
		}
		w.Region = s

	default:
		return w, fmt.Errorf("unknown window type %q", wc.Type)
	}

	if wc.Page != nil && parent.W == 0 {
		return w, fmt.Errorf("page is only valid for switcher children")
	}
	return w, nil
}

// staticClaims returns every ctrl and page button a window may ever claim
func staticClaims(r region.Region) (ctrl [grid.CtrlButtons]bool, page [grid.PageButtons]bool) {
	if s, ok := r.(*region.Switcher); ok {
		for _, child := range s.Children() {
			cc, cp := staticClaims(child)
			for i := range cc {
				ctrl[i] = ctrl[i] || cc[i]
				page[i] = page[i] || cp[i]
			}
		}
	}
	for i := range ctrl {
		ctrl[i] = ctrl[i] || r.ClaimsCtrl(i)
	}
	for i := range page {
		page[i] = page[i] || r.ClaimsPage(i)
	}
	return ctrl, page
}

func checkOverlap(windows []Window) error {
	var ctrlOwner [grid.CtrlButtons]string
	var pageOwner [grid.PageButtons]string
	for i, a := range windows {
		for _, b := range windows[i+1:] {
			if a.Region.Rect().Overlaps(b.Region.Rect()) {
				return fmt.Errorf("windows %q %v and %q %v overlap (set allow_overlap to permit)",
					a.Name, a.Region.Rect(), b.Name, b.Region.Rect())
			}
		}

		ctrl, page := staticClaims(a.Region)
		for x := range ctrl {
			if !ctrl[x] {
				continue
			}
			if ctrlOwner[x] != "" {
				return fmt.Errorf("ctrl button %d claimed by %q and %q", x, ctrlOwner[x], a.Name)
			}
			ctrlOwner[x] = a.Name
		}
		for y := range page {
			if !page[y] {
				continue
			}
			if pageOwner[y] != "" {
				return fmt.Errorf("page button %d claimed by %q and %q", y, pageOwner[y], a.Name)
			}
			pageOwner[y] = a.Name
		}
	}
	return nil
}
