package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-launchgrid/grid"
	"go-launchgrid/midi"
	"go-launchgrid/region"
)

func TestDefaultConfigBuilds(t *testing.T) {
	l, err := DefaultConfig().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	d := l.Dispatcher
	if d.ControlIn() != 0 || d.ControlOut() != 0 || d.ClockIn() != 4 {
		t.Errorf("ports = %d/%d/%d", d.ControlIn(), d.ControlOut(), d.ClockIn())
	}
	if len(l.Windows) != 3 || len(d.Regions()) != 3 {
		t.Fatalf("got %d windows", len(l.Windows))
	}

	manual, ok := l.Windows[0].Region.(*region.Trigger)
	if !ok || manual.Running() {
		t.Errorf("patterns window = %T running=%v", l.Windows[0].Region, ok && manual.Running())
	}
	sw, ok := l.Windows[2].Region.(*region.Switcher)
	if !ok || len(sw.Children()) != 2 {
		t.Fatalf("routers window = %T", l.Windows[2].Region)
	}
	if sw.Rect() != grid.NewRect(0, 6, 8, 2) || !sw.ClaimsPage(7) {
		t.Errorf("switcher rect %v", sw.Rect())
	}
	akai := sw.Children()[1].(*region.Router)
	if c := akai.Frame().Matrix(0, 0); c != grid.Green3 {
		t.Errorf("akai active colour = %d", c)
	}

	out := d.Render()
	if len(out) == 0 {
		t.Fatal("initial paint is empty")
	}
	for _, ev := range out {
		if ev.Port != 0 || ev.Channel != 1 {
			t.Errorf("LED event %v not on the controller", ev)
		}
	}
}

func TestParse(t *testing.T) {
	doc := `
ports:
  in:
    - {name: lp, endpoint: "Launchpad S"}
    - {name: keys, endpoint: "Xkey"}
  out:
    - {name: lp, endpoint: "Launchpad S"}
    - {name: synth, endpoint: "MicroFreak"}
controller: {in: lp, out: lp}
windows:
  - name: pads
    type: trigger
    rect: {x: 0, y: 0, w: 8, h: 4}
    trigger: {mode: once, first_key: 36, out: synth, channel: 2, pages: [0, 1]}
  - name: channels
    type: router
    rect: {x: 0, y: 4, w: 8, h: 2}
    router: {in: keys, channel: 1, out: synth, active: "green3+red3", inactive_odd: red1, inactive_even: "20"}
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	l, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if l.Dispatcher.ClockIn() != midi.NoPort {
		t.Errorf("clock = %d, want none", l.Dispatcher.ClockIn())
	}
	r := l.Windows[1].Region.(*region.Router)
	if c := r.Frame().Matrix(0, 0); c != grid.Amber {
		t.Errorf("active = %d", c)
	}
	if c := r.Frame().Matrix(1, 0); c != grid.Green1 {
		t.Errorf("inactive even = %d", c)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"unknown controller port", func(c *Config) { c.Controller.In = "nope" }, "unknown input port"},
		{"duplicate port", func(c *Config) { c.Ports.Out = append(c.Ports.Out, c.Ports.Out[0]) }, "defined twice"},
		{"missing endpoint", func(c *Config) { c.Ports.In[1].Endpoint = "" }, "missing endpoint"},
		{"no windows", func(c *Config) { c.Windows = nil }, "no windows"},
		{"unknown type", func(c *Config) { c.Windows[0].Type = "mixer" }, "unknown window type"},
		{"outside matrix", func(c *Config) { c.Windows[0].Rect.X = 6 }, "outside"},
		{"overlap", func(c *Config) { c.Windows[1].Rect.W = 5 }, "overlap"},
		{"shared page button", func(c *Config) { c.Windows[0].Trigger.Pages = append(c.Windows[0].Trigger.Pages, 7) }, "page button 7"},
		{"shared ctrl button", func(c *Config) { c.Windows[1].Trigger.Play = intp(6) }, "ctrl button 6"},
		{"bad channel", func(c *Config) { c.Windows[0].Trigger.Channel = 0 }, "channel 0"},
		{"bad mode", func(c *Config) { c.Windows[1].Trigger.Mode = "loop" }, "trigger mode"},
		{"child size mismatch", func(c *Config) { c.Windows[2].Switcher.Children[0].Rect = RectConfig{W: 4, H: 2} }, "different size"},
		{"router too large", func(c *Config) {
			c.Windows[2] = WindowConfig{
				Name:   "big",
				Type:   TypeRouter,
				Rect:   RectConfig{X: 0, Y: 5, W: 8, H: 3},
				Router: &RouterConfig{In: "kronos", Channel: 16, Out: "kronos"},
			}
		}, "at most 16 channels"},
		{"bad colour", func(c *Config) { c.Windows[2].Switcher.Children[1].Router.Active = "blue" }, "unknown colour"},
		{"empty switcher", func(c *Config) { c.Windows[2].Switcher.Children = nil }, "no children"},
		{"page outside switcher", func(c *Config) { c.Windows[0].Page = intp(3) }, "only valid for switcher children"},
		{"missing section", func(c *Config) { c.Windows[1].Trigger = nil }, "missing trigger section"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestAllowOverlap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Windows[1].Rect.W = 5
	cfg.AllowOverlap = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("overlap allowed, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.AllowOverlap = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.AllowOverlap || len(got.Windows) != 3 || got.Windows[0].Trigger.Play == nil || *got.Windows[0].Trigger.Play != 6 {
		t.Errorf("reloaded config differs: %+v", got)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("reloaded config invalid: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("explicit missing path should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("windows: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed yaml should fail")
	}
}
