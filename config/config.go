package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Window types
const (
	TypeTrigger  = "trigger"
	TypeRouter   = "router"
	TypeSwitcher = "switcher"
	TypeEmpty    = "empty"
)

// PortConfig binds a logical port name to a MIDI endpoint.
// Endpoint matches exactly, or as a case-insensitive substring.
type PortConfig struct {
	Name     string `yaml:"name"`
	Endpoint string `yaml:"endpoint"`
}

// PortsConfig lists ports in id order; input and output ids are separate
type PortsConfig struct {
	In  []PortConfig `yaml:"in"`
	Out []PortConfig `yaml:"out"`
}

// ControllerConfig names the ports the Launchpad itself uses
type ControllerConfig struct {
	In    string `yaml:"in"`
	Out   string `yaml:"out"`
	Clock string `yaml:"clock,omitempty"`
}

// RectConfig places a window on the 8x8 matrix
type RectConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// TriggerConfig configures a pattern trigger
type TriggerConfig struct {
	Mode     string `yaml:"mode"` // manual | once
	FirstKey int    `yaml:"first_key"`
	Out      string `yaml:"out"`
	Channel  int    `yaml:"channel"`
	Play     *int   `yaml:"play,omitempty"`
	Prepare  *int   `yaml:"prepare,omitempty"`
	Save     *int   `yaml:"save,omitempty"`
	Load     *int   `yaml:"load,omitempty"`
	Pages    []int  `yaml:"pages,omitempty"`
}

// RouterConfig configures a channel router. Colours take names like
// "red3" or "green3+red1", or raw LED codes.
type RouterConfig struct {
	In           string `yaml:"in"`
	Channel      int    `yaml:"channel"`
	Out          string `yaml:"out"`
	Active       string `yaml:"active,omitempty"`
	InactiveOdd  string `yaml:"inactive_odd,omitempty"`
	InactiveEven string `yaml:"inactive_even,omitempty"`
}

// SwitcherConfig configures a window switcher
type SwitcherConfig struct {
	Scroll   *int           `yaml:"scroll,omitempty"`
	Children []WindowConfig `yaml:"children"`
}

// WindowConfig is one region. Children of a switcher may omit rect
// and inherit the switcher's size; Page binds a child to a page button.
type WindowConfig struct {
	Name     string          `yaml:"name,omitempty"`
	Type     string          `yaml:"type"`
	Rect     RectConfig      `yaml:"rect,omitempty"`
	Page     *int            `yaml:"page,omitempty"`
	Trigger  *TriggerConfig  `yaml:"trigger,omitempty"`
	Router   *RouterConfig   `yaml:"router,omitempty"`
	Switcher *SwitcherConfig `yaml:"switcher,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Ports      PortsConfig      `yaml:"ports"`
	Controller ControllerConfig `yaml:"controller"`
	// AllowOverlap lets windows share pads and buttons
	AllowOverlap bool           `yaml:"allow_overlap,omitempty"`
	Windows      []WindowConfig `yaml:"windows"`
}

func intp(v int) *int { return &v }

// DefaultConfig returns the reference rig: two pattern triggers on the top
// six rows and a pair of channel routers on the bottom two
func DefaultConfig() *Config {
	return &Config{
		Ports: PortsConfig{
			In: []PortConfig{
				{Name: "launchpad", Endpoint: "Launchpad Mini"},
				{Name: "kronos", Endpoint: "KRONOS"},
				{Name: "akaipads", Endpoint: "MPD226"},
				{Name: "xkey", Endpoint: "Xkey"},
				{Name: "clock", Endpoint: "KRONOS"},
			},
			Out: []PortConfig{
				{Name: "launchpad", Endpoint: "Launchpad Mini"},
				{Name: "kronos", Endpoint: "KRONOS"},
			},
		},
		Controller: ControllerConfig{In: "launchpad", Out: "launchpad", Clock: "clock"},
		Windows: []WindowConfig{
			{
				Name: "patterns",
				Type: TypeTrigger,
				Rect: RectConfig{X: 4, Y: 0, W: 4, H: 6},
				Trigger: &TriggerConfig{
					Mode:     "manual",
					FirstKey: 37,
					Out:      "kronos",
					Channel:  16,
					Play:     intp(6),
					Prepare:  intp(7),
					Save:     intp(0),
					Load:     intp(1),
					Pages:    []int{0, 1, 2, 3, 4, 5, 6},
				},
			},
			{
				Name: "one-shots",
				Type: TypeTrigger,
				Rect: RectConfig{X: 0, Y: 0, W: 4, H: 6},
				Trigger: &TriggerConfig{
					Mode:     "once",
					FirstKey: 37 + 24,
					Out:      "kronos",
					Channel:  16,
				},
			},
			{
				Name: "routers",
				Type: TypeSwitcher,
				Rect: RectConfig{X: 0, Y: 6, W: 8, H: 2},
				Switcher: &SwitcherConfig{
					Scroll: intp(7),
					Children: []WindowConfig{
						{
							Name:   "kronos-router",
							Type:   TypeRouter,
							Router: &RouterConfig{In: "kronos", Channel: 16, Out: "kronos"},
						},
						{
							Name: "akaipads-router",
							Type: TypeRouter,
							Router: &RouterConfig{
								In: "akaipads", Channel: 1, Out: "kronos",
								Active: "green3", InactiveOdd: "red1", InactiveEven: "red1",
							},
						},
					},
				},
			},
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-launchgrid"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path. With an empty path it reads the default
// location, or returns defaults if nothing is there.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML config
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to path, or the default location when empty
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// FindIn returns the id of the input port called name, or -1
func (c *Config) FindIn(name string) int {
	for i := range c.Ports.In {
		if c.Ports.In[i].Name == name {
			return i
		}
	}
	return -1
}

// FindOut returns the id of the output port called name, or -1
func (c *Config) FindOut(name string) int {
	for i := range c.Ports.Out {
		if c.Ports.Out[i].Name == name {
			return i
		}
	}
	return -1
}
