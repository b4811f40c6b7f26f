package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"go-launchgrid/grid"
)

type Theme struct {
	Palette *Palette
}

func New(palette *Palette) *Theme {
	return &Theme{Palette: palette}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleMuted   = 0.2
	RoleFG      = 0.4
	RoleAccent  = 0.5
	RoleActive  = 0.7
	RoleWarning = 0.8
)

// Style helpers

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

// LED intensity per brightness level 0-3
var ledLevels = [4]uint8{0, 110, 180, 255}

// LED returns the on-screen colour of a Launchpad LED code.
// Dark LEDs use the muted palette colour so the pad outline stays visible.
func (t *Theme) LED(c grid.Color) RGB {
	red, green := c.Levels()
	if red == 0 && green == 0 {
		return t.Palette.Lookup(RoleMuted)
	}
	return RGB{ledLevels[red], ledLevels[green], 0}
}

// IsLit reports whether an LED code shows any light
func IsLit(c grid.Color) bool {
	red, green := c.Levels()
	return red > 0 || green > 0
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
