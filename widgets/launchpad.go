package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Pad is one button as drawn on screen
type Pad struct {
	Color [3]uint8
	Lit   bool
}

// PadGrid is the Launchpad face: ctrl row on top, matrix, page column on the right.
// Matrix is indexed [y][x] with y = 0 the top row, as on the device.
type PadGrid struct {
	Ctrl   [8]Pad
	Matrix [8][8]Pad
	Page   [8]Pad
}

// RenderPad renders a single colored pad
func RenderPad(p Pad) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(p.Color)))
	if p.Lit {
		return style.Render("■")
	}
	return style.Render("□")
}

// RenderRoundPad renders a ctrl or page button
func RenderRoundPad(p Pad) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(p.Color)))
	if p.Lit {
		return style.Render("●")
	}
	return style.Render("○")
}

// RenderPadRow renders a row of colored pads with spacing
func RenderPadRow(pads []Pad) string {
	var out strings.Builder
	for i, p := range pads {
		if i > 0 {
			out.WriteString(" ")
		}
		out.WriteString(RenderPad(p))
	}
	return out.String()
}

// RenderLaunchpad renders the whole controller face
func RenderLaunchpad(g PadGrid) string {
	var lines []string

	var top strings.Builder
	for x := 0; x < 8; x++ {
		top.WriteString(RenderRoundPad(g.Ctrl[x]))
		top.WriteString(" ")
	}
	lines = append(lines, top.String())

	for y := 0; y < 8; y++ {
		var line strings.Builder
		line.WriteString(RenderPadRow(g.Matrix[y][:]))
		line.WriteString(" ")
		line.WriteString(RenderRoundPad(g.Page[y]))
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(p Pad, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderPad(p), name, desc)
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
