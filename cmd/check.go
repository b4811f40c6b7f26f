package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"go-launchgrid/config"
	"go-launchgrid/grid"
	"go-launchgrid/launchpad"
	"go-launchgrid/midi"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config and print the layout",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		layout, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		printLayout(cmd.OutOrStdout(), layout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func windowLetter(i int) byte {
	return 'A' + byte(i%26)
}

// printLayout lists the windows and draws which window owns each pad,
// followed by the LED colours of the initial paint
func printLayout(w io.Writer, l *config.Layout) {
	d := l.Dispatcher
	fmt.Fprintf(w, "controller: in %s, out %s", portName(l.In, int(d.ControlIn())), portName(l.Out, int(d.ControlOut())))
	if d.ClockIn() != midi.NoPort {
		fmt.Fprintf(w, ", clock %s", portName(l.In, int(d.ClockIn())))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	var owner [grid.MatrixHeight][grid.MatrixWidth]byte
	for y := range owner {
		for x := range owner[y] {
			owner[y][x] = '.'
		}
	}
	for i, win := range l.Windows {
		r := win.Region.Rect()
		fmt.Fprintf(w, "%c  %-16s %-9s %v\n", windowLetter(i), win.Name, win.Type, r)
		for _, c := range win.Children {
			fmt.Fprintf(w, "     %-14s %s\n", c.Name, c.Type)
		}
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				owner[y][x] = windowLetter(i)
			}
		}
	}
	fmt.Fprintln(w)

	d.Render()
	snap := d.Snapshot()
	fmt.Fprintln(w, gridText(owner, snap))
}

func portName(ports []config.PortConfig, i int) string {
	if i < 0 || i >= len(ports) {
		return "?"
	}
	return fmt.Sprintf("%s (%s)", ports[i].Name, ports[i].Endpoint)
}

func gridText(owner [grid.MatrixHeight][grid.MatrixWidth]byte, snap launchpad.Snapshot) string {
	var b strings.Builder
	b.WriteString("   ")
	for x := 0; x < grid.CtrlButtons; x++ {
		fmt.Fprintf(&b, " %-8s", snap.Ctrl[x])
	}
	b.WriteString("\n")
	for y := 0; y < grid.MatrixHeight; y++ {
		fmt.Fprintf(&b, "%d  ", y)
		for x := 0; x < grid.MatrixWidth; x++ {
			fmt.Fprintf(&b, " %c:%-6s", owner[y][x], snap.Matrix[y][x])
		}
		fmt.Fprintf(&b, " | %s\n", snap.Page[y])
	}
	return b.String()
}
