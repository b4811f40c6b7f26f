package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"go-launchgrid/midi"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI input and output endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer midi.CloseDriver()
		eps, err := midi.Scan()
		if err != nil {
			return err
		}
		printEndpoints(cmd.OutOrStdout(), endpointNames(eps))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}

type namedEndpoints struct {
	In  []string
	Out []string
}

func endpointNames(eps midi.Endpoints) namedEndpoints {
	var n namedEndpoints
	for _, in := range eps.In {
		n.In = append(n.In, in.String())
	}
	for _, out := range eps.Out {
		n.Out = append(n.Out, out.String())
	}
	return n
}

func printEndpoints(w io.Writer, n namedEndpoints) {
	for _, side := range []struct {
		title string
		names []string
	}{{"=== MIDI Input Ports ===", n.In}, {"=== MIDI Output Ports ===", n.Out}} {
		fmt.Fprintln(w, side.title)
		if len(side.names) == 0 {
			fmt.Fprintln(w, "  (none)")
		}
		for i, name := range side.names {
			mark := ""
			if midi.IsLaunchpad(name) {
				mark = "  <- launchpad"
			}
			fmt.Fprintf(w, "  [%d] %s%s\n", i, name, mark)
		}
		fmt.Fprintln(w)
	}
}
