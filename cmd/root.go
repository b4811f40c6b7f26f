package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "launchgrid",
	Short: "Split a Launchpad into independent MIDI control windows",
	Long: `launchgrid turns a Novation Launchpad into a set of windows: pattern
triggers that fire notes at a sequencer, channel routers that send a keyboard
to the channel picked on the pads, and switchers that page between them.

The layout and the MIDI ports are read from ~/.config/go-launchgrid/config.yaml.
Run "launchgrid init" to write the default layout there.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/go-launchgrid/config.yaml)")
}
