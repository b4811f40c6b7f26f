package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-launchgrid/config"
	"go-launchgrid/debug"
	"go-launchgrid/launchpad"
	"go-launchgrid/midi"
	"go-launchgrid/theme"
	"go-launchgrid/tui"
)

var (
	runTUI      bool
	runDebug    bool
	debugFile   string
	palettePath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the MIDI ports and drive the Launchpad",
	Long: `Open every port named in the config, reset the Launchpad and route events
until interrupted.

Example:
  launchgrid run --tui
  launchgrid run --config rig.yaml --debug
`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVarP(&runTUI, "tui", "t", false, "show a live LED monitor")
	runCmd.Flags().BoolVarP(&runDebug, "debug", "d", false, "write a debug log")
	runCmd.Flags().StringVar(&debugFile, "debug-file", "", "debug log path (default ~/.config/go-launchgrid/debug.log)")
	runCmd.Flags().StringVar(&palettePath, "palette", "", "GIMP .gpl palette for the monitor")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if runDebug {
		if err := debug.Enable(debugFile); err != nil {
			return err
		}
		defer debug.Disable()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	layout, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	defer midi.CloseDriver()
	eps, err := midi.Scan()
	if err != nil {
		return err
	}

	pm := midi.NewPortManager(layout.Dispatcher.ClockIn())
	defer pm.Close()

	if err := openPorts(pm, layout, eps); err != nil {
		return err
	}

	ctl := layout.Dispatcher.ControlOut()
	if err := pm.InitDevice(ctl); err != nil {
		return err
	}
	defer func() {
		if err := pm.ResetDevice(ctl); err != nil {
			debug.Log("ports", "reset on exit: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner := launchpad.NewRunner(layout.Dispatcher, pm)
	if !runTUI {
		fmt.Printf("launchgrid: %d windows on %s, ctrl+c to stop\n", len(layout.Windows), pm.OutName(ctl))
		return runner.Run(ctx)
	}

	palette, err := theme.LoadOrDefault(palettePath)
	if err != nil {
		return err
	}
	m := tui.NewModel(layout, theme.New(palette), runner.Subscribe(), cancel)
	errc := make(chan error, 1)
	go func() {
		errc <- runner.Run(ctx)
	}()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	cancel()
	if rerr := <-errc; err == nil {
		err = rerr
	}
	return err
}

// openPorts binds every configured port to the endpoint its name matches
func openPorts(pm *midi.PortManager, layout *config.Layout, eps midi.Endpoints) error {
	for i, p := range layout.In {
		in, ok := eps.FindIn(p.Endpoint)
		if !ok {
			return fmt.Errorf("input port %q: no endpoint matches %q (see launchgrid ports)", p.Name, p.Endpoint)
		}
		if err := pm.OpenIn(midi.Port(i), in); err != nil {
			return fmt.Errorf("input port %q: %w", p.Name, err)
		}
	}
	for i, p := range layout.Out {
		out, ok := eps.FindOut(p.Endpoint)
		if !ok {
			return fmt.Errorf("output port %q: no endpoint matches %q (see launchgrid ports)", p.Name, p.Endpoint)
		}
		if err := pm.OpenOut(midi.Port(i), out); err != nil {
			return fmt.Errorf("output port %q: %w", p.Name, err)
		}
	}
	return nil
}
