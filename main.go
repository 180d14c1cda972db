package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/seabassapologist/bluebatt/bluebatt"
)

/*
bluebatt -
Report battery levels of connected Bluetooth devices via the BlueZ D-Bus interface
*/

var version = "dev"

// connectFunc opens the bus used to look devices up.
type connectFunc func(opts *bluebatt.Options) (bluebatt.Bus, error)

func connectSystemBus(opts *bluebatt.Options) (bluebatt.Bus, error) {
	bus, err := bluebatt.ConnectSystemBus(opts)
	if err != nil {
		return nil, err
	}
	return bus, nil
}

type cliFlags struct {
	long, full, short, narrow bool
	markup, waybar            bool
	logLevel                  string
}

func main() {
	cmd := NewCommand(connectSystemBus)
	if err := cmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	color.New(color.Bold, color.FgRed).Fprint(w, "ERROR:")
	fmt.Fprintf(w, " %s\n", err)
	if errors.Is(err, bluebatt.ErrBusUnavailable) {
		fmt.Fprintln(w, "Is the system bus running? Is bluetoothd running?")
	}
}

func NewCommand(connect connectFunc) *cobra.Command {
	var f cliFlags
	opts := bluebatt.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "bluebatt [flags] [address...]",
		Short: "bluebatt reports battery levels of connected Bluetooth devices",
		Long: `bluebatt reports battery levels of connected Bluetooth devices on one line,
for terminals and status bars such as i3blocks or Waybar.

Without addresses every connected device with a battery is listed.
With addresses (e.g. AA:BB:CC:DD:EE:FF) only those devices are queried.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			for _, a := range args {
				if err := bluebatt.ValidateAddress(a); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := setupLogger(f.logLevel)
			if err != nil {
				return err
			}

			bus, err := connect(opts)
			if err != nil {
				return err
			}
			if c, ok := bus.(io.Closer); ok {
				defer c.Close()
			}

			var r bluebatt.Retriever
			if len(args) > 0 {
				logger.WithField("addresses", args).Debug("querying devices by address")
				r = bluebatt.NewTargetedRetriever(bus, args, opts, logger)
			} else {
				logger.Debug("querying all managed objects")
				r = bluebatt.NewBulkRetriever(bus, logger)
			}

			devices, err := r.Devices(cmd.Context())
			if err != nil {
				return err
			}

			formatter := bluebatt.Formatter{Mode: f.mode(), Markup: f.markup}
			out := formatter.Render(devices)
			if f.waybar {
				if out, err = formatter.Waybar(devices); err != nil {
					return err
				}
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := cmd.Flags()
	flags.BoolVarP(&f.long, "long", "l", false, "show icon, name and battery level")
	flags.BoolVarP(&f.full, "full", "f", false, "alias for --long")
	_ = flags.MarkHidden("full")
	flags.BoolVarP(&f.short, "short", "s", false, "show name and battery level")
	flags.BoolVarP(&f.narrow, "narrow", "n", false, "show icon and battery level (default)")
	flags.BoolVarP(&f.markup, "markup", "m", false, "render icons as Pango markup")
	flags.BoolVarP(&f.waybar, "waybar", "w", false, "format output as JSON for Waybar's 'custom' module")
	flags.StringVarP(&opts.Adapter, "adapter", "a", opts.Adapter, "adapter addresses are looked up under")
	flags.DurationVarP(&opts.Timeout, "timeout", "t", opts.Timeout, "timeout for every bus call")
	flags.StringVar(&f.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error, fatal, panic)")
	flags.BoolP("version", "V", false, "print version and exit")
	// --full is --long, so the two are only exclusive with the other modes.
	cmd.MarkFlagsMutuallyExclusive("long", "short", "narrow")
	cmd.MarkFlagsMutuallyExclusive("full", "short", "narrow")

	return cmd
}

func (f *cliFlags) mode() bluebatt.Mode {
	switch {
	case f.long, f.full:
		return bluebatt.Long
	case f.short:
		return bluebatt.Short
	}
	return bluebatt.Narrow
}
